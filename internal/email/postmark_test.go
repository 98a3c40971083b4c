package email

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendSightingAlert(t *testing.T) {
	var received postmarkEmail
	var gotToken string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Postmark-Server-Token")
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"MessageID": "test-id"}`))
	}))
	defer server.Close()

	client := NewClient("test-token", "alerts@example.com", WithAPIURL(server.URL))

	err := client.SendSightingAlert("guardian@example.com", "山田 太郎", "渋谷駅前", "お元気そうでした")
	if err != nil {
		t.Fatalf("send sighting alert: %v", err)
	}

	if gotToken != "test-token" {
		t.Errorf("server token = %q, want %q", gotToken, "test-token")
	}
	if received.To != "guardian@example.com" {
		t.Errorf("To = %q, want %q", received.To, "guardian@example.com")
	}
	if received.From != "alerts@example.com" {
		t.Errorf("From = %q, want %q", received.From, "alerts@example.com")
	}
	if !strings.Contains(received.Subject, "山田 太郎") {
		t.Errorf("Subject = %q, want elder name included", received.Subject)
	}
	if !strings.Contains(received.TextBody, "渋谷駅前") {
		t.Errorf("TextBody = %q, want location included", received.TextBody)
	}
}

func TestSendSightingAlertEscapesFinderInput(t *testing.T) {
	var received postmarkEmail

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"MessageID": "test-id"}`))
	}))
	defer server.Close()

	client := NewClient("test-token", "alerts@example.com", WithAPIURL(server.URL))

	location := `<a href="https://evil.example/phish">click here</a>`
	message := `<script>alert(1)</script>`
	if err := client.SendSightingAlert("guardian@example.com", "山田 太郎", location, message); err != nil {
		t.Fatalf("send sighting alert: %v", err)
	}

	if strings.Contains(received.HtmlBody, "<a href") || strings.Contains(received.HtmlBody, "<script>") {
		t.Errorf("HtmlBody = %q, want finder markup escaped", received.HtmlBody)
	}
	if !strings.Contains(received.HtmlBody, "&lt;a href") {
		t.Errorf("HtmlBody = %q, want escaped location present", received.HtmlBody)
	}
	if !strings.Contains(received.TextBody, location) {
		t.Errorf("TextBody = %q, want raw location text preserved", received.TextBody)
	}
}

func TestSendSightingAlertOmitsEmptyOptionalLines(t *testing.T) {
	var received postmarkEmail

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"MessageID": "test-id"}`))
	}))
	defer server.Close()

	client := NewClient("test-token", "alerts@example.com", WithAPIURL(server.URL))

	if err := client.SendSightingAlert("guardian@example.com", "山田 太郎", "", ""); err != nil {
		t.Fatalf("send sighting alert: %v", err)
	}
	if strings.Contains(received.TextBody, "場所") || strings.Contains(received.TextBody, "メッセージ") {
		t.Errorf("TextBody = %q, want optional lines omitted", received.TextBody)
	}
}

func TestSendSightingAlertUnconfigured(t *testing.T) {
	client := NewClient("", "alerts@example.com")

	if err := client.SendSightingAlert("guardian@example.com", "山田 太郎", "", ""); err == nil {
		t.Fatal("expected error when server token missing")
	}
}

func TestSendSightingAlertServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewClient("test-token", "alerts@example.com", WithAPIURL(server.URL))

	if err := client.SendSightingAlert("guardian@example.com", "山田 太郎", "", ""); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
