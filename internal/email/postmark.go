package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
)

const defaultAPIURL = "https://api.postmarkapp.com/email"

type Client struct {
	serverToken string
	fromEmail   string
	apiURL      string
	httpClient  *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithAPIURL overrides the Postmark endpoint, for tests.
func WithAPIURL(url string) Option {
	return func(cl *Client) {
		cl.apiURL = url
	}
}

func NewClient(serverToken, fromEmail string, opts ...Option) *Client {
	c := &Client{
		serverToken: serverToken,
		fromEmail:   fromEmail,
		apiURL:      defaultAPIURL,
		httpClient:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if the server token is set.
func (c *Client) Configured() bool {
	return c.serverToken != ""
}

type postmarkEmail struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HtmlBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
}

// SendSightingAlert notifies the guardian's configured address that someone
// scanned the elder's QR code. Location and message come from the finder and
// may be empty.
func (c *Client) SendSightingAlert(toEmail, elderName, location, message string) error {
	if !c.Configured() {
		return fmt.Errorf("email client not configured: missing server token")
	}

	subject := fmt.Sprintf("【みまもりコンパス】%sさんの目撃情報が届きました", elderName)

	textBody := fmt.Sprintf("%sさんのQRコードが読み取られました。\n", elderName)
	if location != "" {
		textBody += fmt.Sprintf("場所: %s\n", location)
	}
	if message != "" {
		textBody += fmt.Sprintf("発見者からのメッセージ: %s\n", message)
	}
	// Location and message come from an anonymous finder; escape them so the
	// alert cannot carry injected markup.
	htmlBody := fmt.Sprintf("<p>%sさんのQRコードが読み取られました。</p>", html.EscapeString(elderName))
	if location != "" {
		htmlBody += fmt.Sprintf("<p>場所: %s</p>", html.EscapeString(location))
	}
	if message != "" {
		htmlBody += fmt.Sprintf("<p>発見者からのメッセージ: %s</p>", html.EscapeString(message))
	}

	payload := postmarkEmail{
		From:     c.fromEmail,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlBody,
		TextBody: textBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequest("POST", c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.serverToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("postmark returned status %d", resp.StatusCode)
	}
	return nil
}
