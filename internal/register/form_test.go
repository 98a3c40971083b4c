package register

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"slices"
	"testing"
)

func validForm() *Form {
	return &Form{
		LastName:          "山田",
		FirstName:         "太郎",
		Prefecture:        "東京都",
		City:              "渋谷区",
		NotificationEmail: "a@b.com",
		Age:               "80",
	}
}

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	return ve.Fields
}

func TestValidateMinimalForm(t *testing.T) {
	reg, err := validForm().Validate()
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if reg.Name != "山田 太郎" {
		t.Errorf("name = %q, want %q", reg.Name, "山田 太郎")
	}
	if reg.Age != 80 {
		t.Errorf("age = %d, want 80", reg.Age)
	}
	if len(reg.Files) != 0 {
		t.Errorf("files = %d, want 0", len(reg.Files))
	}
}

func TestValidateMissingRequiredFields(t *testing.T) {
	fields, err := (&Form{}).Validate()
	if fields != nil {
		t.Fatal("expected nil registration")
	}
	got := fieldsOf(t, err)
	for _, want := range []string{"lastName", "firstName", "prefecture", "notificationEmail", "age"} {
		if !slices.Contains(got, want) {
			t.Errorf("fields %v missing %q", got, want)
		}
	}
}

func TestValidateNegativeAge(t *testing.T) {
	f := validForm()
	f.Age = "-5"
	_, err := f.Validate()
	if got := fieldsOf(t, err); !slices.Contains(got, "age") {
		t.Errorf("fields = %v, want to contain age", got)
	}
}

func TestValidateNonIntegerAge(t *testing.T) {
	f := validForm()
	f.Age = "eighty"
	_, err := f.Validate()
	if got := fieldsOf(t, err); !slices.Contains(got, "age") {
		t.Errorf("fields = %v, want to contain age", got)
	}
}

func TestValidateCityOutsidePrefecture(t *testing.T) {
	f := validForm()
	f.City = "堺市" // belongs to 大阪府
	_, err := f.Validate()
	if got := fieldsOf(t, err); !slices.Contains(got, "city") {
		t.Errorf("fields = %v, want to contain city", got)
	}
}

func TestValidateBadEmail(t *testing.T) {
	f := validForm()
	f.NotificationEmail = "not-an-email"
	_, err := f.Validate()
	if got := fieldsOf(t, err); !slices.Contains(got, "notificationEmail") {
		t.Errorf("fields = %v, want to contain notificationEmail", got)
	}
}

func TestValidateTooManyFiles(t *testing.T) {
	f := validForm()
	for i := 0; i < MaxFiles+1; i++ {
		f.Files = append(f.Files, File{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("x")})
	}
	_, err := f.Validate()
	if got := fieldsOf(t, err); !slices.Contains(got, "files") {
		t.Errorf("fields = %v, want to contain files", got)
	}
}

func TestValidateRejectsWholeBatchOnOneBadType(t *testing.T) {
	f := validForm()
	f.Files = []File{
		{Name: "ok.png", ContentType: "image/png", Data: []byte("x")},
		{Name: "doc.pdf", ContentType: "application/pdf", Data: []byte("x")},
	}
	reg, err := f.Validate()
	if reg != nil {
		t.Fatal("expected whole batch rejected, got registration")
	}
	if got := fieldsOf(t, err); !slices.Contains(got, "files") {
		t.Errorf("fields = %v, want to contain files", got)
	}
}

func TestValidateOversizedFile(t *testing.T) {
	f := validForm()
	f.Files = []File{{Name: "big.jpg", ContentType: "image/jpeg", Data: make([]byte, MaxFileSize+1)}}
	_, err := f.Validate()
	if got := fieldsOf(t, err); !slices.Contains(got, "files") {
		t.Errorf("fields = %v, want to contain files", got)
	}
}

func TestParseFormCapsOversizedFileRead(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("lastName", "山田")
	mw.WriteField("firstName", "太郎")
	mw.WriteField("prefecture", "東京都")
	mw.WriteField("city", "渋谷区")
	mw.WriteField("notificationEmail", "a@b.com")
	mw.WriteField("age", "80")

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="files"; filename="big.jpg"`)
	hdr.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write(make([]byte, MaxFileSize+4096))
	mw.Close()

	r := httptest.NewRequest(http.MethodPost, "/api/elder/register", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	form, err := ParseForm(r)
	if err != nil {
		t.Fatalf("parse form: %v", err)
	}
	if len(form.Files) != 1 {
		t.Fatalf("files = %d, want 1", len(form.Files))
	}
	if got := len(form.Files[0].Data); got > MaxFileSize+1 {
		t.Errorf("staged %d bytes, want at most %d", got, MaxFileSize+1)
	}

	_, err = form.Validate()
	if got := fieldsOf(t, err); !slices.Contains(got, "files") {
		t.Errorf("fields = %v, want to contain files", got)
	}
}

func TestParseForm(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("lastName", "山田")
	mw.WriteField("firstName", "太郎")
	mw.WriteField("prefecture", "東京都")
	mw.WriteField("city", "渋谷区")
	mw.WriteField("notificationEmail", "a@b.com")
	mw.WriteField("age", "80")

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="files"; filename="coat.png"`)
	hdr.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write([]byte("png-bytes"))
	mw.Close()

	r := httptest.NewRequest(http.MethodPost, "/api/elder/register", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	form, err := ParseForm(r)
	if err != nil {
		t.Fatalf("parse form: %v", err)
	}
	if form.LastName != "山田" || form.Age != "80" {
		t.Errorf("unexpected form values: %+v", form)
	}
	if len(form.Files) != 1 {
		t.Fatalf("files = %d, want 1", len(form.Files))
	}
	if form.Files[0].ContentType != "image/png" {
		t.Errorf("content type = %q, want image/png", form.Files[0].ContentType)
	}
	if string(form.Files[0].Data) != "png-bytes" {
		t.Errorf("data = %q", form.Files[0].Data)
	}
}
