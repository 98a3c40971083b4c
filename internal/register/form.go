// Package register validates elder registration submissions before any side
// effect runs. A submission either normalizes into a Registration or fails
// with a ValidationError naming the offending fields.
package register

import (
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/ytakeda/mimamori/internal/address"
)

const (
	// MaxFiles is the clothing photo limit per elder.
	MaxFiles = 3
	// MaxFileSize is the per-file upload limit (5 MiB).
	MaxFileSize = 5 << 20
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// ValidationError reports which fields failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}

// File is one clothing photo staged for upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Form carries the raw multipart form values.
type Form struct {
	LastName                string
	FirstName               string
	Prefecture              string
	City                    string
	NotificationEmail       string
	Age                     string
	MedicalConditions       string
	PhysicalCharacteristics string
	Files                   []File
}

// Registration is the normalized payload, ready for persistence.
type Registration struct {
	Name                    string
	Age                     int
	Prefecture              string
	City                    string
	NotificationEmail       string
	MedicalConditions       string
	PhysicalCharacteristics string
	Files                   []File
}

// maxRequestBytes bounds the whole request body: headroom above
// 3 files x 5 MiB plus text fields.
const maxRequestBytes = 20 << 20

// ParseForm reads the multipart request body into a Form. File contents are
// read here so that validation sees the real sizes; each read is capped just
// past MaxFileSize, so an oversized part is rejected by Validate without
// buffering the whole thing. The declared content types are re-checked by
// Validate.
func ParseForm(r *http.Request) (*Form, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBytes)
	if err := r.ParseMultipartForm(maxRequestBytes); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	f := &Form{
		LastName:                strings.TrimSpace(r.FormValue("lastName")),
		FirstName:               strings.TrimSpace(r.FormValue("firstName")),
		Prefecture:              strings.TrimSpace(r.FormValue("prefecture")),
		City:                    strings.TrimSpace(r.FormValue("city")),
		NotificationEmail:       strings.TrimSpace(r.FormValue("notificationEmail")),
		Age:                     strings.TrimSpace(r.FormValue("age")),
		MedicalConditions:       strings.TrimSpace(r.FormValue("medicalConditions")),
		PhysicalCharacteristics: strings.TrimSpace(r.FormValue("physicalCharacteristics")),
	}

	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["files"] {
			src, err := fh.Open()
			if err != nil {
				return nil, fmt.Errorf("open uploaded file %q: %w", fh.Filename, err)
			}
			data, err := io.ReadAll(io.LimitReader(src, MaxFileSize+1))
			src.Close()
			if err != nil {
				return nil, fmt.Errorf("read uploaded file %q: %w", fh.Filename, err)
			}
			f.Files = append(f.Files, File{
				Name:        fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}

	return f, nil
}

// Validate checks every field and file constraint. It has no side effects
// and must run before any upload or write. A single invalid file rejects the
// whole batch; there is no partial acceptance.
func (f *Form) Validate() (*Registration, error) {
	var bad []string

	if f.LastName == "" {
		bad = append(bad, "lastName")
	}
	if f.FirstName == "" {
		bad = append(bad, "firstName")
	}

	switch {
	case f.Prefecture == "", !address.ValidPrefecture(f.Prefecture):
		bad = append(bad, "prefecture")
	case f.City == "", !address.ValidCity(f.Prefecture, f.City):
		bad = append(bad, "city")
	}

	if f.NotificationEmail == "" {
		bad = append(bad, "notificationEmail")
	} else if _, err := mail.ParseAddress(f.NotificationEmail); err != nil {
		bad = append(bad, "notificationEmail")
	}

	age, err := strconv.Atoi(f.Age)
	if f.Age == "" || err != nil || age <= 0 {
		bad = append(bad, "age")
	}

	if len(f.Files) > MaxFiles {
		bad = append(bad, "files")
	} else {
		for _, file := range f.Files {
			if len(file.Data) > MaxFileSize || !allowedTypes[file.ContentType] {
				bad = append(bad, "files")
				break
			}
		}
	}

	if len(bad) > 0 {
		return nil, &ValidationError{Fields: bad}
	}

	return &Registration{
		Name:                    f.LastName + " " + f.FirstName,
		Age:                     age,
		Prefecture:              f.Prefecture,
		City:                    f.City,
		NotificationEmail:       f.NotificationEmail,
		MedicalConditions:       f.MedicalConditions,
		PhysicalCharacteristics: f.PhysicalCharacteristics,
		Files:                   f.Files,
	}, nil
}
