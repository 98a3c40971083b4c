package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ytakeda/mimamori/internal/register"
)

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	failKey string // substring; matching keys fail
}

func (f *fakeS3) PutObject(ctx context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failKey != "" && strings.Contains(*input.Key, f.failKey) {
		return nil, fmt.Errorf("simulated put failure for %s", *input.Key)
	}
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.objects == nil {
		f.objects = make(map[string][]byte)
	}
	f.objects[*input.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func testUploader(client s3Client) *Uploader {
	return &Uploader{
		client:     client,
		bucket:     "mimamori-compass",
		publicHost: "https://img.example.com",
		logger:     slog.New(slog.DiscardHandler),
		now:        func() time.Time { return time.UnixMilli(1700000000000) },
	}
}

func TestUploadOrderPreserved(t *testing.T) {
	fake := &fakeS3{}
	u := testUploader(fake)

	files := []register.File{
		{Name: "coat.jpg", ContentType: "image/jpeg", Data: []byte("aaa")},
		{Name: "hat.png", ContentType: "image/png", Data: []byte("bbb")},
		{Name: "shoes.webp", ContentType: "image/webp", Data: []byte("ccc")},
	}

	urls, err := u.Upload(context.Background(), files)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	want := []string{
		"https://img.example.com/clothing/1700000000000-0-coat.jpg",
		"https://img.example.com/clothing/1700000000000-1-hat.png",
		"https://img.example.com/clothing/1700000000000-2-shoes.webp",
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
	if len(fake.objects) != 3 {
		t.Errorf("stored %d objects, want 3", len(fake.objects))
	}
	if string(fake.objects["clothing/1700000000000-1-hat.png"]) != "bbb" {
		t.Error("stored bytes do not match input")
	}
}

func TestUploadNoFiles(t *testing.T) {
	u := testUploader(&fakeS3{})

	urls, err := u.Upload(context.Background(), nil)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if urls != nil {
		t.Errorf("urls = %v, want nil", urls)
	}
}

func TestUploadSingleFailureFailsBatch(t *testing.T) {
	fake := &fakeS3{failKey: "hat.png"}
	u := testUploader(fake)

	files := []register.File{
		{Name: "coat.jpg", ContentType: "image/jpeg", Data: []byte("aaa")},
		{Name: "hat.png", ContentType: "image/png", Data: []byte("bbb")},
	}

	if _, err := u.Upload(context.Background(), files); err == nil {
		t.Fatal("expected error when one upload fails")
	}
}
