package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foodtok/foodtok-backend/internal/models"
)

func newTestServer(uploader ObjectUploader) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, uploader)
}

func TestFeedReturnsSampleData(t *testing.T) {
	srv := newTestServer(nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var feed []models.FeedItem
	if err := json.Unmarshal(rec.Body.Bytes(), &feed); err != nil {
		t.Fatalf("invalid feed JSON: %v", err)
	}
	if len(feed) != 5 {
		t.Fatalf("feed has %d items, want 5", len(feed))
	}
	if feed[0].ID != "1" || feed[4].ID != "5" {
		t.Fatalf("feed order changed: first=%q last=%q", feed[0].ID, feed[4].ID)
	}
}

func TestRootWelcome(t *testing.T) {
	srv := newTestServer(nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Welcome to FoodTok API") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

type capturingUploader struct {
	objectName  string
	contentType string
	metadata    map[string]string
	content     []byte
}

func (u *capturingUploader) Upload(_ context.Context, objectName, contentType string, metadata map[string]string, content io.Reader) error {
	u.objectName = objectName
	u.contentType = contentType
	u.metadata = metadata
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	u.content = data
	return nil
}

func multipartUpload(t *testing.T, filename string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte("fake video bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("WriteField(%s): %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestUploadStoresObjectWithMetadata(t *testing.T) {
	uploader := &capturingUploader{}
	srv := newTestServer(uploader)

	body, contentType := multipartUpload(t, "dinner.mp4", map[string]string{
		"postId": "p42",
		"useAI":  "true",
	})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp uploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Filename != "dinner.mp4" || resp.Status != "Video uploaded successfully" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if uploader.objectName != "videos/dinner.mp4" {
		t.Fatalf("object name = %q, want videos/dinner.mp4", uploader.objectName)
	}
	if uploader.metadata["postId"] != "p42" || uploader.metadata["useAI"] != "true" {
		t.Fatalf("metadata = %v", uploader.metadata)
	}
	if string(uploader.content) != "fake video bytes" {
		t.Fatalf("stored content = %q", uploader.content)
	}
}

func TestUploadWithoutUploaderStillEchoes(t *testing.T) {
	srv := newTestServer(nil)

	body, contentType := multipartUpload(t, "snack.mp4", nil)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "snack.mp4") {
		t.Fatalf("response does not echo filename: %s", rec.Body.String())
	}
}

func TestUploadRequiresFile(t *testing.T) {
	srv := newTestServer(nil)

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(""))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
