package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"image-service/internal/classifier"
	"image-service/internal/services"
)

type fakePipeline struct {
	calls   int
	lastReq services.UploadRequest
	result  *services.UploadResult
	err     error

	batchResults []services.BatchItemResult
	batchErr     error
}

func (f *fakePipeline) Upload(ctx context.Context, req services.UploadRequest) (*services.UploadResult, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakePipeline) UploadArchive(ctx context.Context, archivePath string, annotation, location string, createdAt time.Time) ([]services.BatchItemResult, error) {
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	return f.batchResults, nil
}

type fakeRecorder struct {
	outcomes []string
}

func (f *fakeRecorder) RecordUpload(outcome string) {
	f.outcomes = append(f.outcomes, outcome)
}

func newUploadApp(pipeline *fakePipeline) (*fiber.App, *fakeRecorder) {
	app := fiber.New()
	recorder := &fakeRecorder{}
	h := NewUploadHandler(pipeline, recorder)
	app.Post("/upload", h.UploadImage)
	app.Post("/upload/batch", h.UploadBatch)
	return app, recorder
}

func multipartBody(t *testing.T, field, filename string, content []byte, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if filename != "" {
		part, err := writer.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for k, v := range extra {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode body %q: %v", data, err)
	}
	return out
}

func TestUploadImageNoFile(t *testing.T) {
	pipeline := &fakePipeline{}
	app, recorder := newUploadApp(pipeline)

	body, contentType := multipartBody(t, "image", "", nil, map[string]string{"annotation": "x"})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	out := decodeBody(t, resp)
	if out["success"] != false || out["error"] != NoFileError {
		t.Errorf("body = %v", out)
	}
	if pipeline.calls != 0 {
		t.Errorf("pipeline invoked %d times for a rejected request", pipeline.calls)
	}
	if len(recorder.outcomes) != 1 || recorder.outcomes[0] != "rejected" {
		t.Errorf("recorded outcomes = %v, want [rejected]", recorder.outcomes)
	}
}

func TestUploadImageSuccess(t *testing.T) {
	pipeline := &fakePipeline{result: &services.UploadResult{
		ImageURL: "/uploads/1756-bin.jpg",
		Label:    "pleine",
		Features: map[string]any{"width": 200.0},
	}}
	app, _ := newUploadApp(pipeline)

	body, contentType := multipartBody(t, "image", "bin.jpg", []byte("fakebytes"), map[string]string{
		"annotation": "overflowing",
		"location":   "Lyon",
		"date":       "2026-08-01T12:00:00Z",
	})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want 201", resp.StatusCode)
	}
	out := decodeBody(t, resp)
	if out["success"] != true || out["label"] != "pleine" || out["imageUrl"] != "/uploads/1756-bin.jpg" {
		t.Errorf("body = %v", out)
	}
	if _, ok := out["features"]; !ok {
		t.Error("features missing from response")
	}

	if pipeline.lastReq.Filename != "bin.jpg" || string(pipeline.lastReq.Data) != "fakebytes" {
		t.Errorf("pipeline request = %+v", pipeline.lastReq)
	}
	if pipeline.lastReq.Annotation != "overflowing" || pipeline.lastReq.Location != "Lyon" {
		t.Errorf("form fields not forwarded: %+v", pipeline.lastReq)
	}
	want := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if !pipeline.lastReq.CreatedAt.Equal(want) {
		t.Errorf("created_at = %v, want %v", pipeline.lastReq.CreatedAt, want)
	}
}

func TestUploadImageUnparseableDateDefaultsToNow(t *testing.T) {
	pipeline := &fakePipeline{result: &services.UploadResult{Label: "vide"}}
	app, _ := newUploadApp(pipeline)

	body, contentType := multipartBody(t, "image", "bin.jpg", []byte("x"), map[string]string{
		"date": "yesterday-ish",
	})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	before := time.Now()
	if _, err := app.Test(req); err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	got := pipeline.lastReq.CreatedAt
	if got.Before(before) || got.After(time.Now()) {
		t.Errorf("created_at = %v, want request time for unparseable date", got)
	}
}

func TestUploadImageClassificationFailure(t *testing.T) {
	pipeline := &fakePipeline{err: &classifier.Error{Kind: classifier.ErrKindUpstream, Status: 500}}
	app, _ := newUploadApp(pipeline)

	body, contentType := multipartBody(t, "image", "bin.jpg", []byte("x"), nil)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
	out := decodeBody(t, resp)
	if out["success"] != false {
		t.Errorf("body = %v", out)
	}
}

func TestUploadImageInternalFailure(t *testing.T) {
	pipeline := &fakePipeline{err: errors.New("blob store write failed")}
	app, _ := newUploadApp(pipeline)

	body, contentType := multipartBody(t, "image", "bin.jpg", []byte("x"), nil)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}

func TestUploadBatchRejectsNonZip(t *testing.T) {
	pipeline := &fakePipeline{}
	app, _ := newUploadApp(pipeline)

	body, contentType := multipartBody(t, "archive", "images.tar", []byte("x"), nil)
	req := httptest.NewRequest(http.MethodPost, "/upload/batch", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUploadBatchSuccess(t *testing.T) {
	pipeline := &fakePipeline{batchResults: []services.BatchItemResult{
		{Filename: "a.jpg", Success: true, Label: "pleine"},
		{Filename: "b.jpg", Error: "classifier responded 500"},
	}}
	app, _ := newUploadApp(pipeline)

	body, contentType := multipartBody(t, "archive", "images.zip", []byte("PK"), nil)
	req := httptest.NewRequest(http.MethodPost, "/upload/batch", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	out := decodeBody(t, resp)
	results, ok := out["results"].([]any)
	if !ok || len(results) != 2 {
		t.Errorf("results = %v", out["results"])
	}
}
