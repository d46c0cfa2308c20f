package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appConfig "github.com/raushankrgupta/virtual-closet/config"
)

func TestAddToLogMessage(t *testing.T) {
	var b strings.Builder
	AddToLogMessage(&b, "[Items API]")
	AddToLogMessage(&b, "created")
	if got, want := b.String(), "[Items API];\ncreated;\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRespondError(t *testing.T) {
	var b strings.Builder
	rec := httptest.NewRecorder()
	RespondError(rec, &b, "name is required", http.StatusBadRequest)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != "name is required" {
		t.Fatalf("body = %v", body)
	}
	if !strings.Contains(b.String(), "name is required") {
		t.Fatal("message not logged")
	}
}

func TestMediaPassThroughWithoutBucket(t *testing.T) {
	prev := appConfig.AWSBucketName
	appConfig.AWSBucketName = ""
	defer func() { appConfig.AWSBucketName = prev }()

	dataURL := "data:image/png;base64,iVBORw0KGgo="
	got, err := OffloadImage(context.Background(), dataURL, "items")
	if err != nil || got != dataURL {
		t.Fatalf("OffloadImage = %q, %v", got, err)
	}
	for _, img := range []string{dataURL, "https://cdn.example.com/a.jpg", "items/123.png", ""} {
		if got := PresignImageURL(context.Background(), img); got != img {
			t.Errorf("PresignImageURL(%q) = %q", img, got)
		}
	}
}

func TestRemoteImagesNeverOffloaded(t *testing.T) {
	prev := appConfig.AWSBucketName
	appConfig.AWSBucketName = "closet-media"
	defer func() { appConfig.AWSBucketName = prev }()

	for _, img := range []string{"https://cdn.example.com/a.jpg", "items/123.png"} {
		got, err := OffloadImage(context.Background(), img, "items")
		if err != nil || got != img {
			t.Errorf("OffloadImage(%q) = %q, %v", img, got, err)
		}
	}
	if got := PresignImageURL(context.Background(), "http://cdn.example.com/b.jpg"); got != "http://cdn.example.com/b.jpg" {
		t.Errorf("remote url rewritten: %q", got)
	}
	if _, err := OffloadImage(context.Background(), "data:image/png;base64", "items"); err == nil {
		t.Error("malformed data URL accepted")
	}
}

func TestCORSPreflight(t *testing.T) {
	called := false
	h := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/items", nil))
	if rec.Code != http.StatusOK || called {
		t.Fatalf("preflight reached handler or wrong status %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("missing CORS header")
	}
}
