package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/raushankrgupta/virtual-closet/logger"
)

// RespondJSON sends a JSON response with the given status code and payload.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already sent; nothing left to tell the client.
		Log.Error("Error encoding JSON response", "error", err)
	}
}

// RespondError sends a JSON error response and records message in the
// request log when one is given.
func RespondError(w http.ResponseWriter, logMessage *strings.Builder, message string, status int) {
	if logMessage != nil {
		AddToLogMessage(logMessage, message)
	}
	RespondJSON(w, status, map[string]string{"error": message})
}

// PresignImageURL replaces a stored S3 object key with a presigned URL.
// data: and http(s) URLs are kept as is, as is a key that fails to sign.
func PresignImageURL(ctx context.Context, img string) string {
	if !MediaEnabled() || img == "" || isInlineOrRemote(img) {
		return img
	}
	if url, err := GetPresignedURL(ctx, img); err == nil {
		return url
	}
	return img
}

func isInlineOrRemote(img string) bool {
	return strings.HasPrefix(img, "data:") || strings.HasPrefix(img, "http://") || strings.HasPrefix(img, "https://")
}

// LatencyMiddleware logs the duration of each request.
func LatencyMiddleware(log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug("request served", "method", r.Method, "path", r.URL.Path, "latency", time.Since(start))
	})
}

// CORSMiddleware allows browser front ends on any origin.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
