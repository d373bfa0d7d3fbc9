package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/onnise/beyond-ads-scraper/internal/entity"
)

func TestWebhook_NotifyRun(t *testing.T) {
	runID := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	var got RunEvent
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Request-ID") != runID.String() {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	hook, err := NewWebhook(server.Client(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	run := entity.Run{ID: runID, Status: entity.RunCompleted, Found: 4}
	if err := hook.NotifyRun(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Event != "run.completed" || got.Run.Found != 4 {
		t.Fatalf("unexpected event: %+v", got)
	}
}

func TestWebhook_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "downstream unavailable"})
	}))
	defer server.Close()

	hook, err := NewWebhook(server.Client(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = hook.PostJSON(context.Background(), map[string]string{"foo": "bar"}, "")
	if err == nil || !strings.Contains(err.Error(), "downstream unavailable") {
		t.Fatalf("expected downstream error, got %v", err)
	}
}

func TestNewWebhook_EmptyURL(t *testing.T) {
	if _, err := NewWebhook(http.DefaultClient, "  "); err == nil {
		t.Fatalf("expected error for empty url")
	}
}
