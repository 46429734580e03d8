package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/ErlanBelekov/projecthub/internal/transport/http/handler"
	"github.com/gin-gonic/gin"
)

type fakeActivityUsecase struct {
	recent func(ctx context.Context) ([]*domain.Activity, error)
}

func (f *fakeActivityUsecase) Recent(ctx context.Context) ([]*domain.Activity, error) {
	return f.recent(ctx)
}

func newActivityEngine(uc *fakeActivityUsecase) *gin.Engine {
	h := handler.NewActivityHandler(uc, slog.Default())
	r := gin.New()
	r.GET("/activity", h.List)
	return r
}

func TestListActivity_CamelCaseFeed(t *testing.T) {
	at := time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC)
	uc := &fakeActivityUsecase{recent: func(context.Context) ([]*domain.Activity, error) {
		return []*domain.Activity{{
			ID: "a-1", Type: domain.ActivityProject, Action: domain.ActionCreated,
			TargetType: "project", TargetName: "Apollo", ActorID: "user-1", ActorName: "Ada", Timestamp: at,
		}}, nil
	}}

	w := doJSON(newActivityEngine(uc), http.MethodGet, "/activity", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var body []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != 1 {
		t.Fatalf("entries = %d", len(body))
	}
	got := body[0]
	if got["targetName"] != "Apollo" || got["actorName"] != "Ada" || got["action"] != "created" || got["timestamp"] != "2025-04-10T09:00:00Z" {
		t.Errorf("entry = %v", got)
	}
}

func TestListActivity_EmptyIsArray(t *testing.T) {
	uc := &fakeActivityUsecase{recent: func(context.Context) ([]*domain.Activity, error) { return nil, nil }}

	w := doJSON(newActivityEngine(uc), http.MethodGet, "/activity", "")
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Errorf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestListActivity_Error_Returns500(t *testing.T) {
	uc := &fakeActivityUsecase{recent: func(context.Context) ([]*domain.Activity, error) {
		return nil, errors.New("db down")
	}}

	w := doJSON(newActivityEngine(uc), http.MethodGet, "/activity", "")
	assertMessage(t, w, http.StatusInternalServerError, "Internal server error")
}
