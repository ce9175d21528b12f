package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"sectorchat/internal/domain/models"
	"sectorchat/internal/service"
)

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)

	vs := &mockVolumeService{top: &service.TopVolumeResult{
		EffectiveStart: time.Date(2024, 7, 8, 0, 0, 0, 0, time.UTC),
		End:            time.Date(2024, 7, 12, 0, 0, 0, 0, time.UTC),
		Companies: models.RankedResult{
			{CompanyName: "Bank Alpha", AggregatedEntry: models.AggregatedEntry{Symbol: "ALFA", TotalVolume: 150}},
		},
	}}
	r := NewRouter(NewHandler(&mockChatService{}, vs, &mockSectorsAPI{}))

	// Hit the volume route through the router created by NewRouter
	req := httptest.NewRequest(http.MethodGet, "/api/v1/volume/top?start=2024-07-08&end=2024-07-12", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", w.Code, w.Body.String())
	}

	// Ensure RequestID middleware injected header
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["effective_start"] != "2024-07-08" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestNewRouter_UnknownRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := NewRouter(NewHandler(&mockChatService{}, &mockVolumeService{}, &mockSectorsAPI{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestNewRouter_RequestContextHasDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rr := NewRouter(NewHandler(&mockChatService{}, &mockVolumeService{}, &mockSectorsAPI{}))

	// The timeout middleware must attach a deadline before handlers run.
	done := make(chan bool, 1)
	rr.GET("/deadline", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		done <- ok
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/deadline", nil)
	w := httptest.NewRecorder()
	rr.ServeHTTP(w, req)

	select {
	case ok := <-done:
		if !ok {
			t.Fatalf("expected request context to carry a deadline")
		}
	default:
		t.Fatalf("handler did not run")
	}
}
