package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"sectorchat/internal/chat"
	"sectorchat/internal/domain/dto"
	"sectorchat/internal/domain/models"
	"sectorchat/internal/sectors"
	"sectorchat/internal/service"
)

type mockChatService struct {
	conv   *chat.Conversation
	answer string
	err    error
}

func (m *mockChatService) Ask(_ context.Context, _ string, _ string) (*chat.Conversation, string, error) {
	return m.conv, m.answer, m.err
}

var _ chat.Service = (*mockChatService)(nil)

type mockVolumeService struct {
	top     *service.TopVolumeResult
	topErr  error
	daily   map[string]json.RawMessage
	dailyErr error

	gotWindow models.DateWindow
	gotTopN   int
	gotTicks  []string
}

func (m *mockVolumeService) TopByVolume(_ context.Context, window models.DateWindow, topN int) (*service.TopVolumeResult, error) {
	m.gotWindow = window
	m.gotTopN = topN
	return m.top, m.topErr
}

func (m *mockVolumeService) CompareDaily(_ context.Context, tickers []string, window models.DateWindow) (map[string]json.RawMessage, error) {
	m.gotTicks = tickers
	m.gotWindow = window
	return m.daily, m.dailyErr
}

var _ service.VolumeService = (*mockVolumeService)(nil)

type mockSectorsAPI struct {
	doc       json.RawMessage
	err       error
	gotTicker string
}

func (m *mockSectorsAPI) CompanyOverview(_ context.Context, ticker string) (json.RawMessage, error) {
	m.gotTicker = ticker
	return m.doc, m.err
}

func (m *mockSectorsAPI) DailyTransactions(_ context.Context, ticker string, _ models.DateWindow) (json.RawMessage, error) {
	m.gotTicker = ticker
	return m.doc, m.err
}

func (m *mockSectorsAPI) ListingPerformance(_ context.Context, ticker string) (json.RawMessage, error) {
	m.gotTicker = ticker
	return m.doc, m.err
}

func (m *mockSectorsAPI) MostTraded(_ context.Context, _ models.DateWindow, _ int) (models.DailyTransactions, error) {
	return nil, m.err
}

func (m *mockSectorsAPI) CompanySegments(_ context.Context, ticker string) (json.RawMessage, error) {
	m.gotTicker = ticker
	return m.doc, m.err
}

var _ sectors.API = (*mockSectorsAPI)(nil)

func setupRouterWithMocks(chatSvc chat.Service, volumeSvc service.VolumeService, api sectors.API) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(chatSvc, volumeSvc, api)
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.POST("/chat", h.Chat)
	v1.GET("/volume/top", h.TopVolume)
	v1.GET("/daily", h.DailyComparison)
	v1.GET("/company/:ticker/overview", h.CompanyOverview)
	v1.GET("/company/:ticker/ipo", h.ListingPerformance)
	v1.GET("/company/:ticker/segments", h.CompanySegments)
	return r
}

func TestChat_TableDriven(t *testing.T) {
	okConv := &chat.Conversation{ID: "conv-1"}
	okConv.Append(chat.RoleUser, "hi")
	okConv.Append(chat.RoleAssistant, "hello")

	cases := []struct {
		name   string
		svc    *mockChatService
		body   string
		status int
		assert func(t *testing.T, body []byte)
	}{
		{
			name:   "missing message",
			svc:    &mockChatService{},
			body:   `{}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "malformed json",
			svc:    &mockChatService{},
			body:   `{"message":`,
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown conversation",
			svc:    &mockChatService{err: chat.ErrConversationNotFound},
			body:   `{"conversation_id":"nope","message":"hi"}`,
			status: http.StatusNotFound,
		},
		{
			name:   "agent failure",
			svc:    &mockChatService{err: errors.New("model unavailable")},
			body:   `{"message":"hi"}`,
			status: http.StatusInternalServerError,
		},
		{
			name:   "success",
			svc:    &mockChatService{conv: okConv, answer: "hello"},
			body:   `{"message":"hi"}`,
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var resp dto.ChatResponse
				if err := json.Unmarshal(body, &resp); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if resp.ConversationID != "conv-1" || resp.Answer != "hello" || resp.Turns != 2 {
					t.Fatalf("unexpected response: %+v", resp)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMocks(tc.svc, &mockVolumeService{}, &mockSectorsAPI{})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d (body: %s)", w.Code, tc.status, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, w.Body.Bytes())
			}
		})
	}
}

func TestTopVolume_Success(t *testing.T) {
	start := time.Date(2024, 7, 8, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 7, 12, 0, 0, 0, 0, time.UTC)
	vs := &mockVolumeService{top: &service.TopVolumeResult{
		EffectiveStart: start,
		End:            end,
		Companies: models.RankedResult{
			{CompanyName: "Bank Alpha", AggregatedEntry: models.AggregatedEntry{Symbol: "ALFA", TotalVolume: 150}},
		},
		Table: "table",
	}}
	r := setupRouterWithMocks(&mockChatService{}, vs, &mockSectorsAPI{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/volume/top?start=2024-07-06&end=2024-07-12&top_n=3", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	if vs.gotTopN != 3 {
		t.Fatalf("top_n = %d, want 3", vs.gotTopN)
	}
	if got := vs.gotWindow.StartString(); got != "2024-07-06" {
		t.Fatalf("window start = %s", got)
	}

	var resp dto.TopVolumeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.EffectiveStart != "2024-07-08" {
		t.Fatalf("effective_start = %s, want 2024-07-08", resp.EffectiveStart)
	}
	if len(resp.Companies) != 1 || resp.Companies[0].Symbol != "ALFA" {
		t.Fatalf("unexpected companies: %+v", resp.Companies)
	}
}

func TestTopVolume_DefaultsTopN(t *testing.T) {
	vs := &mockVolumeService{top: &service.TopVolumeResult{}}
	r := setupRouterWithMocks(&mockChatService{}, vs, &mockSectorsAPI{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/volume/top", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if vs.gotTopN != 5 {
		t.Fatalf("default top_n = %d, want 5", vs.gotTopN)
	}
}

func TestTopVolume_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid argument", service.ErrInvalidArgument, http.StatusBadRequest},
		{"no trading data", &service.NoTradingDataError{Probes: 7}, http.StatusNotFound},
		{"upstream 500", &sectors.UpstreamError{Status: 500, URL: "u"}, http.StatusBadGateway},
		{"transport", &sectors.TransportError{URL: "u", Err: errors.New("refused")}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vs := &mockVolumeService{topErr: tc.err}
			r := setupRouterWithMocks(&mockChatService{}, vs, &mockSectorsAPI{})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/volume/top", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
		})
	}
}

func TestTopVolume_BadDates(t *testing.T) {
	r := setupRouterWithMocks(&mockChatService{}, &mockVolumeService{}, &mockSectorsAPI{})

	for _, q := range []string{"?start=07-08-2024", "?end=notadate", "?top_n=three"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/volume/top"+q, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("query %q: status = %d, want 400", q, w.Code)
		}
	}
}

func TestDailyComparison(t *testing.T) {
	vs := &mockVolumeService{daily: map[string]json.RawMessage{
		"BBRI": json.RawMessage(`{"x":1}`),
		"TLKM": json.RawMessage(`{"x":2}`),
	}}
	r := setupRouterWithMocks(&mockChatService{}, vs, &mockSectorsAPI{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/daily?tickers=bbri,%20tlkm&start=2024-07-08&end=2024-07-12", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	if len(vs.gotTicks) != 2 {
		t.Fatalf("tickers forwarded = %v", vs.gotTicks)
	}

	var resp dto.DailyComparisonResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Start != "2024-07-08" || resp.End != "2024-07-12" {
		t.Fatalf("window echoed wrong: %+v", resp)
	}
	if len(resp.Tickers) != 2 {
		t.Fatalf("tickers = %v", resp.Tickers)
	}
}

func TestDailyComparison_MissingTickers(t *testing.T) {
	r := setupRouterWithMocks(&mockChatService{}, &mockVolumeService{}, &mockSectorsAPI{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/daily?tickers=%20,%20", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCompanyPassthrough(t *testing.T) {
	doc := json.RawMessage(`{"company_name":"Bank Rakyat Indonesia"}`)

	for _, path := range []string{"overview", "ipo", "segments"} {
		t.Run(path, func(t *testing.T) {
			api := &mockSectorsAPI{doc: doc}
			r := setupRouterWithMocks(&mockChatService{}, &mockVolumeService{}, api)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/company/bbri/"+path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			if api.gotTicker != "BBRI" {
				t.Fatalf("ticker = %q, want uppercased BBRI", api.gotTicker)
			}
			if !bytes.Equal(w.Body.Bytes(), doc) {
				t.Fatalf("body altered: %s", w.Body.String())
			}
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Fatalf("content type = %q", ct)
			}
		})
	}
}

func TestCompanyPassthrough_UpstreamError(t *testing.T) {
	api := &mockSectorsAPI{err: &sectors.UpstreamError{Status: 404, URL: "u", Body: "not found"}}
	r := setupRouterWithMocks(&mockChatService{}, &mockVolumeService{}, api)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/company/XXXX/overview", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
}
