package scoreboardhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	leaderboarddomain "github.com/facematch/leaderboard/app/leaderboard/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, svc *FakeService, cfg RouterConfig) *httptest.Server {
	t.Helper()
	h := NewScoreboardHandler(svc, testLogger())
	srv := httptest.NewServer(SetupRoutes(h, cfg))
	t.Cleanup(srv.Close)
	return srv
}

func TestScoreboardHandler_GetScores(t *testing.T) {
	list := leaderboarddomain.RankedList{
		{Name: "Ada", Score: 12, Date: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
	}

	tests := []struct {
		name       string
		url        string
		svc        *FakeService
		wantStatus int
		wantMode   string
		wantBody   leaderboarddomain.RankedList
	}{
		{
			name: "known mode",
			url:  "/scores?mode=hard",
			svc: func() *FakeService {
				f := NewFakeService()
				f.GetScoresFunc = func(ctx context.Context, mode leaderboarddomain.Mode) (leaderboarddomain.RankedList, error) {
					return list, nil
				}
				return f
			}(),
			wantStatus: http.StatusOK,
			wantMode:   "GetScores:hard",
			wantBody:   list,
		},
		{
			name:       "unknown mode defaults to easy",
			url:        "/scores?mode=bogus",
			svc:        NewFakeService(),
			wantStatus: http.StatusOK,
			wantMode:   "GetScores:easy",
			wantBody:   leaderboarddomain.RankedList{},
		},
		{
			name:       "missing mode defaults to easy",
			url:        "/scores",
			svc:        NewFakeService(),
			wantStatus: http.StatusOK,
			wantMode:   "GetScores:easy",
			wantBody:   leaderboarddomain.RankedList{},
		},
		{
			name: "service failure returns 500",
			url:  "/scores?mode=easy",
			svc: func() *FakeService {
				f := NewFakeService()
				f.GetScoresFunc = func(ctx context.Context, mode leaderboarddomain.Mode) (leaderboarddomain.RankedList, error) {
					return nil, errors.New("store down")
				}
				return f
			}(),
			wantStatus: http.StatusInternalServerError,
			wantMode:   "GetScores:easy",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.svc, RouterConfig{})

			resp, err := http.Get(srv.URL + tt.url)
			if err != nil {
				t.Fatalf("GET failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if len(tt.svc.trace) != 1 || tt.svc.trace[0] != tt.wantMode {
				t.Errorf("service trace = %v, want [%s]", tt.svc.trace, tt.wantMode)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var got leaderboarddomain.RankedList
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if diff := cmp.Diff(tt.wantBody, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScoreboardHandler_SubmitScore_validation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCalls  int
	}{
		{name: "valid", body: `{"mode":"easy","name":"Ada","score":10}`, wantStatus: http.StatusOK, wantCalls: 1},
		{name: "zero score is valid", body: `{"mode":"easy","name":"Ada","score":0}`, wantStatus: http.StatusOK, wantCalls: 1},
		{name: "missing mode", body: `{"name":"Ada","score":10}`, wantStatus: http.StatusBadRequest},
		{name: "unknown mode", body: `{"mode":"nightmare","name":"Ada","score":10}`, wantStatus: http.StatusBadRequest},
		{name: "missing name", body: `{"mode":"easy","score":10}`, wantStatus: http.StatusBadRequest},
		{name: "missing score", body: `{"mode":"easy","name":"Ada"}`, wantStatus: http.StatusBadRequest},
		{name: "non-numeric score", body: `{"mode":"easy","name":"Ada","score":"ten"}`, wantStatus: http.StatusBadRequest},
		{name: "malformed json", body: `{`, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFakeService()
			srv := newTestServer(t, svc, RouterConfig{})

			resp, err := http.Post(srv.URL+"/scores", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if len(svc.trace) != tt.wantCalls {
				t.Errorf("service called %d times, want %d (no mutation on rejection)", len(svc.trace), tt.wantCalls)
			}
		})
	}
}

func TestScoreboardHandler_SubmitScore_returnsUpdatedList(t *testing.T) {
	updated := leaderboarddomain.RankedList{
		{Name: "Ada", Score: 10, Date: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
	}
	svc := NewFakeService()
	svc.SubmitScoreFunc = func(ctx context.Context, mode leaderboarddomain.Mode, name string, score int) (leaderboarddomain.RankedList, error) {
		return updated, nil
	}
	srv := newTestServer(t, svc, RouterConfig{})

	resp, err := http.Post(srv.URL+"/scores", "application/json", strings.NewReader(`{"mode":"hard","name":"Ada","score":10}`))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()

	var got leaderboarddomain.RankedList
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if diff := cmp.Diff(updated, got); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestScoreboardHandler_ClearScores(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCalls  int
	}{
		{name: "valid", body: `{"mode":"easy"}`, wantStatus: http.StatusOK, wantCalls: 1},
		{name: "missing mode", body: `{}`, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFakeService()
			srv := newTestServer(t, svc, RouterConfig{})

			resp, err := http.Post(srv.URL+"/scores/clear", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if len(svc.trace) != tt.wantCalls {
				t.Errorf("service called %d times, want %d", len(svc.trace), tt.wantCalls)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	svc := NewFakeService()
	srv := newTestServer(t, svc, RouterConfig{SubmitRatePerSecond: 1, SubmitBurst: 2})

	statuses := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		resp, err := http.Post(srv.URL+"/scores", "application/json", strings.NewReader(`{"mode":"easy","name":"Ada","score":1}`))
		if err != nil {
			t.Fatalf("POST #%d failed: %v", i, err)
		}
		resp.Body.Close()
		statuses = append(statuses, resp.StatusCode)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Fatalf("first requests within burst should pass, got %v", statuses)
	}
	if statuses[3] != http.StatusTooManyRequests {
		t.Errorf("expected 429 once burst exhausted, got %v", statuses)
	}

	// GET is never rate limited.
	resp, err := http.Get(srv.URL + "/scores")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET status = %d, want 200", resp.StatusCode)
	}
}
