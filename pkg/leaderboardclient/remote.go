package leaderboardclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	leaderboarddomain "github.com/facematch/leaderboard/app/leaderboard/domain"
)

// HTTPRemote talks to the ranking service's HTTP endpoint.
type HTTPRemote struct {
	baseURL string
	client  *http.Client
}

var _ Remote = (*HTTPRemote)(nil)

// NewHTTPRemote creates a remote for the service at baseURL. A zero timeout
// means requests wait on the transport's defaults.
func NewHTTPRemote(baseURL string, timeout time.Duration) *HTTPRemote {
	return &HTTPRemote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchScores retrieves the current top list for a mode.
func (r *HTTPRemote) FetchScores(ctx context.Context, mode leaderboarddomain.Mode) (leaderboarddomain.RankedList, error) {
	endpoint := fmt.Sprintf("%s/scores?mode=%s", r.baseURL, url.QueryEscape(string(mode)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	var list leaderboarddomain.RankedList
	if err := r.do(req, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SubmitScore sends a submission and returns the server's re-ranked list.
func (r *HTTPRemote) SubmitScore(ctx context.Context, mode leaderboarddomain.Mode, name string, score int) (leaderboarddomain.RankedList, error) {
	body, err := json.Marshal(map[string]interface{}{
		"mode":  mode,
		"name":  name,
		"score": score,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/scores", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var list leaderboarddomain.RankedList
	if err := r.do(req, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ClearScores asks the service to empty a mode's stored list.
func (r *HTTPRemote) ClearScores(ctx context.Context, mode leaderboarddomain.Mode) error {
	body, err := json.Marshal(map[string]interface{}{"mode": mode})
	if err != nil {
		return fmt.Errorf("failed to encode clear request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/scores/clear", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return r.do(req, nil)
}

func (r *HTTPRemote) do(req *http.Request, out interface{}) error {
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("remote returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
