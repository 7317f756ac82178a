package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type MatchView struct {
	ID           string      `json:"id"`
	Status       string      `json:"status"`
	Board        [][]*string `json:"board"`
	NextPlayerID *string     `json:"nextPlayerId"`
	Players      []string    `json:"players"`
	WinnerID     *string     `json:"winnerId"`
}

type LeaderboardEntry struct {
	UserID string  `json:"userId"`
	Value  float64 `json:"value"`
	Wins   int     `json:"wins"`
	Games  int     `json:"games"`
}

// apiError carries the status code so callers can decide whether to retry.
type apiError struct {
	Status int
	Body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Body)
}

// Retryable reports whether the failure is the retryable kind (lost turn
// race or stale cell); the simulator re-fetches and tries again.
func (e *apiError) Retryable() bool {
	return e.Status == http.StatusConflict
}

func (c *APIClient) CreateUser(name string) (string, error) {
	var resp struct {
		UserID string `json:"userId"`
	}
	err := c.post("/users", map[string]string{"name": name}, &resp)
	return resp.UserID, err
}

func (c *APIClient) CreateMatch(creatorID string) (string, error) {
	var resp struct {
		MatchID string `json:"matchId"`
	}
	err := c.post("/matches", map[string]string{"creatorId": creatorID}, &resp)
	return resp.MatchID, err
}

func (c *APIClient) JoinMatch(matchID, userID string) (*MatchView, error) {
	var view MatchView
	err := c.post("/matches/"+matchID+"/join", map[string]string{"userId": userID}, &view)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *APIClient) GetMatch(matchID string) (*MatchView, error) {
	var view MatchView
	if err := c.get("/matches/"+matchID, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *APIClient) SubmitMove(matchID, userID string, row, col int) (*MatchView, error) {
	var view MatchView
	err := c.post("/matches/"+matchID+"/move", map[string]interface{}{
		"userId": userID,
		"row":    row,
		"col":    col,
	}, &view)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *APIClient) GetLeaderboard(metric string) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	if err := c.get("/leaderboard?metric="+metric, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *APIClient) post(path string, reqBody interface{}, out interface{}) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func (c *APIClient) get(path string, out interface{}) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func decode(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return &apiError{Status: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
