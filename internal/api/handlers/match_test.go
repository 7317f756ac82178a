package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/ani/grid-game-engine/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchViewResponse struct {
	ID           string      `json:"id"`
	Status       string      `json:"status"`
	Board        [][]*string `json:"board"`
	NextPlayerID *string     `json:"nextPlayerId"`
	Players      []string    `json:"players"`
	WinnerID     *string     `json:"winnerId"`
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(data))
	require.NoError(t, err)
	return resp
}

func createUser(t *testing.T, ts *testutil.TestServer, name string) string {
	t.Helper()
	resp := postJSON(t, ts.APIURL("/users"), map[string]string{"name": name})
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created struct {
		UserID string `json:"userId"`
	}
	testutil.AssertJSONResponse(t, resp, &created)
	return created.UserID
}

func TestMatchEndpoints_FullGame(t *testing.T) {
	ts := testutil.NewTestServer(t)

	alice := createUser(t, ts, "alice")
	bob := createUser(t, ts, "bob")

	// Create
	resp := postJSON(t, ts.APIURL("/matches"), map[string]string{"creatorId": alice})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	var created struct {
		MatchID string `json:"matchId"`
	}
	testutil.AssertJSONResponse(t, resp, &created)
	resp.Body.Close()

	// Join
	resp = postJSON(t, ts.APIURL("/matches/"+created.MatchID+"/join"), map[string]string{"userId": bob})
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var joined matchViewResponse
	testutil.AssertJSONResponse(t, resp, &joined)
	resp.Body.Close()
	assert.Equal(t, "in_progress", joined.Status)
	require.NotNil(t, joined.NextPlayerID)
	assert.Equal(t, alice, *joined.NextPlayerID)

	// Play to an alice win on the top row.
	moves := []struct {
		user string
		row  int
		col  int
	}{
		{alice, 0, 0},
		{bob, 1, 0},
		{alice, 0, 1},
		{bob, 1, 1},
		{alice, 0, 2},
	}
	var view matchViewResponse
	for _, m := range moves {
		resp = postJSON(t, ts.APIURL("/matches/"+created.MatchID+"/move"), map[string]interface{}{
			"userId": m.user,
			"row":    m.row,
			"col":    m.col,
		})
		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertJSONResponse(t, resp, &view)
		resp.Body.Close()
	}

	assert.Equal(t, "finished", view.Status)
	require.NotNil(t, view.WinnerID)
	assert.Equal(t, alice, *view.WinnerID)

	// Get reflects the final state.
	getResp, err := http.Get(ts.APIURL("/matches/" + created.MatchID))
	require.NoError(t, err)
	defer getResp.Body.Close()
	testutil.AssertStatusCode(t, getResp, http.StatusOK)
	var fetched matchViewResponse
	testutil.AssertJSONResponse(t, getResp, &fetched)
	require.NotNil(t, fetched.Board[0][0])
	assert.Equal(t, alice, *fetched.Board[0][0])

	// Stats reflect the committed log.
	statsResp, err := http.Get(ts.APIURL(fmt.Sprintf("/users/%s/stats", alice)))
	require.NoError(t, err)
	defer statsResp.Body.Close()
	testutil.AssertStatusCode(t, statsResp, http.StatusOK)
	var stats struct {
		Games      int      `json:"games"`
		Wins       int      `json:"wins"`
		Efficiency *float64 `json:"efficiency"`
	}
	testutil.AssertJSONResponse(t, statsResp, &stats)
	assert.Equal(t, 1, stats.Games)
	assert.Equal(t, 1, stats.Wins)
	require.NotNil(t, stats.Efficiency)
	assert.InDelta(t, 3.0, *stats.Efficiency, 1e-9)
}

func TestMatchEndpoints_ErrorMapping(t *testing.T) {
	ts := testutil.NewTestServer(t)

	alice := createUser(t, ts, "alice")
	bob := createUser(t, ts, "bob")

	resp := postJSON(t, ts.APIURL("/matches"), map[string]string{"creatorId": alice})
	var created struct {
		MatchID string `json:"matchId"`
	}
	testutil.AssertJSONResponse(t, resp, &created)
	resp.Body.Close()

	t.Run("unknown match is 404", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/matches/"+uuid.New().String()+"/join"), map[string]string{"userId": bob})
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "match not found")
	})

	t.Run("move before start is 400", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/matches/"+created.MatchID+"/move"), map[string]interface{}{
			"userId": alice, "row": 0, "col": 0,
		})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("wrong turn is 403", func(t *testing.T) {
		joinResp := postJSON(t, ts.APIURL("/matches/"+created.MatchID+"/join"), map[string]string{"userId": bob})
		joinResp.Body.Close()

		resp := postJSON(t, ts.APIURL("/matches/"+created.MatchID+"/move"), map[string]interface{}{
			"userId": bob, "row": 0, "col": 0,
		})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	})

	t.Run("occupied cell is 409", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/matches/"+created.MatchID+"/move"), map[string]interface{}{
			"userId": alice, "row": 0, "col": 0,
		})
		resp.Body.Close()

		resp = postJSON(t, ts.APIURL("/matches/"+created.MatchID+"/move"), map[string]interface{}{
			"userId": bob, "row": 0, "col": 0,
		})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusConflict)
	})
}

func TestLeaderboardEndpoint_UnsupportedMetric(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Get(ts.APIURL("/leaderboard?metric=streak"))
	require.NoError(t, err)
	defer resp.Body.Close()

	// Sentinel response, deliberately not an error status.
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var sentinel string
	testutil.AssertJSONResponse(t, resp, &sentinel)
	assert.Equal(t, "unsupported metric", sentinel)
}
