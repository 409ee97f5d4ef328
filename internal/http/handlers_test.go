package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/mborch/scorekeeper/internal/config"
	"github.com/mborch/scorekeeper/internal/kv"
	"github.com/mborch/scorekeeper/internal/metrics"
	"github.com/mborch/scorekeeper/internal/scoring"
	"github.com/mborch/scorekeeper/internal/tournament"
	"github.com/mborch/scorekeeper/internal/tournament/local"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer initializes a new server with a local in-memory adapter.
func setupTestServer(t *testing.T, adapter tournament.Adapter) *Server {
	t.Helper()

	if adapter == nil {
		adapter = local.New(kv.NewMemory())
	}
	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	session := tournament.NewSession(tournament.Local(), adapter, metricsSvc)
	return NewServer(session, metricsSvc, metricsHandler, config.Config{})
}

func doGet(t *testing.T, server *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheckHandler(t *testing.T) {
	server := setupTestServer(t, nil)
	rec := doGet(t, server, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK!", rec.Body.String())
}

func TestAddAndListTeams(t *testing.T) {
	server := setupTestServer(t, nil)

	rec := doGet(t, server, "/teams/add?name="+url.QueryEscape("Alpha Squad"))
	require.Equal(t, http.StatusOK, rec.Code)

	var team scoring.Team
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &team))
	assert.NotEmpty(t, team.ID)
	assert.Equal(t, "Alpha Squad", team.Name)

	rec = doGet(t, server, "/teams")
	require.Equal(t, http.StatusOK, rec.Code)

	var listing struct {
		Mode       string         `json:"mode"`
		MatchCount int            `json:"match_count"`
		Teams      []scoring.Team `json:"teams"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Equal(t, "local", listing.Mode)
	assert.Equal(t, 1, listing.MatchCount)
	require.Len(t, listing.Teams, 1)
}

func TestAddTeamRejectsEmptyName(t *testing.T) {
	server := setupTestServer(t, nil)
	rec := doGet(t, server, "/teams/add")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateScoreAndStandings(t *testing.T) {
	server := setupTestServer(t, nil)

	rec := doGet(t, server, "/teams/add?name=Alpha")
	require.Equal(t, http.StatusOK, rec.Code)
	var alpha scoring.Team
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alpha))

	require.Equal(t, http.StatusOK, doGet(t, server, "/matches/add").Code)

	for _, edit := range []string{
		fmt.Sprintf("/score?teamID=%s&match=0&field=kills&value=4", alpha.ID),
		fmt.Sprintf("/score?teamID=%s&match=0&field=placement&value=2", alpha.ID),
		fmt.Sprintf("/score?teamID=%s&match=1&field=kills&value=2", alpha.ID),
		fmt.Sprintf("/score?teamID=%s&match=1&field=placement&value=1", alpha.ID),
	} {
		require.Equal(t, http.StatusOK, doGet(t, server, edit).Code, edit)
	}

	rec = doGet(t, server, "/standings?preset=freefire")
	require.Equal(t, http.StatusOK, rec.Code)

	var standings []scoring.ComputedStanding
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &standings))
	require.Len(t, standings, 1)
	assert.Equal(t, 27, standings[0].TotalPoints)
	assert.Equal(t, 6, standings[0].TotalKills)
	assert.Equal(t, 1, standings[0].Rank)
}

func TestStandingsManualRules(t *testing.T) {
	server := setupTestServer(t, nil)

	rec := doGet(t, server, "/teams/add?name=Alpha")
	require.Equal(t, http.StatusOK, rec.Code)
	var alpha scoring.Team
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alpha))

	require.Equal(t, http.StatusOK,
		doGet(t, server, fmt.Sprintf("/score?teamID=%s&match=0&field=kills&value=3", alpha.ID)).Code)
	require.Equal(t, http.StatusOK,
		doGet(t, server, fmt.Sprintf("/score?teamID=%s&match=0&field=placement&value=1", alpha.ID)).Code)
	require.Equal(t, http.StatusOK,
		doGet(t, server, fmt.Sprintf("/score?teamID=%s&match=0&field=bonus&value=5", alpha.ID)).Code)

	// Negative kill_points is coerced to 0, so only placement and bonus count.
	rec = doGet(t, server, "/standings?kill_points=-1&placement_points=12,9,8")
	require.Equal(t, http.StatusOK, rec.Code)

	var standings []scoring.ComputedStanding
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &standings))
	require.Len(t, standings, 1)
	assert.Equal(t, 17, standings[0].TotalPoints)
}

func TestStandingsUnknownPreset(t *testing.T) {
	server := setupTestServer(t, nil)
	rec := doGet(t, server, "/standings?preset=quidditch")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScoreValidationErrors(t *testing.T) {
	server := setupTestServer(t, nil)

	rec := doGet(t, server, "/teams/add?name=Alpha")
	require.Equal(t, http.StatusOK, rec.Code)
	var alpha scoring.Team
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alpha))

	tests := []struct {
		name string
		path string
	}{
		{name: "bad field", path: fmt.Sprintf("/score?teamID=%s&match=0&field=wins&value=1", alpha.ID)},
		{name: "bad match index", path: fmt.Sprintf("/score?teamID=%s&match=9&field=kills&value=1", alpha.ID)},
		{name: "unknown team", path: "/score?teamID=ghost&match=0&field=kills&value=1"},
		{name: "placement out of range", path: fmt.Sprintf("/score?teamID=%s&match=0&field=placement&value=99", alpha.ID)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, doGet(t, server, tt.path).Code)
		})
	}
}

func TestRemoveMatchGuard(t *testing.T) {
	server := setupTestServer(t, nil)
	rec := doGet(t, server, "/matches/remove")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWriteFailureReportsStaleView(t *testing.T) {
	mock := tournament.NewMock()
	mock.SetMatchCountFunc = func(int) error { return errors.New("network down") }
	server := setupTestServer(t, mock)

	rec := doGet(t, server, "/matches/add")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body struct {
		ViewStale bool   `json:"view_stale"`
		Hint      string `json:"hint"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.ViewStale)
	assert.Contains(t, body.Hint, "/reload")
}

func TestClearAndReload(t *testing.T) {
	store := kv.NewMemory()
	server := setupTestServer(t, local.New(store))

	require.Equal(t, http.StatusOK, doGet(t, server, "/teams/add?name=Alpha").Code)
	require.Equal(t, http.StatusOK, doGet(t, server, "/clear").Code)

	rec := doGet(t, server, "/reload")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		MatchCount int            `json:"match_count"`
		Teams      []scoring.Team `json:"teams"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Teams)
	assert.Equal(t, 1, body.MatchCount)
}

func TestMetricsEndpoint(t *testing.T) {
	server := setupTestServer(t, nil)
	require.Equal(t, http.StatusOK, doGet(t, server, "/teams/add?name=Alpha").Code)

	rec := doGet(t, server, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "scorekeeper_mutations_applied_total")
}
