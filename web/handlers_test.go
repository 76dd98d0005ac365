package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nacallas/SkidmarkOS-sub000/controller"
	"github.com/nacallas/SkidmarkOS-sub000/controller/mockcontroller"
	"github.com/nacallas/SkidmarkOS-sub000/model"
	"github.com/nacallas/SkidmarkOS-sub000/platforms"
	"github.com/stretchr/testify/mock"
	"github.com/unrolled/render"
)

func runRequest(ctrl controller.C, method, target string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()

	router := getRouter(ctrl, render.New())
	router.ServeHTTP(rr, req)
	return rr
}

func TestListLeaguesHandler(t *testing.T) {
	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("ListLeagues", mock.Anything).Return([]model.LeagueConnection{
		{ID: "l1", ExternalID: "111", Platform: model.PlatformSleeper, Name: "The League"},
	}, nil)

	rr := runRequest(mockCtrl, http.MethodGet, "/leagues", "")
	if rr.Code != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", rr.Code)
	}

	var leagues []model.LeagueConnection
	if err := json.NewDecoder(rr.Body).Decode(&leagues); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(leagues) != 1 || leagues[0].Name != "The League" {
		t.Errorf("unexpected response: %v", leagues)
	}
	mockCtrl.AssertExpectations(t)
}

func TestAddLeagueHandler(t *testing.T) {
	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("AddLeague", mock.Anything, model.PlatformSleeper, "924039165950484480", "Dynasty").
		Return(&model.LeagueConnection{ID: "l1", ExternalID: "924039165950484480", Platform: model.PlatformSleeper, Name: "Dynasty"}, nil)

	body := `{"platform":"sleeper","external_id":"924039165950484480","name":"Dynasty"}`
	rr := runRequest(mockCtrl, http.MethodPost, "/leagues", body)
	if rr.Code != http.StatusCreated {
		t.Errorf("unexpected status code. Got: %d", rr.Code)
	}
	mockCtrl.AssertExpectations(t)
}

func TestAddLeagueHandler_badJSON(t *testing.T) {
	mockCtrl := &mockcontroller.C{}

	rr := runRequest(mockCtrl, http.MethodPost, "/leagues", "{not json")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unexpected status code. Got: %d", rr.Code)
	}
	mockCtrl.AssertNotCalled(t, "AddLeague")
}

func TestRemoveLeagueHandler_unknownLeague(t *testing.T) {
	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("RemoveLeague", mock.Anything, "nope").Return(controller.ErrUnknownLeague)

	rr := runRequest(mockCtrl, http.MethodDelete, "/leagues/nope", "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("unexpected status code. Got: %d", rr.Code)
	}
	mockCtrl.AssertExpectations(t)
}

func TestGetTeamsHandler(t *testing.T) {
	age := 90 * time.Minute
	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("GetTeams", mock.Anything, "l1", false).Return([]model.Team{
		{ID: "1", Name: "Gridiron Gurus", Wins: 7, Losses: 1, Rank: 1},
	}, nil)
	mockCtrl.On("GetSnapshotAge", mock.Anything, "l1").Return(&age, nil)
	mockCtrl.On("IsSnapshotStale", mock.Anything, "l1").Return(false, nil)

	rr := runRequest(mockCtrl, http.MethodGet, "/leagues/l1/teams", "")
	if rr.Code != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Gridiron Gurus") {
		t.Errorf("response body missing team name: %s", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "5400") {
		t.Errorf("response body missing snapshot age: %s", rr.Body.String())
	}
	mockCtrl.AssertExpectations(t)
}

func TestGetTeamsHandler_refreshParam(t *testing.T) {
	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("GetTeams", mock.Anything, "l1", true).Return([]model.Team{}, nil)
	mockCtrl.On("GetSnapshotAge", mock.Anything, "l1").Return(nil, nil)
	mockCtrl.On("IsSnapshotStale", mock.Anything, "l1").Return(false, nil)

	rr := runRequest(mockCtrl, http.MethodGet, "/leagues/l1/teams?refresh=1", "")
	if rr.Code != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", rr.Code)
	}
	mockCtrl.AssertExpectations(t)
}

func TestRefreshTeamsHandler_authRequired(t *testing.T) {
	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("RefreshTeams", mock.Anything, "l1").Return(nil, platforms.ErrAuthRequired)

	rr := runRequest(mockCtrl, http.MethodPost, "/leagues/l1/refresh", "")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("unexpected status code. Got: %d", rr.Code)
	}
	mockCtrl.AssertExpectations(t)
}

func TestRefreshTeamsHandler_providerOutage(t *testing.T) {
	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("RefreshTeams", mock.Anything, "l1").Return(nil, &platforms.ServerError{StatusCode: 503})

	rr := runRequest(mockCtrl, http.MethodPost, "/leagues/l1/refresh", "")
	if rr.Code != http.StatusBadGateway {
		t.Errorf("unexpected status code. Got: %d", rr.Code)
	}
	mockCtrl.AssertExpectations(t)
}

func TestGetMatchupsHandler(t *testing.T) {
	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("GetMatchups", mock.Anything, "l1", 4).Return([]model.WeeklyMatchup{
		{Week: 4, HomeTeamID: "1", AwayTeamID: "2", HomeScore: 112.5, AwayScore: 98.2},
	}, nil)

	rr := runRequest(mockCtrl, http.MethodGet, "/leagues/l1/matchups/4", "")
	if rr.Code != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", rr.Code)
	}
	mockCtrl.AssertExpectations(t)
}

func TestGetMatchupsHandler_nonNumericWeek(t *testing.T) {
	mockCtrl := &mockcontroller.C{}

	rr := runRequest(mockCtrl, http.MethodGet, "/leagues/l1/matchups/abc", "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("unexpected status code. Got: %d", rr.Code)
	}
	mockCtrl.AssertNotCalled(t, "GetMatchups")
}

func TestGetContextHandler_none(t *testing.T) {
	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("GetLeagueContext", mock.Anything, "l1").Return(nil, nil)

	rr := runRequest(mockCtrl, http.MethodGet, "/leagues/l1/context", "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("unexpected status code. Got: %d", rr.Code)
	}
	mockCtrl.AssertExpectations(t)
}

func TestSaveContextHandler(t *testing.T) {
	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("SaveLeagueContext", mock.Anything, mock.MatchedBy(func(lc *model.LeagueContext) bool {
		return lc.LeagueID == "l1" && lc.Punishment == "last place buys pizza"
	})).Return(nil)

	body := `{"punishment":"last place buys pizza"}`
	rr := runRequest(mockCtrl, http.MethodPut, "/leagues/l1/context", body)
	if rr.Code != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", rr.Code)
	}
	mockCtrl.AssertExpectations(t)
}

func TestGetRoastsHandler(t *testing.T) {
	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("GetWeeklyRoasts", mock.Anything, "l1", 6, false).Return(&model.WeeklyRoastCache{
		LeagueID: "l1",
		Week:     6,
		Roasts:   map[string]string{"1": "another week, another heartbreak"},
	}, nil)

	rr := runRequest(mockCtrl, http.MethodGet, "/leagues/l1/roasts/6", "")
	if rr.Code != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "another week, another heartbreak") {
		t.Errorf("response body missing roast text: %s", rr.Body.String())
	}
	mockCtrl.AssertExpectations(t)
}

func TestGetRoastsHandler_force(t *testing.T) {
	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("GetWeeklyRoasts", mock.Anything, "l1", 6, true).Return(&model.WeeklyRoastCache{LeagueID: "l1", Week: 6}, nil)

	rr := runRequest(mockCtrl, http.MethodGet, "/leagues/l1/roasts/6?force=1", "")
	if rr.Code != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", rr.Code)
	}
	mockCtrl.AssertExpectations(t)
}

func TestLastViewedHandlers(t *testing.T) {
	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("SetLastViewedLeague", mock.Anything, "l1").Return(nil)
	mockCtrl.On("GetLastViewedLeague", mock.Anything).Return("l1", nil)

	rr := runRequest(mockCtrl, http.MethodPut, "/last-viewed", `{"league_id":"l1"}`)
	if rr.Code != http.StatusNoContent {
		t.Errorf("unexpected status code on save. Got: %d", rr.Code)
	}

	rr = runRequest(mockCtrl, http.MethodGet, "/last-viewed", "")
	if rr.Code != http.StatusOK {
		t.Errorf("unexpected status code on load. Got: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"l1"`) {
		t.Errorf("response body missing league id: %s", rr.Body.String())
	}
	mockCtrl.AssertExpectations(t)
}
