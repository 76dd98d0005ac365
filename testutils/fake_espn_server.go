package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
)

// League ids the fake ESPN server responds to. ESPNFlakyLeagueID fails with a
// 500 on its first request and succeeds afterwards, for exercising retries.
const (
	ESPNLeagueID      = "111222"
	ESPNFlakyLeagueID = "444555"
)

// The cookie pair the fake server accepts. Anything else gets a 401.
const (
	GoodS2   = "AEB-test-s2-value"
	GoodSWID = "{ABCD-1234-TEST}"
)

//go:embed espndata
var espndata embed.FS

type FakeESPNServer struct {
	s *httptest.Server

	flakyRequests atomic.Int32
}

func NewFakeESPNServer() *FakeESPNServer {
	f := &FakeESPNServer{}

	r := chi.NewRouter()
	r.Get("/apis/v3/games/ffl/seasons/{year}/segments/0/leagues/{leagueID}", f.leagueHandler)

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeESPNServer) Close() {
	f.s.Close()
}

func (f *FakeESPNServer) URL() string {
	return f.s.URL
}

func (f *FakeESPNServer) leagueHandler(w http.ResponseWriter, r *http.Request) {
	if !validCookies(r) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"messages": ["You are not authorized to view this League."]}`))
		return
	}

	leagueID := chi.URLParam(r, "leagueID")
	switch leagueID {
	case ESPNLeagueID:
		// fall through
	case ESPNFlakyLeagueID:
		if f.flakyRequests.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"messages": ["internal error"]}`))
			return
		}
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"messages": ["League not found."]}`))
		return
	}

	serveESPNFile(w, fixtureForViews(r))
}

// fixtureForViews picks the response file based on the requested views, the
// same way ESPN shapes its responses.
func fixtureForViews(r *http.Request) string {
	views := r.URL.Query()["view"]
	has := func(v string) bool {
		for _, view := range views {
			if view == v {
				return true
			}
		}
		return false
	}

	switch {
	case has("mRoster"):
		return "league.json"
	case has("mMatchup") && has("mTeam"):
		return "bracket.json"
	case has("mMatchup"):
		return "matchups.json"
	default:
		return "settings.json"
	}
}

func validCookies(r *http.Request) bool {
	s2, err := r.Cookie("espn_s2")
	if err != nil || s2.Value != GoodS2 {
		return false
	}
	swid, err := r.Cookie("SWID")
	if err != nil || !strings.EqualFold(swid.Value, GoodSWID) {
		return false
	}
	return true
}

func serveESPNFile(w http.ResponseWriter, name string) {
	b, err := espndata.ReadFile(fmt.Sprintf("espndata/%s", name))
	if err != nil {
		log.Printf("error reading espndata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
