package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
)

// SleeperLeagueID is the league the fake sleeper server knows about. Any
// other league id returns a 404.
const SleeperLeagueID = "924039165950484480"

//go:embed sleeperdata
var sleeperdata embed.FS

type FakeSleeperServer struct {
	s *httptest.Server

	// counts requests to the player catalog endpoint so tests can verify the
	// catalog is only fetched once per client.
	catalogRequests atomic.Int32
}

func NewFakeSleeperServer() *FakeSleeperServer {
	f := &FakeSleeperServer{}

	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Get("/players/nfl", f.playerCatalogHandler)

		r.Route("/league/{leagueID}", func(r chi.Router) {
			r.Get("/", leagueFileHandler("league.json"))
			r.Get("/rosters", leagueFileHandler("rosters.json"))
			r.Get("/users", leagueFileHandler("users.json"))
			r.Get("/winners_bracket", leagueFileHandler("winners_bracket.json"))
			r.Get("/losers_bracket", leagueFileHandler("losers_bracket.json"))
			r.Get("/matchups/{week}", matchupsHandler)
		})
	})

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeSleeperServer) Close() {
	f.s.Close()
}

func (f *FakeSleeperServer) URL() string {
	return f.s.URL
}

// CatalogRequests returns how many times /v1/players/nfl has been hit.
func (f *FakeSleeperServer) CatalogRequests() int {
	return int(f.catalogRequests.Load())
}

func (f *FakeSleeperServer) playerCatalogHandler(w http.ResponseWriter, r *http.Request) {
	f.catalogRequests.Add(1)
	serveSleeperFile(w, "players.json")
}

func leagueFileHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "leagueID") != SleeperLeagueID {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "not found"}`))
			return
		}
		serveSleeperFile(w, name)
	}
}

func matchupsHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "leagueID") != SleeperLeagueID {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "not found"}`))
		return
	}

	if chi.URLParam(r, "week") == "10" {
		serveSleeperFile(w, "matchups_10.json")
		return
	}

	// sleeper returns an empty list for weeks with no matchups
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("[]"))
}

func serveSleeperFile(w http.ResponseWriter, name string) {
	b, err := sleeperdata.ReadFile(fmt.Sprintf("sleeperdata/%s", name))
	if err != nil {
		log.Printf("error reading sleeperdata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
