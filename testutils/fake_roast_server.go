package testutils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
)

// FakeRoastServer stands in for the roast generation backend. By default it
// returns a roast for every team in the request. SkipTeamID and FailStatus
// turn on the failure modes.
type FakeRoastServer struct {
	s *httptest.Server

	// SkipTeamID, when set, is left out of the response to simulate an
	// incomplete generation.
	SkipTeamID string
	// FailStatus, when non-zero, makes every request fail with that code.
	FailStatus int

	requests atomic.Int32
}

func NewFakeRoastServer() *FakeRoastServer {
	f := &FakeRoastServer{}
	f.s = httptest.NewServer(http.HandlerFunc(f.handler))
	return f
}

func (f *FakeRoastServer) Close() {
	f.s.Close()
}

func (f *FakeRoastServer) URL() string {
	return f.s.URL
}

// Requests returns how many generation calls the server has received.
func (f *FakeRoastServer) Requests() int {
	return int(f.requests.Load())
}

func (f *FakeRoastServer) handler(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)

	if f.FailStatus != 0 {
		w.WriteHeader(f.FailStatus)
		w.Write([]byte(`{"error": "generation failed"}`))
		return
	}

	var req struct {
		Teams []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"teams"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "bad request"}`))
		return
	}

	roasts := make(map[string]string, len(req.Teams))
	for _, t := range req.Teams {
		if t.ID == f.SkipTeamID {
			continue
		}
		roasts[t.ID] = fmt.Sprintf("%s somehow keeps finding new ways to lose.", t.Name)
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{"roasts": roasts})
}
