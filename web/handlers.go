package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nacallas/SkidmarkOS-sub000/controller"
	"github.com/nacallas/SkidmarkOS-sub000/model"
	"github.com/nacallas/SkidmarkOS-sub000/platforms"
	"github.com/unrolled/render"
)

type errorResponse struct {
	Error string `json:"error"`
}

// renderError maps the error taxonomy onto status codes.
func renderError(w http.ResponseWriter, render *render.Render, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, controller.ErrUnknownLeague), errors.Is(err, platforms.ErrLeagueNotFound):
		status = http.StatusNotFound
	case errors.Is(err, platforms.ErrAuthRequired), errors.Is(err, platforms.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	default:
		var serverErr *platforms.ServerError
		if errors.As(err, &serverErr) {
			status = http.StatusBadGateway
		}
	}
	render.JSON(w, status, errorResponse{Error: err.Error()})
}

func listLeaguesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagues, err := ctrl.ListLeagues(r.Context())
		if err != nil {
			renderError(w, render, err)
			return
		}
		render.JSON(w, http.StatusOK, leagues)
	}
}

func addLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	type addLeagueRequest struct {
		Platform   string `json:"platform"`
		ExternalID string `json:"external_id"`
		Name       string `json:"name"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req addLeagueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		l, err := ctrl.AddLeague(r.Context(), req.Platform, req.ExternalID, req.Name)
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		render.JSON(w, http.StatusCreated, l)
	}
}

func removeLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.RemoveLeague(r.Context(), chi.URLParam(r, "leagueID")); err != nil {
			renderError(w, render, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func getSettingsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := ctrl.GetLeagueSettings(r.Context(), chi.URLParam(r, "leagueID"))
		if err != nil {
			renderError(w, render, err)
			return
		}
		render.JSON(w, http.StatusOK, settings)
	}
}

func getTeamsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	type teamsResponse struct {
		Teams      []model.Team `json:"teams"`
		AgeSeconds *float64     `json:"age_seconds,omitempty"`
		Stale      bool         `json:"stale"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		leagueID := chi.URLParam(r, "leagueID")
		refresh := r.URL.Query().Get("refresh") == "1"

		teams, err := ctrl.GetTeams(r.Context(), leagueID, refresh)
		if err != nil {
			renderError(w, render, err)
			return
		}

		resp := teamsResponse{Teams: teams}
		if age, err := ctrl.GetSnapshotAge(r.Context(), leagueID); err == nil && age != nil {
			secs := age.Seconds()
			resp.AgeSeconds = &secs
		}
		if stale, err := ctrl.IsSnapshotStale(r.Context(), leagueID); err == nil {
			resp.Stale = stale
		}

		render.JSON(w, http.StatusOK, resp)
	}
}

func refreshTeamsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := ctrl.RefreshTeams(r.Context(), chi.URLParam(r, "leagueID"))
		if err != nil {
			renderError(w, render, err)
			return
		}
		render.JSON(w, http.StatusOK, teams)
	}
}

func getMatchupsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		week, err := strconv.Atoi(chi.URLParam(r, "week"))
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		matchups, err := ctrl.GetMatchups(r.Context(), chi.URLParam(r, "leagueID"), week)
		if err != nil {
			renderError(w, render, err)
			return
		}
		render.JSON(w, http.StatusOK, matchups)
	}
}

func getBracketHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		week, err := strconv.Atoi(chi.URLParam(r, "week"))
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		bracket, err := ctrl.GetPlayoffBracket(r.Context(), chi.URLParam(r, "leagueID"), week)
		if err != nil {
			renderError(w, render, err)
			return
		}
		render.JSON(w, http.StatusOK, bracket)
	}
}

func getContextHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lc, err := ctrl.GetLeagueContext(r.Context(), chi.URLParam(r, "leagueID"))
		if err != nil {
			renderError(w, render, err)
			return
		}
		if lc == nil {
			render.JSON(w, http.StatusNotFound, errorResponse{Error: "no context for league"})
			return
		}
		render.JSON(w, http.StatusOK, lc)
	}
}

func saveContextHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var lc model.LeagueContext
		if err := json.NewDecoder(r.Body).Decode(&lc); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		lc.LeagueID = chi.URLParam(r, "leagueID")

		if err := ctrl.SaveLeagueContext(r.Context(), &lc); err != nil {
			renderError(w, render, err)
			return
		}
		render.JSON(w, http.StatusOK, lc)
	}
}

func listRoastWeeksHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weeks, err := ctrl.ListRoastWeeks(r.Context(), chi.URLParam(r, "leagueID"))
		if err != nil {
			renderError(w, render, err)
			return
		}
		render.JSON(w, http.StatusOK, weeks)
	}
}

func getRoastsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		week, err := strconv.Atoi(chi.URLParam(r, "week"))
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		force := r.URL.Query().Get("force") == "1"

		rc, err := ctrl.GetWeeklyRoasts(r.Context(), chi.URLParam(r, "leagueID"), week, force)
		if err != nil {
			renderError(w, render, err)
			return
		}
		render.JSON(w, http.StatusOK, rc)
	}
}

func getLastViewedHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ctrl.GetLastViewedLeague(r.Context())
		if err != nil {
			renderError(w, render, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"league_id": id})
	}
}

func setLastViewedHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			LeagueID string `json:"league_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		if err := ctrl.SetLastViewedLeague(r.Context(), req.LeagueID); err != nil {
			renderError(w, render, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
