package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nacallas/SkidmarkOS-sub000/controller"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/leagues", func(r chi.Router) {
		r.Get("/", listLeaguesHandler(ctrl, render))
		r.Post("/", addLeagueHandler(ctrl, render))

		r.Route("/{leagueID}", func(r chi.Router) {
			r.Delete("/", removeLeagueHandler(ctrl, render))

			r.Get("/settings", getSettingsHandler(ctrl, render))
			r.Get("/teams", getTeamsHandler(ctrl, render))
			r.Post("/refresh", refreshTeamsHandler(ctrl, render))

			r.Get("/matchups/{week:\\d+}", getMatchupsHandler(ctrl, render))
			r.Get("/bracket/{week:\\d+}", getBracketHandler(ctrl, render))

			r.Get("/context", getContextHandler(ctrl, render))
			r.Put("/context", saveContextHandler(ctrl, render))

			r.Get("/roasts", listRoastWeeksHandler(ctrl, render))
			r.Get("/roasts/{week:\\d+}", getRoastsHandler(ctrl, render))
		})
	})

	r.Get("/last-viewed", getLastViewedHandler(ctrl, render))
	r.Put("/last-viewed", setLastViewedHandler(ctrl, render))

	return r
}
