package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(tallyHandler *TallyHandler, jwtSecret []byte) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		r.Route("/motions/{id}", func(r chi.Router) {
			r.Get("/tally", tallyHandler.GetTally)
			r.Get("/results", tallyHandler.GetResults)
			r.With(RequireAdmin(jwtSecret)).Post("/results", tallyHandler.RecomputeResults)
		})
	})

	return r
}
