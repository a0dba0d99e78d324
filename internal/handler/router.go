package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/triplog/backend/spec"
)

// NewRouter mounts all API routes onto a fresh chi router.
// Middleware (request id, logging, CORS, body limits) is applied by the
// caller around the returned handler, not here.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)
	r.Get("/docs", serveDocs)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)

		r.Route("/{tripId}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)

			r.Route("/steps", func(r chi.Router) {
				r.Get("/", s.ListSteps)
				r.Post("/", s.CreateStep)

				r.Route("/{stepId}", func(r chi.Router) {
					r.Get("/", s.GetStep)
					r.Put("/", s.UpdateStep)
					r.Delete("/", s.DeleteStep)

					r.Post("/pictures", s.AddPicture)
					r.Delete("/pictures/{pictureName}", s.DeletePicture)
				})
			})
		})
	})

	return r
}

// serveOpenAPI serves the embedded OpenAPI document.
// Serving it from the binary means the spec and the running code are always
// in sync.
func serveOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}

// serveDocs serves a minimal Scalar API reference page pointing at the
// embedded OpenAPI document.
func serveDocs(w http.ResponseWriter, r *http.Request) {
	const page = `<!doctype html>
<html>
  <head>
    <title>Triplog API Reference</title>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>
  <body>
    <script id="api-reference" data-url="/openapi.yaml"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
  </body>
</html>`
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}
