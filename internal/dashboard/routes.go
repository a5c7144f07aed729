package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/views", ViewsHandler)
	r.Get("/views/{viewID}/figure", FigureHandler)
	r.Get("/views/{viewID}/table", TableHandler)

	return r
}

// SetupDatasetRoutes carries the dataset lifecycle endpoints, mounted at
// /datasets so reload lives beside the dataset id, not under a view.
func SetupDatasetRoutes() http.Handler {
	r := chi.NewRouter()

	r.Post("/{datasetID}/reload", ReloadHandler)

	return r
}
