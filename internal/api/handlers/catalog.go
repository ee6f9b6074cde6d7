package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/xylexgaming/xgi-website/internal/domain"
	"github.com/xylexgaming/xgi-website/internal/service"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Games handles GET /api/games?search=
func (h *CatalogHandler) Games(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, domain.CollectionGames)
}

// Technology handles GET /api/technology?search=
func (h *CatalogHandler) Technology(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, domain.CollectionTechnology)
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request, collection domain.Collection) {
	search := r.URL.Query().Get("search")

	records, err := h.catalogService.Query(r.Context(), collection, search)
	if err != nil {
		logrus.WithError(err).WithField("collection", collection).Error("[catalog.list] query failed")
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "API route not found")
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load %s data", collection))
		return
	}

	writeJSON(w, http.StatusOK, records)
}
