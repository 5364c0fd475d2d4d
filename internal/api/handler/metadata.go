package handler

import (
	"net/http"

	"github.com/laiito/weatherApi/internal/api/response"
	"github.com/laiito/weatherApi/internal/city"
)

// MetadataHandler exposes static lookup data.
type MetadataHandler struct {
	cities *city.Registry
}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler(cities *city.Registry) *MetadataHandler {
	return &MetadataHandler{cities: cities}
}

type citiesBody struct {
	Cities []string `json:"cities"`
}

// ListCities handles GET /v1/metadata/cities - the queryable city names.
func (h *MetadataHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, citiesBody{Cities: h.cities.Names()})
}
