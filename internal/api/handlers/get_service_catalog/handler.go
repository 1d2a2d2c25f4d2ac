package get_service_catalog

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AutoService/internal/api/handlers"
)

type Handler struct {
	catalog CatalogProvider
	logger  Logger
}

func NewHandler(catalog CatalogProvider, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/public/services?make=&model=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vehicleMake := strings.TrimSpace(r.URL.Query().Get("make"))
	vehicleModel := strings.TrimSpace(r.URL.Query().Get("model"))

	fees, err := h.catalog.Catalog(r.Context(), vehicleMake, vehicleModel)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "GET /public/services", err)
		return
	}

	h.logger.Info("GET /public/services - Catalog retrieved: make=%s, model=%s, count=%d", vehicleMake, vehicleModel, len(fees))
	handlers.RespondJSON(w, http.StatusOK, FromDomainServiceFees(vehicleMake, vehicleModel, fees))
}
