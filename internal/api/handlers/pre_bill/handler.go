package pre_bill

import (
	"net/http"

	"github.com/m04kA/SMC-AutoService/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCost        = "стоимость дополнительных работ и запчастей должна быть неотрицательной, у работ нужно описание"
)

type Handler struct {
	quotes QuoteProvider
	logger Logger
}

func NewHandler(quotes QuoteProvider, logger Logger) *Handler {
	return &Handler{
		quotes: quotes,
		logger: logger,
	}
}

// Handle POST /api/v1/public/pre-bill
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req PreBillRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /public/pre-bill - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Warn("POST /public/pre-bill - Invalid costs: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCost)
		return
	}

	quote, err := h.quotes.Quote(r.Context(), req.Make, req.Model, req.ServiceDescriptions)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "POST /public/pre-bill", err)
		return
	}

	resp := BuildResponse(quote, &req)
	h.logger.Info("POST /public/pre-bill - Estimate built: make=%s, model=%s, total=%s",
		req.Make, req.Model, resp.EstimatedTotal.StringFixed(2))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
