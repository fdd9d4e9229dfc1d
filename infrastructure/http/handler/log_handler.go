package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fleetora/fleetora/application/port/outbound"
	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/infrastructure/http/response"
	"github.com/fleetora/fleetora/infrastructure/http/validator"
	"github.com/fleetora/fleetora/infrastructure/service/logger"
	"github.com/fleetora/fleetora/pkg/pagination"
)

// LogHandler serves the deletion audit: soft-deleted rows of one kind whose
// deletion timestamp falls inside a closed date window.
type LogHandler struct {
	audit outbound.AuditReader
	log   logger.Logger
}

func NewLogHandler(audit outbound.AuditReader, log logger.Logger) *LogHandler {
	return &LogHandler{audit: audit, log: log}
}

func (h *LogHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/logs", h.List).Methods(http.MethodGet)
}

func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	p := pagination.FromQuery(query)

	kind, err := entity.ParseKind(query.Get("model"))
	if err != nil {
		response.UnprocessableEntity(w, "Unknown model")
		return
	}
	start, ok := validator.ParseDate(query.Get("startingDate"))
	if !ok {
		response.UnprocessableEntity(w, "Valid starting date is required")
		return
	}
	end, ok := validator.ParseDate(query.Get("endingDate"))
	if !ok {
		response.UnprocessableEntity(w, "Valid ending date is required")
		return
	}
	if end.Before(start) {
		response.UnprocessableEntity(w, "Ending date must be after starting date")
		return
	}

	window := outbound.DeletionWindow{Start: start, End: end}
	rows, total, err := h.audit.FindDeleted(r.Context(), kind, window, p)
	if err != nil {
		writeRepoError(w, h.log, kind, err)
		return
	}
	response.ListOK(w, p.Meta(total), rows)
}
