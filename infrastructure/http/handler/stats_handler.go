package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fleetora/fleetora/application/port/outbound"
	"github.com/fleetora/fleetora/infrastructure/http/response"
	"github.com/fleetora/fleetora/infrastructure/service/logger"
)

type StatsHandler struct {
	stats outbound.StatsRepository
	log   logger.Logger
}

func NewStatsHandler(stats outbound.StatsRepository, log logger.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, log: log}
}

func (h *StatsHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/stats", h.Get).Methods(http.MethodGet)
}

type statsEnvelope struct {
	Meta struct {
		Success bool `json:"success"`
	} `json:"meta"`
	Data any `json:"data"`
}

func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Collect(r.Context())
	if err != nil {
		h.log.Error("failed to collect stats", err, nil)
		response.InternalServerError(w, "Internal server error")
		return
	}

	var body statsEnvelope
	body.Meta.Success = true
	body.Data = stats
	response.JSON(w, http.StatusOK, body)
}
