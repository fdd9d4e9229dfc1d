package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/fleetora/fleetora/application/port/outbound"
	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/infrastructure/http/response"
	"github.com/fleetora/fleetora/infrastructure/http/validator"
	"github.com/fleetora/fleetora/infrastructure/service/logger"
	"github.com/fleetora/fleetora/pkg/pagination"
)

type WeighbridgeHandler struct {
	weighbridges outbound.WeighbridgeRepository
	log          logger.Logger
}

func NewWeighbridgeHandler(weighbridges outbound.WeighbridgeRepository, log logger.Logger) *WeighbridgeHandler {
	return &WeighbridgeHandler{weighbridges: weighbridges, log: log}
}

func (h *WeighbridgeHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/weighbridges", h.List).Methods(http.MethodGet)
	r.HandleFunc("/weighbridges", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/weighbridges/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/weighbridges/{id}", h.Update).Methods(http.MethodPatch)
	r.HandleFunc("/weighbridges/{id}", h.Delete).Methods(http.MethodDelete)
}

func (h *WeighbridgeHandler) List(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromQuery(r.URL.Query())

	weighbridges, total, err := h.weighbridges.FindAll(r.Context(), p)
	if err != nil {
		writeRepoError(w, h.log, entity.KindWeighbridge, err)
		return
	}
	response.ListOK(w, p.Meta(total), weighbridges)
}

func (h *WeighbridgeHandler) Get(w http.ResponseWriter, r *http.Request) {
	weighbridge, err := h.weighbridges.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, h.log, entity.KindWeighbridge, err)
		return
	}
	response.JSON(w, http.StatusOK, weighbridge)
}

type weighbridgeRequest struct {
	Name string `json:"name"`
}

func (h *WeighbridgeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req weighbridgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !validator.ValidateRequired(req.Name) {
		response.UnprocessableEntity(w, "Name is required")
		return
	}

	weighbridge := &entity.Weighbridge{
		ID:   uuid.New().String(),
		Name: req.Name,
	}
	if err := h.weighbridges.Create(r.Context(), weighbridge); err != nil {
		writeRepoError(w, h.log, entity.KindWeighbridge, err)
		return
	}
	response.JSON(w, http.StatusCreated, weighbridge)
}

func (h *WeighbridgeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req weighbridgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !validator.ValidateRequired(req.Name) {
		response.UnprocessableEntity(w, "Name is required")
		return
	}

	weighbridge, err := h.weighbridges.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, h.log, entity.KindWeighbridge, err)
		return
	}
	weighbridge.Name = req.Name

	if err := h.weighbridges.Update(r.Context(), weighbridge); err != nil {
		writeRepoError(w, h.log, entity.KindWeighbridge, err)
		return
	}
	response.JSON(w, http.StatusOK, weighbridge)
}

func (h *WeighbridgeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.weighbridges.SoftDelete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeRepoError(w, h.log, entity.KindWeighbridge, err)
		return
	}
	response.Deleted(w, entity.KindWeighbridge.Label())
}
