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

type VehicleHandler struct {
	vehicles outbound.VehicleRepository
	log      logger.Logger
}

func NewVehicleHandler(vehicles outbound.VehicleRepository, log logger.Logger) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles, log: log}
}

func (h *VehicleHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/vehicles", h.List).Methods(http.MethodGet)
	r.HandleFunc("/vehicles", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/vehicles/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/vehicles/{id}", h.Update).Methods(http.MethodPatch)
	r.HandleFunc("/vehicles/{id}", h.Delete).Methods(http.MethodDelete)
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromQuery(r.URL.Query())

	vehicles, total, err := h.vehicles.FindAll(r.Context(), p)
	if err != nil {
		writeRepoError(w, h.log, entity.KindVehicle, err)
		return
	}
	response.ListOK(w, p.Meta(total), vehicles)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.vehicles.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, h.log, entity.KindVehicle, err)
		return
	}
	response.JSON(w, http.StatusOK, vehicle)
}

type createVehicleRequest struct {
	Brand              string                `json:"brand"`
	Model              string                `json:"model"`
	Type               entity.VehicleType    `json:"type"`
	Status             *entity.VehicleStatus `json:"status"`
	TractorPlateNumber string                `json:"tractorPlateNumber"`
	TrailerPlateNumber *string               `json:"trailerPlateNumber"`
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !validator.ValidateRequired(req.Brand) {
		response.UnprocessableEntity(w, "Brand is required")
		return
	}
	if !validator.ValidateRequired(req.Model) {
		response.UnprocessableEntity(w, "Model is required")
		return
	}
	if !req.Type.IsValid() {
		response.UnprocessableEntity(w, "Invalid vehicle type")
		return
	}
	if !validator.ValidateRequired(req.TractorPlateNumber) {
		response.UnprocessableEntity(w, "Tractor plate number is required")
		return
	}

	status := entity.VehicleAvailable
	if req.Status != nil {
		if !req.Status.IsValid() {
			response.UnprocessableEntity(w, "Invalid vehicle status")
			return
		}
		status = *req.Status
	}

	vehicle := &entity.Vehicle{
		ID:                 uuid.New().String(),
		Brand:              req.Brand,
		Model:              req.Model,
		Type:               req.Type,
		Status:             status,
		TractorPlateNumber: req.TractorPlateNumber,
		TrailerPlateNumber: req.TrailerPlateNumber,
	}
	if err := h.vehicles.Create(r.Context(), vehicle); err != nil {
		writeRepoError(w, h.log, entity.KindVehicle, err)
		return
	}
	response.JSON(w, http.StatusCreated, vehicle)
}

type updateVehicleRequest struct {
	Brand              *string               `json:"brand"`
	Model              *string               `json:"model"`
	Type               *entity.VehicleType   `json:"type"`
	Status             *entity.VehicleStatus `json:"status"`
	TractorPlateNumber *string               `json:"tractorPlateNumber"`
	TrailerPlateNumber *string               `json:"trailerPlateNumber"`
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	vehicle, err := h.vehicles.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, h.log, entity.KindVehicle, err)
		return
	}

	if req.Brand != nil {
		vehicle.Brand = *req.Brand
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Type != nil {
		if !req.Type.IsValid() {
			response.UnprocessableEntity(w, "Invalid vehicle type")
			return
		}
		vehicle.Type = *req.Type
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			response.UnprocessableEntity(w, "Invalid vehicle status")
			return
		}
		vehicle.Status = *req.Status
	}
	if req.TractorPlateNumber != nil {
		vehicle.TractorPlateNumber = *req.TractorPlateNumber
	}
	if req.TrailerPlateNumber != nil {
		vehicle.TrailerPlateNumber = req.TrailerPlateNumber
	}

	if err := h.vehicles.Update(r.Context(), vehicle); err != nil {
		writeRepoError(w, h.log, entity.KindVehicle, err)
		return
	}
	response.JSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.vehicles.SoftDelete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeRepoError(w, h.log, entity.KindVehicle, err)
		return
	}
	response.Deleted(w, entity.KindVehicle.Label())
}
