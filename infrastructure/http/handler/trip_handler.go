package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/fleetora/fleetora/application/port/outbound"
	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/infrastructure/http/response"
	"github.com/fleetora/fleetora/infrastructure/http/validator"
	"github.com/fleetora/fleetora/infrastructure/service/logger"
	"github.com/fleetora/fleetora/pkg/pagination"
)

type TripHandler struct {
	trips outbound.TripRepository
	log   logger.Logger
}

func NewTripHandler(trips outbound.TripRepository, log logger.Logger) *TripHandler {
	return &TripHandler{trips: trips, log: log}
}

func (h *TripHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/trips", h.List).Methods(http.MethodGet)
	r.HandleFunc("/trips", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/trips/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/trips/{id}", h.Update).Methods(http.MethodPatch)
	r.HandleFunc("/trips/{id}", h.Delete).Methods(http.MethodDelete)
}

func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromQuery(r.URL.Query())

	trips, total, err := h.trips.FindAll(r.Context(), p)
	if err != nil {
		writeRepoError(w, h.log, entity.KindTrip, err)
		return
	}
	response.ListOK(w, p.Meta(total), trips)
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	trip, err := h.trips.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, h.log, entity.KindTrip, err)
		return
	}
	response.JSON(w, http.StatusOK, trip)
}

type createTripRequest struct {
	VehicleID string          `json:"vehicleId"`
	DriverID  string          `json:"driverId"`
	ClientID  *string         `json:"clientId"`
	Departure string          `json:"departure"`
	Arrival   string          `json:"arrival"`
	StartTime string          `json:"startTime"`
	EndTime   *string         `json:"endTime"`
	TripType  entity.TripType `json:"tripType"`
}

func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !validator.ValidateRequired(req.VehicleID) {
		response.UnprocessableEntity(w, "Vehicle ID is required")
		return
	}
	if !validator.ValidateRequired(req.DriverID) {
		response.UnprocessableEntity(w, "Driver ID is required")
		return
	}
	if !validator.ValidateRequired(req.Departure) {
		response.UnprocessableEntity(w, "Departure is required")
		return
	}
	if !validator.ValidateRequired(req.Arrival) {
		response.UnprocessableEntity(w, "Arrival is required")
		return
	}
	if !req.TripType.IsValid() {
		response.UnprocessableEntity(w, "Invalid trip type")
		return
	}
	start, ok := validator.ParseDate(req.StartTime)
	if !ok {
		response.UnprocessableEntity(w, "Invalid start time")
		return
	}
	var end *time.Time
	if req.EndTime != nil {
		parsed, ok := validator.ParseDate(*req.EndTime)
		if !ok {
			response.UnprocessableEntity(w, "Invalid end time")
			return
		}
		if parsed.Before(start) {
			response.UnprocessableEntity(w, "End time must be after start time")
			return
		}
		end = &parsed
	}

	trip := &entity.Trip{
		ID:        uuid.New().String(),
		VehicleID: req.VehicleID,
		DriverID:  req.DriverID,
		ClientID:  req.ClientID,
		Departure: req.Departure,
		Arrival:   req.Arrival,
		StartTime: start,
		EndTime:   end,
		TripType:  req.TripType,
	}
	if err := h.trips.Create(r.Context(), trip); err != nil {
		writeRepoError(w, h.log, entity.KindTrip, err)
		return
	}
	response.JSON(w, http.StatusCreated, trip)
}

type updateTripRequest struct {
	VehicleID *string          `json:"vehicleId"`
	DriverID  *string          `json:"driverId"`
	ClientID  *string          `json:"clientId"`
	Departure *string          `json:"departure"`
	Arrival   *string          `json:"arrival"`
	StartTime *string          `json:"startTime"`
	EndTime   *string          `json:"endTime"`
	TripType  *entity.TripType `json:"tripType"`
}

func (h *TripHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	trip, err := h.trips.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, h.log, entity.KindTrip, err)
		return
	}

	if req.VehicleID != nil {
		trip.VehicleID = *req.VehicleID
	}
	if req.DriverID != nil {
		trip.DriverID = *req.DriverID
	}
	if req.ClientID != nil {
		trip.ClientID = req.ClientID
	}
	if req.Departure != nil {
		trip.Departure = *req.Departure
	}
	if req.Arrival != nil {
		trip.Arrival = *req.Arrival
	}
	if req.StartTime != nil {
		start, ok := validator.ParseDate(*req.StartTime)
		if !ok {
			response.UnprocessableEntity(w, "Invalid start time")
			return
		}
		trip.StartTime = start
	}
	if req.EndTime != nil {
		end, ok := validator.ParseDate(*req.EndTime)
		if !ok {
			response.UnprocessableEntity(w, "Invalid end time")
			return
		}
		if end.Before(trip.StartTime) {
			response.UnprocessableEntity(w, "End time must be after start time")
			return
		}
		trip.EndTime = &end
	}
	if req.TripType != nil {
		if !req.TripType.IsValid() {
			response.UnprocessableEntity(w, "Invalid trip type")
			return
		}
		trip.TripType = *req.TripType
	}

	if err := h.trips.Update(r.Context(), trip); err != nil {
		writeRepoError(w, h.log, entity.KindTrip, err)
		return
	}
	response.JSON(w, http.StatusOK, trip)
}

func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.trips.SoftDelete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeRepoError(w, h.log, entity.KindTrip, err)
		return
	}
	response.Deleted(w, entity.KindTrip.Label())
}
