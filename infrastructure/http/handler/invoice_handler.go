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

type InvoiceHandler struct {
	invoices outbound.InvoiceRepository
	log      logger.Logger
}

func NewInvoiceHandler(invoices outbound.InvoiceRepository, log logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, log: log}
}

func (h *InvoiceHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/invoices", h.List).Methods(http.MethodGet)
	r.HandleFunc("/invoices", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/invoices/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/invoices/{id}", h.Update).Methods(http.MethodPatch)
	r.HandleFunc("/invoices/{id}", h.Delete).Methods(http.MethodDelete)
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromQuery(r.URL.Query())

	invoices, total, err := h.invoices.FindAll(r.Context(), p)
	if err != nil {
		writeRepoError(w, h.log, entity.KindInvoice, err)
		return
	}
	response.ListOK(w, p.Meta(total), invoices)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.invoices.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, h.log, entity.KindInvoice, err)
		return
	}
	response.JSON(w, http.StatusOK, invoice)
}

type createInvoiceRequest struct {
	ClientID    string  `json:"clientId"`
	TripID      string  `json:"tripId"`
	TotalAmount float64 `json:"totalAmount"`
	InvoiceDate string  `json:"invoiceDate"`
	VolumeM3    float64 `json:"volumeM3"`
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !validator.ValidateRequired(req.ClientID) {
		response.UnprocessableEntity(w, "Client ID is required")
		return
	}
	if !validator.ValidateRequired(req.TripID) {
		response.UnprocessableEntity(w, "Trip ID is required")
		return
	}
	if req.TotalAmount <= 0 {
		response.UnprocessableEntity(w, "Total amount must be positive")
		return
	}
	invoiceDate, ok := validator.ParseDate(req.InvoiceDate)
	if !ok {
		response.UnprocessableEntity(w, "Invalid invoice date")
		return
	}

	invoice := &entity.Invoice{
		ID:          uuid.New().String(),
		ClientID:    req.ClientID,
		TripID:      req.TripID,
		TotalAmount: req.TotalAmount,
		InvoiceDate: invoiceDate,
		VolumeM3:    req.VolumeM3,
	}
	if err := h.invoices.Create(r.Context(), invoice); err != nil {
		writeRepoError(w, h.log, entity.KindInvoice, err)
		return
	}
	response.JSON(w, http.StatusCreated, invoice)
}

type updateInvoiceRequest struct {
	ClientID    *string  `json:"clientId"`
	TripID      *string  `json:"tripId"`
	TotalAmount *float64 `json:"totalAmount"`
	InvoiceDate *string  `json:"invoiceDate"`
	VolumeM3    *float64 `json:"volumeM3"`
}

func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	invoice, err := h.invoices.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, h.log, entity.KindInvoice, err)
		return
	}

	if req.ClientID != nil {
		invoice.ClientID = *req.ClientID
	}
	if req.TripID != nil {
		invoice.TripID = *req.TripID
	}
	if req.TotalAmount != nil {
		if *req.TotalAmount <= 0 {
			response.UnprocessableEntity(w, "Total amount must be positive")
			return
		}
		invoice.TotalAmount = *req.TotalAmount
	}
	if req.InvoiceDate != nil {
		invoiceDate, ok := validator.ParseDate(*req.InvoiceDate)
		if !ok {
			response.UnprocessableEntity(w, "Invalid invoice date")
			return
		}
		invoice.InvoiceDate = invoiceDate
	}
	if req.VolumeM3 != nil {
		invoice.VolumeM3 = *req.VolumeM3
	}

	if err := h.invoices.Update(r.Context(), invoice); err != nil {
		writeRepoError(w, h.log, entity.KindInvoice, err)
		return
	}
	response.JSON(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.invoices.SoftDelete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeRepoError(w, h.log, entity.KindInvoice, err)
		return
	}
	response.Deleted(w, entity.KindInvoice.Label())
}
