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

type DocumentHandler struct {
	documents outbound.DocumentRepository
	log       logger.Logger
}

func NewDocumentHandler(documents outbound.DocumentRepository, log logger.Logger) *DocumentHandler {
	return &DocumentHandler{documents: documents, log: log}
}

func (h *DocumentHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/documents", h.List).Methods(http.MethodGet)
	r.HandleFunc("/documents", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/documents/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/documents/{id}", h.Update).Methods(http.MethodPatch)
	r.HandleFunc("/documents/{id}", h.Delete).Methods(http.MethodDelete)
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromQuery(r.URL.Query())

	documents, total, err := h.documents.FindAll(r.Context(), p)
	if err != nil {
		writeRepoError(w, h.log, entity.KindDocument, err)
		return
	}
	response.ListOK(w, p.Meta(total), documents)
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	document, err := h.documents.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, h.log, entity.KindDocument, err)
		return
	}
	response.JSON(w, http.StatusOK, document)
}

type createDocumentRequest struct {
	VehicleID    string                 `json:"vehicleId"`
	DocumentType entity.DocumentType    `json:"documentType"`
	ExpiryDate   string                 `json:"expiryDate"`
	Status       *entity.DocumentStatus `json:"status"`
}

func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !validator.ValidateRequired(req.VehicleID) {
		response.UnprocessableEntity(w, "Vehicle ID is required")
		return
	}
	if !req.DocumentType.IsValid() {
		response.UnprocessableEntity(w, "Invalid document type")
		return
	}
	expiry, ok := validator.ParseDate(req.ExpiryDate)
	if !ok {
		response.UnprocessableEntity(w, "Invalid expiry date")
		return
	}

	status := entity.DocumentValid
	if req.Status != nil {
		if !req.Status.IsValid() {
			response.UnprocessableEntity(w, "Invalid document status")
			return
		}
		status = *req.Status
	}

	document := &entity.Document{
		ID:           uuid.New().String(),
		VehicleID:    req.VehicleID,
		DocumentType: req.DocumentType,
		ExpiryDate:   expiry,
		Status:       status,
	}
	if err := h.documents.Create(r.Context(), document); err != nil {
		writeRepoError(w, h.log, entity.KindDocument, err)
		return
	}
	response.JSON(w, http.StatusCreated, document)
}

type updateDocumentRequest struct {
	VehicleID    *string                `json:"vehicleId"`
	DocumentType *entity.DocumentType   `json:"documentType"`
	ExpiryDate   *string                `json:"expiryDate"`
	Status       *entity.DocumentStatus `json:"status"`
}

func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	document, err := h.documents.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, h.log, entity.KindDocument, err)
		return
	}

	if req.VehicleID != nil {
		document.VehicleID = *req.VehicleID
	}
	if req.DocumentType != nil {
		if !req.DocumentType.IsValid() {
			response.UnprocessableEntity(w, "Invalid document type")
			return
		}
		document.DocumentType = *req.DocumentType
	}
	if req.ExpiryDate != nil {
		expiry, ok := validator.ParseDate(*req.ExpiryDate)
		if !ok {
			response.UnprocessableEntity(w, "Invalid expiry date")
			return
		}
		document.ExpiryDate = expiry
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			response.UnprocessableEntity(w, "Invalid document status")
			return
		}
		document.Status = *req.Status
	}

	if err := h.documents.Update(r.Context(), document); err != nil {
		writeRepoError(w, h.log, entity.KindDocument, err)
		return
	}
	response.JSON(w, http.StatusOK, document)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.documents.SoftDelete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeRepoError(w, h.log, entity.KindDocument, err)
		return
	}
	response.Deleted(w, entity.KindDocument.Label())
}
