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

type ExpenseHandler struct {
	expenses outbound.ExpenseRepository
	log      logger.Logger
}

func NewExpenseHandler(expenses outbound.ExpenseRepository, log logger.Logger) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, log: log}
}

func (h *ExpenseHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/expenses", h.List).Methods(http.MethodGet)
	r.HandleFunc("/expenses", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/expenses/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/expenses/{id}", h.Update).Methods(http.MethodPatch)
	r.HandleFunc("/expenses/{id}", h.Delete).Methods(http.MethodDelete)
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	p := pagination.FromQuery(query)

	var filter outbound.ExpenseFilter
	filter.TripID = query.Get("trip")
	if raw := query.Get("category"); raw != "" {
		category := entity.ExpenseCategory(raw)
		if !category.IsValid() {
			response.UnprocessableEntity(w, "Invalid expense category")
			return
		}
		filter.Category = category
	}
	if raw := query.Get("startingDate"); raw != "" {
		start, ok := validator.ParseDate(raw)
		if !ok {
			response.UnprocessableEntity(w, "Invalid starting date")
			return
		}
		filter.StartingDate = &start
	}
	if raw := query.Get("endingDate"); raw != "" {
		end, ok := validator.ParseDate(raw)
		if !ok {
			response.UnprocessableEntity(w, "Invalid ending date")
			return
		}
		filter.EndingDate = &end
	}

	expenses, total, err := h.expenses.FindAll(r.Context(), filter, p)
	if err != nil {
		writeRepoError(w, h.log, entity.KindExpense, err)
		return
	}
	response.ListOK(w, p.Meta(total), expenses)
}

func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	expense, err := h.expenses.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, h.log, entity.KindExpense, err)
		return
	}
	response.JSON(w, http.StatusOK, expense)
}

type createExpenseRequest struct {
	TripID        string                 `json:"tripId"`
	WeighbridgeID *string                `json:"weighbridgeId"`
	Category      entity.ExpenseCategory `json:"category"`
	Amount        float64                `json:"amount"`
	Description   *string                `json:"description"`
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !validator.ValidateRequired(req.TripID) {
		response.UnprocessableEntity(w, "Trip ID is required")
		return
	}
	if !req.Category.IsValid() {
		response.UnprocessableEntity(w, "Invalid expense category")
		return
	}
	if req.Amount <= 0 {
		response.UnprocessableEntity(w, "Amount must be positive")
		return
	}
	if req.Category == entity.ExpenseWeighbridge && req.WeighbridgeID == nil {
		response.UnprocessableEntity(w, "Weighbridge ID is required for weighbridge expenses")
		return
	}

	expense := &entity.Expense{
		ID:            uuid.New().String(),
		TripID:        req.TripID,
		WeighbridgeID: req.WeighbridgeID,
		Category:      req.Category,
		Amount:        req.Amount,
		Description:   req.Description,
	}
	if err := h.expenses.Create(r.Context(), expense); err != nil {
		writeRepoError(w, h.log, entity.KindExpense, err)
		return
	}
	response.JSON(w, http.StatusCreated, expense)
}

type updateExpenseRequest struct {
	TripID        *string                 `json:"tripId"`
	WeighbridgeID *string                 `json:"weighbridgeId"`
	Category      *entity.ExpenseCategory `json:"category"`
	Amount        *float64                `json:"amount"`
	Description   *string                 `json:"description"`
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	expense, err := h.expenses.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, h.log, entity.KindExpense, err)
		return
	}

	if req.TripID != nil {
		expense.TripID = *req.TripID
	}
	if req.WeighbridgeID != nil {
		expense.WeighbridgeID = req.WeighbridgeID
	}
	if req.Category != nil {
		if !req.Category.IsValid() {
			response.UnprocessableEntity(w, "Invalid expense category")
			return
		}
		expense.Category = *req.Category
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			response.UnprocessableEntity(w, "Amount must be positive")
			return
		}
		expense.Amount = *req.Amount
	}
	if req.Description != nil {
		expense.Description = req.Description
	}

	if err := h.expenses.Update(r.Context(), expense); err != nil {
		writeRepoError(w, h.log, entity.KindExpense, err)
		return
	}
	response.JSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.expenses.SoftDelete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeRepoError(w, h.log, entity.KindExpense, err)
		return
	}
	response.Deleted(w, entity.KindExpense.Label())
}
