package entity

import "time"

type ExpenseCategory string

const (
	ExpenseFuel        ExpenseCategory = "FUEL"
	ExpenseToll        ExpenseCategory = "TOLL"
	ExpenseMaintenance ExpenseCategory = "MAINTENANCE"
	ExpenseWeighbridge ExpenseCategory = "WEIGHBRIDGE"
	ExpenseMisc        ExpenseCategory = "MISC"
)

func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseFuel, ExpenseToll, ExpenseMaintenance, ExpenseWeighbridge, ExpenseMisc:
		return true
	}
	return false
}

type Expense struct {
	ID            string          `json:"id"`
	TripID        string          `json:"tripId"`
	WeighbridgeID *string         `json:"weighbridgeId,omitempty"`
	Category      ExpenseCategory `json:"category"`
	Amount        float64         `json:"amount"`
	Description   *string         `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	DeletedAt     *time.Time      `json:"deletedAt,omitempty"`
}
