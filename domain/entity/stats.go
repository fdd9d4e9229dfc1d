package entity

// MonthlyTripCount is one month of trip activity ("2026-03" -> count).
type MonthlyTripCount struct {
	Month     string `json:"month"`
	TripCount int64  `json:"tripCount"`
}

// MonthlyExpenseTotal is one month of summed expense amounts.
type MonthlyExpenseTotal struct {
	Month        string  `json:"month"`
	TotalExpense float64 `json:"totalExpense"`
}

// Stats is the dashboard aggregate block. All figures exclude soft-deleted
// rows, including expenses whose parent trip was soft-deleted.
type Stats struct {
	TripsLast12Months               []MonthlyTripCount    `json:"tripsLast12Months"`
	OngoingTrips                    int                   `json:"ongoingTrips"`
	ExpensesLast12Months            []MonthlyExpenseTotal `json:"expensesLast12Months"`
	WeighbridgeExpensesLast12Months []MonthlyExpenseTotal `json:"weighbridgeExpensesLast12Months"`
}
