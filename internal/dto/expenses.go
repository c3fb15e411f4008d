package dto

// CreateExpenseRequest represents the payload to record an expense
type CreateExpenseRequest struct {
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required"`
	Date        string  `json:"date" validate:"required"`
}

// ExpenseResponse represents expense data in API responses
type ExpenseResponse struct {
	ID          string  `json:"id"`
	TripID      string  `json:"trip_id"`
	UserID      string  `json:"user_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"created_at"`
}

// ExpenseListResponse wraps a trip's expenses with the running total
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    float64           `json:"total"`
	Count    int               `json:"count"`
}
