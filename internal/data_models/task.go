package dto

type CreateTaskRequest struct {
	Title           string   `json:"title"`
	Description     *string  `json:"description"`
	DateType        *string  `json:"date_type"`
	TaskDate        *string  `json:"task_date"`
	LocationAddress *string  `json:"location_address"`
	LocationLat     *float64 `json:"location_lat"`
	LocationLng     *float64 `json:"location_lng"`
	BudgetMin       *float64 `json:"budget_min"`
	BudgetMax       *float64 `json:"budget_max"`
	BudgetCurrency  *string  `json:"budget_currency"`
}

type UpdateTaskRequest struct {
	Title           *string           `json:"title"`
	Description     *string           `json:"description"`
	Status          *string           `json:"status"`
	DateType        *string           `json:"date_type"`
	TaskDate        Nullable[string]  `json:"task_date"`
	LocationAddress Nullable[string]  `json:"location_address"`
	LocationLat     Nullable[float64] `json:"location_lat"`
	LocationLng     Nullable[float64] `json:"location_lng"`
	BudgetMin       Nullable[float64] `json:"budget_min"`
	BudgetMax       Nullable[float64] `json:"budget_max"`
	BudgetCurrency  *string           `json:"budget_currency"`
}
