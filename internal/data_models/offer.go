package dto

type CreateOfferRequest struct {
	TaskID   string   `json:"task_id"`
	Amount   *float64 `json:"amount"`
	Currency *string  `json:"currency"`
	Message  *string  `json:"message"`
}

type UpdateOfferRequest struct {
	Amount  *float64 `json:"amount"`
	Message *string  `json:"message"`
	Status  *string  `json:"status"`
}
