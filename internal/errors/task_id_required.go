package errors

var (
	ErrTaskIDRequired  = Validation("task id is required")
	ErrOfferIDRequired = Validation("offer id is required")
)
