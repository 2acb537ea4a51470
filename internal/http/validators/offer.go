package validators

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"taskhero.com/taskhero/internal/constants"
	dto "taskhero.com/taskhero/internal/data_models"
	apperrors "taskhero.com/taskhero/internal/errors"
	"taskhero.com/taskhero/internal/lifecycle"
	"taskhero.com/taskhero/internal/services"
)

const maxMessageLength = 1000

func ValidateCreateOfferRequest(r *dto.CreateOfferRequest) (services.OfferInput, error) {
	if _, err := uuid.Parse(r.TaskID); err != nil {
		return services.OfferInput{}, apperrors.Validation("Invalid task ID")
	}
	if err := validateAmount(r.Amount, true); err != nil {
		return services.OfferInput{}, err
	}
	if err := validateMessage(r.Message); err != nil {
		return services.OfferInput{}, err
	}

	in := services.OfferInput{
		TaskID:  r.TaskID,
		Amount:  *r.Amount,
		Message: r.Message,
	}
	if r.Currency != nil {
		cur, err := parseCurrency(*r.Currency)
		if err != nil {
			return services.OfferInput{}, err
		}
		in.Currency = cur
	}
	return in, nil
}

func ValidateUpdateOfferRequest(r *dto.UpdateOfferRequest) (lifecycle.OfferPatch, error) {
	if err := validateAmount(r.Amount, false); err != nil {
		return lifecycle.OfferPatch{}, err
	}
	if err := validateMessage(r.Message); err != nil {
		return lifecycle.OfferPatch{}, err
	}

	patch := lifecycle.OfferPatch{Amount: r.Amount, Message: r.Message}
	if r.Status != nil {
		s := constants.OfferStatus(*r.Status)
		if !s.Valid() {
			return lifecycle.OfferPatch{}, apperrors.Validation("Status must be one of pending, accepted, rejected, withdrawn")
		}
		patch.Status = &s
	}
	return patch, nil
}

func validateAmount(amount *float64, required bool) error {
	if amount == nil {
		if required {
			return apperrors.Validation("Amount is required")
		}
		return nil
	}
	if *amount <= 0 {
		return apperrors.Validation("Amount must be greater than 0")
	}
	return nil
}

func validateMessage(msg *string) error {
	if msg != nil && utf8.RuneCountInString(*msg) > maxMessageLength {
		return apperrors.Validation("Message too long")
	}
	return nil
}

func parseCurrency(v string) (string, error) {
	cur := strings.ToUpper(strings.TrimSpace(v))
	if cur == "" {
		return constants.DefaultCurrency, nil
	}
	if len(cur) != 3 {
		return "", apperrors.Validation("Currency must be a 3-letter code")
	}
	return cur, nil
}
