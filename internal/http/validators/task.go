package validators

import (
	"time"
	"unicode/utf8"

	"taskhero.com/taskhero/internal/constants"
	dto "taskhero.com/taskhero/internal/data_models"
	apperrors "taskhero.com/taskhero/internal/errors"
	"taskhero.com/taskhero/internal/services"
)

const maxTitleLength = 200

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) (services.TaskInput, error) {
	in := services.TaskInput{
		Title:           r.Title,
		LocationAddress: r.LocationAddress,
		LocationLat:     r.LocationLat,
		LocationLng:     r.LocationLng,
		BudgetMin:       r.BudgetMin,
		BudgetMax:       r.BudgetMax,
	}

	if err := validateTitle(r.Title); err != nil {
		return in, err
	}
	if r.Description != nil {
		in.Description = *r.Description
	}
	if r.DateType != nil {
		dt, err := parseDateType(*r.DateType)
		if err != nil {
			return in, err
		}
		in.DateType = dt
	}
	if r.TaskDate != nil {
		ts, err := parseTaskDate(*r.TaskDate)
		if err != nil {
			return in, err
		}
		in.TaskDate = &ts
	}
	if err := validateLocation(r.LocationLat, r.LocationLng); err != nil {
		return in, err
	}
	if err := validateBudget(r.BudgetMin, r.BudgetMax); err != nil {
		return in, err
	}
	if r.BudgetCurrency != nil {
		cur, err := parseCurrency(*r.BudgetCurrency)
		if err != nil {
			return in, err
		}
		in.BudgetCurrency = cur
	}
	return in, nil
}

// ValidateUpdateTaskRequest turns the request into a column patch. Status
// is refused: it only moves through offers and the complete/decline actions.
func ValidateUpdateTaskRequest(r *dto.UpdateTaskRequest) (services.TaskPatch, error) {
	patch := services.TaskPatch{}

	if r.Status != nil {
		return nil, apperrors.Validation("status can only change through offers and task actions")
	}
	if r.Title != nil {
		if err := validateTitle(*r.Title); err != nil {
			return nil, err
		}
		patch["title"] = *r.Title
	}
	if r.Description != nil {
		patch["description"] = *r.Description
	}
	if r.DateType != nil {
		dt, err := parseDateType(*r.DateType)
		if err != nil {
			return nil, err
		}
		patch["date_type"] = dt
	}
	if r.TaskDate.Set {
		if r.TaskDate.Null {
			patch["task_date"] = nil
		} else {
			ts, err := parseTaskDate(r.TaskDate.Value)
			if err != nil {
				return nil, err
			}
			patch["task_date"] = ts
		}
	}
	if r.LocationAddress.Set {
		patch["location_address"] = r.LocationAddress.Column()
	}

	lat, lng := optional(r.LocationLat), optional(r.LocationLng)
	if err := validateLocation(lat, lng); err != nil {
		return nil, err
	}
	if r.LocationLat.Set {
		patch["location_lat"] = r.LocationLat.Column()
	}
	if r.LocationLng.Set {
		patch["location_lng"] = r.LocationLng.Column()
	}

	lo, hi := optional(r.BudgetMin), optional(r.BudgetMax)
	if err := validateBudget(lo, hi); err != nil {
		return nil, err
	}
	if r.BudgetMin.Set {
		patch["budget_min"] = r.BudgetMin.Column()
	}
	if r.BudgetMax.Set {
		patch["budget_max"] = r.BudgetMax.Column()
	}

	if r.BudgetCurrency != nil {
		cur, err := parseCurrency(*r.BudgetCurrency)
		if err != nil {
			return nil, err
		}
		patch["budget_currency"] = cur
	}
	return patch, nil
}

func ParseTaskStatus(v string) (constants.TaskStatus, error) {
	s := constants.TaskStatus(v)
	if !s.Valid() {
		return "", apperrors.Validation("Invalid status")
	}
	return s, nil
}

func validateTitle(title string) error {
	if title == "" {
		return apperrors.Validation("Title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return apperrors.Validation("Title must be at most 200 characters")
	}
	return nil
}

func parseDateType(v string) (constants.DateType, error) {
	dt := constants.DateType(v)
	if !dt.Valid() {
		return "", apperrors.Validation("Date type must be one of on_date, before_date, flexible")
	}
	return dt, nil
}

func parseTaskDate(v string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, apperrors.Validation("Invalid task date")
	}
	return ts.UTC(), nil
}

func validateLocation(lat, lng *float64) error {
	if lat != nil && (*lat < -90 || *lat > 90) {
		return apperrors.Validation("Latitude must be between -90 and 90")
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		return apperrors.Validation("Longitude must be between -180 and 180")
	}
	return nil
}

func validateBudget(min, max *float64) error {
	if min != nil && *min < 0 {
		return apperrors.Validation("Budget minimum must not be negative")
	}
	if max != nil && *max < 0 {
		return apperrors.Validation("Budget maximum must not be negative")
	}
	return nil
}

func optional[T any](n dto.Nullable[T]) *T {
	if !n.Set || n.Null {
		return nil
	}
	return &n.Value
}
