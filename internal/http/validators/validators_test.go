package validators

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhero.com/taskhero/internal/constants"
	dto "taskhero.com/taskhero/internal/data_models"
	apperrors "taskhero.com/taskhero/internal/errors"
)

func ptr[T any](v T) *T { return &v }

func assertValidation(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, message, err.Error())
}

func TestValidateCreateTaskRequest(t *testing.T) {
	in, err := ValidateCreateTaskRequest(&dto.CreateTaskRequest{
		Title:          "Fix sink",
		DateType:       ptr("on_date"),
		TaskDate:       ptr("2026-03-01T10:00:00+02:00"),
		LocationLat:    ptr(52.5),
		LocationLng:    ptr(13.4),
		BudgetMin:      ptr(0.0),
		BudgetCurrency: ptr("eur"),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.DateOn, in.DateType)
	assert.Equal(t, 8, in.TaskDate.Hour())
	assert.Equal(t, "EUR", in.BudgetCurrency)

	in, err = ValidateCreateTaskRequest(&dto.CreateTaskRequest{Title: " "})
	require.NoError(t, err, "a whitespace title meets the one character minimum")
	assert.Equal(t, " ", in.Title)

	cases := []struct {
		name string
		req  dto.CreateTaskRequest
		msg  string
	}{
		{"empty title", dto.CreateTaskRequest{Title: ""}, "Title is required"},
		{"long title", dto.CreateTaskRequest{Title: strings.Repeat("x", 201)}, "Title must be at most 200 characters"},
		{"date type", dto.CreateTaskRequest{Title: "t", DateType: ptr("someday")}, "Date type must be one of on_date, before_date, flexible"},
		{"task date", dto.CreateTaskRequest{Title: "t", TaskDate: ptr("tomorrow")}, "Invalid task date"},
		{"latitude", dto.CreateTaskRequest{Title: "t", LocationLat: ptr(91.0)}, "Latitude must be between -90 and 90"},
		{"longitude", dto.CreateTaskRequest{Title: "t", LocationLng: ptr(-181.0)}, "Longitude must be between -180 and 180"},
		{"budget", dto.CreateTaskRequest{Title: "t", BudgetMax: ptr(-1.0)}, "Budget maximum must not be negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateCreateTaskRequest(&tc.req)
			assertValidation(t, err, tc.msg)
		})
	}
}

func TestValidateUpdateTaskRequest(t *testing.T) {
	var req dto.UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"New","budget_min":null,"location_lat":10}`), &req))

	patch, err := ValidateUpdateTaskRequest(&req)
	require.NoError(t, err)
	assert.Equal(t, "New", patch["title"])
	assert.Contains(t, patch, "budget_min")
	assert.Nil(t, patch["budget_min"])
	assert.Equal(t, 10.0, patch["location_lat"])
	assert.NotContains(t, patch, "budget_max")

	_, err = ValidateUpdateTaskRequest(&dto.UpdateTaskRequest{Status: ptr("completed")})
	assertValidation(t, err, "status can only change through offers and task actions")

	_, err = ValidateUpdateTaskRequest(&dto.UpdateTaskRequest{Title: ptr("")})
	assertValidation(t, err, "Title is required")

	req = dto.UpdateTaskRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"location_lng":500}`), &req))
	_, err = ValidateUpdateTaskRequest(&req)
	assertValidation(t, err, "Longitude must be between -180 and 180")
}

func TestValidateCreateOfferRequest(t *testing.T) {
	taskID := "6f1c2b7e-8a41-4d3f-9b7a-0c5e2d1f4a90"

	in, err := ValidateCreateOfferRequest(&dto.CreateOfferRequest{TaskID: taskID, Amount: ptr(25.0)})
	require.NoError(t, err)
	assert.Equal(t, taskID, in.TaskID)
	assert.Equal(t, 25.0, in.Amount)

	_, err = ValidateCreateOfferRequest(&dto.CreateOfferRequest{TaskID: "nope", Amount: ptr(1.0)})
	assertValidation(t, err, "Invalid task ID")

	_, err = ValidateCreateOfferRequest(&dto.CreateOfferRequest{TaskID: taskID})
	assertValidation(t, err, "Amount is required")

	_, err = ValidateCreateOfferRequest(&dto.CreateOfferRequest{TaskID: taskID, Amount: ptr(0.0)})
	assertValidation(t, err, "Amount must be greater than 0")

	_, err = ValidateCreateOfferRequest(&dto.CreateOfferRequest{
		TaskID:  taskID,
		Amount:  ptr(1.0),
		Message: ptr(strings.Repeat("m", 1001)),
	})
	assertValidation(t, err, "Message too long")
}

func TestValidateUpdateOfferRequest(t *testing.T) {
	patch, err := ValidateUpdateOfferRequest(&dto.UpdateOfferRequest{Status: ptr("accepted")})
	require.NoError(t, err)
	require.NotNil(t, patch.Status)
	assert.Equal(t, constants.OfferAccepted, *patch.Status)

	_, err = ValidateUpdateOfferRequest(&dto.UpdateOfferRequest{Status: ptr("done")})
	assertValidation(t, err, "Status must be one of pending, accepted, rejected, withdrawn")

	_, err = ValidateUpdateOfferRequest(&dto.UpdateOfferRequest{Amount: ptr(-5.0)})
	assertValidation(t, err, "Amount must be greater than 0")
}

func TestAuthValidators(t *testing.T) {
	require.NoError(t, ValidateSignupRequest(&dto.SignupRequest{Email: "a@b.co", Password: "Secret123"}))

	assertValidation(t, ValidateSignupRequest(&dto.SignupRequest{Password: "Secret123"}), "Email is required")
	assertValidation(t, ValidateSignupRequest(&dto.SignupRequest{Email: "a@b", Password: "Secret123"}), "Invalid email format")
	assertValidation(t, ValidateSignupRequest(&dto.SignupRequest{Email: "a@b.co", Password: "Ab1"}), "Password must be at least 8 characters")
	assertValidation(t, ValidateSignupRequest(&dto.SignupRequest{Email: "a@b.co", Password: "secret123"}),
		"Password must contain at least one uppercase letter, one lowercase letter, and one number")

	assertValidation(t, ValidateLoginRequest(&dto.LoginRequest{Email: "a@b.co"}), "Password is required")
	assertValidation(t, ValidateRefreshTokenRequest(&dto.RefreshTokenRequest{}), "Refresh token is required")
	require.NoError(t, ValidateResetPasswordRequest(&dto.ResetPasswordRequest{Email: "a@b.co"}))
	assertValidation(t, ValidateUpdatePasswordRequest(&dto.UpdatePasswordRequest{Password: "short"}), "Password must be at least 8 characters")
}
