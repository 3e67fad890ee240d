package validation_test

import (
	"testing"
	"time"

	"event-booking/internal/apperr"
	"event-booking/internal/dto/request"
	"event-booking/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func validEventInput() *request.EventInput {
	return &request.EventInput{
		Title:       "مهرجان الرياض للكتاب",
		Description: "أمسية ثقافية مع توقيع الكتب الجديدة",
		Price:       49.5,
		Date:        "2026-10-01T19:30",
	}
}

func TestValidateUserInput(t *testing.T) {
	err := validation.ValidateUserInput(&request.UserInput{
		Username: "ahmed",
		Email:    "ahmed@example.com",
		Password: "secret123",
	})
	assert.NoError(t, err)
}

func TestValidateUserInput_CollectsAllViolations(t *testing.T) {
	err := validation.ValidateUserInput(&request.UserInput{
		Username: "ab",
		Email:    "not-an-email",
		Password: "123",
	})
	require.Error(t, err)

	appErr, ok := err.(*apperr.Error)
	require.True(t, ok)
	assert.Equal(t, apperr.CodeBadUserInput, appErr.Code)
	assert.Len(t, appErr.Errors, 3)
	assert.Contains(t, appErr.Errors, "اسم المستخدم يجب أن يكون 3 أحرف على الأقل")
	assert.Contains(t, appErr.Errors, "البريد الإلكتروني غير صالح")
	assert.Contains(t, appErr.Errors, "كلمة المرور يجب أن تكون 6 أحرف على الأقل")
	// The top-level message joins all violations.
	assert.Contains(t, appErr.Message, "اسم المستخدم")
	assert.Contains(t, appErr.Message, "كلمة المرور")
}

func TestValidateUserInput_TrimsBeforeCounting(t *testing.T) {
	// Padding must not rescue a too-short value.
	err := validation.ValidateUserInput(&request.UserInput{
		Username: "  ab  ",
		Email:    "ok@example.com",
		Password: "secret123",
	})
	require.Error(t, err)

	appErr := err.(*apperr.Error)
	assert.Equal(t, []string{"اسم المستخدم يجب أن يكون 3 أحرف على الأقل"}, appErr.Errors)
}

func TestValidateUserInput_ArabicUsernameCountsRunes(t *testing.T) {
	// Three Arabic letters are multiple bytes but exactly three characters.
	err := validation.ValidateUserInput(&request.UserInput{
		Username: "علي",
		Email:    "ali@example.com",
		Password: "secret123",
	})
	assert.NoError(t, err)
}

func TestValidateUpdateUserInput(t *testing.T) {
	// All fields optional; nothing provided is valid.
	assert.NoError(t, validation.ValidateUpdateUserInput(&request.UpdateUserInput{}))

	assert.NoError(t, validation.ValidateUpdateUserInput(&request.UpdateUserInput{
		Username: ptr("newname"),
	}))

	err := validation.ValidateUpdateUserInput(&request.UpdateUserInput{
		Password: ptr("123"),
	})
	require.Error(t, err)
	appErr := err.(*apperr.Error)
	assert.Equal(t, []string{"كلمة المرور يجب أن تكون 6 أحرف على الأقل"}, appErr.Errors)
}

func TestValidateLoginInput(t *testing.T) {
	assert.NoError(t, validation.ValidateLoginInput("user@example.com", "secret123"))

	err := validation.ValidateLoginInput("user@example", "secret123")
	require.Error(t, err)
	appErr := err.(*apperr.Error)
	assert.Equal(t, apperr.CodeBadUserInput, appErr.Code)
	assert.Contains(t, appErr.Errors, "البريد الإلكتروني غير صالح")
}

func TestEmailValidation(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"user.name+tag@sub.example.org", true},
		{"user@example", false},  // no dot in domain
		{"@example.com", false},  // empty local part
		{"user@@example.com", false},
		{"user example@test.com", false},
		{"user@example.com ", false}, // trailing space in domain
		{"plainaddress", false},
	}

	for _, tc := range cases {
		err := validation.ValidateLoginInput(tc.email, "secret123")
		if tc.valid {
			assert.NoError(t, err, "expected %q to be accepted", tc.email)
		} else {
			assert.Error(t, err, "expected %q to be rejected", tc.email)
		}
	}
}

func TestValidateEventInput(t *testing.T) {
	assert.NoError(t, validation.ValidateEventInput(validEventInput()))
}

func TestValidateEventInput_Violations(t *testing.T) {
	input := validEventInput()
	input.Title = "ab"
	input.Description = "too short"
	input.Price = -5
	input.Date = "first of october"

	err := validation.ValidateEventInput(input)
	require.Error(t, err)

	appErr := err.(*apperr.Error)
	assert.Len(t, appErr.Errors, 4)
	assert.Contains(t, appErr.Errors, "عنوان المناسبة يجب أن يكون 3 أحرف على الأقل")
	assert.Contains(t, appErr.Errors, "وصف المناسبة يجب أن يكون 10 أحرف على الأقل")
	assert.Contains(t, appErr.Errors, "سعر المناسبة يجب أن يكون رقمًا موجبًا")
	assert.Contains(t, appErr.Errors, "تاريخ المناسبة غير صالح")
}

func TestValidateEventInput_TitleTooLong(t *testing.T) {
	input := validEventInput()
	for len([]rune(input.Title)) <= 200 {
		input.Title += " مكرر"
	}

	err := validation.ValidateEventInput(input)
	require.Error(t, err)
	appErr := err.(*apperr.Error)
	assert.Contains(t, appErr.Errors, "عنوان المناسبة يجب ألا يتجاوز 200 حرف")
}

func TestValidateEventInput_ZeroPriceRejected(t *testing.T) {
	input := validEventInput()
	input.Price = 0

	err := validation.ValidateEventInput(input)
	require.Error(t, err)
	appErr := err.(*apperr.Error)
	assert.Contains(t, appErr.Errors, "سعر المناسبة يجب أن يكون رقمًا موجبًا")
}

func TestValidateUpdateEventInput(t *testing.T) {
	assert.NoError(t, validation.ValidateUpdateEventInput(&request.UpdateEventInput{}))

	err := validation.ValidateUpdateEventInput(&request.UpdateEventInput{
		Title: ptr("ab"),
		Date:  ptr("not a date"),
	})
	require.Error(t, err)
	appErr := err.(*apperr.Error)
	assert.Len(t, appErr.Errors, 2)
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		value string
		want  time.Time
	}{
		{"2026-10-01T19:30:00Z", time.Date(2026, 10, 1, 19, 30, 0, 0, time.UTC)},
		{"2026-10-01T19:30:00", time.Date(2026, 10, 1, 19, 30, 0, 0, time.UTC)},
		{"2026-10-01T19:30", time.Date(2026, 10, 1, 19, 30, 0, 0, time.UTC)},
		{"2026-10-01 19:30:00", time.Date(2026, 10, 1, 19, 30, 0, 0, time.UTC)},
		{"2026-10-01", time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)},
		{"  2026-10-01  ", time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got, err := validation.ParseDate(tc.value)
		require.NoError(t, err, "value %q", tc.value)
		assert.True(t, tc.want.Equal(got), "value %q: got %v", tc.value, got)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, value := range []string{"", "tomorrow", "01/10/2026", "2026-13-40"} {
		_, err := validation.ParseDate(value)
		assert.Error(t, err, "value %q", value)
	}
}
