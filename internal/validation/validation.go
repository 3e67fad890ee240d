// Package validation checks mutation input shapes and raises a single
// structured error carrying every violated rule. Messages are the Arabic
// user-facing texts the client renders verbatim.
package validation

import (
	"strconv"
	"strings"
	"time"

	"event-booking/internal/apperr"
	"event-booking/internal/dto/request"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Length rules apply to the trimmed value.
	_ = v.RegisterValidation("trimmed_min", trimmedMin)
	_ = v.RegisterValidation("trimmed_max", trimmedMax)
	_ = v.RegisterValidation("email_basic", emailBasic)
	_ = v.RegisterValidation("dateparse", dateParse)
	return v
}

func trimmedMin(fl validator.FieldLevel) bool {
	min, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len([]rune(strings.TrimSpace(fl.Field().String()))) >= min
}

func trimmedMax(fl validator.FieldLevel) bool {
	max, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len([]rune(strings.TrimSpace(fl.Field().String()))) <= max
}

func emailBasic(fl validator.FieldLevel) bool {
	email := fl.Field().String()
	at := strings.IndexByte(email, '@')
	if at <= 0 || at != strings.LastIndexByte(email, '@') {
		return false
	}
	local, domain := email[:at], email[at+1:]
	if strings.ContainsAny(local, " \t") || strings.ContainsAny(domain, " \t") {
		return false
	}
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

func dateParse(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDate accepts the date formats clients submit event dates in.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// Arabic user-facing messages, keyed by input field.
const (
	msgUsername    = "اسم المستخدم يجب أن يكون 3 أحرف على الأقل"
	msgEmail       = "البريد الإلكتروني غير صالح"
	msgPassword    = "كلمة المرور يجب أن تكون 6 أحرف على الأقل"
	msgTitleMin    = "عنوان المناسبة يجب أن يكون 3 أحرف على الأقل"
	msgTitleMax    = "عنوان المناسبة يجب ألا يتجاوز 200 حرف"
	msgDescription = "وصف المناسبة يجب أن يكون 10 أحرف على الأقل"
	msgPrice       = "سعر المناسبة يجب أن يكون رقمًا موجبًا"
	msgDate        = "تاريخ المناسبة غير صالح"
)

func message(fe validator.FieldError) string {
	switch fe.Field() {
	case "Username":
		return msgUsername
	case "Email":
		return msgEmail
	case "Password":
		return msgPassword
	case "Title":
		if fe.Tag() == "trimmed_max" {
			return msgTitleMax
		}
		return msgTitleMin
	case "Description":
		return msgDescription
	case "Price":
		return msgPrice
	case "Date":
		return msgDate
	default:
		return "قيمة غير صالحة"
	}
}

// check runs the validator and converts violations into one
// BAD_USER_INPUT error carrying the full message list.
func check(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var messages []string
	for _, fe := range validationErrors {
		messages = append(messages, message(fe))
	}

	return apperr.BadUserInput(strings.Join(messages, "، "), messages...)
}

func ValidateUserInput(input *request.UserInput) error {
	return check(input)
}

func ValidateUpdateUserInput(input *request.UpdateUserInput) error {
	return check(input)
}

func ValidateLoginInput(email, password string) error {
	return check(&request.LoginInput{Email: email, Password: password})
}

func ValidateEventInput(input *request.EventInput) error {
	return check(input)
}

func ValidateUpdateEventInput(input *request.UpdateEventInput) error {
	return check(input)
}
