package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var timeOfDayRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

func init() {
	validate = validator.New()

	validate.RegisterValidation("gender", validateGender)
	validate.RegisterValidation("gender_preference", validateGenderPreference)
	validate.RegisterValidation("time_of_day", validateTimeOfDay)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidationErrors flattens validator errors into a field -> message map for
// the 400 response body.
func ValidationErrors(err error) map[string]string {
	details := make(map[string]string)

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		details["request"] = err.Error()
		return details
	}

	for _, fieldErr := range validationErrs {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			details[field] = field + " is required"
		case "email":
			details[field] = "must be a valid email address"
		case "min":
			details[field] = "must be at least " + fieldErr.Param()
		case "max":
			details[field] = "must be at most " + fieldErr.Param()
		case "gender":
			details[field] = "must be one of male, female, other"
		case "gender_preference":
			details[field] = "must be one of any, male, female"
		case "time_of_day":
			details[field] = "must be in HH:MM format"
		default:
			details[field] = "is invalid"
		}
	}

	return details
}

func validateGender(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "male", "female", "other":
		return true
	}
	return false
}

func validateGenderPreference(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "any", "male", "female":
		return true
	}
	return false
}

func validateTimeOfDay(fl validator.FieldLevel) bool {
	return IsValidTimeOfDay(fl.Field().String())
}

func IsValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// IsValidTimeOfDay accepts 24-hour clock departure times like "08:30".
func IsValidTimeOfDay(t string) bool {
	return timeOfDayRegex.MatchString(t)
}

func SanitizeString(input string) string {
	htmlRegex := regexp.MustCompile(`<[^>]*>`)
	cleaned := htmlRegex.ReplaceAllString(input, "")

	return strings.TrimSpace(cleaned)
}
