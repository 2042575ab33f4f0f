package validators

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"rentit/internal/models"
	"rentit/internal/utils"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report json names so details match the request body
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("coordinates", validateCoordinates)
	validate.RegisterValidation("price_unit", validatePriceUnit)
	validate.RegisterValidation("rating_value", validateRatingValue)
	validate.RegisterValidation("request_status", validateRequestStatus)
	validate.RegisterValidation("order_status", validateOrderStatus)
}

var (
	ErrInvalidObjectID    = errors.New("invalid object ID format")
	ErrInvalidCoordinates = errors.New("invalid GPS coordinates")
)

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// ToMap keys each message by field, keeping the first message per field.
func (v ValidationErrors) ToMap() map[string]string {
	details := make(map[string]string, len(v))
	for _, err := range v {
		if _, ok := details[err.Field]; !ok {
			details[err.Field] = err.Message
		}
	}
	return details
}

// AsAppError converts the errors into a 400 response error, or nil if empty.
func (v ValidationErrors) AsAppError() error {
	if len(v) == 0 {
		return nil
	}
	return utils.NewValidationError(v.ToMap())
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return ValidationErrors{{Field: "body", Message: err.Error()}}
		}
		for _, err := range fieldErrors {
			validationErrors = append(validationErrors, ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: getErrorMessage(err),
			})
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
	case "object_id":
		return "Invalid ID format"
	case "coordinates":
		return "Invalid GPS coordinates"
	case "price_unit":
		return "Price unit must be hourly or daily"
	case "rating_value":
		return "Rating must be between 1 and 5"
	case "request_status":
		return "Invalid status"
	case "order_status":
		return "Invalid order status"
	default:
		return fmt.Sprintf("Validation failed for %s", err.Field())
	}
}

func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Let required tag handle empty values
	}
	return primitive.IsValidObjectID(value)
}

func validateCoordinates(fl validator.FieldLevel) bool {
	coords, ok := fl.Field().Interface().([]float64)
	if !ok || len(coords) != 2 {
		return false
	}
	return utils.IsValidCoordinates(coords[1], coords[0])
}

func validatePriceUnit(fl validator.FieldLevel) bool {
	return models.PriceUnit(fl.Field().String()).IsValid()
}

func validateRatingValue(fl validator.FieldLevel) bool {
	rating := fl.Field().Int()
	return rating >= 1 && rating <= 5
}

func validateRequestStatus(fl validator.FieldLevel) bool {
	return models.RentalRequestStatus(fl.Field().String()).IsValid()
}

func validateOrderStatus(fl validator.FieldLevel) bool {
	return models.OrderStatus(fl.Field().String()).IsValid()
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func IsValidObjectID(id string) bool {
	return primitive.IsValidObjectID(id)
}

var htmlRegex = regexp.MustCompile(`<[^>]*>`)

// SanitizeInput strips HTML tags and trims whitespace.
func SanitizeInput(input string) string {
	return strings.TrimSpace(htmlRegex.ReplaceAllString(input, ""))
}
