package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Registration role validation (admins are created by other admins)
	validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		return role == "farmer" || role == "company"
	})

	// Cultivation method validation
	validate.RegisterValidation("cultivation_method", func(fl validator.FieldLevel) bool {
		method := fl.Field().String()
		validMethods := []string{"conventional", "organic", "natural", "agroforestry", ""}
		for _, m := range validMethods {
			if method == m {
				return true
			}
		}
		return false
	})

	// Land type validation
	validate.RegisterValidation("land_type", func(fl validator.FieldLevel) bool {
		landType := fl.Field().String()
		validTypes := []string{"cropland", "orchard", "plantation", "pasture", "agroforest", ""}
		for _, t := range validTypes {
			if landType == t {
				return true
			}
		}
		return false
	})

	// Marketplace sort validation
	validate.RegisterValidation("listing_sort", func(fl validator.FieldLevel) bool {
		sort := fl.Field().String()
		validSorts := []string{"price_low", "price_high", "newest", "oldest", ""}
		for _, s := range validSorts {
			if sort == s {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gt":
			errors[field] = "Value must be greater than " + err.Param()
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "role":
			errors[field] = "Invalid role. Must be: farmer or company"
		case "cultivation_method":
			errors[field] = "Invalid cultivation method. Must be: conventional, organic, natural, or agroforestry"
		case "land_type":
			errors[field] = "Invalid land type. Must be: cropland, orchard, plantation, pasture, or agroforest"
		case "listing_sort":
			errors[field] = "Invalid sort. Must be: price_low, price_high, newest, or oldest"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
