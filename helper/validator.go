package helper

import (
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return IsISODate(fl.Field().String())
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

func FormatValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var errMsg string
		for i, e := range validationErrors {
			if i > 0 {
				errMsg += "; "
			}
			switch e.Tag() {
			case "required":
				errMsg += "missing required field: " + e.Field()
			case "email":
				errMsg += e.Field() + " must be a valid email"
			case "min":
				errMsg += e.Field() + " must be at least " + e.Param() + unit(e)
			case "max":
				errMsg += e.Field() + " must be at most " + e.Param() + unit(e)
			case "oneof":
				errMsg += e.Field() + " must be one of: " + e.Param()
			case "mobile":
				errMsg += e.Field() + " must be a 10 digit number"
			case "isodate":
				errMsg += e.Field() + " must be a YYYY-MM-DD date"
			default:
				errMsg += e.Field() + " is invalid"
			}
		}
		return errMsg
	}
	return err.Error()
}

// unit names what a min or max param counts for the field's kind.
func unit(e validator.FieldError) string {
	switch e.Kind() {
	case reflect.String:
		return " characters long"
	case reflect.Slice, reflect.Array, reflect.Map:
		return " items"
	}
	return ""
}
