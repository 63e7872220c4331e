package crud

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every generated handler; the validator is safe for
// concurrent use and caches struct metadata between requests.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report errors under the wire-level field names, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// flattenErrors turns a validator error into a field→message map suitable
// for the details block of a VALIDATION_ERROR envelope.
func flattenErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["payload"] = err.Error()
		return out
	}

	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "is required"
		case "min":
			out[fe.Field()] = fmt.Sprintf("must be at least %s", fe.Param())
		case "max":
			out[fe.Field()] = fmt.Sprintf("must be at most %s", fe.Param())
		case "url":
			out[fe.Field()] = "must be a valid URL"
		case "uuid4":
			out[fe.Field()] = "must be a valid UUID"
		default:
			out[fe.Field()] = fmt.Sprintf("failed %s validation", fe.Tag())
		}
	}
	return out
}
