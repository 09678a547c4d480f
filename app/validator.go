package bookstore

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
)

var validate *validator.Validate
var uniTrans *ut.UniversalTranslator

func init() {

	validate = validator.New()
	en := en.New()
	uniTrans = ut.New(en, en)
	enTrans, _ := uniTrans.GetTranslator("en")

	// lowercase first letter of the field
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.ToLower(field.Name)
	})

	validate.RegisterTranslation("required", enTrans, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is required", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("required", fe.Field())
		return t
	})

	validate.RegisterTranslation("base64", enTrans, func(ut ut.Translator) error {
		return ut.Add("base64", "{0} must be a valid base64 encoded string", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("base64", fe.Field())
		return t
	})

	validate.RegisterTranslation("gt", enTrans, func(ut ut.Translator) error {
		return ut.Add("gt", "{0} must be greater than {1}", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("gt", fe.Field(), fe.Param())
		return t
	})

	validate.RegisterValidation("port", func(fl validator.FieldLevel) bool {
		port, ok := fl.Field().Interface().(int)
		if !ok {
			return false
		}
		return port > 0 && port <= 65535
	})

	validate.RegisterTranslation("port", enTrans, func(ut ut.Translator) error {
		return ut.Add("port", "{0} must be a valid port number", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("port", fe.Field())
		return t
	})

}

// FormatFieldErrors turns validation failures of a request body into the
// per-field reasons of the multi-error payload.
func FormatFieldErrors(err error) []string {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"Please provide valid data in the request body."}
	}
	trans, _ := uniTrans.GetTranslator("en")

	reasons := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		reasons = append(reasons, fmt.Sprintf("Field: %s - %s", fe.Field(), fe.Translate(trans)))
	}
	return reasons
}
