package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/cloo-solutions/lexsearch/internal/api"
	"github.com/cloo-solutions/lexsearch/internal/domain"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate   = validator.New()
	translator ut.Translator
)

func init() {
	// Report JSON field names in validation messages.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	enLocale := en.New()
	translator, _ = ut.New(enLocale, enLocale).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)
}

// validateRequest runs struct tag validation and returns a validation
// DomainError whose message lists each failing field.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid request", err)
	}

	messages := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		messages[i] = fe.Translate(translator)
	}
	return domain.NewDomainError(domain.ErrCodeValidation, strings.Join(messages, "; "))
}

// decodeJSON reads the request body into dst and validates it. On failure it
// writes the error response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			api.Error(w, http.StatusRequestEntityTooLarge, api.CodeTooLarge, "request body too large")
		case errors.Is(err, io.EOF):
			api.Error(w, http.StatusBadRequest, api.CodeBadRequest, "request body is required")
		default:
			api.Error(w, http.StatusBadRequest, api.CodeBadRequest, "invalid request body")
		}
		return false
	}

	if err := validateRequest(dst); err != nil {
		api.HandleError(w, r, err)
		return false
	}
	return true
}
