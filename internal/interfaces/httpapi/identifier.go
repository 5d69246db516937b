package httpapi

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/draft-engine/internal/usecase"
)

// Identifiers are opaque lowercase slugs, at most 64 characters, starting
// with a letter or digit. Canonical UUIDs satisfy the shape. Anything else
// never reaches a repository.
var identifierPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

func newRequestValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("ident", func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	})

	return v
}

// pathID reads a route parameter and rejects malformed identifiers before
// any service call.
func pathID(r *http.Request, name string) (string, error) {
	value := r.PathValue(name)
	if !identifierPattern.MatchString(value) {
		return "", fmt.Errorf("%w: %s is not a valid identifier", usecase.ErrInvalidInput, name)
	}

	return value, nil
}
