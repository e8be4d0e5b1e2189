package generator

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/byte4ever/stubgen/command"
)

// NameKey is the payload field holding the artifact name.
const NameKey = "name"

// ErrInvalidInput is wrapped by every request validation
// failure.
var ErrInvalidInput = errors.New("invalid input")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Request is a validated generation request.
type Request struct {
	// Name is the artifact name as supplied, nested
	// segments included.
	Name string

	// Identifier is the final name segment without the
	// suffix.
	Identifier string
}

// ParseRequest validates the payload against kind and
// derives the identifier. It performs no I/O.
func ParseRequest(pl command.Payload, kind Kind) (Request, error) {
	errCtx := "parsing " + kind.Signature + " request"

	raw, present := pl[NameKey]
	if !present {
		return Request{}, fmt.Errorf(
			"%s: %s is required: %w",
			errCtx, NameKey, ErrInvalidInput,
		)
	}

	name, ok := raw.(string)
	if !ok {
		return Request{}, fmt.Errorf(
			"%s: %s must be a string, got %T: %w",
			errCtx, NameKey, raw, ErrInvalidInput,
		)
	}

	if err := validate.Var(
		name, "required,endswith="+kind.Suffix,
	); err != nil {
		return Request{}, fmt.Errorf(
			"%s: %s %q must end with %s: %w",
			errCtx, NameKey, name, kind.Suffix, ErrInvalidInput,
		)
	}

	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return Request{}, fmt.Errorf(
			"%s: %s %q must be a relative path inside %s: %w",
			errCtx, NameKey, name, kind.Category, ErrInvalidInput,
		)
	}

	id := DeriveIdentifier(name, kind.Suffix)
	if id == "" {
		return Request{}, fmt.Errorf(
			"%s: %s %q has an empty base name: %w",
			errCtx, NameKey, name, ErrInvalidInput,
		)
	}

	return Request{Name: name, Identifier: id}, nil
}

// DeriveIdentifier takes the last "/" separated segment of
// name and trims suffix from its end.
func DeriveIdentifier(name string, suffix string) string {
	base := name[strings.LastIndex(name, "/")+1:]

	return strings.TrimSuffix(base, suffix)
}
