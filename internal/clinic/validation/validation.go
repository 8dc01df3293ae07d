// Package validation checks request payloads against their declared schema
// before anything touches storage. Schemas are the `validate` struct tags on
// the clinicsdk request types; the first violated constraint becomes the
// client facing message.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Error is a client facing validation failure. Handlers map it to 400.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// Normalizer is implemented by payloads that canonicalise themselves (trim,
// lower-case) before they are checked.
type Normalizer interface {
	Normalize()
}

// MaxBodyBytes bounds how much of a request body Decode will read.
const MaxBodyBytes = 1 << 20

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		// maxbytes bounds the encoded length, which max (a rune count) does not.
		_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Param())
			return err == nil && len(fl.Field().String()) <= n
		})
		validate = v
	})
	return validate
}

// Decode strictly decodes a JSON body into dst, normalises it and validates
// it. Unknown fields are rejected.
func Decode(r io.Reader, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r, MaxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	if dec.More() {
		return &Error{Message: "Invalid request body"}
	}

	return Struct(dst)
}

// Struct normalises and validates an already populated payload.
func Struct(v any) error {
	if n, ok := v.(Normalizer); ok {
		n.Normalize()
	}

	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &Error{Message: message(verrs[0])}
	}
	return err
}

func decodeError(err error) error {
	var (
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)

	switch {
	case errors.As(err, &typeErr):
		return &Error{Message: fmt.Sprintf("%q must be of type %s", fieldLabel(typeErr.Field), jsonType(typeErr.Type))}
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return &Error{Message: "Invalid request body"}
	}

	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return &Error{Message: fmt.Sprintf("%s is not allowed", field)}
	}
	return &Error{Message: "Invalid request body"}
}

func fieldLabel(field string) string {
	if field == "" {
		return "value"
	}
	return field
}

func jsonType(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

// path drops the root struct name from the namespace so nested fields read as
// "demographics.first_name".
func path(fe validator.FieldError) string {
	_, rest, ok := strings.Cut(fe.Namespace(), ".")
	if !ok {
		return fe.Field()
	}
	return rest
}

func message(fe validator.FieldError) string {
	label := fmt.Sprintf("%q", path(fe))

	switch fe.Tag() {
	case "required", "required_if":
		return label + " is required"
	case "email":
		return label + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", label, strings.Join(strings.Fields(fe.Param()), ", "))
	case "datetime":
		return label + " must be a valid date"
	case "numeric":
		return label + " must be a number"
	case "len":
		return fmt.Sprintf("%s length must be %s characters long", label, fe.Param())
	case "min", "gte":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s length must be at least %s characters long", label, fe.Param())
		case reflect.Slice, reflect.Map:
			return fmt.Sprintf("%s must contain at least %s items", label, fe.Param())
		default:
			return fmt.Sprintf("%s must be greater than or equal to %s", label, fe.Param())
		}
	case "max", "lte":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s length must be less than or equal to %s characters long", label, fe.Param())
		case reflect.Slice, reflect.Map:
			return fmt.Sprintf("%s must contain less than or equal to %s items", label, fe.Param())
		default:
			return fmt.Sprintf("%s must be less than or equal to %s", label, fe.Param())
		}
	case "maxbytes":
		return fmt.Sprintf("%s length must be less than or equal to %s bytes long", label, fe.Param())
	case "ulid":
		return label + " must be a valid id"
	default:
		return label + " is invalid"
	}
}
