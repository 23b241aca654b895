package helpers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"conferencedirectory/internal/domain"
)

// MaxBodyBytes bounds request bodies read by DecodeAndValidate.
const MaxBodyBytes = 1 << 20

// Validator is implemented by request DTOs that support validation.
// Validate returns nil when the request is valid.
type Validator interface {
	Validate() *domain.ValidationError
}

// DecodeAndValidate decodes the request body into dest (with DisallowUnknownFields)
// and, if dest implements Validator, runs Validate(). On decode or validation failure
// it writes a 400 JSON error and returns false; otherwise returns true.
// Callers should return immediately when DecodeAndValidate returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		writeDecodeError(w, err, dest)
		return false
	}
	if dec.More() {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid body")
		return false
	}
	if v, ok := dest.(Validator); ok {
		if verr := v.Validate(); verr.HasErrors() {
			WriteValidationError(w, verr)
			return false
		}
	}
	return true
}

// writeDecodeError reports type mismatches against the offending field and
// everything else (syntax, unknown fields, empty body) as an invalid body.
//
// The decoder keeps filling the remaining fields after a type mismatch, so dest
// is still validated and its other failures are reported alongside. Only the
// first mismatch is named; a later mismatched field is left zero and shows up
// under its validation rule instead.
func writeDecodeError(w http.ResponseWriter, err error, dest any) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		verr := domain.NewValidationError("")
		verr.AddField(typeErr.Field, "expected "+jsonKind(typeErr.Type.Kind().String()))
		if v, ok := dest.(Validator); ok {
			mergeValidation(verr, v.Validate(), typeErr.Field)
		}
		WriteValidationError(w, verr)
		return
	}
	if errors.Is(err, domain.ErrInvalidMoney) {
		verr := domain.NewValidationError("")
		verr.AddField("price", domain.ErrInvalidMoney.Error())
		WriteValidationError(w, verr)
		return
	}
	WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid body")
}

// mergeValidation copies rest into dst, skipping the field that already failed decoding.
func mergeValidation(dst, rest *domain.ValidationError, skip string) {
	if !rest.HasErrors() {
		return
	}
	dst.FormErrors = append(dst.FormErrors, rest.FormErrors...)
	for field, msgs := range rest.FieldErrors {
		if field == skip {
			continue
		}
		for _, msg := range msgs {
			dst.AddField(field, msg)
		}
	}
}

func jsonKind(goKind string) string {
	switch {
	case strings.HasPrefix(goKind, "int"), strings.HasPrefix(goKind, "uint"), strings.HasPrefix(goKind, "float"):
		return "number"
	case goKind == "bool":
		return "boolean"
	case goKind == "slice", goKind == "array":
		return "array"
	case goKind == "struct", goKind == "map":
		return "object"
	default:
		return goKind
	}
}

// WriteValidationError writes a 400 whose detail lists form and field errors.
func WriteValidationError(w http.ResponseWriter, verr *domain.ValidationError) {
	WriteJSONErrorDetail(w, http.StatusBadRequest, ErrCodeBadRequest, verr.ClientMessage(), verr)
}
