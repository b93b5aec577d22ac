// Package bind decodes and validates JSON request bodies into project errors
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	perr "muzzle/internal/platform/errors"
	"muzzle/internal/platform/logger"

	"github.com/go-playground/validator/v10"
)

// DefaultMaxBytes caps request bodies unless JSONOptions says otherwise
const DefaultMaxBytes = 1 << 20

// JSONOptions controls parsing. The zero value has no size cap and accepts unknown fields
type JSONOptions struct {
	MaxBytes        int64
	DisallowUnknown bool
	AllowEmptyBody  bool
}

var defaultOptions = JSONOptions{MaxBytes: DefaultMaxBytes, DisallowUnknown: true}

// jsonMore is a seam for tests
var jsonMore = func(dec *json.Decoder) bool { return dec.More() }

// ParseJSON decodes one JSON value into T and validates it.
// Over MaxBytes is TooLarge, a bad document is JSON, a failed rule is Validation with the field set
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := defaultOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("close request body")
		}
	}()

	body, empty, err := openBody(r, o)
	if err != nil {
		return zero, err
	}
	if empty {
		if o.AllowEmptyBody || !hasBody(r.Method) {
			return zero, nil
		}
		return zero, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(body)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	var dst T
	if err := dec.Decode(&dst); err != nil {
		return zero, decodeErr(err)
	}
	if jsonMore(dec) {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := Validator().Struct(dst); err != nil {
		var inv *validator.InvalidValidationError
		if errors.As(err, &inv) {
			logger.C(r.Context()).Error().Err(inv).Msg("validator internal error")
			return zero, perr.JSONErrf("body must be a JSON object")
		}
		field, msg := Validator().FieldMessage(err)
		return zero, perr.WithField(perr.Validationf("%s", msg), field)
	}
	return dst, nil
}

// openBody caps the body and peeks one byte to tell an empty body apart
func openBody(r *http.Request, o JSONOptions) (io.Reader, bool, error) {
	var body io.Reader = r.Body
	if o.MaxBytes > 0 {
		body = http.MaxBytesReader(nil, r.Body, o.MaxBytes)
	}
	var first [1]byte
	n, err := body.Read(first[:])
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, false, decodeErr(err)
		}
		return nil, true, nil
	}
	return io.MultiReader(bytes.NewReader(first[:n]), body), false, nil
}

func decodeErr(err error) error {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return perr.TooLargef("body exceeds %d bytes", tooBig.Limit)
	}
	return perr.JSONErrf("invalid JSON: %v", err)
}

func hasBody(method string) bool {
	switch method {
	case http.MethodGet, http.MethodDelete, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}
