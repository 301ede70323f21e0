// Package bind decodes an HTTP JSON body into a typed request struct and
// runs tag validation on the result, so handlers only ever see
// strongly-typed, validated values.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/vitrine/pkg/validate"
)

// JSON decodes r.Body into dest, capped at maxBytes, then validates dest.
// Returns (errs, nil) on validation failure and (nil, err) on malformed or
// oversized JSON.
func JSON(r *http.Request, dest interface{}, maxBytes int64) (errs map[string]string, err error) {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
	}

	if err = json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if errs = validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}
