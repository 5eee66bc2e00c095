package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

const defaultUserID int64 = 1

// validate is shared by all handlers; validator instances cache struct
// metadata and are safe for concurrent use.
var validate = validator.New()

// decodeAndValidate decodes a JSON request body into dst, rejecting unknown
// fields, then runs struct validation. Returns a client-facing error.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %v", err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid request body: %v", err)
	}
	return nil
}
