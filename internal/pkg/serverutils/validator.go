package serverutils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks struct tags on a request DTO. The returned
// error is a validator.ValidationErrors, handled by the error
// middleware as a 400.
func ValidateRequest(req interface{}) error {
	return validate.Struct(req)
}
