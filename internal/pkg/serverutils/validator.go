package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError carries field-level messages so the error handler can
// answer with a 400 instead of a generic 500.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, len(fieldErrors))
	for i, fe := range fieldErrors {
		messages[i] = fmt.Sprintf("field %s failed on %s", fe.Field(), fe.Tag())
	}
	return &ValidationError{Messages: messages}
}
