package command

import (
	"errors"
	"fmt"

	"github.com/mfcastro/contas/internal/domain"
)

// Failure kinds reported to command callers.
const (
	KindValidation       = "validation"
	KindNotFound         = "not_found"
	KindMalformedRequest = "malformed_request"
	KindStorage          = "storage"
)

// Failure is the structured error payload of the command surface. Callers
// never see stack traces or storage internals beyond the message.
type Failure struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// errMalformed marks argument decoding errors so they map to
// malformed_request instead of validation.
var errMalformed = errors.New("malformed request")

// failureFrom classifies an error into a Failure payload.
func failureFrom(err error) *Failure {
	switch {
	case errors.Is(err, errMalformed):
		return &Failure{Kind: KindMalformedRequest, Message: err.Error()}
	case domain.IsValidation(err):
		return &Failure{Kind: KindValidation, Message: err.Error()}
	case domain.IsNotFound(err):
		return &Failure{Kind: KindNotFound, Message: err.Error()}
	default:
		return &Failure{Kind: KindStorage, Message: err.Error()}
	}
}
