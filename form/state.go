package form

import (
	"sync"

	"github.com/goliatone/go-clientes-sync/pkg/apperrors"
	"github.com/goliatone/go-clientes-sync/records"
)

// Phase is the validation state of a form.
type Phase int

const (
	Untouched Phase = iota
	Invalid
	Valid
)

func (p Phase) String() string {
	switch p {
	case Untouched:
		return "untouched"
	case Invalid:
		return "invalid"
	case Valid:
		return "valid"
	default:
		return "unknown"
	}
}

// State is a snapshot of a Validator. Errors is only set when Phase is Invalid.
type State struct {
	Phase  Phase
	Errors apperrors.FieldErrors
}

// Error returns the message for field, or "".
func (s State) Error(field string) string {
	return s.Errors[field]
}

// Validator tracks the validation state of one form instance.
type Validator struct {
	mu     sync.Mutex
	phase  Phase
	errors apperrors.FieldErrors
}

// NewValidator returns an untouched validator.
func NewValidator() *Validator {
	return &Validator{phase: Untouched}
}

// Validate evaluates every rule against d. All violations are recorded and
// returned together; a valid draft returns nil.
func (v *Validator) Validate(d records.Draft) error {
	err := ValidateDraft(d)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.phase = Invalid
		v.errors = apperrors.FieldsOf(err)
		return err
	}
	v.phase = Valid
	v.errors = nil
	return nil
}

// Change re-evaluates field after an edit. Only an error already shown for
// field is updated or cleared; a field that had no error stays quiet until
// the next Validate.
func (v *Validator) Change(field string, d records.Draft) State {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, shown := v.errors[field]; shown {
		if msg := ValidateField(d, field); msg != "" {
			v.errors[field] = msg
		} else {
			delete(v.errors, field)
		}
		if len(v.errors) == 0 {
			v.phase = Valid
			v.errors = nil
		}
	}
	return v.snapshotLocked()
}

// Reset returns the validator to Untouched.
func (v *Validator) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.phase = Untouched
	v.errors = nil
}

// State returns the current state.
func (v *Validator) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

func (v *Validator) snapshotLocked() State {
	s := State{Phase: v.phase}
	if len(v.errors) > 0 {
		s.Errors = make(apperrors.FieldErrors, len(v.errors))
		for k, msg := range v.errors {
			s.Errors[k] = msg
		}
	}
	return s
}
