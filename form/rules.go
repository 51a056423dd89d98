package form

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-clientes-sync/pkg/apperrors"
	"github.com/goliatone/go-clientes-sync/records"
)

// Messages shown next to the offending field.
const (
	MsgNombreRequerido = "El nombre es requerido"
	MsgEmailInvalido   = "Email inválido"
)

// emailPattern accepts a simple local@domain.tld address.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var errNombreRequerido = errors.New(MsgNombreRequerido)

// notBlank fails for strings that are empty after trimming. validation.Required
// accepts "   ", which the server would store as a nameless client.
func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errNombreRequerido
	}
	return nil
}

func nombreRules() []validation.Rule {
	return []validation.Rule{validation.By(notBlank)}
}

func correoRules() []validation.Rule {
	return []validation.Rule{validation.Match(emailPattern).Error(MsgEmailInvalido)}
}

// fieldRules returns the rules of one field and the value they apply to.
// Fields without rules return ok=false.
func fieldRules(d *records.Draft, field string) (value any, rules []validation.Rule, ok bool) {
	switch field {
	case records.FieldNombre:
		return d.Nombre, nombreRules(), true
	case records.FieldCorreo:
		return d.Correo, correoRules(), true
	default:
		return nil, nil, false
	}
}

// ValidateDraft checks every rule and returns all violations at once as a
// validation apperror keyed by wire field name, or nil.
func ValidateDraft(d records.Draft) error {
	err := validation.ValidateStruct(&d,
		validation.Field(&d.Nombre, nombreRules()...),
		validation.Field(&d.Correo, correoRules()...),
	)
	return apperrors.FromOzzo(err)
}

// ValidateField checks the rules of a single field. It returns the message of
// the first failing rule, or "" when the field is valid or has no rules.
func ValidateField(d records.Draft, field string) string {
	value, rules, ok := fieldRules(&d, field)
	if !ok {
		return ""
	}
	if err := validation.Validate(value, rules...); err != nil {
		return err.Error()
	}
	return ""
}
