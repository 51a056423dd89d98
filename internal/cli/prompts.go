package cli

import (
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-clientes-sync/form"
	"github.com/goliatone/go-clientes-sync/records"
)

// draftInput binds the client fields to flags and to the interactive form.
type draftInput struct {
	draft records.Draft
}

var draftFlags = []string{records.FieldNombre, records.FieldRNC, records.FieldCorreo, records.FieldTelefono, records.FieldDireccion}

func (in *draftInput) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&in.draft.Nombre, records.FieldNombre, "", "Client name (required)")
	cmd.Flags().StringVar(&in.draft.RNC, records.FieldRNC, "", "Tax id")
	cmd.Flags().StringVar(&in.draft.Correo, records.FieldCorreo, "", "Email address")
	cmd.Flags().StringVar(&in.draft.Telefono, records.FieldTelefono, "", "Phone number")
	cmd.Flags().StringVar(&in.draft.Direccion, records.FieldDireccion, "", "Address")
}

func (in *draftInput) anySet(cmd *cobra.Command) bool {
	for _, name := range draftFlags {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// mergeInto copies the flags given on the command line over d.
func (in *draftInput) mergeInto(cmd *cobra.Command, d *records.Draft) {
	set := cmd.Flags().Changed
	if set(records.FieldNombre) {
		d.Nombre = in.draft.Nombre
	}
	if set(records.FieldRNC) {
		d.RNC = in.draft.RNC
	}
	if set(records.FieldCorreo) {
		d.Correo = in.draft.Correo
	}
	if set(records.FieldTelefono) {
		d.Telefono = in.draft.Telefono
	}
	if set(records.FieldDireccion) {
		d.Direccion = in.draft.Direccion
	}
}

// fieldValidator runs the rules of field against a draft holding s.
func fieldValidator(field string) func(string) error {
	return func(s string) error {
		var d records.Draft
		switch field {
		case records.FieldNombre:
			d.Nombre = s
		case records.FieldCorreo:
			d.Correo = s
		}
		if msg := form.ValidateField(d, field); msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}

func huhDraftForm(in *draftInput) error {
	d := &in.draft
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nombre").
				Value(&d.Nombre).
				Validate(fieldValidator(records.FieldNombre)),
			huh.NewInput().
				Title("RNC").
				Value(&d.RNC),
			huh.NewInput().
				Title("Correo").
				Placeholder("correo@ejemplo.com").
				Value(&d.Correo).
				Validate(fieldValidator(records.FieldCorreo)),
			huh.NewInput().
				Title("Teléfono").
				Value(&d.Telefono),
			huh.NewText().
				Title("Dirección").
				Value(&d.Direccion),
		),
	).Run()
}

func huhConfirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Sí").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}
