package records

import "time"

// Client is a customer record as returned by the server.
type Client struct {
	ID        int64     `json:"id"`
	Nombre    string    `json:"nombre"`
	RNC       string    `json:"rnc,omitempty"`
	Correo    string    `json:"correo,omitempty"`
	Telefono  string    `json:"telefono,omitempty"`
	Direccion string    `json:"direccion,omitempty"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Draft is the editable subset of a Client sent on create and update.
type Draft struct {
	Nombre    string `json:"nombre"`
	RNC       string `json:"rnc"`
	Correo    string `json:"correo"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
}

// Draft returns the editable fields of c, used to prefill an edit form.
func (c Client) Draft() Draft {
	return Draft{
		Nombre:    c.Nombre,
		RNC:       c.RNC,
		Correo:    c.Correo,
		Telefono:  c.Telefono,
		Direccion: c.Direccion,
	}
}

// Field names as they appear on the wire and in validation errors.
const (
	FieldNombre    = "nombre"
	FieldRNC       = "rnc"
	FieldCorreo    = "correo"
	FieldTelefono  = "telefono"
	FieldDireccion = "direccion"
)
