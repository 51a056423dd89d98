package mutation

import "strconv"

// Mode selects the submission path of a form: Create() or Edit(id).
type Mode struct {
	edit bool
	id   int64
}

// Create is the mode of a form for a new client.
func Create() Mode {
	return Mode{}
}

// Edit is the mode of a form for the existing client id.
func Edit(id int64) Mode {
	return Mode{edit: true, id: id}
}

// IsEdit reports whether m is Edit.
func (m Mode) IsEdit() bool {
	return m.edit
}

// ID returns the client id of an Edit mode.
func (m Mode) ID() (int64, bool) {
	return m.id, m.edit
}

func (m Mode) String() string {
	if m.edit {
		return "edit(" + strconv.FormatInt(m.id, 10) + ")"
	}
	return "create"
}

func (m Mode) operation() string {
	if m.edit {
		return "update"
	}
	return "create"
}
