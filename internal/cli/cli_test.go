package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-clientes-sync/dashboard"
	"github.com/goliatone/go-clientes-sync/mutation"
	"github.com/goliatone/go-clientes-sync/pkg/testsupport"
	"github.com/goliatone/go-clientes-sync/records"
)

type run struct {
	stdout string
	stderr string
	err    error
}

// execute runs the command tree against backend with scripted prompts.
func execute(t *testing.T, backend *testsupport.FakeBackend, a *app, args ...string) run {
	t.Helper()
	t.Setenv("CLIENTES_LOG_LEVEL", "error")

	if a.confirm == nil {
		a.confirm = func(string) (bool, error) {
			t.Fatal("unexpected confirmation prompt")
			return false, nil
		}
	}
	if a.editDraft == nil {
		a.editDraft = func(*draftInput) error {
			t.Fatal("unexpected form prompt")
			return nil
		}
	}

	root := newRootCommand(a)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--base-url", backend.URL()}, args...))

	err := root.Execute()
	return run{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestList(t *testing.T) {
	backend := testsupport.NewFakeBackend(t, testsupport.SampleClients()...)

	res := execute(t, backend, &app{}, "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Acme Dominicana")
	assert.Contains(t, res.stdout, "Juan Pérez")

	res = execute(t, backend, &app{}, "list", "--search", "caribe", "--json")
	require.NoError(t, res.err)

	var rows []records.Client
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Ferretería Caribe", rows[0].Nombre)
}

func TestTextOutput(t *testing.T) {
	backend := testsupport.NewFakeBackend(t, testsupport.SampleClients()...)

	tests := []struct {
		golden string
		args   []string
	}{
		{"list.txt", []string{"list"}},
		{"get.txt", []string{"get", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			res := execute(t, backend, &app{}, tt.args...)
			require.NoError(t, res.err)
			testsupport.CompareWithGolden(t, testsupport.GoldenPath(tt.golden), []byte(res.stdout))
		})
	}
}

func TestGet(t *testing.T) {
	backend := testsupport.NewFakeBackend(t, testsupport.SampleClients()...)

	res := execute(t, backend, &app{}, "get", "3")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Calle 1")

	res = execute(t, backend, &app{}, "get", "99")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "cliente no encontrado")

	res = execute(t, backend, &app{}, "get", "abc")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "invalid client id")
	assert.Equal(t, 2, backend.Calls(testsupport.RouteGet))
}

func TestCreate_WithFlags(t *testing.T) {
	backend := testsupport.NewFakeBackend(t)

	res := execute(t, backend, &app{}, "create", "--nombre", "Acme", "--correo", "a@b.com", "--json")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, mutation.MsgCreated)

	var created records.Client
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &created))
	assert.Equal(t, "Acme", created.Nombre)
	assert.Len(t, backend.Active(), 1)
}

func TestCreate_InvalidDraftMakesNoRequest(t *testing.T) {
	backend := testsupport.NewFakeBackend(t)

	res := execute(t, backend, &app{}, "create", "--nombre", "  ", "--correo", "nope")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "El nombre es requerido")
	assert.Contains(t, res.err.Error(), "Email inválido")
	assert.Contains(t, res.stderr, mutation.MsgFixFormErrors)
	assert.Equal(t, 0, backend.Calls(testsupport.RouteCreate))
}

func TestCreate_Interactive(t *testing.T) {
	backend := testsupport.NewFakeBackend(t)
	a := &app{editDraft: func(in *draftInput) error {
		in.draft.Nombre = "Globex"
		in.draft.Telefono = "809-000-0000"
		return nil
	}}

	res := execute(t, backend, a, "create")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Globex")
	assert.Equal(t, "809-000-0000", backend.Active()[0].Telefono)
}

func TestEdit_MergesFlagsOverCurrentRecord(t *testing.T) {
	backend := testsupport.NewFakeBackend(t, testsupport.SampleClients()...)

	res := execute(t, backend, &app{}, "edit", "1", "--telefono", "809-555-0000")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, mutation.MsgUpdated)

	updated := backend.Active()[0]
	assert.Equal(t, "Acme Dominicana", updated.Nombre)
	assert.Equal(t, "ventas@acme.do", updated.Correo)
	assert.Equal(t, "809-555-0000", updated.Telefono)
}

func TestDelete(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		backend := testsupport.NewFakeBackend(t, testsupport.SampleClients()...)
		var asked string
		a := &app{confirm: func(title string) (bool, error) {
			asked = title
			return false, nil
		}}

		res := execute(t, backend, a, "delete", "1")
		require.NoError(t, res.err)
		assert.Contains(t, asked, "Acme Dominicana")
		assert.Contains(t, res.stderr, "cancelada")
		assert.Equal(t, 0, backend.Calls(testsupport.RouteDelete))
		assert.Len(t, backend.Active(), 3)
	})

	t.Run("confirmed", func(t *testing.T) {
		backend := testsupport.NewFakeBackend(t, testsupport.SampleClients()...)
		a := &app{confirm: func(string) (bool, error) { return true, nil }}

		res := execute(t, backend, a, "delete", "1")
		require.NoError(t, res.err)
		assert.Contains(t, res.stderr, mutation.MsgDeleted)
		assert.Len(t, backend.Active(), 2)
	})

	t.Run("yes flag skips prompt", func(t *testing.T) {
		backend := testsupport.NewFakeBackend(t, testsupport.SampleClients()...)

		res := execute(t, backend, &app{}, "delete", "2", "--yes")
		require.NoError(t, res.err)
		assert.Equal(t, 1, backend.Calls(testsupport.RouteDelete))
	})

	t.Run("prompt error", func(t *testing.T) {
		backend := testsupport.NewFakeBackend(t, testsupport.SampleClients()...)
		a := &app{confirm: func(string) (bool, error) { return false, errors.New("user aborted") }}

		res := execute(t, backend, a, "delete", "1")
		require.Error(t, res.err)
		assert.Equal(t, 0, backend.Calls(testsupport.RouteDelete))
	})
}

func TestDashboard(t *testing.T) {
	backend := testsupport.NewFakeBackend(t, testsupport.SampleClients()...)
	backend.SetStat("total_cotizaciones", 4)

	res := execute(t, backend, &app{}, "dashboard", "--recent", "2", "--json")
	require.NoError(t, res.err)

	var out struct {
		Stats   dashboard.Stats  `json:"stats"`
		Recent  []records.Client `json:"recent"`
		Clients int              `json:"clients"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, 3, out.Stats.TotalClientes)
	assert.Equal(t, 4, out.Stats.TotalCotizaciones)
	assert.Equal(t, 3, out.Clients)
	require.Len(t, out.Recent, 2)
	assert.Equal(t, int64(3), out.Recent[0].ID)

	res = execute(t, backend, &app{}, "dashboard")
	require.NoError(t, res.err)
	assert.True(t, strings.Contains(res.stdout, "Total clientes:      3"), res.stdout)
}
