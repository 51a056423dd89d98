package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-clientes-sync/records"
)

// Route names used by FakeBackend counters, failure injection and gates.
const (
	RouteList   = "GET /clientes"
	RouteGet    = "GET /clientes/{id}"
	RouteCreate = "POST /clientes"
	RouteUpdate = "PUT /clientes/{id}"
	RouteDelete = "DELETE /clientes/{id}"
	RouteStats  = "GET /dashboard/stats"
)

// Gate holds requests to a route until Release is called.
type Gate struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

// Started is signalled once per request that reaches the gate.
func (g *Gate) Started() <-chan struct{} {
	return g.started
}

// Release lets every held (and future) request through.
func (g *Gate) Release() {
	g.once.Do(func() { close(g.release) })
}

// FakeBackend is an in-memory stand-in for the /api server. Deleted records
// are soft-deleted (activo=false) and hidden from the list, as the real
// server does.
type FakeBackend struct {
	server *httptest.Server

	mu       sync.Mutex
	clients  map[int64]records.Client
	nextID   int64
	calls    map[string]int
	failures map[string][]int
	gates    map[string]*Gate
	stats    map[string]any
}

// NewFakeBackend starts a backend seeded with the given records. The server
// is closed when the test ends.
func NewFakeBackend(t testing.TB, seed ...records.Client) *FakeBackend {
	t.Helper()

	b := &FakeBackend{
		clients:  make(map[int64]records.Client),
		calls:    make(map[string]int),
		failures: make(map[string][]int),
		gates:    make(map[string]*Gate),
		stats: map[string]any{
			"total_cotizaciones": 0,
			"cotizaciones_mes":   0,
			"monto_total_mes":    0,
		},
	}
	for _, c := range seed {
		c.Activo = true
		b.clients[c.ID] = c
		if c.ID > b.nextID {
			b.nextID = c.ID
		}
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/clientes", b.handle(RouteList, b.list))
		r.Post("/clientes", b.handle(RouteCreate, b.create))
		r.Get("/clientes/{id}", b.handle(RouteGet, b.get))
		r.Put("/clientes/{id}", b.handle(RouteUpdate, b.update))
		r.Delete("/clientes/{id}", b.handle(RouteDelete, b.remove))
		r.Get("/dashboard/stats", b.handle(RouteStats, b.dashboard))
	})

	b.server = httptest.NewServer(r)
	t.Cleanup(func() {
		b.mu.Lock()
		for _, g := range b.gates {
			g.Release()
		}
		b.mu.Unlock()
		b.server.Close()
	})
	return b
}

// URL returns the API base URL, including the /api prefix.
func (b *FakeBackend) URL() string {
	return b.server.URL + "/api"
}

// Calls returns how many requests reached route.
func (b *FakeBackend) Calls(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[route]
}

// FailNext makes the next request to route answer with status.
// Repeated calls queue further failures.
func (b *FakeBackend) FailNext(route string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = append(b.failures[route], status)
}

// Hold installs a gate on route. Requests block until the gate is released.
func (b *FakeBackend) Hold(route string) *Gate {
	g := &Gate{started: make(chan struct{}, 64), release: make(chan struct{})}
	b.mu.Lock()
	b.gates[route] = g
	b.mu.Unlock()
	return g
}

// SetStat overrides one of the dashboard counters. total_clientes is always
// derived from the active records.
func (b *FakeBackend) SetStat(name string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats[name] = value
}

// Active returns the records that are still listed, ordered by id.
func (b *FakeBackend) Active() []records.Client {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.activeLocked()
}

func (b *FakeBackend) activeLocked() []records.Client {
	out := make([]records.Client, 0, len(b.clients))
	for _, c := range b.clients {
		if c.Activo {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (b *FakeBackend) handle(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls[route]++
		gate := b.gates[route]
		var status int
		if queued := b.failures[route]; len(queued) > 0 {
			status = queued[0]
			b.failures[route] = queued[1:]
		}
		b.mu.Unlock()

		if gate != nil {
			gate.started <- struct{}{}
			<-gate.release
		}
		if status != 0 {
			writeJSON(w, status, map[string]string{"detail": http.StatusText(status)})
			return
		}
		next(w, r)
	}
}

func (b *FakeBackend) list(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	out := b.activeLocked()
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (b *FakeBackend) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	c, found := b.clients[id]
	b.mu.Unlock()
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Cliente no encontrado"})
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (b *FakeBackend) create(w http.ResponseWriter, r *http.Request) {
	var d records.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil || d.Nombre == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "nombre requerido"})
		return
	}

	now := time.Now().UTC()
	b.mu.Lock()
	b.nextID++
	c := fromDraft(b.nextID, d)
	c.CreatedAt, c.UpdatedAt = now, now
	b.clients[c.ID] = c
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, c)
}

func (b *FakeBackend) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var d records.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "cuerpo inválido"})
		return
	}

	b.mu.Lock()
	existing, found := b.clients[id]
	if !found {
		b.mu.Unlock()
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Cliente no encontrado"})
		return
	}
	c := fromDraft(id, d)
	c.Activo = existing.Activo
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	b.clients[id] = c
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, c)
}

func (b *FakeBackend) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	c, found := b.clients[id]
	if found {
		c.Activo = false
		b.clients[id] = c
	}
	b.mu.Unlock()

	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Cliente no encontrado"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Cliente eliminado exitosamente"})
}

func (b *FakeBackend) dashboard(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	out := make(map[string]any, len(b.stats)+1)
	for k, v := range b.stats {
		out[k] = v
	}
	out["total_clientes"] = len(b.activeLocked())
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func fromDraft(id int64, d records.Draft) records.Client {
	return records.Client{
		ID:        id,
		Nombre:    d.Nombre,
		RNC:       d.RNC,
		Correo:    d.Correo,
		Telefono:  d.Telefono,
		Direccion: d.Direccion,
		Activo:    true,
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "id inválido"})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
