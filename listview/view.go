// Package listview is the view model of the client list: the cached list,
// the search box and the delete confirmation modal.
package listview

import (
	"context"
	"sync"

	"github.com/goliatone/go-clientes-sync/mutation"
	"github.com/goliatone/go-clientes-sync/pkg/apperrors"
	"github.com/goliatone/go-clientes-sync/query"
	"github.com/goliatone/go-clientes-sync/records"
)

var errNoConfirmation = apperrors.New(apperrors.CodeFormClosed, "no delete confirmation is open")

// View holds what the list screen renders. It is safe for concurrent use.
type View struct {
	repo records.Repository
	ctrl *mutation.Controller

	mu      sync.Mutex
	status  query.Status
	err     error
	clients []records.Client
	search  string
	confirm *mutation.DeleteConfirmation
}

// New returns a view reading through repo, normally the cached repository,
// and deleting through ctrl.
func New(repo records.Repository, ctrl *mutation.Controller) *View {
	return &View{repo: repo, ctrl: ctrl, status: query.StatusAbsent}
}

// Load reads the list. Rows keep showing the previous list while loading
// and after a failure.
func (v *View) Load(ctx context.Context) error {
	v.mu.Lock()
	v.status = query.StatusLoading
	v.mu.Unlock()

	clients, err := v.repo.List(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.status = query.StatusErrored
		v.err = err
		return err
	}
	v.status = query.StatusReady
	v.err = nil
	v.clients = clients
	return nil
}

// Status returns the load state and the last load error.
func (v *View) Status() (query.Status, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status, v.err
}

// SetSearch narrows Rows to clients whose name or RNC contains term.
func (v *View) SetSearch(term string) {
	v.mu.Lock()
	v.search = term
	v.mu.Unlock()
}

// Search returns the current search term.
func (v *View) Search() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.search
}

// Rows returns the loaded clients matching the search term.
func (v *View) Rows() []records.Client {
	v.mu.Lock()
	defer v.mu.Unlock()
	return records.Filter(v.clients, v.search)
}

// RequestDelete opens the delete modal for target. Only one modal can be
// open at a time; a second request fails with ConfirmationOpen.
func (v *View) RequestDelete(target records.Client) (*mutation.DeleteConfirmation, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.confirm != nil && (v.confirm.Open() || v.confirm.Pending()) {
		return nil, apperrors.Newf(apperrors.CodeConfirmationOpen,
			"delete confirmation for client %d is already open", v.confirm.Target().ID)
	}
	v.confirm = v.ctrl.RequestDelete(target)
	return v.confirm, nil
}

// Confirmation returns the open delete modal, if any.
func (v *View) Confirmation() (*mutation.DeleteConfirmation, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.confirm == nil || !v.confirm.Open() {
		return nil, false
	}
	return v.confirm, true
}

// ConfirmDelete removes the record held by the modal and reloads the list.
// A failed delete keeps the modal open.
func (v *View) ConfirmDelete(ctx context.Context) error {
	confirm, ok := v.Confirmation()
	if !ok {
		return errNoConfirmation
	}
	if err := confirm.Confirm(ctx); err != nil {
		return err
	}

	v.mu.Lock()
	if v.confirm == confirm {
		v.confirm = nil
	}
	v.mu.Unlock()

	return v.Load(ctx)
}

// CancelDelete closes the modal without side effects. It reports false when
// no modal was open or its delete is already in flight; the modal then stays
// open until the delete settles.
func (v *View) CancelDelete() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.confirm == nil || !v.confirm.Cancel() {
		return false
	}
	v.confirm = nil
	return true
}

// Refresh drops every cached client entry, when the repository caches, and
// loads the list again.
func (v *View) Refresh(ctx context.Context) error {
	if r, ok := v.repo.(refresher); ok {
		r.Refresh(ctx)
	}
	return v.Load(ctx)
}

type refresher interface {
	Refresh(ctx context.Context) int
}
