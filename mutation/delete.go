package mutation

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-clientes-sync/pkg/apperrors"
	"github.com/goliatone/go-clientes-sync/records"
)

var errConfirmationClosed = apperrors.New(apperrors.CodeFormClosed, "delete confirmation is no longer open")

// DeleteConfirmation holds the record a delete was requested for. The
// record is only removed by Confirm; Cancel discards the request.
type DeleteConfirmation struct {
	id     uuid.UUID
	ctrl   *Controller
	target records.Client

	mu   sync.Mutex
	open bool
}

// RequestDelete opens a confirmation for target. Nothing is sent until
// Confirm is called.
func (c *Controller) RequestDelete(target records.Client) *DeleteConfirmation {
	return &DeleteConfirmation{
		id:     uuid.New(),
		ctrl:   c,
		target: target,
		open:   true,
	}
}

// Target returns the record the confirmation holds.
func (d *DeleteConfirmation) Target() records.Client {
	return d.target
}

// Open reports whether the confirmation is still awaiting an answer.
func (d *DeleteConfirmation) Open() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Pending reports whether the delete request is in flight.
func (d *DeleteConfirmation) Pending() bool {
	return d.ctrl.isPending(d.id)
}

// Confirm removes the target. On success the confirmation closes; on
// failure it stays open so the operator can retry or cancel.
func (d *DeleteConfirmation) Confirm(ctx context.Context) error {
	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return errConfirmationClosed
	}
	release, err := d.ctrl.acquire(d.id)
	d.mu.Unlock()
	if err != nil {
		return err
	}
	defer release()

	if err := d.ctrl.repo.Delete(d.ctrl.writeContext(ctx), d.target.ID); err != nil {
		d.ctrl.failed("delete", MsgDeleteFailed, err)
		return err
	}

	d.mu.Lock()
	d.open = false
	d.mu.Unlock()

	d.ctrl.succeeded("delete", MsgDeleted)
	return nil
}

// Cancel closes the confirmation without side effects. It reports false when
// the confirmation was already closed or its delete is in flight; a delete
// that was sent can not be taken back.
func (d *DeleteConfirmation) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open || d.ctrl.isPending(d.id) {
		return false
	}
	d.open = false
	return true
}
