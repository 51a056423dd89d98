package mutation

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-clientes-sync/form"
	"github.com/goliatone/go-clientes-sync/pkg/apperrors"
	"github.com/goliatone/go-clientes-sync/records"
)

var errFormClosed = apperrors.New(apperrors.CodeFormClosed, "form was closed before the response arrived")

// Form is one create or edit form instance. It is safe for concurrent use;
// at most one Submit per form is in flight.
type Form struct {
	id        uuid.UUID
	mode      Mode
	ctrl      *Controller
	validator *form.Validator

	mu     sync.Mutex
	closed bool
	draft  records.Draft
	saved  *records.Client
}

// NewForm opens a form in mode.
func (c *Controller) NewForm(mode Mode) *Form {
	return &Form{
		id:        uuid.New(),
		mode:      mode,
		ctrl:      c,
		validator: form.NewValidator(),
	}
}

// ID identifies the form; it keys the pending flag.
func (f *Form) ID() uuid.UUID { return f.id }

// Mode returns whether the form creates or edits a record.
func (f *Form) Mode() Mode { return f.mode }

// State returns the validation state.
func (f *Form) State() form.State {
	return f.validator.State()
}

// Pending reports whether a submit is in flight.
func (f *Form) Pending() bool {
	return f.ctrl.isPending(f.id)
}

// Draft returns the last loaded or submitted draft.
func (f *Form) Draft() records.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Saved returns the record returned by the last successful submit.
func (f *Form) Saved() (records.Client, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saved == nil {
		return records.Client{}, false
	}
	return *f.saved, true
}

// Load prefills the form. In create mode the draft is empty; in edit mode
// the record is read through the repository and a failure (NotFound
// included) is reported as a load error notification.
func (f *Form) Load(ctx context.Context) (records.Draft, error) {
	id, edit := f.mode.ID()
	if !edit {
		return records.Draft{}, nil
	}

	client, err := f.ctrl.repo.GetByID(ctx, id)
	if f.isClosed() {
		return records.Draft{}, errFormClosed
	}
	if err != nil {
		f.ctrl.logger.Error("loading client failed", "id", id, "error", err)
		f.ctrl.notifier.Error(MsgLoadFailed)
		return records.Draft{}, err
	}

	draft := client.Draft()
	f.mu.Lock()
	f.draft = draft
	f.mu.Unlock()
	return draft, nil
}

// Change re-evaluates field after an edit, clearing its stale error.
func (f *Form) Change(field string, draft records.Draft) form.State {
	f.mu.Lock()
	f.draft = draft
	f.mu.Unlock()
	return f.validator.Change(field, draft)
}

// Submit validates draft and creates or updates the client.
//
// A submit while another one is in flight fails with AlreadyPending. An
// invalid draft fails with a validation error listing every field and never
// reaches the repository. When the form was closed before the response
// arrived the result is discarded and ErrFormClosed is returned.
func (f *Form) Submit(ctx context.Context, draft records.Draft) (records.Client, error) {
	if f.isClosed() {
		return records.Client{}, errFormClosed
	}

	release, err := f.ctrl.acquire(f.id)
	if err != nil {
		return records.Client{}, err
	}
	defer release()

	f.mu.Lock()
	f.draft = draft
	f.mu.Unlock()

	if err := f.validator.Validate(draft); err != nil {
		f.ctrl.notifier.Error(MsgFixFormErrors)
		return records.Client{}, err
	}

	client, err := f.dispatch(f.ctrl.writeContext(ctx), draft)
	if f.isClosed() {
		return records.Client{}, errFormClosed
	}

	operation := f.mode.operation()
	if err != nil {
		f.ctrl.failed(operation, MsgSaveFailed, err)
		return records.Client{}, err
	}

	f.mu.Lock()
	f.saved = &client
	f.mu.Unlock()

	if f.mode.IsEdit() {
		f.ctrl.succeeded(operation, MsgUpdated)
	} else {
		f.ctrl.succeeded(operation, MsgCreated)
	}
	return client, nil
}

func (f *Form) dispatch(ctx context.Context, draft records.Draft) (records.Client, error) {
	if id, edit := f.mode.ID(); edit {
		return f.ctrl.repo.Update(ctx, id, draft)
	}
	return f.ctrl.repo.Create(ctx, draft)
}

// Close abandons the form. A request already in flight still completes
// but its result is dropped without notification.
func (f *Form) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *Form) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
