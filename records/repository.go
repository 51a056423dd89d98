package records

import (
	"context"
	"net/http"
	"strconv"

	"github.com/goliatone/go-clientes-sync/internal/transport"
	"github.com/goliatone/go-clientes-sync/pkg/apperrors"
)

// Resource is the REST collection and cache namespace for client records.
const Resource = "clientes"

// Repository maps the client REST endpoints to typed calls. Each call issues
// exactly one request and returns transport failures unchanged.
type Repository interface {
	List(ctx context.Context) ([]Client, error)
	GetByID(ctx context.Context, id int64) (Client, error)
	Create(ctx context.Context, draft Draft) (Client, error)
	Update(ctx context.Context, id int64, draft Draft) (Client, error)
	Delete(ctx context.Context, id int64) error
}

type httpRepository struct {
	client transport.Client
}

// NewRepository returns a Repository backed by the given transport.
func NewRepository(client transport.Client) Repository {
	return &httpRepository{client: client}
}

func itemPath(id int64) string {
	return "/" + Resource + "/" + strconv.FormatInt(id, 10)
}

func (r *httpRepository) List(ctx context.Context) ([]Client, error) {
	resp, err := r.client.Get(ctx, "/"+Resource)
	if err != nil {
		return nil, err
	}
	out := []Client{}
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *httpRepository) GetByID(ctx context.Context, id int64) (Client, error) {
	resp, err := r.client.Get(ctx, itemPath(id))
	if err != nil {
		return Client{}, mapNotFound(err, id)
	}
	var out Client
	if err := resp.Decode(&out); err != nil {
		return Client{}, err
	}
	return out, nil
}

func (r *httpRepository) Create(ctx context.Context, draft Draft) (Client, error) {
	resp, err := r.client.Post(ctx, "/"+Resource, draft)
	if err != nil {
		return Client{}, err
	}
	var out Client
	if err := resp.Decode(&out); err != nil {
		return Client{}, err
	}
	return out, nil
}

func (r *httpRepository) Update(ctx context.Context, id int64, draft Draft) (Client, error) {
	resp, err := r.client.Put(ctx, itemPath(id), draft)
	if err != nil {
		return Client{}, mapNotFound(err, id)
	}
	var out Client
	if err := resp.Decode(&out); err != nil {
		return Client{}, err
	}
	return out, nil
}

func (r *httpRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.client.Delete(ctx, itemPath(id)); err != nil {
		return mapNotFound(err, id)
	}
	return nil
}

// mapNotFound turns a 404 into NotFound. The server's message is kept as
// detail; the transport error is not chained, so the result is never also a
// transport failure. Everything else passes through untouched.
func mapNotFound(err error, id int64) error {
	if apperrors.StatusOf(err) != http.StatusNotFound {
		return err
	}
	return apperrors.NotFound(Resource, id, apperrors.MessageOf(err))
}
