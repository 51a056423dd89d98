// Package records holds the client record model, the REST-backed
// Repository and the view-time list filter.
//
// The repository is pure transport mapping: no caching, no retries, no
// interpretation beyond turning a 404 into apperrors.ErrNotFound. Caching is
// layered on top by the repositorycache package.
package records
