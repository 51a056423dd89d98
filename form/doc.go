// Package form validates client drafts.
//
// A Validator moves through untouched, invalid(field -> message) and valid.
// Validate reports every violation at once; Change clears or updates the
// message of one field while the user edits it.
package form
