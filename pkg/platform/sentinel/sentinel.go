package sentinel

import "errors"

// Infrastructure facts returned (optionally wrapped) by record stores and
// backing services. Callers translate them into domain errors at the edge;
// input validation belongs in pkg/domain-errors.
var (
	// ErrNotFound means the store holds no such record.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable means a backing service could not answer.
	ErrUnavailable = errors.New("unavailable")
)
