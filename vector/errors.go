package vector

import "errors"

var (
	// ErrIndexNotFound indicates the target index is absent and was not
	// allowed to be created. Operators must run ingestion first.
	ErrIndexNotFound = errors.New("vector index not found")

	// ErrIndexNotReady indicates index creation did not reach the ready
	// state in time.
	ErrIndexNotReady = errors.New("vector index not ready")

	// ErrDimensionMismatch indicates an upsert or query vector whose length
	// does not match the index dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)
