// Package storage provides the key-value persistence collaborator for the
// tailoring session: the serialized Master Profile, the snapshot list, and
// the in-progress session state the CLI carries between invocations.
package storage

import (
	"context"
	"errors"
)

// Logical keys used by the session.
const (
	KeyMasterProfile = "master_profile"
	KeySnapshots     = "snapshots"
	KeySessionState  = "session_state"
)

// ErrQuotaExceeded reports a write rejected for lack of space. Callers
// surface it to the user; in-memory state stays authoritative.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// KV is an opaque key-value store. Get on an absent key returns ok=false
// with a nil error; absence is not a failure.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
