// Package localstore is the client's durable key/value storage.
//
// Higher layers (the credential store and the session holder) keep their
// state under well-known string keys; values are opaque byte slices,
// typically JSON. The storage survives client restarts.
package localstore

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
