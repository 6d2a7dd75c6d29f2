package kv

import "context"

// Store is a string-keyed blob store. Get reports found=false for a missing
// key instead of an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
