package ports

import "context"

// KVStore is the string key-value store the domain store mirrors its state
// into. An absent key reports found=false with a nil error.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}
