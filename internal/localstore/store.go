// Package localstore is the dashboard's persistent local cache: a small
// key/value store holding JSON documents such as the full task list.
package localstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

// ErrEncoding marks a value that could not be serialized or deserialized
var ErrEncoding = errors.New("local store encoding failed")

// Store reads and writes JSON documents by key
type Store interface {
	// Get decodes the value stored under key into dest. It reports false
	// when the key is absent.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value any) error
}

func encode(key string, value any) ([]byte, error) {
	data, err := sonic.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: key %q: %v", ErrEncoding, key, err)
	}
	return data, nil
}

func decode(key string, data []byte, dest any) error {
	if err := sonic.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: key %q: %v", ErrEncoding, key, err)
	}
	return nil
}
