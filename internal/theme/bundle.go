package theme

import (
	"bytes"
	"encoding/json"

	"github.com/conneroisu/forge/internal/errors"
)

// Bundle is a complete set of tokens of one category. The key set is fixed
// when the bundle is built and iteration always follows declaration order.
//
// Bundles are only built from a canonical key list (see tokens.go), so a live
// bundle and its defaults always share the same keys.
type Bundle[K ~string] struct {
	keys   []K
	values map[K]string
}

func newBundle[K ~string](keys []K, values map[K]string) Bundle[K] {
	b := Bundle[K]{
		keys:   keys,
		values: make(map[K]string, len(keys)),
	}
	for _, k := range keys {
		b.values[k] = values[k]
	}
	return b
}

// Keys returns the keys in declaration order.
func (b Bundle[K]) Keys() []K {
	out := make([]K, len(b.keys))
	copy(out, b.keys)
	return out
}

// Len returns the number of tokens in the bundle.
func (b Bundle[K]) Len() int {
	return len(b.keys)
}

// Get returns the value for key and whether the bundle has that key.
func (b Bundle[K]) Get(key K) (string, bool) {
	v, ok := b.values[key]
	return v, ok
}

// Value returns the value for key, or "" when the key is not part of the bundle.
func (b Bundle[K]) Value(key K) string {
	return b.values[key]
}

// Has reports whether key belongs to the bundle.
func (b Bundle[K]) Has(key K) bool {
	_, ok := b.values[key]
	return ok
}

// Clone returns an independent copy.
func (b Bundle[K]) Clone() Bundle[K] {
	return newBundle(b.keys, b.values)
}

// Equal reports whether both bundles hold the same keys with the same values.
func (b Bundle[K]) Equal(other Bundle[K]) bool {
	if len(b.keys) != len(other.keys) {
		return false
	}
	for _, k := range b.keys {
		v, ok := other.values[k]
		if !ok || v != b.values[k] {
			return false
		}
	}
	return true
}

// Changed lists, in declaration order, the keys whose value differs from
// defaults. Values are compared as exact strings: "#FFFFFF" and "#ffffff"
// differ. A key the defaults lack counts as changed.
func (b Bundle[K]) Changed(defaults Bundle[K]) []K {
	var changed []K
	for _, k := range b.keys {
		if d, ok := defaults.values[k]; !ok || d != b.values[k] {
			changed = append(changed, k)
		}
	}
	return changed
}

// Map returns a plain copy of the values.
func (b Bundle[K]) Map() map[string]string {
	out := make(map[string]string, len(b.keys))
	for _, k := range b.keys {
		out[string(k)] = b.values[k]
	}
	return out
}

func (b *Bundle[K]) set(key K, value string) error {
	if !b.Has(key) {
		return errors.ErrUnknownToken(string(key))
	}
	b.values[key] = value
	return nil
}

// MarshalJSON writes the bundle as an object in declaration order.
func (b Bundle[K]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range b.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(k))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(b.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
