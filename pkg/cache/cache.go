// Package cache stores derived chart geometry across processes.
//
// The derivation core keeps exactly one derived state per wrapper in memory.
// This package covers the other case: a CLI run or API request that derives
// the same chart spec again. Entries are opaque byte slices addressed by
// keys from a [Keyer], so any backend can hold them.
//
// # Backends
//
//   - [FileCache]: sharded JSON files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for API deployments
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: never stores anything
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A miss returns (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs per entry type.
const (
	// TTLGeometry applies to derived geometry. Geometry depends only on the
	// spec hash and build version, so entries can live long.
	TTLGeometry = 7 * 24 * time.Hour

	// TTLArtifact applies to rendered topology diagrams.
	TTLArtifact = 7 * 24 * time.Hour
)

// GeometryKeyOpts holds the derivation settings that change geometry for the
// same spec.
type GeometryKeyOpts struct {
	ItemTypes   []string `json:"item_types,omitempty"`
	StackOffset string   `json:"stack_offset,omitempty"`
	Version     string   `json:"version,omitempty"`
}

// ArtifactKeyOpts holds the settings of a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed,omitempty"`
	Version  string `json:"version,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// GeometryKey addresses the derived geometry of a spec.
	GeometryKey(specHash string, opts GeometryKeyOpts) string

	// ArtifactKey addresses a rendered artifact of a spec.
	ArtifactKey(specHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GeometryKey returns "geometry:<sha256>".
func (DefaultKeyer) GeometryKey(specHash string, opts GeometryKeyOpts) string {
	return hashKey("geometry", specHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(specHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", specHash, opts)
}

// GetJSON decodes the entry for key into v. It returns [ErrCacheMiss] when
// the key is absent or the stored bytes no longer decode.
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	data, hit, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if !hit {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(data, v); err != nil {
		return ErrCacheMiss
	}
	return nil
}

// SetJSON encodes v and stores it under key. It returns the encoded size.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) (int, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	return len(data), c.Set(ctx, key, data, ttl)
}
