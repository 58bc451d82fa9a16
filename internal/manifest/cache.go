package manifest

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/zeebo/blake3"
)

// DefaultSignatureTTL bounds how long a cached signature is reused.
const DefaultSignatureTTL = 5 * time.Minute

// Signer produces a signature for serialized manifest bytes.
type Signer interface {
	Sign(ctx context.Context, data []byte) (string, error)
}

// SignerFunc adapts a function to Signer.
type SignerFunc func(ctx context.Context, data []byte) (string, error)

// Sign calls f.
func (f SignerFunc) Sign(ctx context.Context, data []byte) (string, error) {
	return f(ctx, data)
}

// Signed is a serialized manifest and its signature.
type Signed struct {
	Manifest  []byte
	Signature string
}

type cacheEntry struct {
	digest    string
	signature string
	signedAt  time.Time
}

// SignedCache remembers the signature of the last manifest it signed. A
// lookup hits only when the bytes are identical and the signature is
// younger than the TTL. Create one per owner; nothing is shared between
// caches.
type SignedCache struct {
	signer Signer
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	entry *cacheEntry
}

// CacheOption configures a SignedCache.
type CacheOption func(*SignedCache)

// WithClock sets the time source. Used by tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *SignedCache) {
		c.now = now
	}
}

// NewSignedCache returns an empty cache around signer. A ttl <= 0 means
// DefaultSignatureTTL.
func NewSignedCache(signer Signer, ttl time.Duration, opts ...CacheOption) *SignedCache {
	if ttl <= 0 {
		ttl = DefaultSignatureTTL
	}
	c := &SignedCache{signer: signer, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sign returns the signature for data, calling the signer only on a miss.
// A signer error leaves the previous entry in place.
func (c *SignedCache) Sign(ctx context.Context, data []byte) (string, error) {
	sum := blake3.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isStale(digest) {
		return c.entry.signature, nil
	}

	sig, err := c.signer.Sign(ctx, data)
	if err != nil {
		return "", fmt.Errorf("signing manifest: %w", err)
	}
	c.entry = &cacheEntry{digest: digest, signature: sig, signedAt: c.now()}
	return sig, nil
}

// SignManifest marshals m and signs the result.
func (c *SignedCache) SignManifest(ctx context.Context, m Manifest) (*Signed, error) {
	data, err := Marshal(m)
	if err != nil {
		return nil, err
	}
	sig, err := c.Sign(ctx, data)
	if err != nil {
		return nil, err
	}
	return &Signed{Manifest: data, Signature: sig}, nil
}

// Invalidate drops the cached signature.
func (c *SignedCache) Invalidate() {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()
}

// isStale reports whether the entry cannot serve digest. Callers hold mu.
func (c *SignedCache) isStale(digest string) bool {
	if c.entry == nil || c.entry.digest != digest {
		return true
	}
	return c.now().Sub(c.entry.signedAt) > c.ttl
}
