package assets

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/starbugmolt/starbug/internal/errors"
)

// ManifestName is the file a Source may carry to map asset names to
// fingerprinted names, e.g. {"site.css": "site.3f9a1c.css"}.
const ManifestName = "manifest.json"

// Manifest maps source asset names to fingerprinted names. It is safe for
// concurrent use.
type Manifest struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{entries: make(map[string]string)}
}

// ReadManifest decodes a JSON manifest.
func ReadManifest(r io.Reader) (*Manifest, error) {
	entries := make(map[string]string)
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, err
	}
	return &Manifest{entries: entries}, nil
}

// LoadManifest reads ManifestName from src. A source without a manifest
// gives an empty one.
func LoadManifest(ctx context.Context, src Source) (*Manifest, error) {
	obj, err := src.Open(ctx, ManifestName)
	if errors.Is(err, ErrNotFound) {
		return NewManifest(), nil
	}
	if err != nil {
		return nil, err
	}
	defer obj.Body.Close()

	m, err := ReadManifest(obj.Body)
	if err != nil {
		return nil, errors.New("E142").WithDetail(ManifestName).Wrap(err)
	}
	return m, nil
}

// Resolve returns the fingerprinted name, or name itself when unmapped.
func (m *Manifest) Resolve(name string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if resolved, ok := m.entries[name]; ok {
		return resolved
	}
	return name
}

// Set adds or replaces an entry.
func (m *Manifest) Set(name, resolved string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[name] = resolved
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// Resolver turns an asset name into its public URL.
type Resolver interface {
	Asset(name string) string
}

type manifestResolver struct {
	manifest *Manifest
	prefix   string
}

// NewResolver returns a Resolver that prefixes names after looking them up
// in m. A nil manifest passes names through.
//
//	r := assets.NewResolver("/static/", m)
//	r.Asset("site.css") // "/static/site.3f9a1c.css"
func NewResolver(prefix string, m *Manifest) Resolver {
	if m == nil {
		m = NewManifest()
	}
	return &manifestResolver{manifest: m, prefix: prefix}
}

func (r *manifestResolver) Asset(name string) string {
	return r.prefix + r.manifest.Resolve(name)
}
