/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry

import (
	"errors"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"dirpx.dev/dynt/apis"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("dynt(registry): nil reflect.Type provided")
	// ErrNilDeclaration is returned when a nil declaration closure is provided.
	ErrNilDeclaration = errors.New("dynt(registry): nil declaration provided")
	// ErrInvalidSeed is returned when a seed entry carries the zero identity.
	ErrInvalidSeed = errors.New("dynt(registry): seed entry has invalid identity")
	// ErrConflictingSeed indicates an attempt to seed a type that already
	// has a different identity.
	ErrConflictingSeed = errors.New("dynt(registry): conflicting seed entry")
)

// Option configures a registry during construction.
type Option func(*registry)

// WithLogger attaches a logger for descriptor construction diagnostics.
// Construction is the cold path; nothing is logged after a descriptor
// exists. The default is a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *registry) {
		if l != nil {
			r.log = l
		}
	}
}

// New constructs a Registry. cfg is accepted for interface symmetry with
// the other components; descriptor construction itself has no knobs.
func New(cfg apis.Config, opts ...Option) apis.Registry {
	r := &registry{cfg: cfg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// registry is the default Registry: a sync.Map of finalized descriptors
// with singleflight-collapsed first-use construction.
type registry struct {
	// cfg is the configuration the registry was built for.
	cfg apis.Config
	// log receives construction diagnostics.
	log *zap.Logger
	// group collapses concurrent first builds of the same type.
	group singleflight.Group
	// mu guards write-side consistency and the counter.
	mu sync.Mutex
	// m maps reflect.Type to apis.Identity.
	m sync.Map
	// count tracks the number of registered descriptors.
	count int
}

// Obtain returns the identity for t, building its descriptor on first use.
// The declared bases are resolved before the descriptor is published, so
// construction is bottom-up through the base graph. Identical concurrent
// first callers share a single construction.
func (r *registry) Obtain(t reflect.Type, decl func() apis.Declaration) (apis.Identity, error) {
	// Validate inputs early.
	if t == nil {
		return apis.Identity{}, ErrNilType
	}
	if decl == nil {
		return apis.Identity{}, ErrNilDeclaration
	}

	// Fast read path: the common case after first use.
	if v, ok := r.m.Load(t); ok {
		return v.(apis.Identity), nil
	}

	v, err, _ := r.group.Do(groupKey(t), func() (any, error) {
		// Re-check: another caller may have finished between Load and Do.
		if v, ok := r.m.Load(t); ok {
			return v.(apis.Identity), nil
		}
		return r.build(t, decl()), nil
	})
	if err != nil {
		return apis.Identity{}, err
	}
	return v.(apis.Identity), nil
}

// build finalizes and publishes a descriptor for t. Base identities are
// resolved first; their closures may recurse into Obtain for other types,
// each collapsing under its own singleflight key. A declaration that makes
// a type its own (transitive) base is out of contract and never returns.
func (r *registry) build(t reflect.Type, d apis.Declaration) apis.Identity {
	desc := &apis.Descriptor{
		Type:  t,
		Token: uuid.New(),
		Bind:  d.Bind,
		Bases: make([]apis.BaseLink, 0, len(d.Bases)),
	}
	for _, b := range d.Bases {
		desc.Bases = append(desc.Bases, apis.BaseLink{ID: b.Identity(), Convert: b.Convert})
	}
	id := apis.DescIdentity(desc)

	r.mu.Lock()
	defer r.mu.Unlock()

	// A seed may have installed an identity meanwhile; the first one wins.
	if v, ok := r.m.Load(t); ok {
		return v.(apis.Identity)
	}
	r.m.Store(t, id)
	r.count++
	r.log.Debug("dynt: descriptor built",
		zap.String("type", t.String()),
		zap.Int("bases", desc.BaseCount()),
		zap.String("token", desc.Token.String()))
	return id
}

// Lookup returns the identity for t if a descriptor exists.
func (r *registry) Lookup(t reflect.Type) (apis.Identity, bool) {
	if t == nil {
		return apis.Identity{}, false
	}
	if v, ok := r.m.Load(t); ok {
		return v.(apis.Identity), true
	}
	return apis.Identity{}, false
}

// Seed installs previously issued entries as-is, preserving identities.
// Idempotent for identical entries; re-seeding a type with a different
// identity is a conflict.
func (r *registry) Seed(entries []apis.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range entries {
		if e.Type == nil {
			return ErrNilType
		}
		if !e.ID.Valid() {
			return ErrInvalidSeed
		}
		if v, ok := r.m.Load(e.Type); ok {
			if v.(apis.Identity) == e.ID {
				continue
			}
			return ErrConflictingSeed
		}
		r.m.Store(e.Type, e.ID)
		r.count++
	}
	return nil
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type: key.(reflect.Type),
			ID:   value.(apis.Identity),
		})
		return true
	})
	return entries
}

// Count returns the number of registered descriptors.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all descriptors. See apis.Registry for the stability caveat.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = sync.Map{}
	r.count = 0
}

// groupKey derives the singleflight key for a type. PkgPath alone is not
// unique within a package; String alone can collide across packages.
func groupKey(t reflect.Type) string {
	return t.PkgPath() + "\x00" + t.String()
}
