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

package apis

import "reflect"

// Registry owns one immutable descriptor per participating type for the
// life of the process. Implementations must make first-use construction
// behave as a lazy singleton per type: concurrent first callers either
// serialize or all observe the single finalized descriptor, and no
// partially built descriptor is ever visible.
type Registry interface {
	// Obtain returns the identity for t, constructing its descriptor from
	// decl on first use. decl is evaluated at most once per type; resolving
	// the declared bases may recurse into Obtain for other types.
	// Subsequent calls return the same identity without rebuilding.
	Obtain(t reflect.Type, decl func() Declaration) (Identity, error)

	// Lookup returns the identity for t if a descriptor exists.
	Lookup(t reflect.Type) (Identity, bool)

	// Seed installs previously issued entries, preserving their
	// identities. Used by builders to migrate state across rebuilds.
	Seed(entries []Entry) error

	// Entries returns a snapshot for diagnostics/docs (order unspecified).
	Entries() []Entry

	// Count returns the number of registered descriptors.
	Count() int

	// Reset clears all descriptors. Test hook: identities issued before a
	// Reset stay usable but a rebuilt type receives a fresh identity, so
	// the process-lifetime stability promise no longer spans the Reset.
	Reset()
}

// Entry is a single (type, identity) association in a Registry snapshot.
type Entry struct {
	// Type is the participating type.
	Type reflect.Type
	// ID is the issued identity.
	ID Identity
}
