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

import (
	"reflect"
	"unsafe"

	"github.com/google/uuid"
)

// Converter adjusts an address typed as one participant to the address of
// one of its base subobjects. Converters must be pure: same input address,
// same output address, no side effects.
type Converter func(unsafe.Pointer) unsafe.Pointer

// Descriptor is the immutable per-type record listing a participant's
// direct bases and their address conversions. One Descriptor exists per
// participating type, created lazily on first use and kept for the life
// of the process. All fields are read-only after construction.
type Descriptor struct {
	// Type is the described participant type.
	Type reflect.Type

	// Token is a process-unique diagnostic token. It carries no semantic
	// meaning: Identity equality is descriptor identity, never token
	// comparison. It only makes descriptors distinguishable in logs and
	// registry dumps.
	Token uuid.UUID

	// Bases lists the resolved direct bases in declared order. Every base
	// descriptor is finalized before the descriptor that links to it.
	Bases []BaseLink

	// Bind writes a dynamic-type handle into the subobject located at the
	// given address. Invoked during adoption for every subobject.
	Bind func(unsafe.Pointer, Handle)
}

// BaseCount returns the number of declared direct bases.
func (d *Descriptor) BaseCount() int {
	if d == nil {
		return 0
	}
	return len(d.Bases)
}

// BaseLink is one resolved direct base of a descriptor.
type BaseLink struct {
	// ID is the base's identity.
	ID Identity
	// Convert adjusts an address of the linking type to the address of
	// this base's subobject.
	Convert Converter
}

// Identity is an opaque, process-lifetime-stable token for a participating
// type. Two identities are equal iff they denote the same type. The zero
// Identity is invalid and denotes no type.
type Identity struct {
	desc *Descriptor
}

// DescIdentity wraps a finalized descriptor into its identity. Intended
// for Registry implementations; callers obtain identities from a registry.
func DescIdentity(d *Descriptor) Identity {
	return Identity{desc: d}
}

// Valid reports whether the identity denotes a type.
func (id Identity) Valid() bool {
	return id.desc != nil
}

// Desc returns the underlying descriptor, or nil for the zero Identity.
// The descriptor is read-only.
func (id Identity) Desc() *Descriptor {
	return id.desc
}

// String returns a diagnostic form like "pkg.Type#1a2b3c4d". It is not
// stable across runs and must not be parsed.
func (id Identity) String() string {
	if id.desc == nil {
		return "<invalid>"
	}
	return id.desc.Type.String() + "#" + id.desc.Token.String()[:8]
}
