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

import "unsafe"

// Handle pairs the identity of an object's actual (most-derived) type with
// the address of that most-derived object: "the object at Addr is of the
// type named by ID." Handles are transient; they are produced on demand
// and discarded after use, never persisted.
type Handle struct {
	// ID is the identity of the most-derived type.
	ID Identity
	// Addr is the address of the most-derived object.
	Addr unsafe.Pointer
}

// Valid reports whether the handle describes an object.
func (h Handle) Valid() bool {
	return h.ID.Valid() && h.Addr != nil
}

// Base is one author-declared direct base, not yet resolved against the
// registry. The identity closure is deliberately lazy: evaluating it may
// build the base's descriptor first, which gives the bottom-up recursive
// construction order.
type Base struct {
	// Identity resolves (building if needed) the base's identity.
	Identity func() Identity
	// Convert adjusts a derived address to this base's subobject address.
	Convert Converter
}

// Declaration is everything a participating type declares about itself:
// its direct bases in order, and how to bind a dynamic-type handle into
// one of its subobjects.
type Declaration struct {
	// Bases are the declared direct bases, in order. Empty for roots.
	Bases []Base
	// Bind writes a handle into the declaring type's subobject at the
	// given address.
	Bind func(unsafe.Pointer, Handle)
}

// Object is the contract every participating type satisfies.
//
// TypeBases is the type-level base declaration. DynamicType is the
// self-identification hook: it reports the handle of the most-derived
// object this value belongs to. BindDynamicType stores that handle; it is
// called during adoption and is not meant to be called by general code.
//
// Method promotion through embedding carries the usual hazards: a type
// that embeds exactly one participant inherits its declaration silently,
// and a value whose handle was bound as one of its bases reports that
// base as its dynamic type. Neither case is flagged.
type Object interface {
	TypeBases() []Base
	DynamicType() Handle
	BindDynamicType(Handle)
}
