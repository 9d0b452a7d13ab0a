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

package dynt

import (
	"unsafe"

	"dirpx.dev/dynt/apis"
)

// Participant constrains a type parameter to a pointer to a participating
// type: one that declares its bases (TypeBases) and carries the
// self-identification hook (usually by embedding Dyn). Types that do not
// participate fail instantiation — the compiler rejects them, the runtime
// never sees them.
type Participant[T any] interface {
	*T
	apis.Object
}

// Dyn is the dynamic-type slot every participating type embeds directly,
// one per type, the way every polymorphic C++ class carries its own vptr.
// Adopt binds the slot; until then it reports the zero handle and dynamic
// casts on the object fail with nil.
//
// A type embedding two participating bases inherits two promoted slots at
// equal depth, which Go treats as ambiguous: embedding your own Dyn (at
// depth one, shadowing both) restores the method set.
type Dyn struct {
	h apis.Handle
}

// DynamicType reports the handle bound by Adopt.
func (d *Dyn) DynamicType() apis.Handle {
	return d.h
}

// BindDynamicType stores h. Called during adoption; not meant for
// general code.
func (d *Dyn) BindDynamicType(h apis.Handle) {
	d.h = h
}

// HandleOf returns the dynamic-type handle describing p as a most-derived
// object of type T.
func HandleOf[T any, PT Participant[T]](p PT) apis.Handle {
	return apis.Handle{ID: TypeID[T, PT](), Addr: unsafe.Pointer(p)}
}

// BaseOf declares a direct base through its subobject accessor:
//
//	func (*C) TypeBases() []apis.Base {
//		return []apis.Base{
//			dynt.BaseOf(func(c *C) *A { return &c.A }),
//			dynt.BaseOf(func(c *C) *B { return &c.B }),
//		}
//	}
//
// The accessor is erased into an address converter; the base's identity
// resolves lazily, so descriptor construction recurses bottom-up through
// the base graph on first use.
func BaseOf[T, B any, PT Participant[T], PB Participant[B]](get func(PT) PB) apis.Base {
	return apis.Base{
		Identity: func() apis.Identity { return TypeID[B, PB]() },
		Convert: func(p unsafe.Pointer) unsafe.Pointer {
			return unsafe.Pointer(get(PT(p)))
		},
	}
}

// Adopt finalizes a freshly constructed object: it walks the descriptor
// graph and binds the most-derived handle into the Dyn slot of every
// subobject, the way a constructor writes vptrs. Returns p for chaining:
//
//	c := dynt.Adopt(&C{...})
//
// Adopt must run before the object is used as a dynamic cast source, and
// again if the object is ever copied or moved. Adopting a subobject
// instead of the whole object binds the subtree as if it were a
// most-derived object — wrong and unflagged, as with any hand-rolled
// identity scheme.
func Adopt[T any, PT Participant[T]](p PT) PT {
	if p == nil {
		return p
	}
	h := HandleOf[T, PT](p)
	bindAll(h, h.ID, h.Addr)
	return p
}

// bindAll binds h into the subobject of type id at addr, then into each of
// its base subobjects. The walk is by subobject, not by type: duplicated
// same-typed subobjects are each visited through their own converter.
func bindAll(h apis.Handle, id apis.Identity, addr unsafe.Pointer) {
	d := id.Desc()
	if d == nil {
		return
	}
	if d.Bind != nil {
		d.Bind(addr, h)
	}
	for _, b := range d.Bases {
		bindAll(h, b.ID, b.Convert(addr))
	}
}
