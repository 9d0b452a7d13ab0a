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

// Cast converts src, a pointer to a subobject of type S, into a pointer to
// the D subobject of the same object, or nil when the object's actual type
// has no D along the requested relationship. The source's type parameter is
// inferred, so call sites name only the destination:
//
//	d := dynt.Cast[dog](pa)
//
// Upcasts succeed unconditionally from the static graph alone. Downcasts
// and cross-casts consult the object's bound dynamic-type handle, so the
// object must have been adopted; an unadopted source yields nil. A nil src
// yields nil.
func Cast[D, S any, PD Participant[D], PS Participant[S]](src PS) PD {
	var null PD
	if src == nil {
		return null
	}

	s := st.Load()
	sid := TypeID[S, PS]()
	did := TypeID[D, PD]()

	plan := s.dsp.Plan(sid, did, func() unsafe.Pointer {
		return unsafe.Pointer(new(D))
	})

	switch plan.Kind {
	case apis.CastUp:
		return PD(plan.Adjust(unsafe.Pointer(src)))

	case apis.CastDown:
		// The offset adjustment is valid only when the object really has
		// a D whose S subobject is this one; the oracle check against the
		// bound dynamic type guards it.
		h := src.DynamicType()
		if !h.Valid() || !s.orc.Convertible(did, h.ID) {
			return null
		}
		return PD(plan.Adjust(unsafe.Pointer(src)))

	case apis.CastCross:
		h := src.DynamicType()
		if !h.Valid() {
			return null
		}
		out, ok := s.trn.Translate(did, h.Addr, h.ID)
		if !ok {
			return null
		}
		return PD(out)

	default:
		return null
	}
}

// Erase returns the address of the most-derived object src belongs to, the
// dynamic analog of converting to void*. Two subobject pointers into the
// same object erase to the same address. Returns nil for a nil or
// unadopted source.
func Erase[T any, PT Participant[T]](src PT) unsafe.Pointer {
	if src == nil {
		return nil
	}
	return src.DynamicType().Addr
}
