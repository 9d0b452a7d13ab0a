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
	"reflect"
	"unsafe"

	"dirpx.dev/dynt/apis"
)

// TypeID returns the identity of the participating type T, constructing its
// descriptor on first use. The declaration comes from a zero value's
// TypeBases, so the declared base graph must be acyclic and every base must
// itself participate; under that contract construction cannot fail, and the
// result is the same identity for the life of the registry.
func TypeID[T any, PT Participant[T]]() apis.Identity {
	reg := st.Load().reg
	rt := reflect.TypeOf((*T)(nil)).Elem()
	id, err := reg.Obtain(rt, func() apis.Declaration {
		var zero T
		return apis.Declaration{
			Bases: PT(&zero).TypeBases(),
			Bind: func(p unsafe.Pointer, h apis.Handle) {
				PT(p).BindDynamicType(h)
			},
		}
	})
	if err != nil {
		// Obtain only fails on nil arguments, which this call site
		// cannot produce.
		panic(err)
	}
	return id
}

// ObjectID returns the identity of o's actual (most-derived) type, as bound
// by Adopt. The zero Identity means o is nil or was never adopted.
func ObjectID(o apis.Object) apis.Identity {
	if o == nil {
		return apis.Identity{}
	}
	return o.DynamicType().ID
}
