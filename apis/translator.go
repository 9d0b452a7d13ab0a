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

// Translator answers the same reachability query as the Oracle while
// carrying an address through the converter of every traversed base
// link. Implementations are pure functions over immutable descriptors
// and safe for unsynchronized concurrent use.
type Translator interface {
	// Translate adjusts addr, known to point at an object of type start,
	// to the subobject of type target. Branches are tried in declared
	// order and the first success wins: when target is reachable through
	// more than one path, the result is the first path's subobject, not a
	// disambiguated one. Returns (nil, false) when target is unreachable.
	Translate(target Identity, addr unsafe.Pointer, start Identity) (unsafe.Pointer, bool)
}
