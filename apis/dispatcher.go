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

// CastKind tags the static casting strategy selected for a (source,
// destination) type pair. The tag depends only on the static relationship
// between the two types, never on a particular object.
type CastKind uint8

const (
	// CastNone means no strategy applies (an invalid identity was given).
	CastNone CastKind = iota
	// CastUp: destination is a statically reachable base of the source
	// (identity casts included). Always succeeds; no dynamic-type lookup.
	CastUp
	// CastDown: source is statically reachable from the destination, i.e.
	// the cast moves toward the more-derived type. Requires a runtime
	// reachability check against the object's dynamic type.
	CastDown
	// CastCross: the types are statically unrelated in either direction;
	// resolution goes through the translator from the dynamic handle.
	CastCross
	// CastVoid: erasure to an untyped pointer at the most-derived address.
	// Selected by its own entry point; always succeeds, no type check.
	CastVoid
)

// Plan is the once-per-pair decision the dispatcher hands back to a call
// site: which strategy applies, and (for the static strategies) the
// precomputed address adjustment.
type Plan struct {
	// Kind selects the strategy.
	Kind CastKind
	// Adjust is set for CastUp (the composed converter chain along the
	// first source-to-destination path) and for CastDown (the inverse of
	// the constant destination-to-source offset). Nil otherwise.
	Adjust Converter
}

// Dispatcher classifies (source, destination) identity pairs into cast
// plans. Implementations may memoize: the classification is static, so a
// pair's plan never changes while its descriptors live.
type Dispatcher interface {
	// Plan returns the plan for casting from src to dst. dstProbe must
	// return the address of a fresh zero value of the destination type;
	// it is invoked at most once, to measure the constant offset a
	// downcast has to undo.
	Plan(src, dst Identity, dstProbe func() unsafe.Pointer) Plan
}
