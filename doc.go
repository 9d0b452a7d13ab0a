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

// Package dynt provides runtime type identification and checked
// polymorphic pointer casting over struct embedding, without interface
// assertions or reflect on the cast path.
//
// dynt treats struct embedding as subobject inheritance: a type that
// embeds other participating types declares them as bases, receives a
// process-stable identity, and can be cast along the base graph the way
// dynamic_cast walks a class hierarchy — up, down, across, and to the
// most-derived address.
//
// # Participation
//
// A type opts in by embedding dynt.Dyn (its dynamic-type slot), embedding
// its bases as fields, and declaring those bases:
//
//	type animal struct {
//		dynt.Dyn
//		name string
//	}
//
//	func (*animal) TypeBases() []apis.Base { return nil }
//
//	type dog struct {
//		dynt.Dyn
//		animal
//		pet
//	}
//
//	func (*dog) TypeBases() []apis.Base {
//		return []apis.Base{
//			dynt.BaseOf(func(d *dog) *animal { return &d.animal }),
//			dynt.BaseOf(func(d *dog) *pet { return &d.pet }),
//		}
//	}
//
// Construction ends with adoption, which walks the base graph and binds
// the most-derived handle into every subobject's Dyn slot — the analog of
// a constructor writing vptrs:
//
//	d := dynt.Adopt(&dog{})
//
// After that, casts work from any subobject pointer:
//
//	var pa *animal = &d.animal
//	back := dynt.Cast[dog](pa)     // downcast; == d
//	pp := dynt.Cast[pet](pa)       // cross-cast; == &d.pet
//	raw := dynt.Erase(pa)          // most-derived address; == Erase(pp)
//
// Cast returns nil when the object's actual type does not support the
// conversion. Upcasts need no adoption; downcasts, cross-casts, and Erase
// read the bound handle and return nil on unadopted objects.
//
// # Design
//
// The core of dynt is a read-mostly global snapshot (state). The snapshot
// holds five components behind the apis contracts:
//
//   - Config: tuning knobs — the base-graph depth bound and whether cast
//     plans are memoized.
//
//   - Registry: one immutable descriptor per participating type, built
//     lazily on first use and kept for the life of the process. Identities
//     are descriptor pointers, so identity comparison is pointer equality.
//
//   - Oracle: answers "is target a base-or-self of start" by depth-first
//     recursion over the descriptor graph.
//
//   - Translator: the same recursion, threading an object address through
//     the converter of every traversed base link. This is how cross-casts
//     and runtime-checked conversions produce adjusted pointers.
//
//   - Dispatcher: classifies a (source, destination) pair into a cast
//     strategy from the static graph alone — upcast, downcast, cross-cast —
//     and precomputes the address adjustment where the strategy allows it.
//
//   - Builder: a pluggable factory constructing the above for a given
//     Config (and optional extension data), migrating registry state
//     across rebuilds so issued identities stay valid.
//
// Readers load the state pointer atomically and never take locks; writers
// (SetConfig, SetBuilder, SetExt, SetRegistry, SetOracle, SetTranslator,
// SetDispatcher, SetAll) take a short build mutex, assemble a brand-new
// state, and publish it with an atomic swap.
//
// # Pinning
//
// SetRegistry and SetDispatcher pin the layer they install: later
// reconfigurations leave a pinned layer untouched until UnpinRegistry or
// UnpinDispatcher. The oracle and translator are pure functions of the
// configuration and carry no pin.
//
// # Semantics and caveats
//
// Convertibility searches the declared bases in order and commits to the
// first path found. Under repeated (non-virtual-style) embedding of the
// same base the first declared path wins silently; there is no ambiguity
// detection. Base declarations must be acyclic — the depth bound turns a
// declared cycle into a failed search instead of unbounded recursion, but
// cycles are out of contract.
//
// Adoption is the caller's responsibility: objects must be re-adopted
// after being copied or moved, and adopting a subobject brands the subtree
// as a most-derived object without complaint. Method promotion through
// embedding inherits base declarations silently; a derived type that
// forgets its own TypeBases registers as structurally identical to its
// base.
//
// # Scope
//
// dynt solves one job: given pointers into objects built from embedded
// participating structs, identify the object's actual type and convert
// between subobject pointers safely. Serialization, reflection-based
// discovery, and cross-process identity belong to higher layers.
package dynt
