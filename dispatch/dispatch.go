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

package dispatch

import (
	"sync"
	"unsafe"

	"dirpx.dev/dynt/apis"
	"dirpx.dev/dynt/config"
)

// New constructs the default apis.Dispatcher. The plan cache is enabled
// per cfg.CachePlans; MaxDepth bounds path composition.
func New(cfg apis.Config) apis.Dispatcher {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = config.DefaultMaxDepth
	}
	d := &dispatcher{maxDepth: cfg.MaxDepth}
	if cfg.CachePlans {
		d.cache = &sync.Map{}
	}
	return d
}

// dispatcher classifies (src, dst) pairs into one of the cast strategies.
// The classification depends only on the static descriptor graph, so a
// pair's plan is computed once and memoized.
type dispatcher struct {
	maxDepth int
	// cache maps planKey to apis.Plan; nil when caching is disabled.
	cache *sync.Map
}

// planKey identifies one (source, destination) static pair.
type planKey struct {
	src, dst apis.Identity
}

// Plan returns the cast plan for the pair. See apis.Dispatcher.
func (d *dispatcher) Plan(src, dst apis.Identity, dstProbe func() unsafe.Pointer) apis.Plan {
	if !src.Valid() || !dst.Valid() {
		return apis.Plan{Kind: apis.CastNone}
	}
	if d.cache != nil {
		if v, ok := d.cache.Load(planKey{src: src, dst: dst}); ok {
			return v.(apis.Plan)
		}
	}
	p := d.classify(src, dst, dstProbe)
	if d.cache != nil {
		d.cache.Store(planKey{src: src, dst: dst}, p)
	}
	return p
}

// classify picks the strategy from the static relationship between the
// two types, mirroring what an overload set would decide at compile time.
func (d *dispatcher) classify(src, dst apis.Identity, dstProbe func() unsafe.Pointer) apis.Plan {
	// Upcast (identity casts included): destination statically reachable
	// from the source. The adjustment is the converter chain composed
	// along the first declared-order path, so casting needs no search,
	// no oracle, and no dynamic-type handle.
	if conv, ok := d.compose(dst, src, 0); ok {
		if conv == nil {
			conv = keep
		}
		return apis.Plan{Kind: apis.CastUp, Adjust: conv}
	}

	// Downcast: source statically reachable from the destination. The
	// composed destination-to-source converter has a constant offset for
	// subobject bases; probe it once against a zero value and undo it at
	// cast time. Converters that are not fixed-offset cannot be inverted
	// this way, the same restriction static_cast places on virtual bases.
	if conv, ok := d.compose(src, dst, 0); ok {
		if conv == nil {
			conv = keep
		}
		probe := dstProbe()
		off := int(uintptr(conv(probe)) - uintptr(probe))
		return apis.Plan{
			Kind: apis.CastDown,
			Adjust: func(p unsafe.Pointer) unsafe.Pointer {
				return unsafe.Add(p, -off)
			},
		}
	}

	// Statically unrelated in either direction: resolved per cast through
	// the translator from the object's dynamic handle.
	return apis.Plan{Kind: apis.CastCross}
}

// compose returns the converter chain from start to target along the first
// declared-order path. A nil converter with ok=true means start == target
// (no adjustment).
func (d *dispatcher) compose(target, start apis.Identity, depth int) (apis.Converter, bool) {
	if start == target {
		return nil, true
	}
	if depth >= d.maxDepth {
		return nil, false
	}
	for _, b := range start.Desc().Bases {
		rest, ok := d.compose(target, b.ID, depth+1)
		if !ok {
			continue
		}
		if rest == nil {
			return b.Convert, true
		}
		step := b.Convert
		return func(p unsafe.Pointer) unsafe.Pointer {
			return rest(step(p))
		}, true
	}
	return nil, false
}

// keep is the identity adjustment.
func keep(p unsafe.Pointer) unsafe.Pointer { return p }
