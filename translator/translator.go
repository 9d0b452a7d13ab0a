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

package translator

import (
	"unsafe"

	"dirpx.dev/dynt/apis"
	"dirpx.dev/dynt/config"
)

// New constructs the default apis.Translator. Only MaxDepth is used here.
func New(cfg apis.Config) apis.Translator {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = config.DefaultMaxDepth
	}
	return &translator{maxDepth: cfg.MaxDepth}
}

// translator shares the oracle's recursion shape but threads an address
// through the converter of every traversed base link. One converter runs
// per level on the successful path, plus whatever a failed earlier branch
// consumed before backtracking.
type translator struct {
	maxDepth int
}

// Translate adjusts addr from an object of type start to its subobject of
// type target. First declared-order success wins.
func (tr *translator) Translate(target apis.Identity, addr unsafe.Pointer, start apis.Identity) (unsafe.Pointer, bool) {
	if !target.Valid() || !start.Valid() || addr == nil {
		return nil, false
	}
	return tr.walk(target, addr, start, 0)
}

func (tr *translator) walk(target apis.Identity, addr unsafe.Pointer, start apis.Identity, depth int) (unsafe.Pointer, bool) {
	if start == target {
		return addr, true
	}
	if depth >= tr.maxDepth {
		return nil, false
	}
	for _, b := range start.Desc().Bases {
		if out, ok := tr.walk(target, b.Convert(addr), b.ID, depth+1); ok {
			return out, true
		}
	}
	return nil, false
}
