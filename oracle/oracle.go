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

package oracle

import (
	"dirpx.dev/dynt/apis"
	"dirpx.dev/dynt/config"
)

// New constructs the default apis.Oracle. Only MaxDepth is used here.
func New(cfg apis.Config) apis.Oracle {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = config.DefaultMaxDepth
	}
	return &oracle{maxDepth: cfg.MaxDepth}
}

// oracle answers reachability by straightforward depth-first recursion
// over the descriptor graph. No memoization: under multiple embedding a
// shared ancestor is re-examined once per path to it, which is accepted
// cost, not a correctness issue.
type oracle struct {
	maxDepth int
}

// Convertible reports whether target is start itself or a direct or
// indirect base of start.
func (o *oracle) Convertible(target, start apis.Identity) bool {
	if !target.Valid() || !start.Valid() {
		return false
	}
	return o.reach(target, start, 0)
}

// reach tries start's direct bases in declared order, short-circuiting on
// the first success. The graph is acyclic by construction, so no visited
// set is kept; maxDepth only stops malformed declarations.
func (o *oracle) reach(target, start apis.Identity, depth int) bool {
	if start == target {
		return true
	}
	if depth >= o.maxDepth {
		return false
	}
	for _, b := range start.Desc().Bases {
		if o.reach(target, b.ID, depth+1) {
			return true
		}
	}
	return false
}
