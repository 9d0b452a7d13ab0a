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

// Config carries read-only knobs that influence the components.
// It is passed by value and should be treated as immutable by
// implementations.
type Config struct {
	// MaxDepth bounds base-graph recursion in the oracle, translator and
	// dispatcher. Acts as a safety guard against malformed hand-written
	// declarations that cycle; legitimate hierarchies never approach it.
	// Values <= 0 select the default.
	MaxDepth int

	// CachePlans controls whether the dispatcher memoizes cast plans per
	// (source, destination) pair. Disabling it recomputes the
	// classification on every cast; behavior is unchanged, only cost.
	CachePlans bool
}
