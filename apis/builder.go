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

// Builder composes the four components from a Config.
// Implementations may migrate state from previous instances (prev*), or
// ignore them. ext is an optional extension context; its meaning is
// implementation-defined.
type Builder interface {
	// BuildRegistry constructs a Registry for Config. Migrating the
	// previous registry's entries keeps already-issued identities valid
	// across the rebuild.
	BuildRegistry(cfg Config, prev Registry, ext any) Registry
	// BuildOracle constructs an Oracle for Config.
	BuildOracle(cfg Config, ext any) Oracle
	// BuildTranslator constructs a Translator for Config.
	BuildTranslator(cfg Config, ext any) Translator
	// BuildDispatcher constructs a Dispatcher for Config. May reuse state
	// from the previous dispatcher.
	BuildDispatcher(cfg Config, prev Dispatcher, ext any) Dispatcher
}
