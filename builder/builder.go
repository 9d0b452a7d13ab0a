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

package builder

import (
	"go.uber.org/zap"

	"dirpx.dev/dynt/apis"
	"dirpx.dev/dynt/dispatch"
	"dirpx.dev/dynt/oracle"
	"dirpx.dev/dynt/registry"
	"dirpx.dev/dynt/translator"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry based on the provided
// configuration and pre-existing registry. A previous registry's entries are
// migrated as-is so identities issued before the rebuild stay valid.
// When ext is a *zap.Logger, it receives descriptor construction diagnostics.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry, ext any) apis.Registry {
	var opts []registry.Option
	if l, ok := ext.(*zap.Logger); ok {
		opts = append(opts, registry.WithLogger(l))
	}
	nreg := registry.New(cfg, opts...)
	if prev != nil {
		_ = nreg.Seed(prev.Entries())
	}
	return nreg
}

// BuildOracle builds and returns a new apis.Oracle for the configuration.
func (b *builder) BuildOracle(cfg apis.Config, _ any) apis.Oracle {
	return oracle.New(cfg)
}

// BuildTranslator builds and returns a new apis.Translator for the configuration.
func (b *builder) BuildTranslator(cfg apis.Config, _ any) apis.Translator {
	return translator.New(cfg)
}

// BuildDispatcher builds and returns a new apis.Dispatcher for the
// configuration. The previous dispatcher's plan cache is not reused: plans
// embed adjustments derived under the previous configuration.
func (b *builder) BuildDispatcher(cfg apis.Config, _ apis.Dispatcher, _ any) apis.Dispatcher {
	return dispatch.New(cfg)
}
