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
	"errors"
	"sync"
	"sync/atomic"
	"unsafe"

	"dirpx.dev/dynt/apis"
	"dirpx.dev/dynt/builder"
	"dirpx.dev/dynt/config"
)

// init initializes the global dynt state.
func init() {
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.orc = b.BuildOracle(s.cfg, nil)
	s.trn = b.BuildTranslator(s.cfg, nil)
	s.dsp = b.BuildDispatcher(s.cfg, nil, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("dynt: builder returned nil registry")
	// ErrNilOracle is returned when a builder returns a nil oracle.
	ErrNilOracle = errors.New("dynt: builder returned nil oracle")
	// ErrNilTranslator is returned when a builder returns a nil translator.
	ErrNilTranslator = errors.New("dynt: builder returned nil translator")
	// ErrNilDispatcher is returned when a builder returns a nil dispatcher.
	ErrNilDispatcher = errors.New("dynt: builder returned nil dispatcher")
)

// Convertible reports whether target is reachable (base-or-equal) from
// start in the descriptor graph, using the global oracle.
// This is a convenience wrapper around the global orc.
func Convertible(target, start apis.Identity) bool {
	return st.Load().orc.Convertible(target, start)
}

// Translate adjusts addr, known to point at an object of type start, to
// its subobject of type target, using the global translator.
// This is a convenience wrapper around the global trn.
func Translate(target apis.Identity, addr unsafe.Pointer, start apis.Identity) (unsafe.Pointer, bool) {
	return st.Load().trn.Translate(target, addr, start)
}

// Config returns the global dynt configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global dynt configuration to cfg.
// It rebuilds the unpinned components using the new configuration; the
// registry migrates its descriptors, so issued identities stay valid.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(derive(cfg, old.ext, old.bld, old))
}

// Registry returns the global dynt reg.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global dynt reg to reg and pins it.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{
		cfg:  old.cfg,
		ext:  old.ext,
		reg:  reg,
		orc:  old.orc,
		trn:  old.trn,
		dsp:  old.dsp,
		bld:  old.bld,
		preg: true,
		pdsp: old.pdsp,
	})
}

// Oracle returns the global dynt orc.
func Oracle() apis.Oracle {
	return st.Load().orc
}

// SetOracle sets the global dynt orc to orc. The oracle is a pure function
// of the configuration, so there is no pin: the next rebuild replaces it.
func SetOracle(orc apis.Oracle) {
	if orc == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{
		cfg:  old.cfg,
		ext:  old.ext,
		reg:  old.reg,
		orc:  orc,
		trn:  old.trn,
		dsp:  old.dsp,
		bld:  old.bld,
		preg: old.preg,
		pdsp: old.pdsp,
	})
}

// Translator returns the global dynt trn.
func Translator() apis.Translator {
	return st.Load().trn
}

// SetTranslator sets the global dynt trn to trn. Like the oracle, the
// translator carries no pin.
func SetTranslator(trn apis.Translator) {
	if trn == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{
		cfg:  old.cfg,
		ext:  old.ext,
		reg:  old.reg,
		orc:  old.orc,
		trn:  trn,
		dsp:  old.dsp,
		bld:  old.bld,
		preg: old.preg,
		pdsp: old.pdsp,
	})
}

// Dispatcher returns the global dynt dsp.
func Dispatcher() apis.Dispatcher {
	return st.Load().dsp
}

// SetDispatcher sets the global dynt dsp to dsp and pins it.
func SetDispatcher(dsp apis.Dispatcher) {
	if dsp == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{
		cfg:  old.cfg,
		ext:  old.ext,
		reg:  old.reg,
		orc:  old.orc,
		trn:  old.trn,
		dsp:  dsp,
		bld:  old.bld,
		preg: old.preg,
		pdsp: true,
	})
}

// Builder returns the global dynt bld.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global dynt bld to b and rebuilds the unpinned
// components through it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(derive(old.cfg, old.ext, b, old))
}

// SetAll explicitly sets all global dynt state components.
//
// A nil cfg keeps the current configuration; ext is always replaced. Nil
// components are rebuilt through the builder (resetting their pins);
// non-nil reg and dsp become pinned.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, orc apis.Oracle, trn apis.Translator, dsp apis.Dispatcher, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()

	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	nreg, npreg := reg, reg != nil
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg, ext)
	}
	norc := orc
	if norc == nil {
		norc = nbld.BuildOracle(ncfg, ext)
	}
	ntrn := trn
	if ntrn == nil {
		ntrn = nbld.BuildTranslator(ncfg, ext)
	}
	ndsp, npdsp := dsp, dsp != nil
	if ndsp == nil {
		ndsp = nbld.BuildDispatcher(ncfg, old.dsp, ext)
	}

	mustComplete(nreg, norc, ntrn, ndsp)

	st.Store(&state{
		cfg:  ncfg,
		ext:  ext,
		reg:  nreg,
		orc:  norc,
		trn:  ntrn,
		dsp:  ndsp,
		bld:  nbld,
		preg: npreg,
		pdsp: npdsp,
	})
}

// SetExt replaces the extension context and rebuilds unpinned components
// through the builder so they can pick it up.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(derive(old.cfg, ext, old.bld, old))
}

// ExtAs returns the global dynt extension context as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned returns whether the global dynt reg is pinned (immutable).
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry makes the global dynt reg immune to rebuilds.
func PinRegistry() {
	setPins(&pinned, nil)
}

// UnpinRegistry makes the global dynt reg rebuildable again.
func UnpinRegistry() {
	setPins(&unpinned, nil)
}

// IsDispatcherPinned returns whether the global dynt dsp is pinned (immutable).
func IsDispatcherPinned() bool {
	return st.Load().pdsp
}

// PinDispatcher makes the global dynt dsp immune to rebuilds.
func PinDispatcher() {
	setPins(nil, &pinned)
}

// UnpinDispatcher makes the global dynt dsp rebuildable again.
func UnpinDispatcher() {
	setPins(nil, &unpinned)
}

var (
	pinned   = true
	unpinned = false
)

// setPins updates the pin flags; nil leaves a flag unchanged.
func setPins(preg, pdsp *bool) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	npreg := old.preg
	if preg != nil {
		npreg = *preg
	}
	npdsp := old.pdsp
	if pdsp != nil {
		npdsp = *pdsp
	}

	st.Store(&state{
		cfg:  old.cfg,
		ext:  old.ext,
		reg:  old.reg,
		orc:  old.orc,
		trn:  old.trn,
		dsp:  old.dsp,
		bld:  old.bld,
		preg: npreg,
		pdsp: npdsp,
	})
}

// derive builds the next snapshot from new cfg/ext/bld, rebuilding every
// unpinned component and carrying the pinned ones over. Callers hold buildMu.
func derive(cfg apis.Config, ext any, b apis.Builder, old *state) *state {
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(cfg, old.reg, ext)
	}
	norc := b.BuildOracle(cfg, ext)
	ntrn := b.BuildTranslator(cfg, ext)
	ndsp := old.dsp
	if !old.pdsp {
		ndsp = b.BuildDispatcher(cfg, old.dsp, ext)
	}

	mustComplete(nreg, norc, ntrn, ndsp)

	return &state{
		cfg:  cfg,
		ext:  ext,
		reg:  nreg,
		orc:  norc,
		trn:  ntrn,
		dsp:  ndsp,
		bld:  b,
		preg: old.preg,
		pdsp: old.pdsp,
	}
}

// mustComplete panics when a builder returned a nil component: a snapshot
// with a hole would fail much later, on some unrelated cast.
func mustComplete(reg apis.Registry, orc apis.Oracle, trn apis.Translator, dsp apis.Dispatcher) {
	if reg == nil {
		panic(ErrNilRegistry)
	}
	if orc == nil {
		panic(ErrNilOracle)
	}
	if trn == nil {
		panic(ErrNilTranslator)
	}
	if dsp == nil {
		panic(ErrNilDispatcher)
	}
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global dynt state.
var st atomic.Pointer[state]

// state is the global dynt state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global dynt configuration.
	cfg apis.Config
	// ext is the global dynt extension context.
	ext any
	// reg is the global descriptor registry.
	reg apis.Registry
	// orc is the global convertibility oracle.
	orc apis.Oracle
	// trn is the global pointer translator.
	trn apis.Translator
	// dsp is the global cast dispatcher.
	dsp apis.Dispatcher
	// bld is the global component builder.
	bld apis.Builder
	// preg indicates whether the reg is pinned (immutable).
	preg bool
	// pdsp indicates whether the dsp is pinned (immutable).
	pdsp bool
}
