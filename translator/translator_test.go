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

package translator_test

import (
	"reflect"
	"testing"
	"unsafe"

	"github.com/google/uuid"

	"dirpx.dev/dynt/apis"
	"dirpx.dev/dynt/config"
	"dirpx.dev/dynt/translator"
)

// Real layouts so the converters move real addresses.
type wRoot struct{ v int64 }
type wLeft struct {
	root wRoot
	l    int64
}
type wRight struct {
	root wRoot
	r    int64
}
type wPair struct {
	left  wLeft
	right wRight
}
type wOther struct{ o int64 }

func ident(v any, bases ...apis.BaseLink) apis.Identity {
	return apis.DescIdentity(&apis.Descriptor{
		Type:  reflect.TypeOf(v),
		Token: uuid.New(),
		Bases: bases,
	})
}

// graph builds the identities for the wPair hierarchy.
func graph() (rootID, leftID, rightID, pairID apis.Identity) {
	rootID = ident(wRoot{})
	leftID = ident(wLeft{}, apis.BaseLink{
		ID: rootID,
		Convert: func(p unsafe.Pointer) unsafe.Pointer {
			return unsafe.Pointer(&(*wLeft)(p).root)
		},
	})
	rightID = ident(wRight{}, apis.BaseLink{
		ID: rootID,
		Convert: func(p unsafe.Pointer) unsafe.Pointer {
			return unsafe.Pointer(&(*wRight)(p).root)
		},
	})
	pairID = ident(wPair{},
		apis.BaseLink{
			ID: leftID,
			Convert: func(p unsafe.Pointer) unsafe.Pointer {
				return unsafe.Pointer(&(*wPair)(p).left)
			},
		},
		apis.BaseLink{
			ID: rightID,
			Convert: func(p unsafe.Pointer) unsafe.Pointer {
				return unsafe.Pointer(&(*wPair)(p).right)
			},
		},
	)
	return rootID, leftID, rightID, pairID
}

func TestTranslate_SelfReturnsSameAddress(t *testing.T) {
	tr := translator.New(config.DefaultConfig())
	rootID, _, _, _ := graph()

	r := &wRoot{}
	out, ok := tr.Translate(rootID, unsafe.Pointer(r), rootID)
	if !ok || out != unsafe.Pointer(r) {
		t.Fatalf("self: got (%p,%v), want (%p,true)", out, ok, r)
	}
}

func TestTranslate_WalksConverters(t *testing.T) {
	tr := translator.New(config.DefaultConfig())
	rootID, _, rightID, pairID := graph()

	p := &wPair{}

	// One level down.
	out, ok := tr.Translate(rightID, unsafe.Pointer(p), pairID)
	if !ok || out != unsafe.Pointer(&p.right) {
		t.Fatalf("one level: got (%p,%v), want (%p,true)", out, ok, &p.right)
	}

	// Two levels down, through the first declared path.
	out, ok = tr.Translate(rootID, unsafe.Pointer(p), pairID)
	if !ok || out != unsafe.Pointer(&p.left.root) {
		t.Fatalf("two levels: got (%p,%v), want (%p,true)", out, ok, &p.left.root)
	}
}

// TestTranslate_FirstDeclaredPathWins pins the duplicate-subobject rule:
// wPair holds two wRoot subobjects and the left one is declared first, so
// the left one is the answer, always.
func TestTranslate_FirstDeclaredPathWins(t *testing.T) {
	tr := translator.New(config.DefaultConfig())
	rootID, _, _, pairID := graph()

	p := &wPair{}
	out, ok := tr.Translate(rootID, unsafe.Pointer(p), pairID)
	if !ok {
		t.Fatalf("translate failed")
	}
	if out != unsafe.Pointer(&p.left.root) {
		t.Fatalf("got %p, want the first declared subobject %p (not %p)",
			out, &p.left.root, &p.right.root)
	}
}

func TestTranslate_Failure(t *testing.T) {
	tr := translator.New(config.DefaultConfig())
	rootID, _, _, pairID := graph()
	otherID := ident(wOther{})

	p := &wPair{}

	if out, ok := tr.Translate(otherID, unsafe.Pointer(p), pairID); ok || out != nil {
		t.Fatalf("unreachable target: got (%p,%v), want (nil,false)", out, ok)
	}
	if _, ok := tr.Translate(rootID, nil, pairID); ok {
		t.Fatalf("nil address: want failure")
	}
	if _, ok := tr.Translate(apis.Identity{}, unsafe.Pointer(p), pairID); ok {
		t.Fatalf("invalid target: want failure")
	}
	if _, ok := tr.Translate(rootID, unsafe.Pointer(p), apis.Identity{}); ok {
		t.Fatalf("invalid start: want failure")
	}
}

var _ apis.Translator = translator.New(config.DefaultConfig())
