// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings

import (
	"reflect"
	"testing"
)

func TestDefaultsEquivalence(t *testing.T) {
	opts1 := DefaultOptions()
	opts2 := DefaultOptions()
	if !reflect.DeepEqual(opts1, opts2) {
		t.Fatal("default options are not equivalent using reflect.DeepEqual")
	}
}

func TestSetOption(t *testing.T) {
	type testCase struct {
		name      string
		value     any
		wantError bool
		check     func(Options) bool
	}
	tests := []testCase{
		{
			name:  "projectResolution",
			value: "lockDatabase",
			check: func(o Options) bool { return o.ProjectResolution == LockDatabase },
		},
		{
			name:      "projectResolution",
			value:     "bogus",
			wantError: true,
			check:     func(o Options) bool { return o.ProjectResolution == SingleFile },
		},
		{
			name:  "systemFonts",
			value: false,
			check: func(o Options) bool { return !o.SystemFonts },
		},
		{
			name:      "systemFonts",
			value:     "yes",
			wantError: true,
			check:     func(o Options) bool { return o.SystemFonts }, // falls back to default
		},
		{
			name:  "fontPaths",
			value: []any{"/fonts/a", "/fonts/b"},
			check: func(o Options) bool { return len(o.FontPaths) == 2 },
		},
		{
			name:      "unknownOption",
			value:     42,
			wantError: true,
			check:     func(o Options) bool { return true }, // ignored; reported only as a SoftError, which is logged, not surfaced to the client
		},
	}
	for _, test := range tests {
		o := *DefaultOptions()
		result := o.set(test.name, test.value, map[string]struct{}{})
		if test.wantError != (result.Error != nil) {
			t.Errorf("%s=%v: got error %v, wantError %v", test.name, test.value, result.Error, test.wantError)
		}
		if !test.check(o) {
			t.Errorf("%s=%v: post-check failed, got options %#v", test.name, test.value, o)
		}
	}
}

func TestUnknownOptionIsSoftError(t *testing.T) {
	o := DefaultOptions()
	results := SetOptions(o, map[string]any{"notARealSetting": true})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	var soft *SoftError
	if _, ok := results[0].Error.(*SoftError); !ok {
		t.Errorf("got error of type %T, want %T", results[0].Error, soft)
	}
}
