// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package settings parses the nested configuration map a client sends
// during initialize/workspace-didChangeConfiguration into a typed
// [Options] struct (spec.md §6). Unknown keys are ignored; type-mismatched
// values fall back to defaults and produce a warning [OptionResult].
package settings

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ProjectResolution selects how the world determines a multi-file
// project's main file (spec.md §6).
type ProjectResolution string

const (
	SingleFile   ProjectResolution = "singleFile"
	LockDatabase ProjectResolution = "lockDatabase"
)

// ExportTrigger selects when the (out-of-core) PDF export host runs.
type ExportTrigger string

const (
	ExportNever               ExportTrigger = "never"
	ExportOnSave              ExportTrigger = "onSave"
	ExportOnType              ExportTrigger = "onType"
	ExportOnDocumentHasTitle  ExportTrigger = "onDocumentHasTitle"
)

// SemanticTokensMode toggles semantic-token production.
type SemanticTokensMode string

const (
	SemanticTokensEnable  SemanticTokensMode = "enable"
	SemanticTokensDisable SemanticTokensMode = "disable"
)

// Options holds all configuration recognized by the analyzer and its
// thin LSP co-host, organized the way gopls's own Options struct is:
// by the origin of the setting.
//
// Options must be comparable with reflect.DeepEqual.
type Options struct {
	// RootPath is the absolute-path workspace root, or "-" to mean
	// "use each file's own parent directory" (single-file mode).
	RootPath string

	// FontPaths are additional font search roots, lowest priority last
	// (config beats env beats CLI arg, per spec.md §6 — the config
	// value always wins when present here, since env/CLI are folded in
	// by the host before Options is constructed).
	FontPaths []string

	// SystemFonts selects whether OS-installed fonts are loaded.
	SystemFonts bool

	// SemanticTokens toggles semantic token production.
	SemanticTokens SemanticTokensMode

	// TypstExtraArgs is passed through, opaque, to the underlying
	// compiler host.
	TypstExtraArgs []string

	// ExportPDF is the (host-level) export trigger.
	ExportPDF ExportTrigger

	// ProjectResolution selects how the main file of a multi-file
	// project is determined.
	ProjectResolution ProjectResolution

	// VerboseOutput enables additional diagnostic logging on the
	// server log channel (ambient, not named by spec.md, carried
	// because every gopls-shaped server has one).
	VerboseOutput bool
}

// DefaultOptions returns a new Options with every field set to its
// default value.
func DefaultOptions() *Options {
	return &Options{
		RootPath:          "-",
		SystemFonts:       true,
		SemanticTokens:    SemanticTokensEnable,
		ExportPDF:         ExportNever,
		ProjectResolution: SingleFile,
	}
}

// OptionResult is the outcome of applying a single configuration key.
type OptionResult struct {
	Name  string
	Value any
	Error error
}

// A SoftError is an error that does not affect the functionality of the
// analyzer; it is logged but never surfaces as a failed request.
type SoftError struct{ msg string }

func (e *SoftError) Error() string { return e.msg }

// SetOptions applies a client-supplied configuration value (typically
// the nested map received during `initialize`/
// `workspace/didChangeConfiguration`) onto options, returning one
// [OptionResult] per recognized-or-attempted key. Unknown keys are
// ignored, exactly as spec.md §6 requires ("Unknown options are
// ignored"); each one's result carries a [SoftError] for the log.
func SetOptions(options *Options, opts any) []OptionResult {
	var results []OptionResult
	switch opts := opts.(type) {
	case nil:
	case map[string]any:
		seen := map[string]struct{}{}
		for name, value := range opts {
			results = append(results, options.set(name, value, seen))
		}
	default:
		results = append(results, OptionResult{
			Value: opts,
			Error: fmt.Errorf("invalid options type %T", opts),
		})
	}
	return results
}

func (o *Options) set(name string, value any, seen map[string]struct{}) OptionResult {
	// Flatten the name in case the client sends a dotted hierarchy.
	split := strings.Split(name, ".")
	name = split[len(split)-1]

	result := OptionResult{Name: name, Value: value}
	if _, ok := seen[name]; ok {
		result.parseErrorf("duplicate configuration for %s", name)
		return result
	}
	seen[name] = struct{}{}

	switch name {
	case "rootPath":
		result.setString(&o.RootPath)

	case "fontPaths":
		result.setStringSlice(&o.FontPaths)
		for i, p := range o.FontPaths {
			o.FontPaths[i] = filepath.Clean(p)
		}

	case "systemFonts":
		result.setBool(&o.SystemFonts)

	case "semanticTokens":
		if s, ok := result.asOneOf(string(SemanticTokensEnable), string(SemanticTokensDisable)); ok {
			o.SemanticTokens = SemanticTokensMode(s)
		}

	case "typstExtraArgs":
		result.setStringSlice(&o.TypstExtraArgs)

	case "exportPdf":
		if s, ok := result.asOneOf(
			string(ExportNever),
			string(ExportOnSave),
			string(ExportOnType),
			string(ExportOnDocumentHasTitle),
		); ok {
			o.ExportPDF = ExportTrigger(s)
		}

	case "projectResolution":
		if s, ok := result.asOneOf(string(SingleFile), string(LockDatabase)); ok {
			o.ProjectResolution = ProjectResolution(s)
		}

	case "verboseOutput":
		result.setBool(&o.VerboseOutput)

	default:
		result.unexpected()
	}
	return result
}

// parseErrorf reports an error parsing the current configuration value.
func (r *OptionResult) parseErrorf(msg string, values ...any) {
	prefix := fmt.Sprintf("parsing setting %q: ", r.Name)
	r.Error = fmt.Errorf(prefix+msg, values...)
}

// unexpected reports that the current setting is not recognized. Per
// spec.md §6 this is not an error: the caller discards it rather than
// surfacing it, but it is still useful on the server log channel.
func (r *OptionResult) unexpected() {
	r.Error = &SoftError{fmt.Sprintf("unrecognized setting %q (ignored)", r.Name)}
}

func (r *OptionResult) asBool() (bool, bool) {
	b, ok := r.Value.(bool)
	if !ok {
		r.parseErrorf("invalid type %T, expected bool", r.Value)
		return false, false
	}
	return b, true
}

func (r *OptionResult) setBool(b *bool) {
	if v, ok := r.asBool(); ok {
		*b = v
	}
}

func (r *OptionResult) asString() (string, bool) {
	s, ok := r.Value.(string)
	if !ok {
		r.parseErrorf("invalid type %T, expected string", r.Value)
		return "", false
	}
	return s, true
}

func (r *OptionResult) setString(s *string) {
	if v, ok := r.asString(); ok {
		*s = v
	}
}

func (r *OptionResult) asStringSlice() ([]string, bool) {
	iList, ok := r.Value.([]any)
	if !ok {
		r.parseErrorf("invalid type %T, expected list", r.Value)
		return nil, false
	}
	list := make([]string, 0, len(iList))
	for _, elem := range iList {
		s, ok := elem.(string)
		if !ok {
			r.parseErrorf("invalid element type %T, expected string", elem)
			return nil, false
		}
		list = append(list, s)
	}
	return list, true
}

func (r *OptionResult) setStringSlice(s *[]string) {
	if v, ok := r.asStringSlice(); ok {
		*s = v
	}
}

func (r *OptionResult) asOneOf(options ...string) (string, bool) {
	s, ok := r.asString()
	if !ok {
		return "", false
	}
	lower := strings.ToLower(s)
	for _, opt := range options {
		if strings.ToLower(opt) == lower {
			return opt, true
		}
	}
	r.parseErrorf("invalid option %q, expected one of %v", s, options)
	return "", false
}
