// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// projectFile is the on-disk shape of a typlsp.yaml project file, a
// supplement to client-pushed JSON configuration: a tinymist-style
// tool commonly lets a project pin its own settings outside of
// whatever editor happens to open it. Field names mirror the
// client-configuration keys [Options.set] already recognizes.
type projectFile struct {
	RootPath          string   `yaml:"rootPath"`
	FontPaths         []string `yaml:"fontPaths"`
	SystemFonts       *bool    `yaml:"systemFonts"`
	SemanticTokens    string   `yaml:"semanticTokens"`
	TypstExtraArgs    []string `yaml:"typstExtraArgs"`
	ExportPDF         string   `yaml:"exportPdf"`
	ProjectResolution string   `yaml:"projectResolution"`
}

// LoadProjectFile reads "typlsp.yaml" from dir, if present, and applies
// it onto options. It is not an error for the file to be missing; any
// other read or parse failure is returned to the caller.
func LoadProjectFile(options *Options, dir string) error {
	path := filepath.Join(dir, "typlsp.yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var pf projectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if pf.RootPath != "" {
		options.RootPath = pf.RootPath
	}
	if len(pf.FontPaths) > 0 {
		options.FontPaths = pf.FontPaths
	}
	if pf.SystemFonts != nil {
		options.SystemFonts = *pf.SystemFonts
	}
	if pf.SemanticTokens != "" {
		options.SemanticTokens = SemanticTokensMode(pf.SemanticTokens)
	}
	if len(pf.TypstExtraArgs) > 0 {
		options.TypstExtraArgs = pf.TypstExtraArgs
	}
	if pf.ExportPDF != "" {
		options.ExportPDF = ExportTrigger(pf.ExportPDF)
	}
	if pf.ProjectResolution != "" {
		options.ProjectResolution = ProjectResolution(pf.ProjectResolution)
	}
	return nil
}
