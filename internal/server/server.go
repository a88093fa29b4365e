// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server adapts internal/query's Facade to go.lsp.dev/protocol's
// Server interface (spec.md §6, the LSP co-host). It is grounded on buf's
// buflsp package: a Server struct embeds an unimplemented stub covering
// every method this analyzer does not handle (nop_server.go's pattern),
// and overrides only the subset spec.md names — lifecycle, document sync,
// and the query-facade-backed language features.
package server

import (
	"context"
	"fmt"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/typst-community/typlsp/internal/defresolver"
	"github.com/typst-community/typlsp/internal/lexical"
	"github.com/typst-community/typlsp/internal/log"
	"github.com/typst-community/typlsp/internal/query"
	"github.com/typst-community/typlsp/internal/settings"
	"github.com/typst-community/typlsp/internal/syntax"
	"github.com/typst-community/typlsp/internal/world"
)

// semanticTokenLegend must list query.TokenType's values in declaration
// order: the LSP wire format identifies a token's type by index into this
// slice, and SemanticTokens (query/semantictokens.go) assigns TokenType
// values in exactly this order.
var semanticTokenLegend = []string{
	"function", "variable", "parameter", "keyword", "string",
	"number", "comment", "macro", "heading", "label",
}

// Server adapts *query.Facade to protocol.Server. One Server is created
// per process, wrapping the single World session spec.md §4.1 describes.
type Server struct {
	unimplemented

	facade  *query.Facade
	options *settings.Options
	client  protocol.Client
}

// NewServer wires a Server on top of an already-constructed Facade. client
// may be nil in tests that never exercise diagnostics publication.
func NewServer(facade *query.Facade, options *settings.Options, client protocol.Client) *Server {
	return &Server{facade: facade, options: options, client: client}
}

// --- Lifecycle ---

func (s *Server) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	if params.RootURI != "" && (s.options.RootPath == "" || s.options.RootPath == "-") {
		s.options.RootPath = pathOf(params.RootURI)
	}
	if params.InitializationOptions != nil {
		trace := log.WithTrace(log.NewTraceID())
		for _, r := range settings.SetOptions(s.options, params.InitializationOptions) {
			if r.Error != nil {
				trace.Warnf("initialize option %q: %v", r.Name, r.Error)
			}
		}
	}
	log.SetVerbose(s.options.VerboseOutput)

	// go.lsp.dev/protocol's bundled SemanticTokensOptions/legend types do
	// not round-trip correctly over the wire (the same limitation buf's
	// buflsp works around in its own server.go); define the shape locally.
	type semanticTokensLegend struct {
		TokenTypes     []string `json:"tokenTypes"`
		TokenModifiers []string `json:"tokenModifiers"`
	}
	type semanticTokensOptions struct {
		protocol.WorkDoneProgressOptions
		Legend semanticTokensLegend `json:"legend"`
		Full   bool                 `json:"full"`
	}

	return &protocol.InitializeResult{
		ServerInfo: &protocol.ServerInfo{Name: "typlsp"},
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
				Save:      &protocol.SaveOptions{IncludeText: false},
			},
			CompletionProvider: &protocol.CompletionOptions{
				TriggerCharacters: []string{"#", "(", ":", "."},
			},
			DefinitionProvider: &protocol.DefinitionOptions{
				WorkDoneProgressOptions: protocol.WorkDoneProgressOptions{WorkDoneProgress: true},
			},
			HoverProvider:           true,
			ReferencesProvider:      true,
			DocumentSymbolProvider:  true,
			WorkspaceSymbolProvider: true,
			FoldingRangeProvider:    true,
			RenameProvider: &protocol.RenameOptions{
				PrepareProvider: true,
			},
			SignatureHelpProvider: &protocol.SignatureHelpOptions{
				TriggerCharacters: []string{"(", ","},
			},
			ExecuteCommandProvider: &protocol.ExecuteCommandOptions{
				Commands: []string{CommandOrganizeImports},
			},
			SemanticTokensProvider: semanticTokensOptions{
				Legend: semanticTokensLegend{
					TokenTypes:     semanticTokenLegend,
					TokenModifiers: []string{},
				},
				Full: true,
			},
		},
	}, nil
}

func (s *Server) Initialized(ctx context.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}

func (s *Server) Exit(ctx context.Context) error {
	return nil
}

func (s *Server) SetTrace(ctx context.Context, params *protocol.SetTraceParams) error {
	return nil
}

func (s *Server) DidChangeConfiguration(ctx context.Context, params *protocol.DidChangeConfigurationParams) error {
	trace := log.WithTrace(log.NewTraceID())
	for _, r := range settings.SetOptions(s.options, params.Settings) {
		if r.Error != nil {
			trace.Warnf("configuration option %q: %v", r.Name, r.Error)
		}
	}
	log.SetVerbose(s.options.VerboseOutput)
	return nil
}

// --- Document synchronization ---

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	id := s.facade.World.Open(params.TextDocument.URI, params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, id)
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	id, ok := s.facade.World.FindByURI(params.TextDocument.URI)
	if !ok {
		return fmt.Errorf("received change for file that was not open: %q", params.TextDocument.URI)
	}
	if len(params.ContentChanges) == 0 {
		return nil
	}
	// World always replaces whole text (internal/world's Edit doc comment);
	// a full-document sync is what Initialize advertises, so the last
	// change event always carries the complete new text.
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.facade.World.Edit(id, text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, id)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	id, ok := s.facade.World.FindByURI(params.TextDocument.URI)
	if !ok {
		return nil
	}
	s.facade.World.Close(id)
	if s.client != nil {
		_ = s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
			URI:         params.TextDocument.URI,
			Diagnostics: []protocol.Diagnostic{},
		})
	}
	return nil
}

// publishDiagnostics aggregates spec.md §7's Diagnostics and sends them on
// the client's textDocument/publishDiagnostics channel, converting every
// Span through the file's own LineIndex (spec.md §3).
func (s *Server) publishDiagnostics(ctx context.Context, id query.SourceID) {
	if s.client == nil {
		return
	}
	snap := s.facade.World.Snapshot()
	sf := snap.File(id)
	if sf == nil {
		return
	}
	diags := s.facade.Diagnostics(id)
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, protocol.Diagnostic{
			Range:    toRange(sf.LineIndex, d.Span),
			Severity: toSeverity(d.Severity),
			Source:   d.Source,
			Message:  d.Message,
		})
	}
	_ = s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         sf.URI,
		Version:     uint32(sf.Version),
		Diagnostics: out,
	})
}

func toSeverity(sev query.DiagnosticSeverity) protocol.DiagnosticSeverity {
	if sev == query.SeverityWarning {
		return protocol.DiagnosticSeverityWarning
	}
	return protocol.DiagnosticSeverityError
}

// --- Language features ---

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	id, sf, ok := s.fileAt(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	offset := sf.LineIndex.ToOffset(fromPosition(params.Position))
	res, ok := s.facade.Hover(id, offset)
	if !ok {
		return nil, nil
	}
	rng := toRange(sf.LineIndex, res.Span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.PlainText, Value: res.String()},
		Range:    &rng,
	}, nil
}

func (s *Server) Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	id, sf, ok := s.fileAt(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	offset := sf.LineIndex.ToOffset(fromPosition(params.Position))
	def, ok := s.facade.Definition(id, offset)
	if !ok || def.Kind == defresolver.DefBuiltin {
		return nil, nil
	}
	return []protocol.Location{s.locationOf(def.Source, def.Span)}, nil
}

func (s *Server) References(ctx context.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	id, sf, ok := s.fileAt(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	offset := sf.LineIndex.ToOffset(fromPosition(params.Position))
	locs := s.facade.References(id, offset, params.Context.IncludeDeclaration)
	out := make([]protocol.Location, 0, len(locs))
	for _, loc := range locs {
		out = append(out, s.locationOf(loc.Source, loc.Span))
	}
	return out, nil
}

func (s *Server) PrepareRename(ctx context.Context, params *protocol.PrepareRenameParams) (*protocol.Range, error) {
	id, sf, ok := s.fileAt(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	offset := sf.LineIndex.ToOffset(fromPosition(params.Position))
	def, err := s.facade.PrepareRename(id, offset)
	if err != nil {
		return nil, err
	}
	rng := toRange(sf.LineIndex, def.Span)
	return &rng, nil
}

func (s *Server) Rename(ctx context.Context, params *protocol.RenameParams) (*protocol.WorkspaceEdit, error) {
	id, sf, ok := s.fileAt(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	offset := sf.LineIndex.ToOffset(fromPosition(params.Position))
	edits, err := s.facade.Rename(id, offset, params.NewName)
	if err != nil {
		return nil, err
	}
	changes := map[protocol.DocumentURI][]protocol.TextEdit{}
	for _, e := range edits {
		esf := s.facade.World.Snapshot().File(e.Source)
		if esf == nil {
			continue
		}
		changes[esf.URI] = append(changes[esf.URI], protocol.TextEdit{
			Range:   toRange(esf.LineIndex, e.Span),
			NewText: params.NewName,
		})
	}
	return &protocol.WorkspaceEdit{Changes: changes}, nil
}

func (s *Server) SignatureHelp(ctx context.Context, params *protocol.SignatureHelpParams) (*protocol.SignatureHelp, error) {
	id, sf, ok := s.fileAt(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	offset := sf.LineIndex.ToOffset(fromPosition(params.Position))
	res, ok := s.facade.SignatureHelp(id, offset)
	if !ok {
		return nil, nil
	}
	sigs := make([]protocol.SignatureInformation, 0, len(res.Signatures))
	for _, sig := range res.Signatures {
		params := make([]protocol.ParameterInformation, 0, len(sig.Positional))
		for _, p := range sig.Positional {
			params = append(params, protocol.ParameterInformation{Label: p.Name})
		}
		sigs = append(sigs, protocol.SignatureInformation{
			Label:      sig.String(),
			Parameters: params,
		})
	}
	return &protocol.SignatureHelp{
		Signatures:      sigs,
		ActiveSignature: uint32(res.ActiveIndex),
		ActiveParameter: uint32(res.Binding.ActiveParam),
	}, nil
}

func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	id, sf, ok := s.fileAt(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	offset := sf.LineIndex.ToOffset(fromPosition(params.Position))
	items := s.facade.Completion(id, offset)
	out := make([]protocol.CompletionItem, 0, len(items))
	for _, it := range items {
		out = append(out, protocol.CompletionItem{Label: it.Label, Detail: it.Detail})
	}
	return &protocol.CompletionList{Items: out}, nil
}

func (s *Server) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]interface{}, error) {
	id, sf, ok := s.fileAt(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	syms := s.facade.DocumentSymbols(id)
	out := make([]interface{}, 0, len(syms))
	for _, sym := range symbolsToProtocol(sf.LineIndex, syms) {
		out = append(out, sym)
	}
	return out, nil
}

func symbolsToProtocol(li *syntax.LineIndex, syms []query.Symbol) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(syms))
	for _, sym := range syms {
		rng := toRange(li, sym.Span)
		out = append(out, protocol.DocumentSymbol{
			Name:           sym.Name,
			Kind:           symbolKind(sym.Kind),
			Range:          rng,
			SelectionRange: rng,
			Children:       symbolsToProtocol(li, sym.Children),
		})
	}
	return out
}

func symbolKind(k lexical.Kind) protocol.SymbolKind {
	switch k {
	case lexical.KindFunction:
		return protocol.SymbolKindFunction
	case lexical.KindImport:
		return protocol.SymbolKindModule
	default:
		return protocol.SymbolKindVariable
	}
}

func (s *Server) Symbols(ctx context.Context, params *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	syms := s.facade.WorkspaceSymbols(params.Query)
	out := make([]protocol.SymbolInformation, 0, len(syms))
	for _, sym := range syms {
		sf := s.facade.World.Snapshot().File(sym.Source)
		if sf == nil {
			continue
		}
		out = append(out, protocol.SymbolInformation{
			Name:     sym.Name,
			Kind:     symbolKind(sym.Kind),
			Location: protocol.Location{URI: sf.URI, Range: toRange(sf.LineIndex, sym.Span)},
		})
	}
	return out, nil
}

func (s *Server) FoldingRanges(ctx context.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	id, sf, ok := s.fileAt(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	ranges := s.facade.FoldingRanges(id)
	out := make([]protocol.FoldingRange, 0, len(ranges))
	for _, r := range ranges {
		start := sf.LineIndex.ToPosition(r.Span.Start)
		end := sf.LineIndex.ToPosition(r.Span.End)
		kind := protocol.FoldingRangeKind("region")
		if r.Kind == "comment" {
			kind = protocol.FoldingRangeKind("comment")
		}
		out = append(out, protocol.FoldingRange{
			StartLine: uint32(start.Line),
			EndLine:   uint32(end.Line),
			Kind:      kind,
		})
	}
	return out, nil
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	id, _, ok := s.fileAt(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	toks := s.facade.SemanticTokens(id)
	data := make([]uint32, 0, len(toks)*5)
	for _, t := range toks {
		data = append(data,
			uint32(t.LineDelta), uint32(t.StartDelta), uint32(t.Length),
			uint32(t.Type), t.Modifiers,
		)
	}
	return &protocol.SemanticTokens{Data: data}, nil
}

// fileAt resolves a URI to its tracked SourceID and current SourceFile, for
// handlers that need both the file's identity and its LineIndex.
func (s *Server) fileAt(uri protocol.DocumentURI) (query.SourceID, *world.SourceFile, bool) {
	id, ok := s.facade.World.FindByURI(uri)
	if !ok {
		return 0, nil, false
	}
	sf := s.facade.World.Snapshot().File(id)
	if sf == nil {
		return 0, nil, false
	}
	return id, sf, true
}

func (s *Server) locationOf(id query.SourceID, span syntax.Span) protocol.Location {
	sf := s.facade.World.Snapshot().File(id)
	if sf == nil {
		return protocol.Location{}
	}
	return protocol.Location{URI: sf.URI, Range: toRange(sf.LineIndex, span)}
}

func toRange(li *syntax.LineIndex, span syntax.Span) protocol.Range {
	return protocol.Range{
		Start: toPosition(li.ToPosition(span.Start)),
		End:   toPosition(li.ToPosition(span.End)),
	}
}

func toPosition(p syntax.Position) protocol.Position {
	return protocol.Position{Line: uint32(p.Line), Character: uint32(p.Character)}
}

func fromPosition(p protocol.Position) syntax.Position {
	return syntax.Position{Line: int(p.Line), Character: int(p.Character)}
}

func pathOf(uri protocol.DocumentURI) string {
	return strings.TrimPrefix(string(uri), "file://")
}
