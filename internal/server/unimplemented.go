// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"context"
	"errors"

	"go.lsp.dev/protocol"
)

// unimplemented satisfies protocol.Server for every request this
// server does not handle, in the style of buflsp's nopServer: embed
// it once in Server and only override the methods spec.md §6 names.
type unimplemented struct{}

func (unimplemented) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	return nil, errors.New("not implemented: Initialize")
}

func (unimplemented) Initialized(ctx context.Context, params *protocol.InitializedParams) error {
	return nil
}

func (unimplemented) Shutdown(ctx context.Context) error {
	return errors.New("not implemented: Shutdown")
}

func (unimplemented) Exit(ctx context.Context) error {
	return errors.New("not implemented: Exit")
}

func (unimplemented) WorkDoneProgressCancel(ctx context.Context, params *protocol.WorkDoneProgressCancelParams) error {
	return errors.New("not implemented: WorkDoneProgressCancel")
}

func (unimplemented) LogTrace(ctx context.Context, params *protocol.LogTraceParams) error {
	return errors.New("not implemented: LogTrace")
}

func (unimplemented) SetTrace(ctx context.Context, params *protocol.SetTraceParams) error {
	return nil
}

func (unimplemented) CodeAction(ctx context.Context, params *protocol.CodeActionParams) ([]protocol.CodeAction, error) {
	return nil, errors.New("not implemented: CodeAction")
}

func (unimplemented) CodeLens(ctx context.Context, params *protocol.CodeLensParams) ([]protocol.CodeLens, error) {
	return nil, errors.New("not implemented: CodeLens")
}

func (unimplemented) CodeLensResolve(ctx context.Context, params *protocol.CodeLens) (*protocol.CodeLens, error) {
	return nil, errors.New("not implemented: CodeLensResolve")
}

func (unimplemented) ColorPresentation(ctx context.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	return nil, errors.New("not implemented: ColorPresentation")
}

func (unimplemented) CompletionResolve(ctx context.Context, params *protocol.CompletionItem) (*protocol.CompletionItem, error) {
	return nil, errors.New("not implemented: CompletionResolve")
}

func (unimplemented) Declaration(ctx context.Context, params *protocol.DeclarationParams) ([]protocol.Location, error) {
	return nil, errors.New("not implemented: Declaration")
}

func (unimplemented) DidChangeWatchedFiles(ctx context.Context, params *protocol.DidChangeWatchedFilesParams) error {
	return errors.New("not implemented: DidChangeWatchedFiles")
}

func (unimplemented) DidChangeWorkspaceFolders(ctx context.Context, params *protocol.DidChangeWorkspaceFoldersParams) error {
	return errors.New("not implemented: DidChangeWorkspaceFolders")
}

func (unimplemented) DidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error {
	return nil
}

func (unimplemented) DocumentColor(ctx context.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	return nil, errors.New("not implemented: DocumentColor")
}

func (unimplemented) DocumentHighlight(ctx context.Context, params *protocol.DocumentHighlightParams) ([]protocol.DocumentHighlight, error) {
	return nil, errors.New("not implemented: DocumentHighlight")
}

func (unimplemented) DocumentLink(ctx context.Context, params *protocol.DocumentLinkParams) ([]protocol.DocumentLink, error) {
	return nil, errors.New("not implemented: DocumentLink")
}

func (unimplemented) DocumentLinkResolve(ctx context.Context, params *protocol.DocumentLink) (*protocol.DocumentLink, error) {
	return nil, errors.New("not implemented: DocumentLinkResolve")
}

func (unimplemented) FoldingRanges(ctx context.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	return nil, errors.New("not implemented: FoldingRanges")
}

func (unimplemented) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	return nil, errors.New("not implemented: Formatting")
}

func (unimplemented) Implementation(ctx context.Context, params *protocol.ImplementationParams) ([]protocol.Location, error) {
	return nil, errors.New("not implemented: Implementation")
}

func (unimplemented) OnTypeFormatting(ctx context.Context, params *protocol.DocumentOnTypeFormattingParams) ([]protocol.TextEdit, error) {
	return nil, errors.New("not implemented: OnTypeFormatting")
}

func (unimplemented) RangeFormatting(ctx context.Context, params *protocol.DocumentRangeFormattingParams) ([]protocol.TextEdit, error) {
	return nil, errors.New("not implemented: RangeFormatting")
}

func (unimplemented) TypeDefinition(ctx context.Context, params *protocol.TypeDefinitionParams) ([]protocol.Location, error) {
	return nil, errors.New("not implemented: TypeDefinition")
}

func (unimplemented) WillSave(ctx context.Context, params *protocol.WillSaveTextDocumentParams) error {
	return nil
}

func (unimplemented) WillSaveWaitUntil(ctx context.Context, params *protocol.WillSaveTextDocumentParams) ([]protocol.TextEdit, error) {
	return nil, errors.New("not implemented: WillSaveWaitUntil")
}

func (unimplemented) ShowDocument(ctx context.Context, params *protocol.ShowDocumentParams) (*protocol.ShowDocumentResult, error) {
	return nil, errors.New("not implemented: ShowDocument")
}

func (unimplemented) WillCreateFiles(ctx context.Context, params *protocol.CreateFilesParams) (*protocol.WorkspaceEdit, error) {
	return nil, errors.New("not implemented: WillCreateFiles")
}

func (unimplemented) DidCreateFiles(ctx context.Context, params *protocol.CreateFilesParams) error {
	return errors.New("not implemented: DidCreateFiles")
}

func (unimplemented) WillRenameFiles(ctx context.Context, params *protocol.RenameFilesParams) (*protocol.WorkspaceEdit, error) {
	return nil, errors.New("not implemented: WillRenameFiles")
}

func (unimplemented) DidRenameFiles(ctx context.Context, params *protocol.RenameFilesParams) error {
	return errors.New("not implemented: DidRenameFiles")
}

func (unimplemented) WillDeleteFiles(ctx context.Context, params *protocol.DeleteFilesParams) (*protocol.WorkspaceEdit, error) {
	return nil, errors.New("not implemented: WillDeleteFiles")
}

func (unimplemented) DidDeleteFiles(ctx context.Context, params *protocol.DeleteFilesParams) error {
	return errors.New("not implemented: DidDeleteFiles")
}

func (unimplemented) CodeLensRefresh(ctx context.Context) error {
	return errors.New("not implemented: CodeLensRefresh")
}

// PrepareCallHierarchy and its siblings are explicitly out of scope
// (SPEC_FULL.md §5: CallResolver binds call sites, not transitive call
// graphs).
func (unimplemented) PrepareCallHierarchy(ctx context.Context, params *protocol.CallHierarchyPrepareParams) ([]protocol.CallHierarchyItem, error) {
	return nil, errors.New("not implemented: PrepareCallHierarchy")
}

func (unimplemented) IncomingCalls(ctx context.Context, params *protocol.CallHierarchyIncomingCallsParams) ([]protocol.CallHierarchyIncomingCall, error) {
	return nil, errors.New("not implemented: IncomingCalls")
}

func (unimplemented) OutgoingCalls(ctx context.Context, params *protocol.CallHierarchyOutgoingCallsParams) ([]protocol.CallHierarchyOutgoingCall, error) {
	return nil, errors.New("not implemented: OutgoingCalls")
}

func (unimplemented) SemanticTokensFullDelta(ctx context.Context, params *protocol.SemanticTokensDeltaParams) (interface{}, error) {
	return nil, errors.New("not implemented: SemanticTokensFullDelta")
}

func (unimplemented) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	return nil, errors.New("not implemented: SemanticTokensRange")
}

func (unimplemented) SemanticTokensRefresh(ctx context.Context) error {
	return errors.New("not implemented: SemanticTokensRefresh")
}

func (unimplemented) LinkedEditingRange(ctx context.Context, params *protocol.LinkedEditingRangeParams) (*protocol.LinkedEditingRanges, error) {
	return nil, errors.New("not implemented: LinkedEditingRange")
}

func (unimplemented) Moniker(ctx context.Context, params *protocol.MonikerParams) ([]protocol.Moniker, error) {
	return nil, errors.New("not implemented: Moniker")
}

func (unimplemented) Request(ctx context.Context, method string, params interface{}) (interface{}, error) {
	return nil, errors.New("not implemented: Request")
}
