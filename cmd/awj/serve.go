package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/awaitjson/go-awaitjson/debug"
	"github.com/awaitjson/go-awaitjson/encode"
	"github.com/awaitjson/go-awaitjson/ir"

	"github.com/google/gops/agent"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/scott-cotton/cli"
)

func serve(cfg *ServeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Serve.Parse(cc, args)
	if err != nil {
		return err
	}
	file := ""
	if len(args) > 0 {
		file = args[0]
	}

	if cfg.Gops {
		// Diagnostics agent for inspecting the running server
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintf(cc.Out, "\nshutting down\n")
		cancel()
	}()

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}
	fmt.Fprintf(cc.Out, "awj listening on %s\n", ln.Addr())

	var closed atomic.Bool
	var wg sync.WaitGroup
	go func() {
		<-ctx.Done()
		closed.Store(true)
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if closed.Load() {
				break
			}
			theLog.Error("accept error", "error", err)
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			handleConn(ctx, cfg, conn, file)
		}()
	}

	wg.Wait()
	return nil
}

// handleConn streams one render of the document to the connection. The
// encode context ends when the peer disconnects, which stops pulls on
// the document's async parts.
func handleConn(ctx context.Context, cfg *ServeConfig, conn net.Conn, file string) {
	defer conn.Close()
	id := uuid.New().String()
	theLog.Info("connection", "id", id, "remote", conn.RemoteAddr().String())

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		buf := make([]byte, 1)
		for {
			if _, err := conn.Read(buf); err != nil {
				cancel()
				return
			}
		}
	}()

	var w io.Writer = conn
	var gz *gzip.Writer
	if cfg.Gzip {
		gz = gzip.NewWriter(conn)
		defer gz.Close()
		w = gz
	}

	node, err := serveNode(connCtx, cfg, file)
	if err != nil {
		theLog.Error("document", "id", id, "error", err)
		return
	}

	lim := newLimiter(cfg.Rate)
	for frag, err := range encode.Encode(connCtx, node, cfg.encOpts(w)...) {
		if err != nil {
			theLog.Error("encode", "id", id, "error", err)
			return
		}
		if err := lim.Wait(connCtx); err != nil {
			return
		}
		if _, err := io.WriteString(w, frag); err != nil {
			theLog.Error("write", "id", id, "error", err)
			return
		}
		if gz != nil {
			// a fragment is only useful if the peer can see it now
			gz.Flush()
		}
	}
	io.WriteString(w, "\n")
	if debug.Serve() {
		debug.Logf("served %s\n", id)
	}
	theLog.Info("done", "id", id)
}

// serveNode builds a fresh document per connection: async handles are
// single-use, so renders cannot share them.
func serveNode(ctx context.Context, cfg *ServeConfig, file string) (*ir.Node, error) {
	if file == "" {
		return demoNode(ctx, defaultDemoDelay)
	}
	data, err := loadAny(file)
	if err != nil {
		return nil, err
	}
	return bindDoc(data, cfg.Env)
}
