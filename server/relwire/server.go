package relwire

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/tuannm99/relstore"
)

type ServerConfig struct {
	Addr  string
	Store *relstore.Store
}

// Run serves the wire protocol until SIGINT/SIGTERM. Every connection
// talks to the same store, so all sessions observe one database.
func Run(sc ServerConfig) error {
	ln, err := net.Listen("tcp", sc.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer func() { _ = ln.Close() }()

	slog.Info("relstore tcp server listening", "addr", sc.Addr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			slog.Warn("accept failed", "error", err)
			continue
		}
		go handleConn(ctx, conn, sc.Store)
	}
}

func handleConn(ctx context.Context, conn net.Conn, store *relstore.Store) {
	defer func() { _ = conn.Close() }()

	// No global deadline; the client applies per-request deadlines.
	_ = conn.SetDeadline(time.Time{})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		var req ExecuteRequest
		if err := ReadFrame(conn, &req); err != nil {
			// Client closed or sent a bad frame.
			return
		}

		res, err := store.Execute(req.SQL)
		if err != nil {
			_ = WriteFrame(conn, ExecuteResponse{ID: req.ID, Error: err.Error()})
			continue
		}
		_ = WriteFrame(conn, ExecuteResponse{ID: req.ID, Result: res})
	}
}
