package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/patii/workcity/internal/log"
	"github.com/patii/workcity/internal/server"
	"github.com/patii/workcity/internal/tracing"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a demo page and the child stylesheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if !cfg.Log.Debug {
			// No debug file: entries reach stderr only through the stream.
			log.InitWriter(nil)
			log.SetMinLevel(log.LevelInfo)
		}
		streamCtx, stopStream := context.WithCancel(context.Background())
		logDone := streamLog(streamCtx, cmd.ErrOrStderr())
		defer func() {
			stopStream()
			<-logDone
		}()

		provider, err := tracing.NewProvider(ctx, cfg.Tracing)
		if err != nil {
			return fmt.Errorf("initializing tracing: %w", err)
		}
		defer func() { _ = provider.Shutdown(context.Background()) }()

		return server.New(cfg, server.WithTracer(provider.Tracer())).Run(ctx)
	},
}

// streamLog copies published log entries to w until ctx is cancelled. The
// returned channel is closed once the stream has stopped.
func streamLog(ctx context.Context, w io.Writer) <-chan struct{} {
	done := make(chan struct{})
	events := log.Subscribe(ctx)
	if events == nil {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		for ev := range events {
			_, _ = io.WriteString(w, ev.Payload)
		}
	}()
	return done
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")
	_ = bindFlag(serveCmd, "server.addr", "addr")
	rootCmd.AddCommand(serveCmd)
}
