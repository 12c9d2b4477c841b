package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/spf13/cobra"
	"log"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"time"
)

var (
	dir  string
	port int
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a directory over HTTP, for the wasm build of the explorer",
		Args:  cobra.ExactArgs(0),
		RunE:  runCmd,
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory to serve")
	cmd.Flags().IntVar(&port, "port", 7878, "port to listen on")

	return cmd
}

func runCmd(cmd *cobra.Command, _ []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("serving %q: %w", dir, err)
	}

	// Browsers refuse to instantiate wasm streamed with the wrong type.
	if err := mime.AddExtensionType(".wasm", "application/wasm"); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           http.FileServer(http.Dir(dir)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()

	log.Printf("serving %s on http://localhost:%d", dir, port)

	select {
	case err := <-errs:
		return err
	case <-cmd.Context().Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
