/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/gndash/internal/ionotify"
	"github.com/gnames/gndash/internal/iostore"
	"github.com/gnames/gndash/internal/ioweb"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// getServeCmd returns the serve command.
func getServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the GNdash HTTP API",
		Long: `Run the HTTP API of GNdash.

Every browser session gets its own dataset. Datasets are kept by the
session store (memory, sqlite or postgres) and are purged after
server.session_ttl without activity.

Examples:
  # Serve on the default port with in-memory sessions
  gndash serve

  # Serve on port 9000, keep sessions in SQLite
  gndash serve -p 9000 -s sqlite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runServe(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	serveCmd.Flags().String("host", "", "interface to listen on")
	serveCmd.Flags().IntP("port", "p", 0, "port to listen on")
	serveCmd.Flags().StringP("store", "s", "",
		"session store: memory, sqlite or postgres")
	serveCmd.Flags().String("sqlite-path", "", "file of the sqlite store")

	return serveCmd
}

func runServe(cmd *cobra.Command) error {
	if serveOpts := serveFlags(cmd); len(serveOpts) > 0 {
		cfg.Update(serveOpts)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	store, err := iostore.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	notifier := ionotify.New(cfg.Notify)
	defer notifier.Close()

	srv := ioweb.New(cfg, store, notifier)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gCtx)
	})
	g.Go(func() error {
		ttl := cfg.Server.SessionTTL
		return iostore.RunJanitor(gCtx, store, ttl, iostore.JanitorInterval(ttl))
	})

	gn.Info("GNdash listens on <em>http://%s</em> (%s sessions)",
		cfg.Addr(), cfg.Store.Backend)

	return g.Wait()
}
