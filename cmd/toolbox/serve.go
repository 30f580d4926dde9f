package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/toolbox/internal/httpapi"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the toolbox HTTP API",
		Long: `Serve the toolbox HTTP API:

  POST /scan           list mount points of the posted HTML
  POST /meta?url=      sharing metadata of the posted HTML
  GET  /share          share link for the query parameters
  GET  /share/targets  available share targets
  GET  /detect         device info for the User-Agent (or ?ua=)
  GET  /metrics        Prometheus metrics
  GET  /healthz        liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := newKit(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if addr != "" {
				kit.Config().Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return httpapi.New(kit).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides server.addr)")
	return cmd
}
