package main

import (
	"fmt"
	"io"
	"time"

	"github.com/example/go-g2p-mix/internal/server"
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check server health endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.ListenAddr
			}
			return probe(cmd.OutOrStdout(), addr, timeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP server address to probe (defaults to server-listen-addr)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "Probe timeout")

	return cmd
}

func probe(w io.Writer, addr string, timeout time.Duration) error {
	version, err := server.ProbeHTTP(addr, timeout)
	if err != nil {
		return fmt.Errorf("health check %s: %w", addr, err)
	}
	_, err = fmt.Fprintf(w, "ok (%s)\n", version)
	return err
}
