package cli

import (
	"github.com/spf13/cobra"

	"github.com/BuzzLyutic/taskify/internal/app"
)

func serveCmd(opts *options) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API over the same storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App) error {
				if port != "" {
					a.Config.Port = port
				}
				return a.Serve(cmd.Context())
			})
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides config)")

	return cmd
}
