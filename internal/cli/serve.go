package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-vectorize/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol server over stdio.

The server exposes image_load, image_dimensions, image_vectorize and
image_foreground_mask to MCP clients. Conversion defaults come from the
config file; clients may override them per call.

Client configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "image-vectorize": {
        "command": "/path/to/image-vectorize",
        "args": ["serve"]
      }
    }
  }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			up, release := a.upscaler()
			defer release()

			srv := server.New(a.cfg, up)
			srv.SetVersion(version)
			return srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
