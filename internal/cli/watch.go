package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-vectorize/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		outDir  string
		initial bool
	)

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Convert images as they are added to a directory",
		Long: `Watch a directory and convert every image created or modified in it.

Each <name>.<ext> is written as <name>.svg into --out (default: the watched
directory). Hidden files are ignored. Press Ctrl-C to stop.`,
		Args: cobra.ExactArgs(1),
	}

	flags := addOptionFlags(cmd.Flags())
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for SVG output")
	cmd.Flags().BoolVar(&initial, "initial", false, "convert images already in the directory first")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		opts, err := flags.resolve(a.cfg)
		if err != nil {
			return err
		}
		up, release := a.upscaler()
		defer release()
		opts.Upscaler = up

		w := watch.New(args[0], outDir, opts)
		if initial {
			n, err := w.Scan(cmd.Context())
			if err != nil {
				return err
			}
			cmd.PrintErrf("converted %d existing images\n", n)
		}
		return w.Run(cmd.Context())
	}
	return cmd
}
