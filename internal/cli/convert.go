package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ironsheep/image-vectorize/internal/imaging"
	"github.com/ironsheep/image-vectorize/internal/vectorize"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		output    string
		maskOut   string
		maskColor string
		force     bool
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "convert <image>",
		Short: "Convert an image to SVG",
		Long: `Convert a PNG, JPEG, GIF, BMP, TIFF or WebP image to SVG.

The SVG is written to stdout unless --output is given. An image with no
foreground produces an empty SVG; use --strict to treat that as an error.

Examples:
  image-vectorize convert logo.png -o logo.svg
  image-vectorize convert scan.jpg --white-threshold 200 --min-area 50 > scan.svg
  image-vectorize convert logo.png -o logo.svg --mask-out mask.png`,
		Args: cobra.ExactArgs(1),
	}

	flags := addOptionFlags(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the SVG to this file instead of stdout")
	cmd.Flags().StringVar(&maskOut, "mask-out", "", "also write the foreground mask as PNG")
	cmd.Flags().StringVar(&maskColor, "mask-color", "#000000", "foreground color for --mask-out")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "write SVG to stdout even if it is a terminal")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when no foreground is found")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		input := args[0]

		opts, err := flags.resolve(a.cfg)
		if err != nil {
			return err
		}
		up, release := a.upscaler()
		defer release()
		opts.Upscaler = up

		var fg imaging.RGBColor
		if maskOut != "" {
			if fg, err = imaging.ParseHexColor(maskColor); err != nil {
				return err
			}
		}

		toStdout := output == "" || output == "-"
		if toStdout && !force && isTerminal(cmd.OutOrStdout()) {
			return errors.New("refusing to write SVG to a terminal; use --output or --force")
		}

		res, err := vectorize.VectorizeFile(cmd.Context(), input, opts)
		if err != nil {
			return err
		}
		if strict {
			if err := res.Err(); err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
		}
		if res.Empty() {
			vectorize.Logger().Warn("no foreground found, writing empty SVG", "file", input)
		}

		if toStdout {
			if err := res.Document.WriteSVG(cmd.OutOrStdout()); err != nil {
				return err
			}
		} else if err := writeSVGFile(output, res.Document); err != nil {
			return err
		}

		if maskOut != "" {
			return writeMask(cmd.Context(), input, maskOut, fg, opts)
		}
		return nil
	}
	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func writeSVGFile(path string, doc *vectorize.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := doc.WriteSVG(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func writeMask(ctx context.Context, input, path string, fg imaging.RGBColor, opts vectorize.Options) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	img, _, err := imaging.Decode(data)
	if err != nil {
		return err
	}
	mask, err := vectorize.Mask(ctx, imaging.FromImage(img), opts)
	if err != nil {
		return err
	}
	png, err := mask.PNG(fg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("failed to write mask: %w", err)
	}
	return nil
}
