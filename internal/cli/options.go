package cli

import (
	"github.com/spf13/pflag"

	"github.com/ironsheep/image-vectorize/internal/config"
	"github.com/ironsheep/image-vectorize/internal/vectorize"
)

// optionFlags binds the conversion options to command flags. Only flags the
// user actually set override the configuration.
type optionFlags struct {
	fs *pflag.FlagSet

	whiteThreshold int
	minArea        float64
	strokeWidth    float64
	sharpenFactor  float64
	upscale        bool
	sharpen        bool
	upscaleFactor  int
}

func addOptionFlags(fs *pflag.FlagSet) *optionFlags {
	d := vectorize.DefaultOptions()
	o := &optionFlags{fs: fs}

	fs.IntVarP(&o.whiteThreshold, "white-threshold", "t", d.WhiteThreshold, "background when R, G and B are all above this (0-255)")
	fs.Float64VarP(&o.minArea, "min-area", "a", d.MinArea, "discard shapes smaller than this many pixels")
	fs.Float64VarP(&o.strokeWidth, "stroke-width", "w", d.StrokeWidth, "outline width in working pixels")
	fs.Float64Var(&o.sharpenFactor, "sharpen-factor", d.SharpenFactor, "sharpening strength (1 = none)")
	fs.BoolVar(&o.upscale, "upscale", d.EnableUpscale, "upscale before tracing")
	fs.BoolVar(&o.sharpen, "sharpen", d.EnableSharpen, "sharpen before tracing")
	fs.IntVar(&o.upscaleFactor, "upscale-factor", d.UpscaleFactor, "upscale multiplier (1-8)")
	return o
}

// overrides returns the flags that were set on the command line.
func (o *optionFlags) overrides() config.Overrides {
	var ov config.Overrides
	if o.fs.Changed("white-threshold") {
		ov.WhiteThreshold = &o.whiteThreshold
	}
	if o.fs.Changed("min-area") {
		ov.MinArea = &o.minArea
	}
	if o.fs.Changed("stroke-width") {
		ov.StrokeWidth = &o.strokeWidth
	}
	if o.fs.Changed("sharpen-factor") {
		ov.SharpenFactor = &o.sharpenFactor
	}
	if o.fs.Changed("upscale") {
		ov.EnableUpscale = &o.upscale
	}
	if o.fs.Changed("sharpen") {
		ov.EnableSharpen = &o.sharpen
	}
	if o.fs.Changed("upscale-factor") {
		ov.UpscaleFactor = &o.upscaleFactor
	}
	return ov
}

// resolve layers the set flags over the configured options.
func (o *optionFlags) resolve(cfg *config.Config) (vectorize.Options, error) {
	return cfg.ApplyArgs(o.overrides())
}
