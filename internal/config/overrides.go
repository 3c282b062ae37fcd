package config

import (
	"github.com/ironsheep/image-vectorize/internal/vectorize"
)

// Overrides are optional per-call option values. Nil fields keep the
// configured value. The JSON names match the MCP tool parameters.
type Overrides struct {
	WhiteThreshold *int     `json:"white_threshold,omitempty"`
	MinArea        *float64 `json:"min_area,omitempty"`
	StrokeWidth    *float64 `json:"stroke_width,omitempty"`
	SharpenFactor  *float64 `json:"sharpen_factor,omitempty"`
	EnableUpscale  *bool    `json:"enable_upscale,omitempty"`
	EnableSharpen  *bool    `json:"enable_sharpen,omitempty"`
	UpscaleFactor  *int     `json:"upscale_factor,omitempty"`
}

// Apply returns opts with every set override replacing the original value.
func (o Overrides) Apply(opts vectorize.Options) vectorize.Options {
	if o.WhiteThreshold != nil {
		opts.WhiteThreshold = *o.WhiteThreshold
	}
	if o.MinArea != nil {
		opts.MinArea = *o.MinArea
	}
	if o.StrokeWidth != nil {
		opts.StrokeWidth = *o.StrokeWidth
	}
	if o.SharpenFactor != nil {
		opts.SharpenFactor = *o.SharpenFactor
	}
	if o.EnableUpscale != nil {
		opts.EnableUpscale = *o.EnableUpscale
	}
	if o.EnableSharpen != nil {
		opts.EnableSharpen = *o.EnableSharpen
	}
	if o.UpscaleFactor != nil {
		opts.UpscaleFactor = *o.UpscaleFactor
	}
	return opts
}

// ApplyArgs layers o over the configured options and validates the result.
func (c *Config) ApplyArgs(o Overrides) (vectorize.Options, error) {
	opts := o.Apply(c.Vectorize)
	if err := opts.Validate(); err != nil {
		return vectorize.Options{}, err
	}
	return opts, nil
}
