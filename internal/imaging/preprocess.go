package imaging

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/convolution"
	"github.com/disintegration/imaging"
)

const (
	// DefaultUpscaleFactor is the enlargement applied when upscaling is on.
	DefaultUpscaleFactor = 4

	// DefaultSharpenFactor is the gain of the sharpness enhancement.
	DefaultSharpenFactor = 2.0

	// Unsharp-mask parameters applied after the sharpness enhancement.
	unsharpRadius    = 2.0
	unsharpPercent   = 150.0
	unsharpThreshold = 3.0
)

// ErrUpscaleModelUnavailable is returned by an Upscaler whose model or
// executable cannot be used. Preprocess treats it as a signal to fall back to
// resampling; it never reaches Preprocess's caller.
var ErrUpscaleModelUnavailable = errors.New("upscale model unavailable")

// Upscaler enlarges an image by an integer factor.
type Upscaler interface {
	// Name identifies the upscaler in logs.
	Name() string

	// Upscale returns img enlarged by factor in both dimensions.
	Upscale(ctx context.Context, img image.Image, factor int) (image.Image, error)
}

// LanczosUpscaler resamples with a Lanczos filter. It cannot fail and is
// the fallback for every other Upscaler.
type LanczosUpscaler struct{}

// Name implements Upscaler.
func (LanczosUpscaler) Name() string { return "lanczos" }

// Upscale implements Upscaler.
func (LanczosUpscaler) Upscale(_ context.Context, img image.Image, factor int) (image.Image, error) {
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*factor, b.Dy()*factor, imaging.Lanczos), nil
}

// PreprocessOptions controls the quality pipeline that runs before
// background separation.
type PreprocessOptions struct {
	// EnableUpscale enlarges the image by UpscaleFactor.
	EnableUpscale bool

	// EnableSharpen applies the sharpness enhancement and unsharp mask.
	EnableSharpen bool

	// SharpenFactor is the sharpness gain; 1.0 leaves the image unchanged.
	SharpenFactor float64

	// UpscaleFactor is the enlargement factor. Zero means DefaultUpscaleFactor.
	UpscaleFactor int

	// Upscaler is the preferred upscaler, typically a super-resolution model.
	// Nil uses LanczosUpscaler directly.
	Upscaler Upscaler

	// Logger receives the fallback warning and stage diagnostics. Nil
	// discards them.
	Logger *slog.Logger
}

// Preprocess optionally upscales and sharpens img, returning the working
// image and the scale factor that maps working coordinates back to img's
// resolution (1/UpscaleFactor when upscaled, 1.0 otherwise).
//
// When the preferred upscaler fails for any reason, Preprocess logs a warning
// and falls back to Lanczos resampling. The fallback is not an error: only the
// returned scale factor matters downstream, and it is the same either way.
func Preprocess(ctx context.Context, img *RasterImage, opts PreprocessOptions) (*RasterImage, float64) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	working := img
	scale := 1.0

	if opts.EnableUpscale && img.width > 0 && img.height > 0 {
		factor := opts.UpscaleFactor
		if factor <= 0 {
			factor = DefaultUpscaleFactor
		}
		working = upscale(ctx, img, factor, opts.Upscaler, logger)
		scale = 1.0 / float64(factor)
	}

	if opts.EnableSharpen && working.width > 0 && working.height > 0 {
		factor := opts.SharpenFactor
		if factor <= 0 {
			factor = DefaultSharpenFactor
		}
		working = Sharpen(working, factor)
		logger.Debug("sharpened working image", "factor", factor)
	}

	return working, scale
}

// upscale runs the preferred upscaler and falls back to Lanczos when it is
// missing, fails, or returns an image of the wrong size.
func upscale(ctx context.Context, img *RasterImage, factor int, preferred Upscaler, logger *slog.Logger) *RasterImage {
	src := img.NRGBA()
	wantW, wantH := img.width*factor, img.height*factor

	if preferred != nil {
		out, err := preferred.Upscale(ctx, src, factor)
		if err == nil && (out.Bounds().Dx() != wantW || out.Bounds().Dy() != wantH) {
			err = errors.New("upscaler returned unexpected dimensions")
		}
		if err == nil {
			logger.Debug("upscaled working image", "upscaler", preferred.Name(), "factor", factor)
			return FromImage(out)
		}
		logger.Warn("super-resolution upscale failed, falling back to lanczos",
			"upscaler", preferred.Name(), "error", err)
	}

	out, _ := LanczosUpscaler{}.Upscale(ctx, src, factor)
	logger.Debug("upscaled working image", "upscaler", "lanczos", "factor", factor)
	return FromImage(out)
}

// Sharpen applies a sharpness enhancement with the given gain followed by an
// unsharp mask that boosts edge contrast.
//
// The enhancement extrapolates away from a smoothed copy of the image:
// out = smooth + factor*(img - smooth). The smoothing kernel is
//
//	1 1 1
//	1 5 1
//	1 1 1
//
// normalized by 13. Border pixels are left untouched by the enhancement.
// The unsharp mask then adds 150% of the difference to a Gaussian blur of
// radius 2 wherever that difference is at least 3 levels.
func Sharpen(img *RasterImage, factor float64) *RasterImage {
	src := clone.AsRGBA(img.NRGBA())

	k := convolution.NewKernel(3, 3)
	k.Matrix = []float64{
		1, 1, 1,
		1, 5, 1,
		1, 1, 1,
	}
	smooth := convolution.Convolve(src, k.Normalized(), &convolution.Options{Bias: 0, Wrap: false, KeepAlpha: true})

	w, h := img.width, img.height
	enhanced := clone.AsRGBA(src)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := enhanced.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				s := float64(smooth.Pix[i+c])
				o := float64(src.Pix[i+c])
				enhanced.Pix[i+c] = clampByte(s + factor*(o-s))
			}
		}
	}

	blurred := blur.Gaussian(enhanced, unsharpRadius)
	out := clone.AsRGBA(enhanced)
	for i := 0; i < len(out.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			o := float64(enhanced.Pix[i+c])
			diff := o - float64(blurred.Pix[i+c])
			if math.Abs(diff) < unsharpThreshold {
				continue
			}
			out.Pix[i+c] = clampByte(o + diff*unsharpPercent/100.0)
		}
	}

	return FromImage(out)
}

// clampByte rounds v and clamps it into 0-255.
func clampByte(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
