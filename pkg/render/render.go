// Package render turns a committed image state plus the transient slider
// adjustments into display or export pixels. It is a pure pipeline: the
// source image and the adjustments are never mutated, and the same inputs
// always produce the same output.
package render

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"github.com/disintegration/imaging"

	// Uploads may be WebP; register the decoder for image.Decode.
	_ "golang.org/x/image/webp"

	"github.com/gomcpgo/photo_studio_ai/pkg/session"
)

// Error represents a rendering failure
type Error struct {
	Code    string
	Message string
	Details map[string]interface{}
}

func (e Error) Error() string {
	return e.Message
}

// Apply runs the six filter stages over img in their fixed order:
// brightness, contrast, saturation, grayscale, sepia, blur. The order is a
// contract; blur does not commute with the color stages. Stages sitting at
// their baseline are skipped.
func Apply(img image.Image, adj session.Adjustments) *image.NRGBA {
	adj = adj.Clamped()
	out := imaging.Clone(img)

	if adj.Brightness != 100 {
		out = imaging.AdjustBrightness(out, adj.Brightness-100)
	}
	if adj.Contrast != 100 {
		out = imaging.AdjustContrast(out, adj.Contrast-100)
	}
	if adj.Saturation != 100 {
		out = imaging.AdjustSaturation(out, adj.Saturation-100)
	}
	if adj.Grayscale > 0 {
		out = grayscaleMix(out, adj.Grayscale/100)
	}
	if adj.Sepia > 0 {
		out = sepiaMix(out, adj.Sepia/100)
	}
	if adj.Blur > 0 {
		out = imaging.Blur(out, adj.Blur)
	}

	return out
}

// File decodes the image at path and applies the adjustments. A file that
// cannot be decoded fails closed with a decode_error; no partial output is
// produced.
func File(path string, adj session.Adjustments) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{
			Code:    "file_error",
			Message: fmt.Sprintf("failed to open image: %v", err),
			Details: map[string]interface{}{"file_path": path},
		}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, Error{
			Code:    "decode_error",
			Message: fmt.Sprintf("failed to decode image: %v", err),
			Details: map[string]interface{}{"file_path": path},
		}
	}

	return Apply(img, adj), nil
}

// Save encodes the rendered image to path. Format is derived from the
// extension (png, jpg, gif, tif, bmp); quality applies to JPEG only.
func Save(img image.Image, path string, quality int) error {
	var opts []imaging.EncodeOption
	if quality > 0 {
		opts = append(opts, imaging.JPEGQuality(quality))
	}
	if err := imaging.Save(img, path, opts...); err != nil {
		return Error{
			Code:    "encode_error",
			Message: fmt.Sprintf("failed to save image: %v", err),
			Details: map[string]interface{}{"file_path": path},
		}
	}
	return nil
}

// Probe checks that the file at path holds a decodable image and returns
// its dimensions without reading the full pixel data.
func Probe(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, Error{
			Code:    "file_error",
			Message: fmt.Sprintf("failed to open image: %v", err),
			Details: map[string]interface{}{"file_path": path},
		}
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, Error{
			Code:    "decode_error",
			Message: fmt.Sprintf("not a decodable image: %v", err),
			Details: map[string]interface{}{"file_path": path},
		}
	}
	return cfg.Width, cfg.Height, nil
}

// ContentType returns the MIME type for an image filename.
func ContentType(filename string) string {
	ext := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(ext, ".jpg"), strings.HasSuffix(ext, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(ext, ".png"):
		return "image/png"
	case strings.HasSuffix(ext, ".gif"):
		return "image/gif"
	case strings.HasSuffix(ext, ".webp"):
		return "image/webp"
	case strings.HasSuffix(ext, ".bmp"):
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}

// grayscaleMix interpolates each pixel toward its luminance. amount is in
// [0,1]; 1 is a full grayscale conversion.
func grayscaleMix(img image.Image, amount float64) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		lum := 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
		return color.NRGBA{
			R: lerpByte(float64(c.R), lum, amount),
			G: lerpByte(float64(c.G), lum, amount),
			B: lerpByte(float64(c.B), lum, amount),
			A: c.A,
		}
	})
}

// sepiaMix interpolates each pixel toward the standard sepia matrix.
func sepiaMix(img image.Image, amount float64) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		r, g, b := float64(c.R), float64(c.G), float64(c.B)
		sr := 0.393*r + 0.769*g + 0.189*b
		sg := 0.349*r + 0.686*g + 0.168*b
		sb := 0.272*r + 0.534*g + 0.131*b
		return color.NRGBA{
			R: lerpByte(r, sr, amount),
			G: lerpByte(g, sg, amount),
			B: lerpByte(b, sb, amount),
			A: c.A,
		}
	})
}

func lerpByte(from, to, amount float64) uint8 {
	v := from + (to-from)*amount
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v + 0.5)
}
