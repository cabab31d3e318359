// Package icon renders square application icons: a single glyph
// centered on a solid background with an inset border, written as PNG.
package icon

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strconv"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/hanicon/mkicon/internal/fontres"
)

// Default icon colors (material blue with a darker border).
var (
	DefaultBackground = color.RGBA{R: 33, G: 150, B: 243, A: 255}
	DefaultBorder     = color.RGBA{R: 25, G: 118, B: 210, A: 255}
	DefaultGlyphColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// DefaultText is the glyph rendered when none is configured.
const DefaultText = "한"

// fontScale is the face point size relative to the icon size.
const fontScale = 0.6

// Spec describes how an icon looks. Size is supplied per render call so
// one Spec covers a whole icon set.
type Spec struct {
	Text       string
	Background color.RGBA
	Border     color.RGBA
	Glyph      color.RGBA
}

// DefaultSpec returns the stock blue icon spec with the default glyph.
func DefaultSpec() Spec {
	return Spec{
		Text:       DefaultText,
		Background: DefaultBackground,
		Border:     DefaultBorder,
		Glyph:      DefaultGlyphColor,
	}
}

// FontSize returns the face point size for an icon of the given pixel
// size.
func FontSize(size int) float64 {
	return float64(size) * fontScale
}

// BorderWidth returns the border stroke width for an icon of the given
// pixel size. Larger icons get proportionally thicker borders.
func BorderWidth(size int) int {
	if w := size / 32; w > 1 {
		return w
	}
	return 1
}

// Draw renders a size×size icon using the given face: background fill,
// centered glyph, then the border on top. The canvas is fully opaque so
// the PNG encoder emits 24-bit truecolor.
func Draw(spec Spec, size int, face font.Face) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(spec.Background), image.Point{}, draw.Src)

	// BoundString gives the ink bounds relative to the dot, so placing
	// the dot at -Min puts the ink's top-left corner at the computed
	// position. Centering on the ink box rather than the baseline keeps
	// tall glyphs from sitting visually low.
	bounds, _ := font.BoundString(face, spec.Text)
	w := (bounds.Max.X - bounds.Min.X).Ceil()
	h := (bounds.Max.Y - bounds.Min.Y).Ceil()
	dotX := (size-w)/2 - bounds.Min.X.Floor()
	dotY := (size-h)/2 - bounds.Min.Y.Floor()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(spec.Glyph),
		Face: face,
		Dot:  fixed.P(dotX, dotY),
	}
	d.DrawString(spec.Text)

	drawBorder(img, size, spec.Border)
	return img
}

// Scale renders a size×size icon by resampling a source image instead
// of drawing a glyph. The background is filled first so transparent
// sources still produce an opaque icon, and the border is drawn on top.
func Scale(spec Spec, src image.Image, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(spec.Background), image.Point{}, draw.Src)
	xdraw.CatmullRom.Scale(img, img.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	drawBorder(img, size, spec.Border)
	return img
}

// Render resolves a face from the chain, draws the icon and writes it
// as a PNG to path, overwriting any existing file. The parent directory
// must already exist. Font-resolution failures are absorbed by the
// chain's built-in fallback and never surface here.
func Render(spec Spec, size int, chain fontres.Chain, path string) error {
	if size <= 0 {
		return fmt.Errorf("icon size must be positive, got %d", size)
	}
	face := chain.Resolve(FontSize(size))
	defer face.Close()
	return WritePNG(Draw(spec, size, face), path)
}

// RenderFrom writes a size×size icon produced by downscaling src.
func RenderFrom(spec Spec, src image.Image, size int, path string) error {
	if size <= 0 {
		return fmt.Errorf("icon size must be positive, got %d", size)
	}
	return WritePNG(Scale(spec, src, size), path)
}

// WritePNG encodes img to path, overwriting any existing file.
func WritePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// drawBorder strokes a rectangle inset to the image edges, bw rings
// deep, entirely inside the bounds.
func drawBorder(img *image.RGBA, size int, c color.RGBA) {
	bw := BorderWidth(size)
	for i := 0; i < bw; i++ {
		for x := i; x < size-i; x++ {
			img.SetRGBA(x, i, c)
			img.SetRGBA(x, size-1-i, c)
		}
		for y := i; y < size-i; y++ {
			img.SetRGBA(i, y, c)
			img.SetRGBA(size-1-i, y, c)
		}
	}
}

// ParseHexColor parses "#RGB" or "#RRGGBB" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) == 0 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("color %q: expected leading '#'", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: expected #RGB or #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
