// Package fontres resolves a font face from an ordered chain of
// candidate sources, falling back to a built-in bitmap face when no
// system font is available.
package fontres

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

const fontDPI = 72

// Default system font candidates, tried in order.
const (
	NotoCJKPath = "/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc"
	DejaVuPath  = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
)

// Resolver produces a font face at the given point size.
type Resolver func(size float64) (font.Face, error)

// Collection returns a resolver for an OpenType collection file (.ttc).
// The first font in the collection is used.
func Collection(path string) Resolver {
	return func(size float64) (font.Face, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		f, err := coll.Font(0)
		if err != nil {
			return nil, fmt.Errorf("collection %s: %w", path, err)
		}
		return opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     fontDPI,
			Hinting: font.HintingFull,
		})
	}
}

// TrueType returns a resolver for a single TrueType font file (.ttf).
func TrueType(path string) Resolver {
	return func(size float64) (font.Face, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		f, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     fontDPI,
			Hinting: font.HintingFull,
		}), nil
	}
}

// Builtin returns a resolver for the built-in bitmap face. It never
// fails. Face7x13 has a single fixed size, so the requested size is
// ignored and glyphs do not grow with the icon.
func Builtin() Resolver {
	return func(float64) (font.Face, error) {
		return basicfont.Face7x13, nil
	}
}

// File picks Collection or TrueType based on the file extension.
func File(path string) Resolver {
	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		return Collection(path)
	}
	return TrueType(path)
}

// Chain is an ordered list of resolvers tried until one succeeds.
type Chain []Resolver

// DefaultChain tries the CJK-capable Noto collection, then DejaVu Sans.
// Resolve appends the built-in face as the last resort, so the default
// chain works on systems with neither font installed.
func DefaultChain() Chain {
	return Chain{Collection(NotoCJKPath), TrueType(DejaVuPath)}
}

// Resolve returns the face from the first resolver that succeeds. The
// built-in face is the guaranteed last resort, so Resolve always
// returns a usable face.
func (c Chain) Resolve(size float64) font.Face {
	for _, r := range c {
		if face, err := r(size); err == nil {
			return face
		}
	}
	face, _ := Builtin()(size)
	return face
}
