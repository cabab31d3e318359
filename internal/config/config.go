package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hanicon/mkicon/internal/fontres"
	"github.com/hanicon/mkicon/internal/icon"
	"github.com/hanicon/mkicon/internal/paths"
)

// Default colors as hex strings, matching the icon package defaults.
const (
	DefaultBackground = "#2196F3"
	DefaultBorder     = "#1976D2"
	DefaultGlyph      = "#FFFFFF"
)

// DefaultOut is the default output directory for the icon set.
const DefaultOut = "icons"

// DefaultSizes are the extension icon sizes rendered when none are
// configured.
var DefaultSizes = []int{16, 48, 128}

// Config holds the tool's settings. Every field is optional; defaults
// apply to anything the file leaves out.
type Config struct {
	Text       string   `json:"text,omitempty"`       // glyph to render
	Out        string   `json:"out,omitempty"`        // output directory
	Sizes      []int    `json:"sizes,omitempty"`      // icon pixel sizes
	Background string   `json:"background,omitempty"` // "#RRGGBB"
	Border     string   `json:"border,omitempty"`     // "#RRGGBB"
	Glyph      string   `json:"glyph,omitempty"`      // "#RRGGBB"
	Fonts      []string `json:"fonts,omitempty"`      // font files, tried in order
	Log        bool     `json:"log,omitempty"`        // append created icons to the event log
}

// Default returns the stock configuration: the default glyph, blue
// colors, 16/48/128 sizes and the system font chain.
func Default() Config {
	return Config{
		Text:       icon.DefaultText,
		Out:        DefaultOut,
		Sizes:      append([]int(nil), DefaultSizes...),
		Background: DefaultBackground,
		Border:     DefaultBorder,
		Glyph:      DefaultGlyph,
		Fonts:      []string{fontres.NotoCJKPath, fontres.DejaVuPath},
	}
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = Default()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// Spec converts the configured colors and glyph into an icon spec.
func (c Config) Spec() (icon.Spec, error) {
	bg, err := icon.ParseHexColor(c.Background)
	if err != nil {
		return icon.Spec{}, fmt.Errorf("background: %w", err)
	}
	border, err := icon.ParseHexColor(c.Border)
	if err != nil {
		return icon.Spec{}, fmt.Errorf("border: %w", err)
	}
	glyph, err := icon.ParseHexColor(c.Glyph)
	if err != nil {
		return icon.Spec{}, fmt.Errorf("glyph: %w", err)
	}
	return icon.Spec{
		Text:       c.Text,
		Background: bg,
		Border:     border,
		Glyph:      glyph,
	}, nil
}

// Chain builds the font fallback chain from the configured font files.
func (c Config) Chain() fontres.Chain {
	chain := make(fontres.Chain, 0, len(c.Fonts))
	for _, p := range c.Fonts {
		chain = append(chain, fontres.File(p))
	}
	return chain
}

// Load reads a config file. It tries, in order:
//  1. explicitPath (if non-empty; a missing file is then an error)
//  2. mkicon.json next to the running binary
//  3. ~/.config/mkicon/mkicon.json
//
// When no file is found the defaults are returned; the config is
// entirely optional.
func Load(explicitPath string) (Config, error) {
	if explicitPath != "" {
		return readConfig(explicitPath)
	}

	// Next to binary
	exe, err := os.Executable()
	if err == nil {
		p := filepath.Join(filepath.Dir(exe), paths.ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	// User config directory
	home, err := os.UserHomeDir()
	if err == nil {
		var p string
		if runtime.GOOS == "windows" {
			p = filepath.Join(home, "AppData", "Roaming", paths.AppDirName, paths.ConfigFileName)
		} else {
			p = filepath.Join(home, ".config", paths.AppDirName, paths.ConfigFileName)
		}
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	return Default(), nil
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
