// mkicon generates a set of square PNG application icons: a single
// glyph rendered centered on a solid background with a contrasting
// border. A default run writes icon16.png, icon48.png and icon128.png
// into icons/.
package main

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/hanicon/mkicon/internal/config"
	"github.com/hanicon/mkicon/internal/eventlog"
	"github.com/hanicon/mkicon/internal/icon"
	"github.com/hanicon/mkicon/internal/paths"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	args := os.Args[1:]

	var (
		configPath string
		outDir     string
		text       string
		sizesArg   string
		fromPath   string
		bgArg      string
		borderArg  string
		glyphArg   string
		fonts      []string
	)

	// Parse flags
	filtered := args[:0]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--out", "-o":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "Error: --out requires a directory\n")
				os.Exit(1)
			}
			outDir = args[i+1]
			i++
		case "--sizes", "-s":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "Error: --sizes requires a comma-separated list\n")
				os.Exit(1)
			}
			sizesArg = args[i+1]
			i++
		case "--text", "-t":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "Error: --text requires a value\n")
				os.Exit(1)
			}
			text = args[i+1]
			i++
		case "--font", "-f":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "Error: --font requires a file path\n")
				os.Exit(1)
			}
			fonts = append(fonts, args[i+1])
			i++
		case "--from":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "Error: --from requires an image path\n")
				os.Exit(1)
			}
			fromPath = args[i+1]
			i++
		case "--bg":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "Error: --bg requires a #RRGGBB color\n")
				os.Exit(1)
			}
			bgArg = args[i+1]
			i++
		case "--border":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "Error: --border requires a #RRGGBB color\n")
				os.Exit(1)
			}
			borderArg = args[i+1]
			i++
		case "--glyph":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "Error: --glyph requires a #RRGGBB color\n")
				os.Exit(1)
			}
			glyphArg = args[i+1]
			i++
		case "--config", "-c":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "Error: --config requires a file path\n")
				os.Exit(1)
			}
			configPath = args[i+1]
			i++
		default:
			filtered = append(filtered, args[i])
		}
	}

	if len(filtered) > 0 {
		switch filtered[0] {
		case "help", "-h", "--help":
			printUsage()
			return
		case "version", "-V", "--version":
			printVersion()
			return
		case "init":
			initCmd(configPath)
			return
		case "history":
			historyCmd(filtered[1:])
			return
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown argument %q\n", filtered[0])
			fmt.Fprintf(os.Stderr, "Run 'mkicon help' for usage.\n")
			os.Exit(1)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// CLI flags override the config file.
	if outDir != "" {
		cfg.Out = outDir
	}
	if text != "" {
		cfg.Text = text
	}
	if bgArg != "" {
		cfg.Background = bgArg
	}
	if borderArg != "" {
		cfg.Border = borderArg
	}
	if glyphArg != "" {
		cfg.Glyph = glyphArg
	}
	if sizesArg != "" {
		sizes, err := parseSizes(sizesArg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg.Sizes = sizes
	}
	if len(fonts) > 0 {
		// Explicit fonts go in front of the configured chain.
		cfg.Fonts = append(fonts, cfg.Fonts...)
	}

	if err := run(cfg, fromPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run renders one icon per configured size. The first failure aborts
// the run; already-written icons are left in place.
func run(cfg config.Config, fromPath string) error {
	spec, err := cfg.Spec()
	if err != nil {
		return err
	}
	chain := cfg.Chain()

	var src image.Image
	if fromPath != "" {
		src, err = loadImage(fromPath)
		if err != nil {
			return err
		}
	}

	var store eventlog.Store
	if cfg.Log {
		store = eventlog.Open()
		defer store.Close()
	}

	for _, size := range cfg.Sizes {
		path := filepath.Join(cfg.Out, paths.IconFileName(size))
		if src != nil {
			err = icon.RenderFrom(spec, src, size, path)
		} else {
			err = icon.Render(spec, size, chain, path)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Created %s\n", path)
		if store != nil {
			glyph := cfg.Text
			if src != nil {
				glyph = ""
			}
			e := eventlog.Event{Time: time.Now(), Size: size, Path: path, Glyph: glyph}
			if err := store.LogCreated(e); err != nil {
				fmt.Fprintf(os.Stderr, "eventlog: %v\n", err)
			}
		}
	}
	fmt.Println("All icons created successfully!")
	return nil
}

// historyCmd shows or prunes the icon-creation history.
//
//	mkicon history [days]     entries from the last N days (default 7, "all" for everything)
//	mkicon history clean <N>  remove entries older than N days
//	mkicon history clear      delete all history
func historyCmd(args []string) {
	store := eventlog.Open()
	defer store.Close()

	if len(args) > 0 {
		switch args[0] {
		case "clean":
			if len(args) < 2 {
				fmt.Fprintf(os.Stderr, "Error: history clean requires a day count\n")
				os.Exit(1)
			}
			days, err := strconv.Atoi(args[1])
			if err != nil || days <= 0 {
				fmt.Fprintf(os.Stderr, "Error: days must be a positive integer\n")
				os.Exit(1)
			}
			removed, err := store.Clean(days)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Removed %d entries older than %d days\n", removed, days)
			return
		case "clear":
			if err := store.Clear(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("History cleared.")
			return
		}
	}

	days := 7
	if len(args) > 0 {
		if args[0] == "all" {
			days = 0
		} else {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				fmt.Fprintf(os.Stderr, "Error: days must be a positive integer or \"all\"\n")
				os.Exit(1)
			}
			days = n
		}
	}

	entries, err := store.Entries(days)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		if days == 0 {
			fmt.Println("No icons recorded. Enable logging with \"log\": true in config.")
		} else {
			fmt.Printf("No icons recorded in the last %d days.\n", days)
		}
		return
	}
	for _, e := range entries {
		fmt.Println(eventlog.FormatLine(e))
	}
}

// initCmd writes the built-in default config so it can be edited.
func initCmd(configPath string) {
	path := resolveInitPath(configPath)

	cfg := config.Default()
	cfg.Log = true

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')
	if err := paths.AtomicWrite(path, data); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote default config to %s\n", path)
	fmt.Println("Edit it to change the glyph, colors, sizes and fonts.")
}

// resolveInitPath determines where to write the config file.
func resolveInitPath(configPath string) string {
	if configPath != "" {
		return configPath
	}
	// Try next-to-binary first.
	exe, err := os.Executable()
	if err == nil {
		return filepath.Join(filepath.Dir(exe), paths.ConfigFileName)
	}
	// Fall back to user config directory.
	return filepath.Join(paths.DataDir(), paths.ConfigFileName)
}

// loadImage decodes a source logo for --from rendering.
func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// parseSizes parses a comma-separated list of positive pixel sizes.
func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid size %q (sizes must be positive integers)", part)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no sizes given")
	}
	return sizes, nil
}

func printVersion() {
	fmt.Printf("mkicon %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Printf("mkicon %s - Generate square PNG application icons\n", version)
	fmt.Println(`
Usage:
  mkicon [options]
  mkicon init [--config <path>]
  mkicon history [days|all|clean <days>|clear]

Options:
  --out, -o <dir>        Output directory (default: icons; must exist)
  --sizes, -s <list>     Comma-separated pixel sizes (default: 16,48,128)
  --text, -t <glyph>     Glyph to render (default: 한)
  --font, -f <path>      Font file (.ttf/.ttc); repeatable, tried first
  --from <image>         Downscale an image instead of rendering a glyph
  --bg <#RRGGBB>         Background color (default: #2196F3)
  --border <#RRGGBB>     Border color (default: #1976D2)
  --glyph <#RRGGBB>      Glyph color (default: #FFFFFF)
  --config, -c <path>    Path to mkicon.json

Commands:
  init                   Write a default mkicon.json to edit
  history [days|all]     Show recently created icons (default: 7 days)
  history clean <days>   Remove history entries older than <days>
  history clear          Delete all history
  version, -V            Show version and build date
  help, -h, --help       Show this help message

Config resolution:
  1. --config <path>              (explicit)
  2. mkicon.json next to binary   (portable)
  3. ~/.config/mkicon/mkicon.json (user default)

Font resolution tries each configured font in order and falls back to
a built-in bitmap face, so a run never fails for lack of fonts.

Examples:
  mkicon                           Write icon16/48/128.png to icons/
  mkicon -o assets -s 32,64        Two sizes into assets/
  mkicon -t A --bg '#333333'       Different glyph and background
  mkicon --from logo.png           Downscale logo.png into the icon set`)
}
