package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/example/vimicons/internal/config"
	"github.com/example/vimicons/internal/host"
	"github.com/example/vimicons/internal/icons"
	"github.com/example/vimicons/internal/logging"
	"github.com/example/vimicons/internal/plugin"
	"github.com/example/vimicons/internal/tray"
)

func main() {
	log.SetFlags(0)

	args, debug, err := parseGlobalFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if debug || cfg.Debug {
		logging.EnableDebug()
	}

	if _, err := plugin.Start(cfg); err != nil {
		log.Fatalf("failed to resolve plugin icons: %v", err)
	}

	if len(args) > 0 {
		if err := handleCLI(os.Stdout, cfg, args); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	set, err := plugin.Icons.Icons()
	if err != nil {
		log.Fatalf("%v", err)
	}
	runner, err := tray.NewRunner(cfg, set)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := runner.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("tray exited with error: %v", err)
	}
}

// parseGlobalFlags strips flags that apply to every command.
func parseGlobalFlags(args []string) ([]string, bool, error) {
	filtered := make([]string, 0, len(args))
	debug := false
	for _, raw := range args {
		normalized := strings.ToLower(strings.TrimLeft(raw, "-/"))
		switch {
		case normalized == "debug":
			debug = true
		case strings.HasPrefix(normalized, "debug="):
			value, err := strconv.ParseBool(strings.TrimPrefix(normalized, "debug="))
			if err != nil {
				return nil, false, fmt.Errorf("invalid value for --debug: %w", err)
			}
			debug = value
		case normalized == "console" || strings.HasPrefix(normalized, "console="):
			// handled before main on Windows
		default:
			filtered = append(filtered, raw)
		}
	}
	return filtered, debug, nil
}

func handleCLI(out io.Writer, cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return errors.New("no command provided")
	}

	switch normalizeCommand(args[0]) {
	case "list":
		return handleList(out)
	case "verify":
		return handleVerify(out, cfg)
	case "export":
		return handleExport(out, cfg, args[1:])
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func normalizeCommand(arg string) string {
	trimmed := strings.TrimLeft(arg, "-/")
	return strings.ToLower(trimmed)
}

func handleList(out io.Writer) error {
	set, err := plugin.Icons.Icons()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%-18s %-30s %-38s %-12s\n", "Name", "Path", "Handle", "Digest")
	for _, named := range set.All() {
		fmt.Fprintf(out, "%-18s %-30s %-38s %-12s\n", named.Name, named.Path, named.Handle.ID(), logging.ShortDigest(named.Handle.Digest()))
	}
	return nil
}

func handleVerify(out io.Writer, cfg *config.Config) error {
	set, err := plugin.Icons.Icons()
	if err != nil {
		return err
	}
	return verifyIcons(out, set, cfg.IconSize)
}

// verifyIcons rasterises every icon once at size, which startup alone does
// not do.
func verifyIcons(out io.Writer, set *icons.Set[*host.Icon], size int) error {
	all := set.All()
	for _, named := range all {
		if _, err := named.Handle.PNG(size); err != nil {
			return fmt.Errorf("rasterize %s (%s): %w", named.Name, named.Path, err)
		}
	}
	fmt.Fprintf(out, "Verified %d icons at %dpx\n", len(all), size)
	return nil
}

func handleExport(out io.Writer, cfg *config.Config, args []string) error {
	fs := newFlagSet("export", out)
	dir := fs.String("dir", ".", "output directory")
	size := fs.Int("size", cfg.IconSize, "raster size in pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *size <= 0 {
		return fmt.Errorf("invalid --size %d", *size)
	}

	set, err := plugin.Icons.Icons()
	if err != nil {
		return err
	}
	return exportIcons(out, set, *dir, *size)
}

func exportIcons(out io.Writer, set *icons.Set[*host.Icon], dir string, size int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	written := make(map[string]icons.Name)
	for _, named := range set.All() {
		name := pngName(named.Path)
		if prev, ok := written[name]; ok {
			return fmt.Errorf("icons %s and %s both export to %s", prev, named.Name, name)
		}
		written[name] = named.Name

		target := filepath.Join(dir, name)
		data, err := named.Handle.PNG(size)
		if err != nil {
			return fmt.Errorf("rasterize %s: %w", named.Name, err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
		fmt.Fprintf(out, "Wrote %s\n", target)
	}
	return nil
}

// pngName names an export after the declared path. Handles may be shared
// between icons (placeholders), paths are not.
func pngName(p icons.Path) string {
	base := path.Base(string(p))
	return strings.TrimSuffix(base, path.Ext(base)) + ".png"
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}
