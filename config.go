package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Environment overrides for the serve command. Flags win over env.
const (
	envAddr        = "CLOCKPIXEL_ADDR"
	envTZ          = "CLOCKPIXEL_TZ"
	envNamedColors = "CLOCKPIXEL_NAMED_COLORS"
	envCompressMin = "CLOCKPIXEL_COMPRESS_MIN"
	envDebug       = "CLOCKPIXEL_DEBUG"
)

// Config is the server configuration.
type Config struct {
	// Addr is the listen address.
	Addr string

	// TZ is the IANA zone the window is evaluated in.
	TZ string

	// Location is TZ resolved by Load.
	Location *time.Location

	// NamedColors enables CSS color names next to hex colors.
	NamedColors bool

	// CompressMin is the smallest body that gets zstd/gzip encoded.
	CompressMin int

	// Debug logs every request.
	Debug bool
}

var DefaultConfig = Config{
	Addr:        ":8080",
	TZ:          "Asia/Taipei",
	CompressMin: 1024,
}

// loadConfig builds a Config from defaults, then getenv, then args.
func loadConfig(args []string, getenv func(string) string, stderr io.Writer) (*Config, error) {
	cfg := new(Config)
	*cfg = DefaultConfig

	if v := getenv(envAddr); v != "" {
		cfg.Addr = v
	}
	if v := getenv(envTZ); v != "" {
		cfg.TZ = v
	}
	if v := getenv(envNamedColors); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", envNamedColors, err)
		}
		cfg.NamedColors = b
	}
	if v := getenv(envCompressMin); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", envCompressMin, err)
		}
		cfg.CompressMin = n
	}
	cfg.Debug = getenv(envDebug) != ""

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	fs.StringVar(&cfg.TZ, "tz", cfg.TZ, "Time zone the window is evaluated in")
	fs.BoolVar(&cfg.NamedColors, "named-colors", cfg.NamedColors, "Accept CSS color names as well as hex")
	fs.IntVar(&cfg.CompressMin, "compress-min", cfg.CompressMin, "Minimum body size for zstd/gzip encoding")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	if cfg.CompressMin < 0 {
		return nil, fmt.Errorf("compress-min must not be negative, got %d", cfg.CompressMin)
	}
	loc, err := time.LoadLocation(cfg.TZ)
	if err != nil {
		return nil, fmt.Errorf("time zone %q: %w", cfg.TZ, err)
	}
	cfg.Location = loc

	return cfg, nil
}

func loadConfigFromEnv(args []string) (*Config, error) {
	return loadConfig(args, os.Getenv, os.Stderr)
}
