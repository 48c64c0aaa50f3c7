package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	_ "time/tzdata"
)

const usage = `Usage:
  clockpixel [serve] [flags]
  clockpixel render <color> <out.png|out.qoi> [alpha 0-255]
  clockpixel inspect <file.png|file.qoi>
`

func main() {
	args := os.Args[1:]
	cmd := "serve"
	if len(args) > 0 && (args[0] == "serve" || args[0] == "render" || args[0] == "inspect") {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "render":
		if len(args) < 2 || len(args) > 3 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(1)
		}
		alpha := opaque
		if len(args) == 3 {
			a, err := strconv.Atoi(args[2])
			if err != nil || a < 0 || a > 255 {
				fmt.Fprintln(os.Stderr, ErrInvalidAlpha)
				os.Exit(1)
			}
			alpha = a
		}
		if err := renderToFile(args[0], args[1], uint8(alpha)); err != nil {
			fmt.Fprintln(os.Stderr, "render error:", err)
			os.Exit(1)
		}

	case "inspect":
		if len(args) != 1 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(1)
		}
		if err := inspectFile(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, "inspect error:", err)
			os.Exit(1)
		}

	default:
		cfg, err := loadConfigFromEnv(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, "config error:", err)
			os.Exit(1)
		}
		if err := serve(cfg); err != nil {
			log.Fatalf("clockpixel: %v", err)
		}
	}
}

func serve(cfg *Config) error {
	h, err := compressHandler(NewHandler(cfg), cfg.CompressMin)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle("/", h)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Printf("clockpixel: listening on %s (tz=%s)", cfg.Addr, cfg.TZ)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Printf("clockpixel: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func renderToFile(colorArg, outPath string, alpha uint8) error {
	f, err := formatForPath(outPath)
	if err != nil {
		return err
	}
	c, err := colorParser{named: true}.parse(colorArg)
	if err != nil {
		return err
	}
	c.A = alpha

	start := time.Now()
	enc, err := encodeAs(f, c)
	if err != nil {
		return err
	}
	finish := time.Since(start)

	if err := os.WriteFile(outPath, enc, 0o644); err != nil {
		return err
	}

	fmt.Printf("#%s alpha=%d → %s (%d B)\n", hexString(c), alpha, outPath, len(enc))
	fmt.Printf("format=%s, time=%s\n", f, finish)
	return nil
}

func inspectFile(inPath string) error {
	f, err := formatForPath(inPath)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%d B)\n", inPath, len(data))
	return inspect(os.Stdout, data, f)
}
