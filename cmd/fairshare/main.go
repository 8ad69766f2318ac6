// Command fairshare splits a bill interactively in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/mmynk/fairshare/internal/cli"
	"github.com/mmynk/fairshare/internal/config"
	"github.com/mmynk/fairshare/internal/receipt"
	"github.com/mmynk/fairshare/pkg/logging"
)

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	noScan := flag.Bool("no-scan", false, "disable receipt scanning even when GEMINI_API_KEY is set")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	// Logs go to stderr so they never interleave with the dialog on stdout.
	logging.SetupWith(os.Stderr, logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var opts cli.Options
	if cfg.ScanningEnabled() && !*noScan {
		opts.Extractor = receipt.NewGeminiClient(cfg.Gemini())
	}

	if err := cli.Run(ctx, os.Stdin, os.Stdout, opts); err != nil {
		slog.Error("Bill split failed", "error", err)
		os.Exit(1)
	}
}
