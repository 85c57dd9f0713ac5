package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/raywall/yelp-fusion-toolkit/config"
	"github.com/raywall/yelp-fusion-toolkit/pkg/logger"
	"github.com/raywall/yelp-fusion-toolkit/tools/emulator"
)

// Injetável para testes
var serve = func(ctx context.Context, emu *emulator.Emulator, addr string) error {
	return emu.ListenAndServe(ctx, addr)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
}

// run contém a lógica de orquestração
func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("emulator", flag.ContinueOnError)
	addr := fs.String("addr", ":8089", "Endereço de escuta")
	fixtures := fs.String("fixtures", "", "Arquivo YAML com os dados (vazio: dataset embutido)")
	level := fs.String("log-level", "info", "Nível de log")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := logger.Configure(config.LoggingConf{Enabled: true, Level: *level, Format: "console"})

	fx, err := loadFixtures(*fixtures, log)
	if err != nil {
		return err
	}

	log.Info().
		Str("addr", *addr).
		Int("businesses", len(fx.Businesses)).
		Str("token_url", "http://localhost"+*addr+emulator.TokenPath).
		Str("api_url", "http://localhost"+*addr+emulator.APIPrefix).
		Msg("starting fusion emulator")

	return serve(ctx, emulator.New(fx, emulator.WithLogger(log)), *addr)
}

func loadFixtures(path string, log zerolog.Logger) (emulator.Fixtures, error) {
	if path == "" {
		log.Debug().Msg("using embedded fixtures")
		return emulator.DefaultFixtures(), nil
	}
	return emulator.LoadFixtures(path)
}
