package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/raywall/yelp-fusion-toolkit/config"
)

// Component identifica a origem dos logs emitidos pelo toolkit.
const Component = "yelp-fusion"

// Configure cria o logger da aplicação a partir da seção logging da configuração.
// A saída padrão é os.Stderr, deixando os.Stdout livre para o JSON da CLI.
func Configure(cfg config.LoggingConf) zerolog.Logger {
	return ConfigureWriter(cfg, os.Stderr)
}

// ConfigureWriter é Configure com destino explícito.
func ConfigureWriter(cfg config.LoggingConf, out io.Writer) zerolog.Logger {
	if !cfg.Enabled {
		return zerolog.Nop()
	}

	// Nível de log (default: info)
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	// JSON para produção, Console "bonito" para uso local
	output := out
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("component", Component).
		Logger()
}
