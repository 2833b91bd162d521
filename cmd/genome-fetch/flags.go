// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/genome-fetch/pkg/types"
)

// bindFlag ties a flag to a viper key so the key can also come from the
// environment or the config file. A missing flag is a programming error.
func bindFlag(f *pflag.Flag, key string) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("binding flag to %s: %v", key, err))
	}
}

// fetchConfigFromViper assembles a FetchConfig from the bound keys.
func fetchConfigFromViper() types.FetchConfig {
	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
		APIBase:      viper.GetString("api_base"),
		TaxID:        viper.GetInt("tax_id"),
		BatchSize:    viper.GetInt("batch_size"),
		OutputExt:    viper.GetString("output_ext"),
		OutputDir:    viper.GetString("output_dir"),
		OutputURL:    viper.GetString("output_url"),
		ManifestPath: viper.GetString("manifest"),
		CatalogPath:  viper.GetString("catalog"),
	}.WithDefaults()
}

// loggerConfig holds diagnostic logger settings.
type loggerConfig struct {
	Level string
	JSON  bool
}

// configure returns a logger writing to w.
func (c loggerConfig) configure(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q: use debug, info, warn, or error", c.Level)
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if c.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}

// httpTimeout renders a timeout for status lines.
func httpTimeout(d time.Duration) string {
	if d <= 0 {
		return "none"
	}
	return d.String()
}

// logFailure logs a failed command. Errors carrying goerr values, such as
// the archive diagnostic with its full response body, are logged at error
// level with every value; others only at debug level, since main prints them.
func logFailure(logger *slog.Logger, err error) {
	values := goerr.Values(err)
	if len(values) == 0 {
		logger.Debug("command failed", slog.String("error", err.Error()))
		return
	}
	logger.Error("command failed",
		slog.String("error", err.Error()),
		slog.Any("values", values),
	)
}
