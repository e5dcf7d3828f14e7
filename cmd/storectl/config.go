package storectl

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/batchvault/batchvault/config"
	"github.com/batchvault/batchvault/digest"
	"github.com/batchvault/batchvault/internal/dcontext"
	"github.com/batchvault/batchvault/store/objectstore"
	"github.com/batchvault/batchvault/version"
)

const defaultLogFormatter = "text"

func resolveConfiguration() (*config.Configuration, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config path unspecified (use --config)")
	}

	fp, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	cfg, err := config.Parse(fp)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", configPath, err)
	}
	return cfg, nil
}

// configureLogging applies cfg.Log to logrus and attaches this
// binary's version plus any static log fields to ctx, adapted from
// `registry/registry.go`'s configureLogging.
func configureLogging(ctx context.Context, cfg *config.Configuration) (context.Context, error) {
	ctx = dcontext.WithVersion(ctx, version.Version())

	logrus.SetLevel(logLevel(cfg.Log.Level))

	formatter := cfg.Log.Formatter
	if formatter == "" {
		formatter = defaultLogFormatter
	}
	switch formatter {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		return ctx, fmt.Errorf("unsupported logging formatter: %q", formatter)
	}

	if len(cfg.Log.Fields) > 0 {
		fields := make(map[any]any, len(cfg.Log.Fields))
		for k, v := range cfg.Log.Fields {
			fields[k] = v
		}
		ctx = dcontext.WithLogger(ctx, dcontext.GetLoggerWithFields(ctx, fields))
	}

	dcontext.SetDefaultLogger(dcontext.GetLogger(ctx))
	return ctx, nil
}

func logLevel(level config.Loglevel) logrus.Level {
	l, err := logrus.ParseLevel(string(level))
	if err != nil {
		l = logrus.InfoLevel
	}
	return l
}

// openStore resolves the configuration at configPath, configures
// logging, and opens the store it describes.
func openStore(ctx context.Context) (context.Context, *objectstore.Store, error) {
	cfg, err := resolveConfiguration()
	if err != nil {
		return ctx, nil, err
	}
	ctx, err = configureLogging(ctx, cfg)
	if err != nil {
		return ctx, nil, err
	}

	store, err := objectstore.Open(ctx, cfg.Store.Root, cfg.Store.Name, cfg.Store.UUID, digest.Algorithm(cfg.Store.Algorithm), cfg.Store.AltRoot)
	if err != nil {
		return ctx, nil, err
	}
	return ctx, store, nil
}
