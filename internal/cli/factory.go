// Package cli assembles engines and loggers with the conventions shared
// by all espalier commands.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/adapters/file"
	"github.com/aretw0/espalier/pkg/adapters/redis"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/plan"
)

// Options carries the flag values shared by the commands.
type Options struct {
	Dir       string // plan directory
	LogLevel  string
	RedisAddr string // optional; empty keeps the in-memory store
}

// NewLogger builds the standard command logger from the --log-level flag.
func NewLogger(level string) (*slog.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}

// NewEngine initializes an engine over the plan directory, with an
// optional Redis-backed progress store and collectors registered on reg.
func NewEngine(opts Options, logger *slog.Logger, reg *prometheus.Registry) (*espalier.Engine, error) {
	engineOpts := []espalier.Option{
		espalier.WithPlanSource(file.New(opts.Dir)),
		espalier.WithLogger(logger),
	}
	if reg != nil {
		engineOpts = append(engineOpts, espalier.WithMetrics(reg))
	}
	if opts.RedisAddr != "" {
		engineOpts = append(engineOpts, espalier.WithProgressStore(redis.New(opts.RedisAddr, "", 0)))
	}

	engine, err := espalier.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// LoadPlan reads and compiles one plan from the directory, without
// starting a session. Used by the inspection commands.
func LoadPlan(dir, planID string) (*domain.Curriculum, error) {
	src := file.New(dir)
	raw, format, err := src.Get(planID)
	if err != nil {
		return nil, err
	}
	doc, err := plan.Parse(raw, format)
	if err != nil {
		return nil, err
	}
	return espalier.Compile(planID, doc)
}
