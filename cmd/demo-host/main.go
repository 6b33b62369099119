package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/go-logr/logr"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/bayleafwalker/bindery-modloader/internal/lifecycle"
	"github.com/bayleafwalker/bindery-modloader/internal/loader"
)

// weather is configured early because it also initializes.
type weather struct {
	log       logr.Logger
	season    string
	windSpeed int
}

func (w *weather) Configure(s lifecycle.Settings) error {
	w.season = s["season"]
	if raw, ok := s["windSpeed"]; ok {
		speed, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("windSpeed: %w", err)
		}
		w.windSpeed = speed
	}
	return nil
}

func (w *weather) Init() error {
	w.log.Info("weather ready", "season", w.season, "windSpeed", w.windSpeed)
	return nil
}

func (w *weather) Version() string { return "0.4.1" }

type crops struct {
	log logr.Logger
}

func (c *crops) PreInit() error {
	c.log.Info("registering crop types")
	return nil
}

// census only listens, so it is configured after the host finished init.
type census struct {
	log  logr.Logger
	seen []string
}

func (c *census) Configure(s lifecycle.Settings) error {
	c.log.Info("census configured", "platformVersion", s[loader.PlatformVersionSetting])
	return nil
}

func (c *census) ModInitialized(mod *lifecycle.Mod) error {
	c.seen = append(c.seen, mod.Name)
	c.log.Info("counted mod", "mod", mod.Name, "version", mod.DisplayVersion())
	return nil
}

func main() {
	var modsDir string
	var platformVersion string
	flag.StringVar(&modsDir, "mods-dir", "examples/mods", "Directory containing mod manifests.")
	flag.StringVar(&platformVersion, "platform-version", "1.0.0", "Platform version handed to mods.")

	opts := zap.Options{Development: true}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts)))
	logger := ctrl.Log.WithName("demo-host")

	registry := loader.NewRegistry()
	registry.MustRegister("weather", func() (any, error) {
		return &weather{log: logger.WithName("weather")}, nil
	})
	registry.MustRegister("crops", func() (any, error) {
		return &crops{log: logger.WithName("crops")}, nil
	})
	registry.MustRegister("census", func() (any, error) {
		return &census{log: logger.WithName("census")}, nil
	})

	l := loader.New(registry, loader.Options{
		ModsDir:         modsDir,
		Version:         "0.1.0",
		PlatformVersion: platformVersion,
		Hooks: lifecycle.Hooks{
			Setup:   func() error { logger.Info("host setup"); return nil },
			PreInit: func() error { logger.Info("host pre-init"); return nil },
			Init:    func() error { logger.Info("host init"); return nil },
		},
	})

	mods, err := l.Load(log.IntoContext(context.Background(), logger))
	if err != nil {
		logger.Error(err, "load cycle failed")
		os.Exit(1)
	}
	logger.Info("load cycle complete", "mods", len(mods))
}
