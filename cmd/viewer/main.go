//go:build ebiten

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"splitstep/internal/app"
	"splitstep/internal/sims/langevin"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := baseConfig(args)
	if err != nil {
		return err
	}
	opts := app.DefaultOptions()

	fs := pflag.NewFlagSet("viewer", pflag.ContinueOnError)
	fs.String("config", "", "YAML run configuration")
	verbose := fs.BoolP("verbose", "v", false, "debug logging")
	cfg.Bind(fs)
	opts.Bind(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	zc := zap.NewDevelopmentConfig()
	if !*verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	sim, err := langevin.New(cfg, langevin.WithLogger(logger))
	if err != nil {
		return err
	}
	game := app.New(sim, opts, logger)

	w, h := opts.Normalize(cfg.N()).WindowSize()
	ebiten.SetWindowTitle(fmt.Sprintf("splitstep: %d sites, a=%g", cfg.N(), cfg.Params.A))
	ebiten.SetTPS(opts.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// baseConfig returns the file named by --config, or the defaults. Flags
// parsed afterwards override it.
func baseConfig(args []string) (langevin.Config, error) {
	fs := pflag.NewFlagSet("viewer", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	path := fs.String("config", "", "")
	_ = fs.BoolP("help", "h", false, "")
	if err := fs.Parse(args); err != nil {
		return langevin.Config{}, err
	}
	if *path == "" {
		return langevin.DefaultConfig(), nil
	}
	return langevin.Load(*path)
}
