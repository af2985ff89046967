package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"splitstep/internal/sims/langevin"
)

// configFlags resolves a run configuration from, in increasing precedence,
// the defaults, a YAML file, explicitly set flags and --set pairs.
type configFlags struct {
	flagged langevin.Config
	path    string
	sets    []string
}

func newConfigFlags(fs *pflag.FlagSet) *configFlags {
	f := &configFlags{flagged: langevin.DefaultConfig()}
	f.flagged.Bind(fs)
	fs.StringVarP(&f.path, "config", "c", "", "YAML configuration file")
	fs.StringArrayVar(&f.sets, "set", nil, "override a configuration key (key=value, repeatable)")
	return f
}

func (f *configFlags) resolve(cmd *cobra.Command) (langevin.Config, error) {
	cfg := langevin.DefaultConfig()
	if f.path != "" {
		loaded, err := langevin.Load(f.path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	known := configKeys()
	changed := make(map[string]string)
	cmd.Flags().Visit(func(fl *pflag.Flag) {
		if known[fl.Name] {
			changed[fl.Name] = fl.Value.String()
		}
	})
	cfg, err := cfg.ParseOverrides(changed)
	if err != nil {
		return cfg, err
	}

	sets, err := parseSets(f.sets, known)
	if err != nil {
		return cfg, err
	}
	if cfg, err = cfg.ParseOverrides(sets); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func configKeys() map[string]bool {
	keys := make(map[string]bool)
	for _, p := range langevin.DefaultConfig().Parameters().Flatten() {
		keys[p.Key] = true
	}
	return keys
}

func parseSets(pairs []string, known map[string]bool) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("--set %q: expected key=value", pair)
		}
		if !known[key] {
			return nil, fmt.Errorf("--set %q: unknown key %q", pair, key)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}
