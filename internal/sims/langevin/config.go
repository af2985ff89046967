package langevin

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"splitstep/internal/core"
	pkgcore "splitstep/pkg/core"
)

// Params holds the coefficients of the Langevin equation
//
//	dρ/dt = D∇²ρ + aρ − bρ² + σ√ρ η
//
// and its discretisation.
type Params struct {
	A     float64 `yaml:"a"`
	B     float64 `yaml:"b"`
	Sigma float64 `yaml:"sigma"`
	D     float64 `yaml:"d"`
	// DD is the diffusion constant entering beta; it normally equals D.
	DD float64 `yaml:"dd"`
	Dx float64 `yaml:"dx"`
	Dt float64 `yaml:"dt"`
}

// Config controls a single integration run.
type Config struct {
	Params Params `yaml:"params"`

	// M sets the lattice size N = 2^M.
	M        int     `yaml:"m"`
	Timespan float64 `yaml:"timespan"`
	Workers  int     `yaml:"workers"`

	GammaSeed   uint64 `yaml:"seed_gamma"`
	PoissonSeed uint64 `yaml:"seed_poisson"`

	Initial        string  `yaml:"initial"`
	InitialDensity float64 `yaml:"initial_density"`
}

const maxM = 30

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Params: Params{
			A:     1.84701,
			B:     1.0,
			Sigma: math.Sqrt2,
			D:     0.25,
			DD:    0.25,
			Dx:    1.0,
			Dt:    0.1,
		},
		M:              17,
		Timespan:       10e3,
		Workers:        8,
		GammaSeed:      pkgcore.DefaultGammaSeed,
		PoissonSeed:    pkgcore.DefaultPoissonSeed,
		Initial:        "homogeneous",
		InitialDensity: 1.0,
	}
}

// N reports the number of lattice sites.
func (c Config) N() int {
	if c.M < 0 || c.M > maxM {
		return 0
	}
	return 1 << c.M
}

// Iterations reports round(timespan/dt).
func (c Config) Iterations() int {
	if c.Params.Dt <= 0 {
		return 0
	}
	return int(math.Round(c.Timespan / c.Params.Dt))
}

// Validate checks the invariants a run depends on.
func (c Config) Validate() error {
	p := c.Params
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"a", p.A}, {"b", p.B}, {"sigma", p.Sigma}, {"d", p.D}, {"dd", p.DD},
		{"dx", p.Dx}, {"dt", p.Dt}, {"timespan", c.Timespan}, {"initial_density", c.InitialDensity},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return configErr(f.name, "must be finite")
		}
	}
	switch {
	case c.M < 1 || c.M > maxM:
		return configErr("m", fmt.Sprintf("must be in [1,%d] so that N=2^m is a power of two", maxM))
	case !core.IsPowerOfTwo(c.N()):
		return configErr("m", "N is not a power of two")
	case c.Workers < 1:
		return configErr("workers", "must be at least 1")
	case c.N()%c.Workers != 0:
		return configErr("workers", fmt.Sprintf("N=%d is not divisible by %d workers", c.N(), c.Workers))
	case p.Dt <= 0:
		return configErr("dt", "must be > 0")
	case p.Dx <= 0:
		return configErr("dx", "must be > 0")
	case p.Sigma <= 0:
		return configErr("sigma", "must be > 0")
	case c.Timespan <= 0:
		return configErr("timespan", "must be > 0")
	case p.B < 0:
		return configErr("b", "must be >= 0")
	case p.D < 0:
		return configErr("d", "must be >= 0")
	case c.InitialDensity < 0:
		return configErr("initial_density", "must be >= 0")
	}
	if _, ok := core.Initializers()[c.Initial]; !ok {
		return configErr("initial", fmt.Sprintf("unknown initial condition %q (have %v)", c.Initial, core.InitializerNames()))
	}
	return nil
}

// Load reads a YAML configuration on top of the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Bind registers one flag per configuration key on fs, defaulting to c.
// Flag names match the keys understood by WithOverrides.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.Float64Var(&c.Params.A, "a", c.Params.A, "linear growth rate a")
	fs.Float64Var(&c.Params.B, "b", c.Params.B, "quadratic decay rate b")
	fs.Float64Var(&c.Params.Sigma, "sigma", c.Params.Sigma, "noise amplitude sigma")
	fs.Float64Var(&c.Params.D, "d", c.Params.D, "diffusion constant D")
	fs.Float64Var(&c.Params.DD, "dd", c.Params.DD, "diffusion constant entering beta")
	fs.Float64Var(&c.Params.Dx, "dx", c.Params.Dx, "lattice spacing")
	fs.Float64Var(&c.Params.Dt, "dt", c.Params.Dt, "time step")
	fs.IntVar(&c.M, "m", c.M, "lattice size exponent, N = 2^m")
	fs.Float64Var(&c.Timespan, "timespan", c.Timespan, "total simulated time")
	fs.IntVar(&c.Workers, "workers", c.Workers, "parallel workers (must divide N)")
	fs.Uint64Var(&c.GammaSeed, "seed_gamma", c.GammaSeed, "seed of the gamma streams")
	fs.Uint64Var(&c.PoissonSeed, "seed_poisson", c.PoissonSeed, "seed of the poisson streams")
	fs.StringVar(&c.Initial, "initial", c.Initial, "initial condition")
	fs.Float64Var(&c.InitialDensity, "initial_density", c.InitialDensity, "initial density level")
}

// WithOverrides returns a copy of c with flag-style key/value pairs applied.
// Unknown keys and unparseable values are ignored.
func (c Config) WithOverrides(kv map[string]string) Config {
	for key, v := range kv {
		_ = c.set(key, v)
	}
	return c
}

// ParseOverrides is the strict form of WithOverrides: an unknown key or a
// value that does not parse is a ConfigError.
func (c Config) ParseOverrides(kv map[string]string) (Config, error) {
	keys := make([]string, 0, len(kv))
	for key := range kv {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := c.set(key, kv[key]); err != nil {
			return c, err
		}
	}
	return c, nil
}

// set assigns one key. The field is left untouched on error.
func (c *Config) set(key, v string) error {
	floatKeys := map[string]*float64{
		"a":               &c.Params.A,
		"b":               &c.Params.B,
		"sigma":           &c.Params.Sigma,
		"d":               &c.Params.D,
		"dd":              &c.Params.DD,
		"dx":              &c.Params.Dx,
		"dt":              &c.Params.Dt,
		"timespan":        &c.Timespan,
		"initial_density": &c.InitialDensity,
	}
	if dst, ok := floatKeys[key]; ok {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return configErr(key, fmt.Sprintf("%q is not a number", v))
		}
		*dst = parsed
		return nil
	}
	switch key {
	case "m", "workers":
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return configErr(key, fmt.Sprintf("%q is not an integer", v))
		}
		if key == "m" {
			c.M = parsed
		} else {
			c.Workers = parsed
		}
	case "seed_gamma", "seed_poisson":
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return configErr(key, fmt.Sprintf("%q is not an unsigned integer", v))
		}
		if key == "seed_gamma" {
			c.GammaSeed = parsed
		} else {
			c.PoissonSeed = parsed
		}
	case "initial":
		if v == "" {
			return configErr(key, "must not be empty")
		}
		c.Initial = v
	default:
		return configErr(key, "is not a configuration key")
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	return DefaultConfig().WithOverrides(cfg)
}
