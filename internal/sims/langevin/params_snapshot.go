package langevin

import (
	"strconv"

	"splitstep/internal/core"
)

// Parameters describes the configuration in display form, keyed like
// WithOverrides so a snapshot can be turned back into a Config.
func (c Config) Parameters() core.ParameterSnapshot {
	p := c.Params
	groups := []core.ParameterGroup{
		{
			Name: "Reaction",
			Params: []core.Parameter{
				floatParam("a", "Growth rate a", p.A),
				floatParam("b", "Decay rate b", p.B),
			},
		},
		{
			Name: "Noise",
			Params: []core.Parameter{
				floatParam("sigma", "Noise amplitude", p.Sigma),
			},
		},
		{
			Name: "Lattice",
			Params: []core.Parameter{
				intParam("m", "Size exponent", c.M),
				floatParam("d", "Diffusion D", p.D),
				floatParam("dd", "Diffusion in beta", p.DD),
				floatParam("dx", "Spacing", p.Dx),
				stringParam("initial", "Initial condition", c.Initial),
				floatParam("initial_density", "Initial density", c.InitialDensity),
			},
			Summary: strconv.Itoa(c.N()) + " sites",
		},
		{
			Name: "Integration",
			Params: []core.Parameter{
				floatParam("dt", "Time step", p.Dt),
				floatParam("timespan", "Timespan", c.Timespan),
				intParam("workers", "Workers", c.Workers),
			},
		},
		{
			Name: "Seeds",
			Params: []core.Parameter{
				uintParam("seed_gamma", "Gamma seed", c.GammaSeed),
				uintParam("seed_poisson", "Poisson seed", c.PoissonSeed),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ConfigFromSnapshot rebuilds a Config from a parameter snapshot.
func ConfigFromSnapshot(s core.ParameterSnapshot) Config {
	kv := make(map[string]string)
	for _, p := range s.Flatten() {
		kv[p.Key] = p.Value
	}
	return FromMap(kv)
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func uintParam(key, label string, value uint64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatUint(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
