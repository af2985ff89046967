package core

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeString denotes free-form parameters such as names.
	ParamTypeString ParamType = "string"
)

// Parameter describes a single run parameter in display form.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot captures the full parameter set of a run.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Flatten returns every parameter in group order.
func (s ParameterSnapshot) Flatten() []Parameter {
	var out []Parameter
	for _, g := range s.Groups {
		out = append(out, g.Params...)
	}
	return out
}

// Lookup finds a parameter by key.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}
