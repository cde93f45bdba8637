package core

import "strconv"

// Parameter is a single labelled value an entity reports for the debug
// message panel.
type Parameter struct {
	Key   string
	Label string
	Value string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the values an entity exposes at one instant.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// ParameterProvider is implemented by entities that publish telemetry.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}

// FloatParam formats a float parameter with two decimals.
func FloatParam(key, label string, v float64) Parameter {
	return Parameter{Key: key, Label: label, Value: strconv.FormatFloat(v, 'f', 2, 64)}
}

// IntParam formats an integer parameter.
func IntParam(key, label string, v int) Parameter {
	return Parameter{Key: key, Label: label, Value: strconv.Itoa(v)}
}

// StringParam wraps a plain string value.
func StringParam(key, label, v string) Parameter {
	return Parameter{Key: key, Label: label, Value: v}
}

// Lookup returns the parameter stored under key, searching every group.
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
