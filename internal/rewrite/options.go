package rewrite

import (
	"fmt"
)

// DuplicatePolicy decides which method keeps a lifecycle role when several
// methods of one class carry the same role marker.
type DuplicatePolicy uint8

const (
	// LastWins keeps the last method in source order; earlier ones are dropped.
	LastWins DuplicatePolicy = iota
	// FirstWins keeps the first method; later ones are dropped.
	FirstWins
)

func (p DuplicatePolicy) String() string {
	switch p {
	case LastWins:
		return "last-wins"
	case FirstWins:
		return "first-wins"
	default:
		return fmt.Sprintf("DuplicatePolicy(%d)", uint8(p))
	}
}

// ParseDuplicatePolicy parses "last-wins" or "first-wins".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "", "last-wins":
		return LastWins, nil
	case "first-wins":
		return FirstWins, nil
	}
	return LastWins, fmt.Errorf("unknown duplicate role policy %q (want last-wins or first-wins)", s)
}

// Options configures an Engine.
type Options struct {
	// Facade is the receiver name of assertion calls.
	Facade     string
	Duplicates DuplicatePolicy
	// SinkType, SinkField and SinkParam shape the output sink members.
	SinkType  string
	SinkField string
	SinkParam string
	// AddAbstractionsUsing imports the sink's namespace in files that need it.
	AddAbstractionsUsing bool
}

// SinkNamespace holds SinkType in the target framework.
const SinkNamespace = "Xunit.Abstractions"

func DefaultOptions() Options {
	return Options{
		Facade:    "Assert",
		SinkType:  "ITestOutputHelper",
		SinkField: "_output",
		SinkParam: "output",
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Facade == "" {
		o.Facade = def.Facade
	}
	if o.SinkType == "" {
		o.SinkType = def.SinkType
	}
	if o.SinkField == "" {
		o.SinkField = def.SinkField
	}
	if o.SinkParam == "" {
		o.SinkParam = def.SinkParam
	}
	return o
}
