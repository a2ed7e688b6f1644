package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/saadjs/caltrack/internal/common"
)

type unitKind string

const (
	unitKindMass   unitKind = "mass"
	unitKindVolume unitKind = "volume"
)

type unitDef struct {
	kind       unitKind
	toBaseUnit float64
}

var unitTable = map[string]unitDef{
	// mass (base = g)
	"mg":  {kind: unitKindMass, toBaseUnit: 0.001},
	"g":   {kind: unitKindMass, toBaseUnit: 1},
	"kg":  {kind: unitKindMass, toBaseUnit: 1000},
	"oz":  {kind: unitKindMass, toBaseUnit: 28.349523125},
	"lb":  {kind: unitKindMass, toBaseUnit: 453.59237},
	"lbs": {kind: unitKindMass, toBaseUnit: 453.59237},

	// volume (base = ml)
	"ml":    {kind: unitKindVolume, toBaseUnit: 1},
	"l":     {kind: unitKindVolume, toBaseUnit: 1000},
	"tsp":   {kind: unitKindVolume, toBaseUnit: 4.92892159375},
	"tbsp":  {kind: unitKindVolume, toBaseUnit: 14.78676478125},
	"cup":   {kind: unitKindVolume, toBaseUnit: 236.5882365},
	"fl-oz": {kind: unitKindVolume, toBaseUnit: 29.5735295625},
}

// AmountInGrams converts an amount to grams. Volume units need the food's
// density in g/ml. An empty unit means grams.
func AmountInGrams(value float64, unit string, densityGML float64) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, fmt.Errorf("%w: amount must be a finite number >= 0", common.ErrInvalidInput)
	}
	if strings.TrimSpace(unit) == "" {
		return value, nil
	}
	def, ok := resolveUnit(unit)
	if !ok {
		return 0, fmt.Errorf("%w: unsupported unit %q (use %s)", common.ErrInvalidInput, unit, strings.Join(SupportedUnits(), ", "))
	}
	switch def.kind {
	case unitKindMass:
		return value * def.toBaseUnit, nil
	case unitKindVolume:
		if !(densityGML > 0) {
			return 0, fmt.Errorf("%w: density in g/ml must be > 0 for volume units", common.ErrInvalidInput)
		}
		return value * def.toBaseUnit * densityGML, nil
	}
	return 0, fmt.Errorf("unsupported unit kind %q", def.kind)
}

func SupportedUnits() []string {
	out := make([]string, 0, len(unitTable))
	for u := range unitTable {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

func resolveUnit(unit string) (unitDef, bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	def, ok := unitTable[u]
	return def, ok
}
