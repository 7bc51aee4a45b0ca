package service

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// UnitSystem is the metric or imperial convention governing default units.
type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

// SizeKind says whether a size describes a volume or a weight.
type SizeKind string

const (
	SizeVolume SizeKind = "volume"
	SizeWeight SizeKind = "weight"
)

// ErrUnrecognizedSizeFormat is returned when an input does not match the
// number-plus-unit grammar at all.
var ErrUnrecognizedSizeFormat = errors.New("unrecognized size format")

// Size is a parsed, normalized size.
type Size struct {
	Value  float64
	Unit   string
	System UnitSystem
}

func (s Size) String() string {
	return strconv.FormatFloat(s.Value, 'f', -1, 64) + " " + s.Unit
}

type unitDef struct {
	kind   SizeKind
	system UnitSystem
	toBase float64 // ml for volume, g for weight
}

var unitTable = map[string]unitDef{
	// volume (base = ml)
	"ml":    {kind: SizeVolume, system: Metric, toBase: 1},
	"l":     {kind: SizeVolume, system: Metric, toBase: 1000},
	"fl oz": {kind: SizeVolume, system: Imperial, toBase: 29.5735295625},

	// weight (base = g)
	"g":  {kind: SizeWeight, system: Metric, toBase: 1},
	"kg": {kind: SizeWeight, system: Metric, toBase: 1000},
	"oz": {kind: SizeWeight, system: Imperial, toBase: 28.349523125},
	"lb": {kind: SizeWeight, system: Imperial, toBase: 453.59237},
}

var unitAliases = map[string]string{
	"milliliter": "ml", "milliliters": "ml", "millilitre": "ml", "millilitres": "ml",
	"liter": "l", "liters": "l", "litre": "l", "litres": "l",
	"floz": "fl oz", "fl-oz": "fl oz", "fl. oz": "fl oz", "fl.oz": "fl oz",
	"fluid ounce": "fl oz", "fluid ounces": "fl oz",
	"gram": "g", "grams": "g",
	"kilogram": "kg", "kilograms": "kg", "kgs": "kg",
	"ounce": "oz", "ounces": "oz",
	"lbs": "lb", "pound": "lb", "pounds": "lb",
}

var sizePattern = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*([a-zA-Z][a-zA-Z .-]*)?$`)

// resolveSizeUnit normalizes a unit token to its canonical spelling for
// the given kind. In a volume context a bare "oz" means fluid ounces.
func resolveSizeUnit(token string, kind SizeKind) (string, unitDef, bool) {
	u := strings.ToLower(strings.TrimSpace(token))
	u = strings.Join(strings.Fields(u), " ")
	if kind == SizeVolume && (u == "oz" || u == "ounce" || u == "ounces") {
		u = "fl oz"
	}
	if canonical, ok := unitAliases[u]; ok {
		u = canonical
	}
	def, ok := unitTable[u]
	if !ok || def.kind != kind {
		return "", unitDef{}, false
	}
	return u, def, true
}

// smallUnit is the default unit applied when the user gives a bare number.
func smallUnit(kind SizeKind, system UnitSystem) string {
	switch {
	case kind == SizeVolume && system == Imperial:
		return "fl oz"
	case kind == SizeVolume:
		return "ml"
	case system == Imperial:
		return "oz"
	default:
		return "g"
	}
}

// ParseSize parses a user-supplied size like "250ml", "1.5 l", "8 fl oz"
// or a bare "250" (which takes the small unit of the configured system).
func ParseSize(input string, kind SizeKind, system UnitSystem) (Size, error) {
	m := sizePattern.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return Size{}, fmt.Errorf("%w: %q (expected e.g. \"250ml\" or \"8 fl oz\")", ErrUnrecognizedSizeFormat, input)
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Size{}, fmt.Errorf("%w: %q", ErrUnrecognizedSizeFormat, input)
	}

	unit := m[2]
	if strings.TrimSpace(unit) == "" {
		unit = smallUnit(kind, system)
	}
	canonical, def, ok := resolveSizeUnit(unit, kind)
	if !ok {
		return Size{}, fmt.Errorf("%w: unknown %s unit %q", ErrUnrecognizedSizeFormat, kind, strings.TrimSpace(unit))
	}
	return Size{Value: value, Unit: canonical, System: def.system}, nil
}

// ConvertVolume converts between recognized volume units through the
// milliliter base, rounding to two decimals. Identity conversions return
// the value untouched.
func ConvertVolume(value float64, fromUnit, toUnit string) (float64, error) {
	return convertSize(value, fromUnit, toUnit, SizeVolume)
}

// ConvertWeight converts between recognized weight units through the gram
// base, rounding to two decimals.
func ConvertWeight(value float64, fromUnit, toUnit string) (float64, error) {
	return convertSize(value, fromUnit, toUnit, SizeWeight)
}

func convertSize(value float64, fromUnit, toUnit string, kind SizeKind) (float64, error) {
	from, fromDef, ok := resolveSizeUnit(fromUnit, kind)
	if !ok {
		return 0, fmt.Errorf("unsupported %s unit %q", kind, fromUnit)
	}
	to, toDef, ok := resolveSizeUnit(toUnit, kind)
	if !ok {
		return 0, fmt.Errorf("unsupported %s unit %q", kind, toUnit)
	}
	if from == to {
		return value, nil
	}
	return round2(value * fromDef.toBase / toDef.toBase), nil
}

// ConvertToPreferredSystem re-expresses a size in the target system,
// picking the unit by magnitude for readability: liters above 1000 ml,
// kilograms above 1000 g, pounds above 16 oz. Sizes already in the target
// system pass through untouched.
func ConvertToPreferredSystem(s Size, target UnitSystem) (Size, error) {
	unit, def, ok := resolveSizeUnit(s.Unit, def0kind(s.Unit))
	if !ok {
		return Size{}, fmt.Errorf("unsupported unit %q", s.Unit)
	}
	if def.system == target {
		return Size{Value: s.Value, Unit: unit, System: target}, nil
	}

	base := s.Value * def.toBase
	var outUnit string
	switch {
	case def.kind == SizeVolume && target == Metric:
		outUnit = "ml"
		if base > 1000 {
			outUnit = "l"
		}
	case def.kind == SizeVolume:
		outUnit = "fl oz"
	case target == Metric:
		outUnit = "g"
		if base > 1000 {
			outUnit = "kg"
		}
	default:
		outUnit = "oz"
		if base/unitTable["oz"].toBase > 16 {
			outUnit = "lb"
		}
	}
	return Size{
		Value:  round2(base / unitTable[outUnit].toBase),
		Unit:   outUnit,
		System: target,
	}, nil
}

// def0kind infers the kind of an already-canonical unit so callers of
// ConvertToPreferredSystem don't have to repeat it.
func def0kind(unit string) SizeKind {
	if def, ok := unitTable[strings.ToLower(strings.TrimSpace(unit))]; ok {
		return def.kind
	}
	// fl-oz style aliases resolve under a volume context.
	if _, _, ok := resolveSizeUnit(unit, SizeVolume); ok {
		return SizeVolume
	}
	return SizeWeight
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
