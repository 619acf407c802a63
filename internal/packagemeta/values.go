package packagemeta

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// MetadataValue returns the named metadata attribute converted to a plain Go
// value (string, float64, bool, map[string]any or []any).
func (p *Package) MetadataValue(key string) (any, bool) {
	val, ok := p.metadata[key]
	if !ok {
		return nil, false
	}
	converted, err := ctyValueToInterface(val)
	if err != nil {
		return nil, false
	}
	return converted, true
}

// MetadataString returns the named metadata attribute as a string, false if
// it is absent or not string-shaped.
func (p *Package) MetadataString(key string) (string, bool) {
	val, ok := p.metadata[key]
	if !ok || val.Type() != cty.String {
		return "", false
	}
	var s string
	if err := gocty.FromCtyValue(val, &s); err != nil {
		return "", false
	}
	return s, true
}

// ctyValueToInterface converts a cty.Value to a Go interface{}.
func ctyValueToInterface(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}
	if val.Type().IsPrimitiveType() {
		switch val.Type() {
		case cty.String:
			return val.AsString(), nil
		case cty.Number:
			f, _ := val.AsBigFloat().Float64()
			return f, nil
		case cty.Bool:
			return val.True(), nil
		default:
			return nil, fmt.Errorf("unsupported primitive type: %s", val.Type().FriendlyName())
		}
	}
	if val.Type().IsObjectType() || val.Type().IsMapType() {
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			valInterface, err := ctyValueToInterface(v)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = valInterface
		}
		return out, nil
	}
	if val.Type().IsTupleType() || val.Type().IsListType() {
		var out []any
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			valInterface, err := ctyValueToInterface(v)
			if err != nil {
				return nil, err
			}
			out = append(out, valInterface)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported cty.Type for conversion: %s", val.Type().FriendlyName())
}
