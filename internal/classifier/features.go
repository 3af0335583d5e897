package classifier

import "encoding/json"

// FloatFeature extracts a numeric feature by name. The feature object is
// classifier-owned and may omit any field; callers must treat a missing
// or non-numeric value as simply absent.
func (r *Result) FloatFeature(name string) (float64, bool) {
	v, ok := r.Features[name]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
