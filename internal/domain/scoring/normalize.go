package scoring

import "strconv"

// RawAnswer is an answer record as it arrives from a call site. Freshly
// submitted answers carry the not-applicable flag under the alternate name
// and no weight; answers loaded from storage carry the canonical flag and a
// weight joined in from the question row, sometimes as the decimal column's
// text representation.
type RawAnswer struct {
	Response         any
	NotApplicable    *bool
	NotApplicableAlt *bool
	Weight           any
}

// Answer is the strict form every scoring path works on.
type Answer struct {
	Response      bool
	NotApplicable bool
	Weight        float64
}

// Normalize collapses the mixed input shapes into strict answers. The
// canonical not-applicable flag wins over the alternate when both are set;
// a missing or non-numeric weight defaults to 1.
func Normalize(raw []RawAnswer) []Answer {
	answers := make([]Answer, 0, len(raw))
	for _, r := range raw {
		answers = append(answers, Answer{
			Response:      truthy(r.Response),
			NotApplicable: resolveFlag(r.NotApplicable, r.NotApplicableAlt),
			Weight:        numberOrDefault(r.Weight, 1),
		})
	}
	return answers
}

func resolveFlag(canonical, alt *bool) bool {
	if canonical != nil {
		return *canonical
	}
	if alt != nil {
		return *alt
	}
	return false
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case int:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case float32:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}

func numberOrDefault(value any, fallback float64) float64 {
	switch v := value.(type) {
	case nil:
		return fallback
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fallback
		}
		return parsed
	default:
		return fallback
	}
}
