package scoring

import "testing"

func boolPtr(v bool) *bool { return &v }

func TestNormalizeDefaults(t *testing.T) {
	answers := Normalize([]RawAnswer{{Response: true}})
	if len(answers) != 1 {
		t.Fatalf("expected one answer, got %d", len(answers))
	}
	a := answers[0]
	if !a.Response || a.NotApplicable || a.Weight != 1 {
		t.Fatalf("unexpected defaults: %+v", a)
	}
}

func TestNormalizeCanonicalFlagWins(t *testing.T) {
	answers := Normalize([]RawAnswer{{
		Response:         true,
		NotApplicable:    boolPtr(false),
		NotApplicableAlt: boolPtr(true),
	}})
	if answers[0].NotApplicable {
		t.Fatalf("alternate flag overrode the canonical one")
	}
}

func TestNormalizeAlternateFlagFallback(t *testing.T) {
	answers := Normalize([]RawAnswer{{
		Response:         false,
		NotApplicableAlt: boolPtr(true),
	}})
	if !answers[0].NotApplicable {
		t.Fatalf("alternate flag ignored when canonical is absent")
	}
}

func TestNormalizeWeightCoercion(t *testing.T) {
	cases := []struct {
		weight any
		want   float64
	}{
		{nil, 1},
		{2.5, 2.5},
		{3, 3},
		{"1.50", 1.5},
		{"not a number", 1},
	}
	for _, tc := range cases {
		answers := Normalize([]RawAnswer{{Response: true, Weight: tc.weight}})
		if answers[0].Weight != tc.want {
			t.Fatalf("weight %v: expected %v, got %v", tc.weight, tc.want, answers[0].Weight)
		}
	}
}

func TestNormalizeResponseCoercion(t *testing.T) {
	cases := []struct {
		response any
		want     bool
	}{
		{true, true},
		{false, false},
		{nil, false},
		{1, true},
		{0, false},
		{"yes", true},
		{"", false},
		// Non-empty strings count as true, including "0" and "false".
		{"0", true},
		{"false", true},
	}
	for _, tc := range cases {
		answers := Normalize([]RawAnswer{{Response: tc.response}})
		if answers[0].Response != tc.want {
			t.Fatalf("response %v: expected %v, got %v", tc.response, tc.want, answers[0].Response)
		}
	}
}
