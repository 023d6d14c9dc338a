package scoring

import "testing"

func TestWeightedPercentage(t *testing.T) {
	answers := []Answer{
		{Response: true, Weight: 2},
		{Response: false, Weight: 1},
		{Response: true, NotApplicable: true, Weight: 5},
	}
	if got := WeightedPercentage(answers); got != 66.67 {
		t.Fatalf("expected 66.67, got %v", got)
	}
}

func TestWeightedPercentageEmptySet(t *testing.T) {
	if got := WeightedPercentage(nil); got != 0 {
		t.Fatalf("expected 0 for empty set, got %v", got)
	}
	allExcluded := []Answer{
		{Response: true, NotApplicable: true, Weight: 3},
		{Response: false, NotApplicable: true, Weight: 1},
	}
	if got := WeightedPercentage(allExcluded); got != 0 {
		t.Fatalf("expected 0 when everything is not applicable, got %v", got)
	}
}

func TestWeightedPercentageZeroTotalWeight(t *testing.T) {
	answers := []Answer{
		{Response: true, Weight: 0},
		{Response: false, Weight: 0},
	}
	if got := WeightedPercentage(answers); got != 0 {
		t.Fatalf("expected 0 for zero total weight, got %v", got)
	}
}

func TestWeightedPercentageBounds(t *testing.T) {
	sets := [][]Answer{
		{{Response: false, Weight: 1}},
		{{Response: true, Weight: 1}},
		{{Response: true, Weight: 0.5}, {Response: false, Weight: 2.5}},
		{{Response: true, Weight: 3}, {Response: true, Weight: 0.01}},
	}
	for i, answers := range sets {
		got := WeightedPercentage(answers)
		if got < 0 || got > 100 {
			t.Fatalf("set %d: percentage %v outside [0,100]", i, got)
		}
	}
}

func TestWeightedPercentageIgnoresNotApplicable(t *testing.T) {
	base := []Answer{
		{Response: true, Weight: 2},
		{Response: false, Weight: 1},
	}
	withExtra := append([]Answer{{Response: false, NotApplicable: true, Weight: 99}}, base...)
	if WeightedPercentage(base) != WeightedPercentage(withExtra) {
		t.Fatalf("not-applicable answer changed the score")
	}
}

func TestSimplePercentage(t *testing.T) {
	answers := []Answer{
		{Response: true},
		{Response: true},
		{Response: false},
	}
	if got := SimplePercentage(answers); got != 66.67 {
		t.Fatalf("expected 66.67, got %v", got)
	}
	if got := SimplePercentage(nil); got != 0 {
		t.Fatalf("expected 0 for empty set, got %v", got)
	}
}

func TestApplicableCount(t *testing.T) {
	answers := []Answer{
		{Response: true},
		{NotApplicable: true},
		{Response: false},
	}
	if got := ApplicableCount(answers); got != 2 {
		t.Fatalf("expected 2 applicable answers, got %d", got)
	}
}
