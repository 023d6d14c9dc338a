package scoring

import "math"

// WeightedPercentage computes the authoritative score for an answer set:
// the approved share of the total weight across applicable answers, as a
// percentage rounded to two decimals. Empty applicable sets and zero total
// weight both score 0.00 rather than dividing by zero.
func WeightedPercentage(answers []Answer) float64 {
	var approved, total float64
	applicable := 0
	for _, a := range answers {
		if a.NotApplicable {
			continue
		}
		applicable++
		total += a.Weight
		if a.Response {
			approved += a.Weight
		}
	}
	if applicable == 0 || total == 0 {
		return 0
	}
	return round2(approved / total * 100)
}

// SimplePercentage is the unweighted approved/total ratio. Only the first
// finalize step uses it, before question weights are consulted; every later
// recomputation goes through WeightedPercentage.
func SimplePercentage(answers []Answer) float64 {
	if len(answers) == 0 {
		return 0
	}
	approved := 0
	for _, a := range answers {
		if a.Response {
			approved++
		}
	}
	return round2(float64(approved) / float64(len(answers)) * 100)
}

// ApplicableCount reports how many answers participate in scoring.
func ApplicableCount(answers []Answer) int {
	count := 0
	for _, a := range answers {
		if !a.NotApplicable {
			count++
		}
	}
	return count
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
