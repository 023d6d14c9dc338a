package history

import "time"

// Entry is one snapshot in an evaluation's score ledger. Entries are only
// ever appended; the row flagged IsOriginal is the employee's baseline.
type Entry struct {
	ID           int       `json:"id"`
	EvaluationID int       `json:"evaluationId"`
	Percentage   float64   `json:"percentage"`
	ModifiedAt   time.Time `json:"modifiedAt"`
	ModifiedBy   string    `json:"modifiedBy"`
	IsOriginal   bool      `json:"isOriginal"`
}

// Resolve derives the (original, current) percentages for an evaluation from
// its ledger, oldest-first. Evaluations created before the ledger existed
// have no entries; the cached value on the evaluation row backs both.
func Resolve(entries []Entry, cachedOriginal float64) (original, current float64) {
	original = cachedOriginal
	for _, e := range entries {
		if e.IsOriginal {
			original = e.Percentage
			break
		}
	}
	current = original
	if len(entries) > 0 {
		current = entries[len(entries)-1].Percentage
	}
	return original, current
}
