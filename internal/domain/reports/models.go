package reports

import "time"

// SummaryRow is one evaluation in the weighted summary view, with the
// percentage recomputed from the current answers and question weights.
type SummaryRow struct {
	EvaluationID int       `json:"evaluationId"`
	CreatedAt    time.Time `json:"createdAt"`
	Evaluator    string    `json:"evaluatorName"`
	EmployeeName string    `json:"employeeName"`
	Area         string    `json:"area"`
	Category     string    `json:"category"`
	Process      string    `json:"process,omitempty"`
	Percentage   float64   `json:"percentage"`
}

// ReviewSheetRow mirrors the export sheet: the self-assessment percentage
// comes from the original ledger entry, the reviewer percentage from the
// last one, and an unreviewed evaluation shows a placeholder name and zero.
type ReviewSheetRow struct {
	EvaluationID       int       `json:"evaluationId"`
	Operator           string    `json:"operator"`
	SelfPercentage     float64   `json:"selfPercentage"`
	Status             string    `json:"status"`
	EvaluatorName      string    `json:"evaluatorName"`
	ReviewerPercentage float64   `json:"reviewerPercentage"`
	Area               string    `json:"area"`
	Category           string    `json:"category"`
	Processes          string    `json:"processes"`
	CreatedAt          time.Time `json:"createdAt"`
}

type evaluationFacts struct {
	ID           int
	CreatedAt    time.Time
	Evaluator    string
	EmployeeName string
	EmployeeArea string
	Category     string
	CategoryArea string
}

type answerFacts struct {
	EvaluationID  int
	Response      bool
	NotApplicable bool
	Weight        float64
	ProcessName   string
}
