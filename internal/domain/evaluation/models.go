package evaluation

import (
	"time"

	"compeval/internal/domain/history"
)

type Evaluation struct {
	ID                 int       `json:"id"`
	EmployeeID         string    `json:"employeeId"`
	CategoryID         int       `json:"categoryId"`
	CreatedAt          time.Time `json:"createdAt"`
	Evaluator          string    `json:"evaluator"`
	Observations       string    `json:"observations"`
	Status             string    `json:"status"`
	OriginalPercentage float64   `json:"originalPercentage"`
}

// AnswerInput is one submitted response on the create path. NotApplicable is
// a pointer so an omitted flag is distinguishable from an explicit false.
type AnswerInput struct {
	QuestionID    int    `json:"questionId"`
	Response      bool   `json:"response"`
	NotApplicable *bool  `json:"notApplicable"`
	Comments      string `json:"comments"`
}

// AnswerChange is one amendment on the review path. An omitted NotApplicable
// keeps the stored value rather than resetting it.
type AnswerChange struct {
	QuestionID    int   `json:"questionId"`
	Response      bool  `json:"response"`
	NotApplicable *bool `json:"notApplicable"`
}

// FinalizeAnswer is the minimal shape the first finalize step receives,
// before any weights are known.
type FinalizeAnswer struct {
	QuestionID int  `json:"questionId"`
	Response   bool `json:"response"`
}

type CreateRequest struct {
	EmployeeID   string        `json:"employeeId"`
	CategoryID   int           `json:"categoryId"`
	Evaluator    string        `json:"evaluatorName"`
	Observations string        `json:"observations"`
	Answers      []AnswerInput `json:"answers"`
}

// NewEvaluation is the fully resolved graph the store persists atomically:
// the evaluation row, its answers, and the original ledger entry.
type NewEvaluation struct {
	EmployeeID   string
	CategoryID   int
	Evaluator    string
	Observations string
	Percentage   float64
	RecordedBy   string
	Answers      []AnswerInput
}

// StoredAnswer is an answer as loaded for rescoring, with the question's
// current weight joined in.
type StoredAnswer struct {
	QuestionID    int
	Response      bool
	NotApplicable bool
	Comments      string
	Weight        float64
}

type AnswerDetail struct {
	QuestionID    int     `json:"questionId"`
	Response      bool    `json:"response"`
	NotApplicable bool    `json:"notApplicable"`
	Title         string  `json:"title"`
	Weight        float64 `json:"weight"`
	Comments      string  `json:"comments"`
}

// CompleteEvaluation is the full reconstructed view for display and export.
type CompleteEvaluation struct {
	ID                 int             `json:"id"`
	EmployeeID         string          `json:"employeeId"`
	EmployeeName       string          `json:"employeeName"`
	CategoryID         int             `json:"categoryId"`
	CategoryName       string          `json:"categoryName"`
	Area               string          `json:"area"`
	ProcessName        string          `json:"processName,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	Evaluator          string          `json:"evaluatorName"`
	Observations       string          `json:"observations"`
	Status             string          `json:"status"`
	PercentageOriginal float64         `json:"percentageOriginal"`
	PercentageCurrent  float64         `json:"percentageCurrent"`
	History            []history.Entry `json:"history"`
	Answers            []AnswerDetail  `json:"answers"`
}

type AmendResult struct {
	NewPercentage   float64 `json:"newPercentage"`
	ApplicableCount int     `json:"applicableCount"`
	UpdatedCount    int     `json:"updatedCount"`
}

type FinalizeResult struct {
	Percentage float64 `json:"percentageOriginal"`
}

// EmployeeListRow is the compact listing shape for an employee's own history.
type EmployeeListRow struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Category  string    `json:"category"`
	Status    string    `json:"status"`
}

// OverviewRow is the compact listing shape for the all-evaluations view.
type OverviewRow struct {
	ID            int       `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	Status        string    `json:"status"`
	Observations  string    `json:"observations"`
	EmployeeID    string    `json:"employeeId"`
	EmployeeName  string    `json:"employeeName"`
	EmployeeArea  string    `json:"employeeArea"`
	Category      string    `json:"category"`
	CategoryLevel string    `json:"categoryLevel"`
	CategoryArea  string    `json:"categoryArea"`
	Evaluator     string    `json:"evaluatorName"`
}

// ManagerListRow is the compact listing shape for a manager's direct reports.
type ManagerListRow struct {
	ID           int       `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	Status       string    `json:"status"`
	EmployeeName string    `json:"employeeName"`
	Category     string    `json:"category"`
}

type PercentageSummary struct {
	Original   float64 `json:"percentageOriginal"`
	Current    float64 `json:"percentageCurrent"`
	HasHistory bool    `json:"hasHistory"`
}
