package evaluation

import (
	"context"

	"compeval/internal/domain/history"
)

// DataStore is the persistence surface the service orchestrates over.
// Methods that touch more than one row (InsertEvaluation, UpdateAnswers,
// Finalize, Delete) are atomic: a failure leaves no partial write visible.
type DataStore interface {
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	CategoryExists(ctx context.Context, categoryID int) (bool, error)
	QuestionWeights(ctx context.Context, questionIDs []int) (map[int]float64, error)

	InsertEvaluation(ctx context.Context, data NewEvaluation) (int, error)
	Answers(ctx context.Context, evaluationID int) ([]StoredAnswer, error)
	UpdateAnswers(ctx context.Context, evaluationID int, changes []AnswerChange, percentage float64, evaluator string) error
	Finalize(ctx context.Context, evaluationID int, percentage float64) error
	UpdateStatus(ctx context.Context, evaluationID int, status, evaluator string) error
	Delete(ctx context.Context, evaluationID int) error

	Complete(ctx context.Context, evaluationID int) (*CompleteEvaluation, error)
	History(ctx context.Context, evaluationID int) ([]history.Entry, error)
	CachedOriginal(ctx context.Context, evaluationID int) (float64, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]EmployeeListRow, error)
	ListAll(ctx context.Context, limit, offset int) ([]OverviewRow, error)
	ListByManager(ctx context.Context, managerName string) ([]ManagerListRow, error)
}
