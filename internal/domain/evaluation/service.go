package evaluation

import (
	"context"
	"fmt"

	"compeval/internal/domain/history"
	"compeval/internal/domain/scoring"
)

// Service owns the evaluation lifecycle: creation with the initial answer
// set, reviewer amendments, status transitions, deletion, and full view
// reconstruction. Every score it persists goes through the scoring package,
// so the weighted calculation is the single authority.
type Service struct {
	store DataStore
}

func NewService(store DataStore) *Service {
	return &Service{store: store}
}

// CreateWithAnswers persists a new self-assessment: the evaluation row, one
// answer row per response, and the original ledger entry, atomically.
func (s *Service) CreateWithAnswers(ctx context.Context, req CreateRequest) (int, error) {
	if req.EmployeeID == "" {
		return 0, ErrEmployeeNotFound
	}
	if len(req.Answers) == 0 {
		return 0, ErrNoAnswers
	}

	exists, err := s.store.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return 0, fmt.Errorf("employee lookup: %w", err)
	}
	if !exists {
		return 0, ErrEmployeeNotFound
	}
	exists, err = s.store.CategoryExists(ctx, req.CategoryID)
	if err != nil {
		return 0, fmt.Errorf("category lookup: %w", err)
	}
	if !exists {
		return 0, ErrCategoryNotFound
	}

	questionIDs := make([]int, 0, len(req.Answers))
	for _, a := range req.Answers {
		questionIDs = append(questionIDs, a.QuestionID)
	}
	weights, err := s.store.QuestionWeights(ctx, questionIDs)
	if err != nil {
		return 0, fmt.Errorf("question weights: %w", err)
	}

	raw := make([]scoring.RawAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		r := scoring.RawAnswer{Response: a.Response, NotApplicableAlt: a.NotApplicable}
		if w, ok := weights[a.QuestionID]; ok {
			r.Weight = w
		}
		raw = append(raw, r)
	}
	percentage := scoring.WeightedPercentage(scoring.Normalize(raw))

	evaluator := req.Evaluator
	if evaluator == "" {
		evaluator = EvaluatorSelfAssessment
	}

	return s.store.InsertEvaluation(ctx, NewEvaluation{
		EmployeeID:   req.EmployeeID,
		CategoryID:   req.CategoryID,
		Evaluator:    evaluator,
		Observations: req.Observations,
		Percentage:   percentage,
		RecordedBy:   OriginalRecordedBy,
		Answers:      req.Answers,
	})
}

// ApplyEvaluatorChanges merges a reviewer's partial amendments into the
// stored answer set, rescores the whole set with current question weights,
// persists only the touched answers, and appends a non-original ledger
// entry. A change that omits the not-applicable flag keeps the stored value.
func (s *Service) ApplyEvaluatorChanges(ctx context.Context, evaluationID int, changes []AnswerChange, evaluator string) (AmendResult, error) {
	if evaluator == "" {
		return AmendResult{}, ErrEvaluatorRequired
	}

	stored, err := s.store.Answers(ctx, evaluationID)
	if err != nil {
		return AmendResult{}, err
	}

	byQuestion := make(map[int]AnswerChange, len(changes))
	for _, c := range changes {
		byQuestion[c.QuestionID] = c
	}

	raw := make([]scoring.RawAnswer, 0, len(stored))
	for _, a := range stored {
		response := a.Response
		notApplicable := a.NotApplicable
		if c, ok := byQuestion[a.QuestionID]; ok {
			response = c.Response
			if c.NotApplicable != nil {
				notApplicable = *c.NotApplicable
			}
		}
		raw = append(raw, scoring.RawAnswer{
			Response:      response,
			NotApplicable: &notApplicable,
			Weight:        a.Weight,
		})
	}

	normalized := scoring.Normalize(raw)
	percentage := scoring.WeightedPercentage(normalized)

	if err := s.store.UpdateAnswers(ctx, evaluationID, changes, percentage, evaluator); err != nil {
		return AmendResult{}, err
	}

	return AmendResult{
		NewPercentage:   percentage,
		ApplicableCount: scoring.ApplicableCount(normalized),
		UpdatedCount:    len(changes),
	}, nil
}

// Finalize records the employee's first score with the unweighted
// calculation; weights only enter on later reviewer recomputations. The
// cached original on the evaluation row is set only if still empty.
func (s *Service) Finalize(ctx context.Context, evaluationID int, answers []FinalizeAnswer) (FinalizeResult, error) {
	if len(answers) == 0 {
		return FinalizeResult{}, ErrNoAnswers
	}
	plain := make([]scoring.Answer, 0, len(answers))
	for _, a := range answers {
		plain = append(plain, scoring.Answer{Response: a.Response, Weight: 1})
	}
	percentage := scoring.SimplePercentage(plain)

	if err := s.store.Finalize(ctx, evaluationID, percentage); err != nil {
		return FinalizeResult{}, err
	}
	return FinalizeResult{Percentage: percentage}, nil
}

// SetStatus moves the evaluation to the given status. When an acting
// reviewer is named, it is recorded on the evaluation row as well,
// independent of the ledger.
func (s *Service) SetStatus(ctx context.Context, evaluationID int, status, evaluator string) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.store.UpdateStatus(ctx, evaluationID, status, evaluator)
}

// Delete removes the evaluation with its answers; ledger entries go with
// the evaluation via the cascade.
func (s *Service) Delete(ctx context.Context, evaluationID int) error {
	return s.store.Delete(ctx, evaluationID)
}

// GetComplete reconstructs the full evaluation view. The original
// percentage prefers the ledger's flagged entry over the cached column, and
// the current percentage is the ledger's last entry.
func (s *Service) GetComplete(ctx context.Context, evaluationID int) (*CompleteEvaluation, error) {
	complete, err := s.store.Complete(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	complete.PercentageOriginal, complete.PercentageCurrent = history.Resolve(complete.History, complete.PercentageOriginal)
	return complete, nil
}

// PercentageSummary reports just the original/current pair.
func (s *Service) PercentageSummary(ctx context.Context, evaluationID int) (PercentageSummary, error) {
	cached, err := s.store.CachedOriginal(ctx, evaluationID)
	if err != nil {
		return PercentageSummary{}, err
	}
	entries, err := s.store.History(ctx, evaluationID)
	if err != nil {
		return PercentageSummary{}, err
	}
	original, current := history.Resolve(entries, cached)
	return PercentageSummary{Original: original, Current: current, HasHistory: len(entries) > 0}, nil
}

func (s *Service) History(ctx context.Context, evaluationID int) ([]history.Entry, error) {
	return s.store.History(ctx, evaluationID)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]EmployeeListRow, error) {
	return s.store.ListByEmployee(ctx, employeeID)
}

func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]OverviewRow, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListAll(ctx, limit, offset)
}

func (s *Service) ListByManager(ctx context.Context, managerName string) ([]ManagerListRow, error) {
	if managerName == "" {
		return nil, nil
	}
	return s.store.ListByManager(ctx, managerName)
}
