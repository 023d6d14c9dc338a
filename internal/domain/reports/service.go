package reports

import (
	"context"

	"compeval/internal/domain/scoring"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Summary recomputes every evaluation's weighted percentage from its
// current answers, so the report always reflects the live answer set.
func (s *Service) Summary(ctx context.Context) ([]SummaryRow, error) {
	evaluations, err := s.store.evaluationFacts(ctx)
	if err != nil {
		return nil, err
	}
	if len(evaluations) == 0 {
		return nil, nil
	}
	answers, err := s.store.answerFacts(ctx)
	if err != nil {
		return nil, err
	}
	return buildSummaryRows(evaluations, answers), nil
}

func (s *Service) ReviewSheet(ctx context.Context) ([]ReviewSheetRow, error) {
	return s.store.reviewSheetRows(ctx)
}

func buildSummaryRows(evaluations []evaluationFacts, answers []answerFacts) []SummaryRow {
	byEvaluation := make(map[int][]answerFacts, len(evaluations))
	for _, a := range answers {
		byEvaluation[a.EvaluationID] = append(byEvaluation[a.EvaluationID], a)
	}

	rows := make([]SummaryRow, 0, len(evaluations))
	for _, ev := range evaluations {
		evAnswers := byEvaluation[ev.ID]
		scored := make([]scoring.Answer, 0, len(evAnswers))
		process := ""
		for _, a := range evAnswers {
			scored = append(scored, scoring.Answer{
				Response:      a.Response,
				NotApplicable: a.NotApplicable,
				Weight:        a.Weight,
			})
			if process == "" {
				process = a.ProcessName
			}
		}

		row := SummaryRow{
			EvaluationID: ev.ID,
			CreatedAt:    ev.CreatedAt,
			Evaluator:    ev.Evaluator,
			EmployeeName: ev.EmployeeName,
			Area:         ev.EmployeeArea,
			Category:     ev.Category,
			Process:      process,
			Percentage:   scoring.WeightedPercentage(scored),
		}
		if row.Evaluator == "" {
			row.Evaluator = "Sin evaluador"
		}
		if row.EmployeeName == "" {
			row.EmployeeName = "Sin empleado"
		}
		if row.Category == "" {
			row.Category = "Sin categoría"
		}
		if row.Area == "" {
			row.Area = ev.CategoryArea
		}
		if row.Area == "" {
			row.Area = "N/A"
		}
		rows = append(rows, row)
	}
	return rows
}
