package reports

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) evaluationFacts(ctx context.Context) ([]evaluationFacts, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.created_at, COALESCE(e.evaluator, ''),
           COALESCE(em.name, ''), COALESCE(em.area, ''),
           COALESCE(c.name, ''), COALESCE(c.area, '')
    FROM evaluations e
    LEFT JOIN employees em ON em.id = e.employee_id
    LEFT JOIN categories c ON c.id = e.category_id
    ORDER BY e.created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var facts []evaluationFacts
	for rows.Next() {
		var f evaluationFacts
		if err := rows.Scan(&f.ID, &f.CreatedAt, &f.Evaluator, &f.EmployeeName, &f.EmployeeArea, &f.Category, &f.CategoryArea); err != nil {
			return nil, err
		}
		facts = append(facts, f)
	}
	return facts, rows.Err()
}

func (s *Store) answerFacts(ctx context.Context) ([]answerFacts, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.evaluation_id, a.response, a.not_applicable, COALESCE(q.weight, 1), COALESCE(p.name, '')
    FROM answers a
    LEFT JOIN questions q ON q.id = a.question_id
    LEFT JOIN processes p ON p.id = q.process_id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var facts []answerFacts
	for rows.Next() {
		var f answerFacts
		if err := rows.Scan(&f.EvaluationID, &f.Response, &f.NotApplicable, &f.Weight, &f.ProcessName); err != nil {
			return nil, err
		}
		facts = append(facts, f)
	}
	return facts, rows.Err()
}

func (s *Store) reviewSheetRows(ctx context.Context) ([]ReviewSheetRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id,
           COALESCE(em.name, '') AS operator,
           COALESCE(ho.percentage, 0) AS self_pct,
           COALESCE(e.status, 'pendiente'),
           CASE
             WHEN e.evaluator = 'Autoevaluación' OR e.evaluator IS NULL THEN 'No ha sido evaluada'
             ELSE e.evaluator
           END AS evaluator_name,
           CASE
             WHEN e.evaluator = 'Autoevaluación' OR e.evaluator IS NULL THEN 0
             ELSE COALESCE(hl.percentage, 0)
           END AS reviewer_pct,
           COALESCE(c.area, ''),
           COALESCE(c.name, ''),
           COALESCE(STRING_AGG(DISTINCT p.name, ', '), ''),
           e.created_at
    FROM evaluations e
    LEFT JOIN employees em ON em.id = e.employee_id
    LEFT JOIN categories c ON c.id = e.category_id
    LEFT JOIN history_entries ho
      ON ho.evaluation_id = e.id AND ho.is_original = TRUE
    LEFT JOIN (
      SELECT DISTINCT ON (evaluation_id) evaluation_id, percentage
      FROM history_entries
      ORDER BY evaluation_id, modified_at DESC, id DESC
    ) hl ON hl.evaluation_id = e.id
    LEFT JOIN answers a ON a.evaluation_id = e.id
    LEFT JOIN questions q ON q.id = a.question_id
    LEFT JOIN processes p ON p.id = q.process_id
    GROUP BY e.id, em.name, ho.percentage, hl.percentage, e.status, e.evaluator, c.name, c.area, e.created_at
    ORDER BY e.created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sheet []ReviewSheetRow
	for rows.Next() {
		var row ReviewSheetRow
		if err := rows.Scan(&row.EvaluationID, &row.Operator, &row.SelfPercentage, &row.Status,
			&row.EvaluatorName, &row.ReviewerPercentage, &row.Area, &row.Category, &row.Processes, &row.CreatedAt); err != nil {
			return nil, err
		}
		sheet = append(sheet, row)
	}
	return sheet, rows.Err()
}
