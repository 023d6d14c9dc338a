package evaluation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// InsertEvaluation writes the evaluation row, its answers, and the original
// ledger entry in one transaction. A duplicate (evaluation, question) pair
// aborts the whole insert.
func (s *Store) InsertEvaluation(ctx context.Context, data NewEvaluation) (int, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var evaluationID int
	if err := tx.QueryRow(ctx, `
    INSERT INTO evaluations (employee_id, category_id, evaluator, observations, status, original_percentage)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, data.EmployeeID, data.CategoryID, data.Evaluator, nullIfEmpty(data.Observations), StatusPending, data.Percentage).Scan(&evaluationID); err != nil {
		return 0, fmt.Errorf("insert evaluation: %w", err)
	}

	for _, answer := range data.Answers {
		notApplicable := false
		if answer.NotApplicable != nil {
			notApplicable = *answer.NotApplicable
		}
		if _, err := tx.Exec(ctx, `
      INSERT INTO answers (evaluation_id, question_id, response, not_applicable, comments)
      VALUES ($1,$2,$3,$4,$5)
    `, evaluationID, answer.QuestionID, answer.Response, notApplicable, nullIfEmpty(answer.Comments)); err != nil {
			if isDuplicate(err) {
				return 0, ErrDuplicateAnswer
			}
			return 0, fmt.Errorf("insert answer %d: %w", answer.QuestionID, err)
		}
	}

	if _, err := s.Ledger.AppendTx(ctx, tx, evaluationID, data.Percentage, data.RecordedBy, true); err != nil {
		return 0, fmt.Errorf("append original history entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return evaluationID, nil
}

// Answers loads the evaluation's answer rows with each question's current
// weight joined in for rescoring.
func (s *Store) Answers(ctx context.Context, evaluationID int) ([]StoredAnswer, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.question_id, a.response, a.not_applicable, COALESCE(a.comments, ''), COALESCE(q.weight, 1)
    FROM answers a
    LEFT JOIN questions q ON q.id = a.question_id
    WHERE a.evaluation_id = $1
    ORDER BY a.question_id
  `, evaluationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []StoredAnswer
	for rows.Next() {
		var answer StoredAnswer
		if err := rows.Scan(&answer.QuestionID, &answer.Response, &answer.NotApplicable, &answer.Comments, &answer.Weight); err != nil {
			return nil, err
		}
		answers = append(answers, answer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(answers) == 0 {
		exists, err := s.evaluationExists(ctx, evaluationID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrEvaluationNotFound
		}
	}
	return answers, nil
}

// UpdateAnswers applies only the changed answers and appends the reviewer's
// ledger entry, atomically. An omitted not-applicable flag keeps the stored
// value (COALESCE against NULL).
func (s *Store) UpdateAnswers(ctx context.Context, evaluationID int, changes []AnswerChange, percentage float64, evaluator string) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	exists, err := evaluationExistsIn(ctx, tx, evaluationID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrEvaluationNotFound
	}

	for _, change := range changes {
		if _, err := tx.Exec(ctx, `
      UPDATE answers
      SET response = $1, not_applicable = COALESCE($2, not_applicable)
      WHERE evaluation_id = $3 AND question_id = $4
    `, change.Response, change.NotApplicable, evaluationID, change.QuestionID); err != nil {
			return fmt.Errorf("update answer %d: %w", change.QuestionID, err)
		}
	}

	if _, err := s.Ledger.AppendTx(ctx, tx, evaluationID, percentage, evaluator, false); err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}

	return tx.Commit(ctx)
}

// Finalize stores the first computed score: the cached original is set only
// when still empty, and the original ledger entry is appended. The partial
// unique index turns a second finalize into ErrAlreadyFinalized.
func (s *Store) Finalize(ctx context.Context, evaluationID int, percentage float64) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	exists, err := evaluationExistsIn(ctx, tx, evaluationID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrEvaluationNotFound
	}

	if _, err := tx.Exec(ctx, `
    UPDATE evaluations
    SET original_percentage = $1
    WHERE id = $2 AND (original_percentage IS NULL OR original_percentage = 0)
  `, percentage, evaluationID); err != nil {
		return err
	}

	if _, err := s.Ledger.AppendTx(ctx, tx, evaluationID, percentage, OriginalRecordedBy, true); err != nil {
		if isDuplicate(err) {
			return ErrAlreadyFinalized
		}
		return err
	}

	return tx.Commit(ctx)
}

// UpdateStatus records the new lifecycle status, and the acting reviewer
// when one is named.
func (s *Store) UpdateStatus(ctx context.Context, evaluationID int, status, evaluator string) error {
	if evaluator == "" {
		result, err := s.DB.Exec(ctx, "UPDATE evaluations SET status = $1 WHERE id = $2", status, evaluationID)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return ErrEvaluationNotFound
		}
		return nil
	}
	result, err := s.DB.Exec(ctx, "UPDATE evaluations SET status = $1, evaluator = $2 WHERE id = $3", status, evaluator, evaluationID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrEvaluationNotFound
	}
	return nil
}

// Delete removes the answers and the evaluation row together; ledger
// entries go via the FK cascade.
func (s *Store) Delete(ctx context.Context, evaluationID int) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM answers WHERE evaluation_id = $1", evaluationID); err != nil {
		return err
	}
	result, err := tx.Exec(ctx, "DELETE FROM evaluations WHERE id = $1", evaluationID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrEvaluationNotFound
	}
	return tx.Commit(ctx)
}

// Complete joins the evaluation with its category, employee, answers, and
// question metadata, plus the full ledger. Percentage resolution against
// the ledger is the service's job.
func (s *Store) Complete(ctx context.Context, evaluationID int) (*CompleteEvaluation, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.employee_id, COALESCE(em.name, ''), e.category_id, COALESCE(c.name, ''), COALESCE(c.area, ''),
           e.created_at, COALESCE(e.evaluator, ''), COALESCE(e.observations, ''), COALESCE(e.status, $2),
           COALESCE(e.original_percentage, 0),
           a.question_id, a.response, a.not_applicable, COALESCE(a.comments, ''),
           COALESCE(q.title, ''), COALESCE(q.weight, 1), COALESCE(p.name, '')
    FROM evaluations e
    LEFT JOIN categories c ON c.id = e.category_id
    LEFT JOIN employees em ON em.id = e.employee_id
    LEFT JOIN answers a ON a.evaluation_id = e.id
    LEFT JOIN questions q ON q.id = a.question_id
    LEFT JOIN processes p ON p.id = q.process_id
    WHERE e.id = $1
    ORDER BY q.display_order, a.question_id
  `, evaluationID, StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complete *CompleteEvaluation
	for rows.Next() {
		var questionID *int
		var response, notApplicable *bool
		var comments, title, processName string
		var weight float64
		row := CompleteEvaluation{}
		if err := rows.Scan(&row.ID, &row.EmployeeID, &row.EmployeeName, &row.CategoryID, &row.CategoryName, &row.Area,
			&row.CreatedAt, &row.Evaluator, &row.Observations, &row.Status, &row.PercentageOriginal,
			&questionID, &response, &notApplicable, &comments, &title, &weight, &processName); err != nil {
			return nil, err
		}
		if complete == nil {
			complete = &row
		}
		if questionID == nil {
			continue
		}
		if complete.ProcessName == "" {
			complete.ProcessName = processName
		}
		detail := AnswerDetail{
			QuestionID: *questionID,
			Title:      title,
			Weight:     weight,
			Comments:   comments,
		}
		if response != nil {
			detail.Response = *response
		}
		if notApplicable != nil {
			detail.NotApplicable = *notApplicable
		}
		complete.Answers = append(complete.Answers, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if complete == nil {
		return nil, ErrEvaluationNotFound
	}

	entries, err := s.Ledger.List(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	complete.History = entries
	return complete, nil
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]EmployeeListRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.created_at, COALESCE(c.name, ''), COALESCE(e.status, $2)
    FROM evaluations e
    LEFT JOIN categories c ON c.id = e.category_id
    WHERE e.employee_id = $1
    ORDER BY e.created_at
  `, employeeID, StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []EmployeeListRow
	for rows.Next() {
		var row EmployeeListRow
		if err := rows.Scan(&row.ID, &row.CreatedAt, &row.Category, &row.Status); err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

func (s *Store) ListAll(ctx context.Context, limit, offset int) ([]OverviewRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.created_at, COALESCE(e.status, $1), COALESCE(e.observations, ''),
           COALESCE(em.id, ''), COALESCE(em.name, ''), COALESCE(em.area, ''),
           COALESCE(c.name, ''), COALESCE(c.level, ''), COALESCE(c.area, ''),
           COALESCE(e.evaluator, '')
    FROM evaluations e
    LEFT JOIN employees em ON em.id = e.employee_id
    LEFT JOIN categories c ON c.id = e.category_id
    ORDER BY e.created_at DESC
    LIMIT $2 OFFSET $3
  `, StatusPending, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []OverviewRow
	for rows.Next() {
		var row OverviewRow
		if err := rows.Scan(&row.ID, &row.CreatedAt, &row.Status, &row.Observations,
			&row.EmployeeID, &row.EmployeeName, &row.EmployeeArea,
			&row.Category, &row.CategoryLevel, &row.CategoryArea, &row.Evaluator); err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// ListByManager matches on the free-text immediate manager name, a known
// fragility inherited from the employee schema.
func (s *Store) ListByManager(ctx context.Context, managerName string) ([]ManagerListRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.created_at, COALESCE(e.status, $2), COALESCE(em.name, ''), COALESCE(c.name, '')
    FROM evaluations e
    LEFT JOIN employees em ON em.id = e.employee_id
    LEFT JOIN categories c ON c.id = e.category_id
    WHERE em.immediate_manager = $1
    ORDER BY e.created_at DESC
  `, managerName, StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []ManagerListRow
	for rows.Next() {
		var row ManagerListRow
		if err := rows.Scan(&row.ID, &row.CreatedAt, &row.Status, &row.EmployeeName, &row.Category); err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

func (s *Store) evaluationExists(ctx context.Context, evaluationID int) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM evaluations WHERE id = $1", evaluationID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func evaluationExistsIn(ctx context.Context, tx pgx.Tx, evaluationID int) (bool, error) {
	var count int
	if err := tx.QueryRow(ctx, "SELECT COUNT(1) FROM evaluations WHERE id = $1", evaluationID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
