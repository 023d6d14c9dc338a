package evaluation

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"compeval/internal/domain/history"
)

// Store is the PostgreSQL implementation of DataStore. Multi-row writes run
// in a single transaction; ledger rows are written through the history
// store's Tx helpers so they commit with the evaluation rows.
type Store struct {
	DB     *pgxpool.Pool
	Ledger *history.Store
}

func NewStore(pool *pgxpool.Pool, ledger *history.Store) *Store {
	return &Store{DB: pool, Ledger: ledger}
}

func (s *Store) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE id = $1", employeeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CategoryExists(ctx context.Context, categoryID int) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM categories WHERE id = $1", categoryID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// QuestionWeights resolves the current weight per question id. Unknown ids
// are simply absent from the map; the normalizer defaults them to 1.
func (s *Store) QuestionWeights(ctx context.Context, questionIDs []int) (map[int]float64, error) {
	weights := make(map[int]float64, len(questionIDs))
	if len(questionIDs) == 0 {
		return weights, nil
	}
	rows, err := s.DB.Query(ctx, "SELECT id, COALESCE(weight, 1) FROM questions WHERE id = ANY($1)", questionIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id int
		var weight float64
		if err := rows.Scan(&id, &weight); err != nil {
			return nil, err
		}
		weights[id] = weight
	}
	return weights, rows.Err()
}

func (s *Store) History(ctx context.Context, evaluationID int) ([]history.Entry, error) {
	return s.Ledger.List(ctx, evaluationID)
}

func (s *Store) CachedOriginal(ctx context.Context, evaluationID int) (float64, error) {
	var cached float64
	err := s.DB.QueryRow(ctx, "SELECT COALESCE(original_percentage, 0) FROM evaluations WHERE id = $1", evaluationID).Scan(&cached)
	if isNoRows(err) {
		return 0, ErrEvaluationNotFound
	}
	return cached, err
}

func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
