package history

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNoEntries = errors.New("evaluation has no history entries")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

// Append writes a new ledger entry. Callers set isOriginal only on the
// create/finalize path; the partial unique index on history_entries rejects
// a second original for the same evaluation.
func (s *Store) Append(ctx context.Context, evaluationID int, percentage float64, modifiedBy string, isOriginal bool) (Entry, error) {
	return appendEntry(ctx, s.DB, evaluationID, percentage, modifiedBy, isOriginal)
}

// AppendTx is Append inside a caller-owned transaction, so evaluation writes
// and their ledger entry commit or roll back together.
func (s *Store) AppendTx(ctx context.Context, tx pgx.Tx, evaluationID int, percentage float64, modifiedBy string, isOriginal bool) (Entry, error) {
	return appendEntry(ctx, tx, evaluationID, percentage, modifiedBy, isOriginal)
}

type queryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func appendEntry(ctx context.Context, q queryer, evaluationID int, percentage float64, modifiedBy string, isOriginal bool) (Entry, error) {
	entry := Entry{
		EvaluationID: evaluationID,
		Percentage:   percentage,
		ModifiedBy:   modifiedBy,
		IsOriginal:   isOriginal,
	}
	err := q.QueryRow(ctx, `
    INSERT INTO history_entries (evaluation_id, percentage, modified_by, is_original)
    VALUES ($1,$2,$3,$4)
    RETURNING id, modified_at
  `, evaluationID, percentage, modifiedBy, isOriginal).Scan(&entry.ID, &entry.ModifiedAt)
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns every entry for the evaluation, oldest first. Ties on the
// timestamp fall back to insertion order.
func (s *Store) List(ctx context.Context, evaluationID int) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, evaluation_id, percentage, modified_at, modified_by, is_original
    FROM history_entries
    WHERE evaluation_id = $1
    ORDER BY modified_at, id
  `, evaluationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.EvaluationID, &entry.Percentage, &entry.ModifiedAt, &entry.ModifiedBy, &entry.IsOriginal); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Original returns the entry flagged is_original.
func (s *Store) Original(ctx context.Context, evaluationID int) (Entry, error) {
	var entry Entry
	err := s.DB.QueryRow(ctx, `
    SELECT id, evaluation_id, percentage, modified_at, modified_by, is_original
    FROM history_entries
    WHERE evaluation_id = $1 AND is_original = TRUE
  `, evaluationID).Scan(&entry.ID, &entry.EvaluationID, &entry.Percentage, &entry.ModifiedAt, &entry.ModifiedBy, &entry.IsOriginal)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNoEntries
	}
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Last returns the chronologically last entry, the evaluation's current score.
func (s *Store) Last(ctx context.Context, evaluationID int) (Entry, error) {
	var entry Entry
	err := s.DB.QueryRow(ctx, `
    SELECT id, evaluation_id, percentage, modified_at, modified_by, is_original
    FROM history_entries
    WHERE evaluation_id = $1
    ORDER BY modified_at DESC, id DESC
    LIMIT 1
  `, evaluationID).Scan(&entry.ID, &entry.EvaluationID, &entry.Percentage, &entry.ModifiedAt, &entry.ModifiedBy, &entry.IsOriginal)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNoEntries
	}
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}
