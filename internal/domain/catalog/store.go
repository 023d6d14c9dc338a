package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProcessNotFound  = errors.New("process not found")
	ErrEmployeeNotFound = errors.New("employee not found")
)

// Store is the read model for the competency guides: categories, their
// processes, the questions underneath, and the employee directory.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, level, area, COALESCE(description, '')
    FROM categories
    ORDER BY id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Level, &c.Area, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) GetCategory(ctx context.Context, id int) (Category, error) {
	var c Category
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, level, area, COALESCE(description, '')
    FROM categories
    WHERE id = $1
  `, id).Scan(&c.ID, &c.Name, &c.Level, &c.Area, &c.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, ErrCategoryNotFound
	}
	return c, err
}

func (s *Store) ProcessesByCategory(ctx context.Context, categoryID int) ([]Process, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, category_id, name, COALESCE(description, ''), COALESCE(display_order, 0)
    FROM processes
    WHERE category_id = $1
    ORDER BY display_order
  `, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var processes []Process
	for rows.Next() {
		var p Process
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Order); err != nil {
			return nil, err
		}
		processes = append(processes, p)
	}
	return processes, rows.Err()
}

func (s *Store) GetProcess(ctx context.Context, id int) (Process, error) {
	var p Process
	err := s.DB.QueryRow(ctx, `
    SELECT id, category_id, name, COALESCE(description, ''), COALESCE(display_order, 0)
    FROM processes
    WHERE id = $1
  `, id).Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Order)
	if errors.Is(err, pgx.ErrNoRows) {
		return Process{}, ErrProcessNotFound
	}
	return p, err
}

func (s *Store) QuestionsByProcess(ctx context.Context, processID int) ([]Question, error) {
	return s.questions(ctx, `
    SELECT id, category_id, COALESCE(process_id, 0), title, COALESCE(description, ''), COALESCE(weight, 1), COALESCE(display_order, 0)
    FROM questions
    WHERE process_id = $1
    ORDER BY display_order
  `, processID)
}

// QuestionsDirectlyUnderCategory returns the questions asked without a
// process subdivision; a NULL or zero process id both mean "direct".
func (s *Store) QuestionsDirectlyUnderCategory(ctx context.Context, categoryID int) ([]Question, error) {
	return s.questions(ctx, `
    SELECT id, category_id, COALESCE(process_id, 0), title, COALESCE(description, ''), COALESCE(weight, 1), COALESCE(display_order, 0)
    FROM questions
    WHERE category_id = $1 AND (process_id IS NULL OR process_id = 0)
    ORDER BY display_order
  `, categoryID)
}

func (s *Store) questions(ctx context.Context, query string, args ...any) ([]Question, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.CategoryID, &q.ProcessID, &q.Title, &q.Description, &q.Weight, &q.Order); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (Employee, error) {
	var e Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, access_level, name, COALESCE(immediate_manager, ''), area, COALESCE(team_name, '')
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&e.ID, &e.AccessLevel, &e.Name, &e.ImmediateManager, &e.Area, &e.TeamName)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	return e, err
}
