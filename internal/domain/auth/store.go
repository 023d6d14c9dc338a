package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Account struct {
	EmployeeID   string
	Name         string
	AccessLevel  string
	Area         string
	PasswordHash string
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) AccountByID(ctx context.Context, employeeID string) (Account, error) {
	var account Account
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, access_level, area, COALESCE(password_hash, '')
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&account.EmployeeID, &account.Name, &account.AccessLevel, &account.Area, &account.PasswordHash)
	if err != nil {
		return Account{}, err
	}
	return account, nil
}
