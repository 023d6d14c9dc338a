package auth

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenTTL = 8 * time.Hour

type LoginResult struct {
	AccessToken string   `json:"accessToken"`
	Employee    Identity `json:"employee"`
}

type Identity struct {
	EmployeeID  string `json:"employeeId"`
	Name        string `json:"name"`
	AccessLevel string `json:"accessLevel"`
	Area        string `json:"area"`
}

type Service struct {
	store  *Store
	secret string
}

func NewService(store *Store, secret string) *Service {
	return &Service{store: store, secret: secret}
}

// Login authenticates by employee code. Operator accounts have no stored
// password; reviewer accounts with a bcrypt hash must present one.
func (s *Service) Login(ctx context.Context, employeeID, password string) (LoginResult, error) {
	account, err := s.store.AccountByID(ctx, employeeID)
	if err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	if account.PasswordHash != "" {
		if err := CheckPassword(account.PasswordHash, password); err != nil {
			return LoginResult{}, ErrInvalidCredentials
		}
	}

	token, err := GenerateToken(s.secret, Claims{
		EmployeeID:  account.EmployeeID,
		Name:        account.Name,
		AccessLevel: account.AccessLevel,
		Area:        account.Area,
	}, tokenTTL)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		AccessToken: token,
		Employee: Identity{
			EmployeeID:  account.EmployeeID,
			Name:        account.Name,
			AccessLevel: account.AccessLevel,
			Area:        account.Area,
		},
	}, nil
}
