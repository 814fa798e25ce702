package users

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminKeyInvalid    = errors.New("invalid or missing admin key")
)

type Store interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
}

type AuthService struct {
	store     Store
	jwtSecret string
	adminKey  string
	tokenTTL  time.Duration
}

func NewAuthService(store Store, jwtSecret, adminKey string, tokenTTL time.Duration) *AuthService {
	return &AuthService{store: store, jwtSecret: jwtSecret, adminKey: adminKey, tokenTTL: tokenTTL}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	AdminKey string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, *User, error) {
	role := in.Role
	if role == "" {
		role = RoleUser
	}
	// Admin accounts are gated behind the shared admin key.
	if role == RoleAdmin && in.AdminKey != s.adminKey {
		return "", nil, ErrAdminKeyInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	u := &User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, u); err != nil {
		if isDup(err) {
			return "", nil, ErrEmailTaken
		}
		return "", nil, err
	}

	token, err := NewToken(u, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *User, error) {
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := NewToken(u, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func isDup(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
