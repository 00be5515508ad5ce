package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"filevault/internal/auth"
	"filevault/internal/database"
	"filevault/internal/models"

	"github.com/google/uuid"
)

// MaxUsernameBytes matches the users.username column width.
const MaxUsernameBytes = 80

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateUsername = errors.New("username already exists")
)

type UserRepository interface {
	CreateUser(ctx context.Context, arg database.CreateUserParams) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Store is the registry of usernames and password hashes.
type Store struct {
	repo      UserRepository
	hasher    auth.PasswordHasher
	dummyHash string
}

func NewStore(repo UserRepository, hasher auth.PasswordHasher) (*Store, error) {
	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}
	return &Store{repo: repo, hasher: hasher, dummyHash: dummy}, nil
}

func validate(username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}
	if len(username) > MaxUsernameBytes {
		return fmt.Errorf("%w: username must be at most %d bytes", ErrInvalidInput, MaxUsernameBytes)
	}
	if len(password) > auth.MaxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, auth.MaxPasswordBytes)
	}
	return nil
}

// Register stores a salted hash for a new username. Uniqueness is decided by
// the repository in a single insert.
func (s *Store) Register(ctx context.Context, username, password string) (uuid.UUID, error) {
	if err := validate(username, password); err != nil {
		return uuid.Nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return uuid.Nil, err
	}

	user, err := s.repo.CreateUser(ctx, database.CreateUserParams{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, database.ErrUsernameTaken) {
			return uuid.Nil, ErrDuplicateUsername
		}
		return uuid.Nil, fmt.Errorf("failed to register user: %w", err)
	}

	return user.ID, nil
}

// Verify reports whether the password matches the stored hash. Unknown
// usernames are compared against a dummy hash so both paths cost one bcrypt
// comparison.
func (s *Store) Verify(ctx context.Context, username, password string) (bool, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil {
		s.hasher.Verify(password, s.dummyHash)
		return false, nil
	}

	return s.hasher.Verify(password, user.PasswordHash), nil
}
