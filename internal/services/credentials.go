// Package services contains the application services of polyglot.
// This file defines the credential service: account registration and
// password verification against the users table.
package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/dmitrijs2005/polyglot/internal/models"
	"github.com/dmitrijs2005/polyglot/internal/repositories/repomanager"
	"github.com/dmitrijs2005/polyglot/internal/repositories/users"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// CredentialService registers users and checks their passwords.
//
// Contract:
//   - Init: create the storage tables if they do not exist.
//   - Register: store a new user with a salted bcrypt hash. Invalid input
//     fails with common.ErrValidation before storage is touched; a taken
//     username fails with common.ErrDuplicateUsername.
//   - Authenticate: report whether the password matches. Unknown users and
//     wrong passwords both yield (false, nil).
//
// Passwords are never logged or retained. Callers own the password slices
// and should wipe them after the call.
type CredentialService interface {
	Init(ctx context.Context) error
	Register(ctx context.Context, username string, password []byte) error
	Authenticate(ctx context.Context, username string, password []byte) (bool, error)
}

// maxPasswordBytes is bcrypt's input limit. Longer passwords would be
// truncated by the comparison.
const maxPasswordBytes = 72

type credentials struct {
	Username string `validate:"required,max=50"`
	Password []byte `validate:"min=1,max=72"`
}

type credentialService struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	cost     int
	validate *validator.Validate
	logger   logging.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

// NewCredentialService binds the service to a database and its repository
// manager. cost is the bcrypt work factor; values outside bcrypt's range
// fall back to bcrypt.DefaultCost.
func NewCredentialService(db *sql.DB, rm repomanager.RepositoryManager, cost int, logger logging.Logger) CredentialService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &credentialService{
		db:       db,
		rm:       rm,
		cost:     cost,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With("component", "credentials"),
	}
}

func (s *credentialService) users() users.Repository {
	return s.rm.Users(s.db)
}

func (s *credentialService) Init(ctx context.Context) error {
	if err := s.rm.RunMigrations(ctx, s.db); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *credentialService) Register(ctx context.Context, username string, password []byte) error {
	in := credentials{
		Username: strings.TrimSpace(username),
		Password: bytes.TrimSpace(password),
	}
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %s", common.ErrValidation, describeCredentials(err))
	}

	hash, err := bcrypt.GenerateFromPassword(in.Password, s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = s.users().Create(ctx, &models.Credential{Username: in.Username, PasswordHash: string(hash)})
	switch {
	case err == nil:
		s.logger.Info(ctx, "user registered", "username", in.Username)
		return nil
	case errors.Is(err, common.ErrDuplicateUsername):
		s.logger.Debug(ctx, "registration rejected, username taken", "username", in.Username)
		return common.ErrDuplicateUsername
	default:
		s.logger.Error(ctx, "registration failed", "username", in.Username, "err", err)
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
}

func (s *credentialService) Authenticate(ctx context.Context, username string, password []byte) (bool, error) {
	username = strings.TrimSpace(username)
	password = bytes.TrimSpace(password)
	if username == "" || len(password) == 0 {
		return false, nil
	}

	if len(password) > maxPasswordBytes {
		_ = bcrypt.CompareHashAndPassword(s.dummy(), password[:maxPasswordBytes])
		s.logger.Debug(ctx, "login failed, password too long", "username", username)
		return false, nil
	}

	c, err := s.users().GetByUsername(ctx, username)
	if errors.Is(err, common.ErrorNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummy(), password)
		s.logger.Debug(ctx, "login failed, username not found", "username", username)
		return false, nil
	}
	if err != nil {
		s.logger.Error(ctx, "login lookup failed", "username", username, "err", err)
		return false, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), password); err != nil {
		s.logger.Debug(ctx, "login failed, invalid password", "username", username)
		return false, nil
	}
	s.logger.Info(ctx, "user logged in", "username", username)
	return true, nil
}

// dummy returns a hash at the service's cost used to spend the same time on
// unknown usernames as on wrong passwords.
func (s *credentialService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("polyglot-dummy-password"), s.cost)
	})
	return s.dummyHash
}

func describeCredentials(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required", "min":
			msgs = append(msgs, field+" must not be empty")
		case "max":
			if fe.Field() == "Password" {
				msgs = append(msgs, field+" must be at most "+fe.Param()+" bytes")
			} else {
				msgs = append(msgs, field+" must be at most "+fe.Param()+" characters")
			}
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, ", ")
}
