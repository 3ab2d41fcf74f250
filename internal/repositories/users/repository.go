// Package users stores credential records. Implementations exist for SQLite
// and PostgreSQL; both report a username collision as
// common.ErrDuplicateUsername and a missing row as common.ErrorNotFound.
package users

import (
	"context"

	"github.com/dmitrijs2005/polyglot/internal/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Credential) (*models.Credential, error)
	GetByUsername(ctx context.Context, username string) (*models.Credential, error)
}
