// Package authz implements the admin role gate. The caller's role is read from
// the users table on every call; the role claim inside the JWT is never trusted
// for admin actions.
package authz

import (
	"database/sql"
	"errors"

	"dalil/pkg/apperr"

	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Gate interface {
	RequireAdmin(userID string) error
}

type dbGate struct {
	db *gorm.DB
}

func NewGate(db *gorm.DB) Gate {
	return &dbGate{db: db}
}

func (g *dbGate) RequireAdmin(userID string) error {
	if userID == "" {
		return apperr.ErrUnauthenticated
	}

	var role string
	err := g.db.Table("users").Select("role").Where("id = ?", userID).Limit(1).Row().Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.ErrUnauthenticated
		}
		return apperr.Internal(err)
	}

	if role != RoleAdmin {
		return apperr.ErrForbidden
	}
	return nil
}
