// Package seed bootstraps a development account so a fresh install is
// usable without going through signup first.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/etiquetou/etiquetou/internal/auth/domain"
	"github.com/etiquetou/etiquetou/internal/auth/password"
	"github.com/etiquetou/etiquetou/internal/plan"
	"gorm.io/gorm"
)

const (
	devUserEmail    = "dev@etiquetou.local"
	devUserPassword = "etiquetou"
	devUserName     = "Dev User"
)

// EnsureDevUser creates the development user if it does not exist yet.
func EnsureDevUser(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing authdomain.User
		err := tx.Where("email = ?", devUserEmail).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := password.Hash(devUserPassword)
		if err != nil {
			return err
		}

		return tx.Create(&authdomain.User{
			ID:           node.Generate(),
			Email:        devUserEmail,
			Name:         devUserName,
			PasswordHash: hash,
			Plan:         plan.TierFree,
		}).Error
	})
}
