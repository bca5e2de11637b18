package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrNoTenant is returned when an operation runs without a tenant scope.
var ErrNoTenant = errors.New("tenant schema missing")

// GetTenantDB returns the request's tenant-pinned transaction
// (middlewares.TenantTx). Tenant work never runs outside a transaction:
// a plain session cannot pin search_path across pooled connections, so a
// missing TX is an unscoped failure, not a fallback.
func GetTenantDB(c *fiber.Ctx) (*gorm.DB, error) {
	if v := c.Locals("tx"); v != nil {
		if tx, ok := v.(*gorm.DB); ok && tx != nil {
			return tx, nil
		}
	}
	return nil, ErrNoTenant
}

// SearchPathSQL builds the statement that pins a tenant schema for the
// current transaction. SET LOCAL reverts at TX end, so the pooled
// connection goes back clean.
func SearchPathSQL(schema string) string {
	return `SET LOCAL search_path = "` + schema + `", public`
}

// WithTenant runs fn inside a transaction pinned to the tenant schema.
// Used by the cron runner, which has no fiber context. The transaction
// boundary is what makes SET LOCAL safe: statement and queries share one
// connection, and the search_path dies with the TX instead of leaking
// into the pool.
func WithTenant(schema string, fn func(tx *gorm.DB) error) error {
	if strings.TrimSpace(schema) == "" {
		return ErrNoTenant
	}
	if DB == nil {
		return errors.New("database not initialized")
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(SearchPathSQL(schema)).Error; err != nil {
			return fmt.Errorf("set search_path failed: %w", err)
		}
		return fn(tx)
	})
}
