package database

import (
	"fmt"

	"github.com/DanielEsLoH/StockFlow-sub011/models"

	"gorm.io/gorm"
)

// MigrateTenantSchema applies (idempotent) schema migrations for a single tenant schema.
// It pins search_path to the tenant and performs:
// - AutoMigrate (tables/columns)
// - Money column types (NUMERIC(12,2))
// - Indexes, including the reminder dedup unique index
// - Foreign keys for invoice/quotation items
// - Basic CHECK constraints
// - Idempotency keys table + unique index
func MigrateTenantSchema(schema string) error {
	if schema == "" {
		return fmt.Errorf("schema name is empty")
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		// Pin the tenant schema for this transaction
		if err := tx.Exec(`SET search_path = "` + schema + `", public`).Error; err != nil {
			return fmt.Errorf("set search_path failed: %w", err)
		}

		// --- AutoMigrate tables/columns/index tags (non-destructive) ---
		if err := tx.AutoMigrate(
			&models.Customer{},
			&models.Product{},
			&models.Warehouse{},
			&models.Invoice{},
			&models.InvoiceItem{},
			&models.Payment{},
			&models.Quotation{},
			&models.QuotationItem{},
			&models.QuotationVersion{},
			&models.CollectionReminder{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("tenant automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE products        ALTER COLUMN unit_price TYPE numeric(12,2)`,
			`ALTER TABLE invoices        ALTER COLUMN subtotal   TYPE numeric(12,2)`,
			`ALTER TABLE invoices        ALTER COLUMN tax_total  TYPE numeric(12,2)`,
			`ALTER TABLE invoices        ALTER COLUMN total      TYPE numeric(12,2)`,
			`ALTER TABLE invoices        ALTER COLUMN paid_total TYPE numeric(12,2)`,
			`ALTER TABLE invoice_items   ALTER COLUMN unit_price  TYPE numeric(12,2)`,
			`ALTER TABLE invoice_items   ALTER COLUMN net_price   TYPE numeric(12,2)`,
			`ALTER TABLE invoice_items   ALTER COLUMN tax_amount  TYPE numeric(12,2)`,
			`ALTER TABLE invoice_items   ALTER COLUMN gross_price TYPE numeric(12,2)`,
			`ALTER TABLE quotations      ALTER COLUMN subtotal   TYPE numeric(12,2)`,
			`ALTER TABLE quotations      ALTER COLUMN tax_total  TYPE numeric(12,2)`,
			`ALTER TABLE quotations      ALTER COLUMN total      TYPE numeric(12,2)`,
			`ALTER TABLE quotation_items ALTER COLUMN unit_price  TYPE numeric(12,2)`,
			`ALTER TABLE quotation_items ALTER COLUMN net_price   TYPE numeric(12,2)`,
			`ALTER TABLE quotation_items ALTER COLUMN tax_amount  TYPE numeric(12,2)`,
			`ALTER TABLE quotation_items ALTER COLUMN gross_price TYPE numeric(12,2)`,
			`ALTER TABLE payments        ALTER COLUMN amount     TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			// Dedup guard: one reminder per (invoice, type, calendar day),
			// even under concurrent generate calls.
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_reminders_invoice_type_day ON collection_reminders (invoice_id, type, scheduled_on)`,
			`CREATE INDEX IF NOT EXISTS idx_reminders_status_scheduled ON collection_reminders (status, scheduled_at)`,
			`CREATE INDEX IF NOT EXISTS idx_payments_invoice_paid_at ON payments (invoice_id, paid_at)`,
			`CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items (invoice_id)`,
			`CREATE INDEX IF NOT EXISTS idx_invoice_items_product ON invoice_items (product_id)`,
			`CREATE INDEX IF NOT EXISTS idx_quotation_items_quotation ON quotation_items (quotation_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_quotation_versions_quotation_id_version_no ON quotation_versions (quotation_id, version_no)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Foreign keys: line items -> products (RESTRICT/RESTRICT) ---
		fks := []string{
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'invoice_items'::regclass
					  AND conname  = 'fk_invoice_items_product'
				) THEN
					ALTER TABLE invoice_items
					ADD CONSTRAINT fk_invoice_items_product
					FOREIGN KEY (product_id)
					REFERENCES products(id)
					ON UPDATE RESTRICT
					ON DELETE RESTRICT;
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'quotation_items'::regclass
					  AND conname  = 'fk_quotation_items_product'
				) THEN
					ALTER TABLE quotation_items
					ADD CONSTRAINT fk_quotation_items_product
					FOREIGN KEY (product_id)
					REFERENCES products(id)
					ON UPDATE RESTRICT
					ON DELETE RESTRICT;
				END IF;
			END $$;`,
		}
		for _, stmt := range fks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("foreign key migration failed: %w", err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'products'::regclass
					  AND conname  = 'chk_products_unit_price_nonneg'
				) THEN
					ALTER TABLE products
					ADD CONSTRAINT chk_products_unit_price_nonneg
					CHECK (unit_price >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'payments'::regclass
					  AND conname  = 'chk_payments_amount_nonneg'
				) THEN
					ALTER TABLE payments
					ADD CONSTRAINT chk_payments_amount_nonneg
					CHECK (amount >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'invoice_items'::regclass
					  AND conname  = 'chk_invoice_items_quantity_pos'
				) THEN
					ALTER TABLE invoice_items
					ADD CONSTRAINT chk_invoice_items_quantity_pos
					CHECK (quantity > 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'quotation_items'::regclass
					  AND conname  = 'chk_quotation_items_quantity_pos'
				) THEN
					ALTER TABLE quotation_items
					ADD CONSTRAINT chk_quotation_items_quantity_pos
					CHECK (quantity > 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
