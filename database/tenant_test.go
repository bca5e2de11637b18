package database

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"
)

func TestSearchPathSQL(t *testing.T) {
	got := SearchPathSQL("tenant_acme")
	want := `SET LOCAL search_path = "tenant_acme", public`
	if got != want {
		t.Errorf("SearchPathSQL = %q, want %q", got, want)
	}
}

// The schema pin must be transaction-local: a bare SET on a pooled
// connection would leak the previous tenant's search_path into later
// checkouts. WithTenant therefore refuses to run without a schema and
// never touches a connection outside DB.Transaction.
func TestWithTenantRequiresSchema(t *testing.T) {
	for _, schema := range []string{"", "   "} {
		err := WithTenant(schema, nil)
		if !errors.Is(err, ErrNoTenant) {
			t.Errorf("WithTenant(%q) = %v, want ErrNoTenant", schema, err)
		}
	}
}

func TestWithTenantRequiresInitializedDB(t *testing.T) {
	// DB is nil under test; the guard must fire before any transaction.
	err := WithTenant("tenant_acme", func(tx *gorm.DB) error {
		t.Fatal("fn ran without a database")
		return nil
	})
	if err == nil {
		t.Fatal("WithTenant with nil DB succeeded")
	}
}

func TestGetTenantDBRequiresRequestTx(t *testing.T) {
	app := fiber.New()
	c := app.AcquireCtx(&fasthttp.RequestCtx{})
	defer app.ReleaseCtx(c)

	// Schema claim alone is not a scope; only the TenantTx transaction is.
	c.Locals("schema", "tenant_acme")
	if _, err := GetTenantDB(c); !errors.Is(err, ErrNoTenant) {
		t.Errorf("GetTenantDB without tx = %v, want ErrNoTenant", err)
	}
}
