package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DanielEsLoH/StockFlow-sub011/controllers"
	"github.com/DanielEsLoH/StockFlow-sub011/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then per-request tenant transaction (pins search_path and commits/rolls back)
	protected.Use(middlewares.TenantTx())

	// Customers
	protected.Post("/customer", controllers.CreateCustomer)
	protected.Get("/customers", controllers.GetCustomers)
	protected.Get("/customer/:id", controllers.GetCustomer)
	protected.Put("/customer/:id", controllers.UpdateCustomer)

	// Products
	protected.Post("/product", controllers.CreateProducts) // batch create
	protected.Get("/products", controllers.GetProducts)
	protected.Put("/products/:id", controllers.UpdateProduct)
	protected.Delete("/products/:id", controllers.DeleteProduct)

	// Warehouses
	protected.Post("/warehouse", controllers.CreateWarehouse)
	protected.Get("/warehouses", controllers.GetWarehouses)
	protected.Put("/warehouses/:id", controllers.UpdateWarehouse)
	protected.Delete("/warehouses/:id", controllers.DeleteWarehouse)

	// Invoices (status machine: DRAFT→SENT→PAID/OVERDUE/CANCELLED)
	protected.Post("/invoice", controllers.CreateInvoice)
	protected.Get("/invoices", controllers.GetInvoices)
	protected.Get("/invoice/:id", controllers.GetInvoice)
	protected.Put("/invoices/:id", controllers.UpdateInvoice)
	protected.Put("/invoices/:id/send", controllers.SendInvoice)
	protected.Put("/invoices/:id/pay", controllers.PayInvoice)
	protected.Put("/invoices/:id/overdue", controllers.MarkInvoiceOverdue)
	protected.Put("/invoices/:id/cancel", controllers.CancelInvoice)
	protected.Post("/invoices/:id/payments", controllers.CreatePayment)
	protected.Get("/invoices/:id/payments", controllers.ListPayments)

	// Quotations (status machine: DRAFT→SENT→ACCEPTED/REJECTED/EXPIRED; ACCEPTED→CONVERTED)
	protected.Post("/quotation", controllers.CreateQuotation)
	protected.Get("/quotations", controllers.GetQuotations)
	protected.Get("/quotation/:id", controllers.GetQuotation)
	protected.Put("/quotations/:id", controllers.UpdateQuotation)
	protected.Delete("/quotations/:id", controllers.DeleteQuotation)
	protected.Put("/quotations/:id/send", controllers.SendQuotation)
	protected.Put("/quotations/:id/accept", controllers.AcceptQuotation)
	protected.Put("/quotations/:id/reject", controllers.RejectQuotation)
	protected.Put("/quotations/:id/expire", controllers.ExpireQuotation)
	protected.Post("/quotations/:id/convert", controllers.ConvertQuotation)
	protected.Get("/quotations/:id/versions", controllers.GetQuotationVersions)

	// Collection reminders
	protected.Post("/reminder", controllers.CreateReminder) // manual
	protected.Get("/reminders", controllers.GetReminders)
	protected.Get("/reminder/:id", controllers.GetReminder)
	protected.Post("/reminders/generate", controllers.GenerateReminders)
	protected.Put("/reminders/:id/cancel", controllers.CancelReminder)
	protected.Put("/reminders/:id/fail", controllers.FailReminder)
	protected.Post("/reminders/:id/send", controllers.SendReminder)
}
