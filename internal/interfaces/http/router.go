package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/htconfort/myconfort-facturation/internal/application/auth"
	"github.com/htconfort/myconfort-facturation/internal/application/directory"
	"github.com/htconfort/myconfort-facturation/internal/application/export"
	"github.com/htconfort/myconfort-facturation/internal/application/invoicing"
	"github.com/htconfort/myconfort-facturation/internal/domain/entity"
)

// RouterDeps dépendances du routeur.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	InvoiceUC *invoicing.UseCase
	ExportUC  *export.UseCase
	ClientUC  *directory.ClientUseCase
	CatalogUC *directory.CatalogUseCase
	JWTSecret string
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Routes protégées (Bearer Token requis)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Factures (protégé)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:number", invoiceHandler.GetByNumber)
	invoices.Put("/:number", invoiceHandler.Save)
	invoices.Delete("/:number", invoiceHandler.Delete)

	// Export : webhook, PDF, e-mail (protégé)
	exportHandler := NewExportHandler(deps.ExportUC)
	invoices.Post("/:number/export", exportHandler.Export)
	invoices.Get("/:number/pdf", exportHandler.PDF)
	invoices.Post("/:number/email", exportHandler.Email)

	// Carnet de clients (protégé)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/by-email/:email", clientHandler.GetByEmail)

	// Catalogue (lecture protégée ; écriture réservée aux admins)
	catalog := protected.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalog.Get("/", catalogHandler.List)
	catalog.Post("/", RequireRole(entity.RoleAdmin), catalogHandler.Create)
}
