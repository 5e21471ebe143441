package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/contactbook-api/internal/application/dto"
	"github.com/jhoicas/contactbook-api/internal/application/usecase"
	"github.com/jhoicas/contactbook-api/pkg/logger"
)

// Pinger comprueba la conexión con el almacén (lo satisface *pgxpool.Pool).
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ContactBookUC *usecase.ContactBookUseCase
	CompanyUC     *usecase.CompanyUseCase
	ContactUC     *usecase.ContactUseCase
	DB            Pinger
	Logger        *logger.Logger
	AppName       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	errs := errorMapper{log: deps.Logger}

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.DB != nil {
			if err := deps.DB.Ping(c.UserContext()); err != nil {
				deps.Logger.Warn().Err(err).Msg("health: base de datos no disponible")
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "DB_UNAVAILABLE", Message: "base de datos no disponible"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	books := api.Group("/contact-books")
	bookHandler := NewContactBookHandler(deps.ContactBookUC, errs)
	books.Get("/", bookHandler.List)
	books.Post("/", bookHandler.Create)
	books.Get("/:id", bookHandler.GetByID)
	books.Put("/:id", bookHandler.Update)
	books.Delete("/:id", bookHandler.Delete)
	books.Get("/:id/overview", bookHandler.Overview)

	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, errs)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)
	companies.Get("/:id/contacts", companyHandler.Contacts)

	contacts := api.Group("/contacts")
	contactHandler := NewContactHandler(deps.ContactUC, errs)
	contacts.Get("/", contactHandler.List)
	contacts.Post("/", contactHandler.Create)
	contacts.Get("/:id", contactHandler.GetByID)
	contacts.Put("/:id", contactHandler.Update)
	contacts.Delete("/:id", contactHandler.Delete)
}
