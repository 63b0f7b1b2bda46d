package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/htconfort/myconfort-facturation/internal/application/directory"
	"github.com/htconfort/myconfort-facturation/internal/application/dto"
	"github.com/htconfort/myconfort-facturation/internal/domain"
)

// CatalogHandler catalogue de produits (lecture protégée, écriture admin).
type CatalogHandler struct {
	uc *directory.CatalogUseCase
}

// NewCatalogHandler construit le handler.
func NewCatalogHandler(uc *directory.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Create ajoute un produit au catalogue.
// POST /api/catalog
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var in directory.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	product, err := h.uc.Create(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nom, catégorie et prix positif requis"})
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ce produit existe déjà dans cette catégorie"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// List retourne le catalogue (query optionnelle : category).
// GET /api/catalog
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	products, err := h.uc.List(c.Context(), c.Query("category"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(products)
}
