package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/htconfort/myconfort-facturation/internal/application/dto"
	"github.com/htconfort/myconfort-facturation/internal/application/invoicing"
	"github.com/htconfort/myconfort-facturation/internal/domain"
)

// InvoiceHandler cycle de vie des factures (protégé).
type InvoiceHandler struct {
	uc *invoicing.UseCase
}

// NewInvoiceHandler construit le handler.
func NewInvoiceHandler(uc *invoicing.UseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Create crée un brouillon avec un numéro fraîchement réservé.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	inv, err := h.uc.NewDraft(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// Save remplace le contenu de la facture par celui du formulaire.
// PUT /api/invoices/:number
func (h *InvoiceHandler) Save(c *fiber.Ctx) error {
	number := c.Params("number")
	var in dto.SaveInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	inv, err := h.uc.Save(c.Context(), number, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "facture introuvable"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(inv)
}

// GetByNumber charge une facture avec ses totaux recalculés.
// GET /api/invoices/:number
func (h *InvoiceHandler) GetByNumber(c *fiber.Ctx) error {
	inv, err := h.uc.Get(c.Context(), c.Params("number"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "facture introuvable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(inv)
}

// List liste les factures enregistrées (résumés).
// GET /api/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Delete supprime une facture par numéro.
// DELETE /api/invoices/:number
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("number")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "facture introuvable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
