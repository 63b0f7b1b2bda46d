package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/htconfort/myconfort-facturation/internal/application/directory"
	"github.com/htconfort/myconfort-facturation/internal/application/dto"
	"github.com/htconfort/myconfort-facturation/internal/domain"
)

// ClientHandler carnet de clients (protégé).
type ClientHandler struct {
	uc *directory.ClientUseCase
}

// NewClientHandler construit le handler.
func NewClientHandler(uc *directory.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create enregistre une fiche client.
// POST /api/clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	client, err := h.uc.Create(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nom et email requis"})
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "un client existe déjà avec cet email"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// List liste le carnet (query : limit, offset).
// GET /api/clients
func (h *ClientHandler) List(c *fiber.Ctx) error {
	clients, err := h.uc.List(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(clients)
}

// GetByEmail retrouve une fiche pour préremplir le formulaire.
// GET /api/clients/by-email/:email
func (h *ClientHandler) GetByEmail(c *fiber.Ctx) error {
	client, err := h.uc.GetByEmail(c.Context(), c.Params("email"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "client introuvable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(client)
}
