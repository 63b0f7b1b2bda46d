package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/htconfort/myconfort-facturation/internal/application/dto"
	"github.com/htconfort/myconfort-facturation/internal/application/export"
	"github.com/htconfort/myconfort-facturation/internal/domain"
	"github.com/htconfort/myconfort-facturation/internal/infrastructure/webhook"
)

// ExportHandler export de la facture : webhook, PDF et e-mail (protégé).
type ExportHandler struct {
	uc *export.UseCase
}

// NewExportHandler construit le handler.
func NewExportHandler(uc *export.UseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Export valide la facture et transmet le payload au webhook.
// En cas d'échec de validation, la réponse 422 porte la liste complète des
// règles violées (jamais un message générique sans piste de correction).
// POST /api/invoices/:number/export
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	payload, err := h.uc.Export(c.Context(), c.Params("number"))
	if err != nil {
		var verr *export.ValidationErrors
		var serr *webhook.StatusError
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "facture introuvable"})
		case errors.As(err, &verr):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
				Code:    "VALIDATION",
				Message: "la facture ne peut pas être exportée en l'état",
				Details: verr.Messages,
			})
		case errors.Is(err, webhook.ErrTimeout):
			return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{Code: "WEBHOOK_TIMEOUT", Message: err.Error()})
		case errors.Is(err, webhook.ErrNetwork):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "WEBHOOK_NETWORK", Message: err.Error()})
		case errors.As(err, &serr):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "WEBHOOK_REJECTED", Message: serr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"status":         "sent",
		"invoice_number": payload.InvoiceNumber,
		"pdf_size_kb":    payload.PDFSizeKB,
		"generated_at":   payload.GeneratedAt,
	})
}

// PDF sert le PDF de la facture.
// GET /api/invoices/:number/pdf
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.RenderPDF(c.Context(), c.Params("number"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "facture introuvable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}

// Email envoie la facture PDF au client par e-mail.
// POST /api/invoices/:number/email
func (h *ExportHandler) Email(c *fiber.Ctx) error {
	var in dto.EmailInvoiceRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if err := h.uc.SendByEmail(c.Context(), c.Params("number"), in.Subject, in.Message); err != nil {
		var verr *export.ValidationErrors
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "facture introuvable"})
		case errors.As(err, &verr):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "envoi impossible", Details: verr.Messages,
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "EMAIL_FAILED", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"status": "sent"})
}
