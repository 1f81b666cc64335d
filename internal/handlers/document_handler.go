package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spivot-ai/spivot-backend/internal/core/auth"
	"github.com/spivot-ai/spivot-backend/internal/services"
)

// DocumentHandler serves the document review workflow endpoints.
type DocumentHandler struct {
	documentService *services.DocumentService
}

// NewDocumentHandler creates a document handler.
func NewDocumentHandler(documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upload godoc
// @Summary Upload a document for extraction
// @Description Stores the file, creates a pending document and queues extraction
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param file formData file true "PDF or image file"
// @Success 201 {object} models.Document
// @Failure 400 {object} map[string]interface{}
// @Router /documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open uploaded file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}

	doc, err := h.documentService.Upload(c.Context(), userID, fileHeader.Filename, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(doc)
}

// List godoc
// @Summary List documents, newest first
// @Tags Documents
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param limit query int false "Max entries"
// @Success 200 {array} models.Document
// @Router /documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	docs, err := h.documentService.List(userID, c.QueryInt("limit", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list documents",
		})
	}
	return c.JSON(docs)
}

// Get godoc
// @Summary Fetch one document with its extraction result
// @Tags Documents
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Document ID"
// @Success 200 {object} models.Document
// @Failure 404 {object} map[string]interface{}
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid document id"})
	}

	doc, err := h.documentService.Get(userID, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load document"})
	}
	return c.JSON(doc)
}

// Accept godoc
// @Summary Accept (verify) a completed document
// @Description Idempotent: accepting an already-verified document succeeds
// @Tags Documents
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Document ID"
// @Success 200 {object} models.Document
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /documents/{id}/accept [post]
func (h *DocumentHandler) Accept(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid document id"})
	}

	doc, err := h.documentService.Accept(userID, docID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
		case errors.Is(err, services.ErrNotReviewable):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to accept document"})
		}
	}
	return c.JSON(doc)
}

// Reject godoc
// @Summary Reject a document, deleting it and its file
// @Tags Documents
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Document ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /documents/{id}/reject [post]
func (h *DocumentHandler) Reject(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid document id"})
	}

	if err := h.documentService.Reject(c.Context(), userID, docID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
		case errors.Is(err, services.ErrNotReviewable):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}
