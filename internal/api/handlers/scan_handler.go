package handlers

import (
	"errors"

	"grantscan/internal/dto"
	"grantscan/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScanHandler struct {
	scanService *service.ScanService
	logger      *zap.Logger
}

func NewScanHandler(scanService *service.ScanService, logger *zap.Logger) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
		logger:      logger,
	}
}

// RunScan godoc
// @Summary Run an eligibility scan
// @Description Match an applicant profile against the grant catalog and estimate savings
// @Tags scan
// @Accept json
// @Produce json
// @Param request body dto.ScanRequest true "Applicant profile"
// @Success 200 {object} dto.ScanResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/scan [post]
func (h *ScanHandler) RunScan(c *fiber.Ctx) error {
	var req dto.ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Profile == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Profile is required",
		})
	}

	result, err := h.scanService.Run(c.Context(), req.Profile)
	if err != nil {
		h.logger.Error("Failed to run scan", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to run scan",
		})
	}

	return c.JSON(result)
}

// GetScan godoc
// @Summary Get a stored scan
// @Description Rebuild a previously run scan by id. Savings estimates are not included because the profile is not stored.
// @Tags scan
// @Produce json
// @Param id path string true "Scan ID"
// @Success 200 {object} dto.ScanResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/scan/{id} [get]
func (h *ScanHandler) GetScan(c *fiber.Ctx) error {
	scanID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid scan ID",
		})
	}

	result, err := h.scanService.Get(c.Context(), scanID)
	if err != nil {
		if errors.Is(err, service.ErrScanNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Scan not found",
			})
		}
		h.logger.Error("Failed to load scan", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load scan",
		})
	}

	return c.JSON(result)
}
