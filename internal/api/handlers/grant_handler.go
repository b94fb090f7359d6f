package handlers

import (
	"errors"

	"grantscan/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GrantHandler struct {
	grantService *service.GrantService
	logger       *zap.Logger
}

func NewGrantHandler(grantService *service.GrantService, logger *zap.Logger) *GrantHandler {
	return &GrantHandler{
		grantService: grantService,
		logger:       logger,
	}
}

// ListGrants godoc
// @Summary List grants
// @Description Get a page of active grants, optionally filtered by category
// @Tags grants
// @Produce json
// @Param category query string false "Category code"
// @Param page query int false "Page" default(1)
// @Param per_page query int false "Page size" default(20)
// @Success 200 {object} dto.GrantListResponse
// @Router /api/v1/grants [get]
func (h *GrantHandler) ListGrants(c *fiber.Ctx) error {
	category := c.Query("category")
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 20)

	result, err := h.grantService.List(c.Context(), category, page, perPage)
	if err != nil {
		h.logger.Error("Failed to list grants", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list grants",
		})
	}

	return c.JSON(result)
}

// ListCategories godoc
// @Summary List grant categories
// @Description Get the active grant count per category
// @Tags grants
// @Produce json
// @Success 200 {array} dto.CategoryCount
// @Router /api/v1/grants/categories [get]
func (h *GrantHandler) ListCategories(c *fiber.Ctx) error {
	result, err := h.grantService.Categories(c.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list categories",
		})
	}

	return c.JSON(result)
}

// GetGrant godoc
// @Summary Get a grant
// @Description Get one grant by slug, including its eligibility rules
// @Tags grants
// @Produce json
// @Param slug path string true "Grant slug"
// @Success 200 {object} dto.GrantResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/grants/{slug} [get]
func (h *GrantHandler) GetGrant(c *fiber.Ctx) error {
	slug := c.Params("slug")

	result, err := h.grantService.GetBySlug(c.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrGrantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Grant not found",
			})
		}
		h.logger.Error("Failed to load grant", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load grant",
		})
	}

	return c.JSON(result)
}
