package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/suggestion-box/internal/api/dto"
	"github.com/spec-kit/suggestion-box/internal/service"
)

// TagsHandler exposes the derived tag registry.
type TagsHandler struct {
	service *service.TagService
}

// NewTagsHandler constructs handler.
func NewTagsHandler(tagService *service.TagService) *TagsHandler {
	return &TagsHandler{service: tagService}
}

// List GET /tags. Alphabetical, for autocomplete.
func (h *TagsHandler) List(c *fiber.Ctx) error {
	tags, err := h.service.AvailableTags(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tags})
}

// Top GET /tags/top. Frequency-sorted, for analytics.
func (h *TagsHandler) Top(c *fiber.Ctx) error {
	limit := parseInt(c.Query("limit"), 10)
	counts, err := h.service.TopTags(c.Context(), limit)
	if err != nil {
		return err
	}
	items := make([]dto.TagCountResponse, 0, len(counts))
	for _, count := range counts {
		items = append(items, dto.TagCountResponse{Name: count.Name, Count: count.Count})
	}
	return c.JSON(fiber.Map{"data": items})
}
