package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/suggestion-box/internal/api/dto"
	"github.com/spec-kit/suggestion-box/internal/domain"
	"github.com/spec-kit/suggestion-box/internal/repository"
	"github.com/spec-kit/suggestion-box/internal/service"
	apperrors "github.com/spec-kit/suggestion-box/pkg/util/errorutil"
)

// RoadmapHandler manages roadmap item endpoints.
type RoadmapHandler struct {
	service *service.RoadmapService
}

// NewRoadmapHandler constructs handler.
func NewRoadmapHandler(roadmapService *service.RoadmapService) *RoadmapHandler {
	return &RoadmapHandler{service: roadmapService}
}

// Create POST /roadmap-items.
func (h *RoadmapHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRoadmapItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.RoadmapCreateInput{
		Title:               req.Title,
		Description:         req.Description,
		Status:              req.Status,
		Priority:            req.Priority,
		Quarter:             req.Quarter,
		EstimatedCompletion: req.EstimatedCompletion,
		AssignedTo:          req.AssignedTo,
		RelatedSuggestions:  req.RelatedSuggestions,
	}
	item, err := h.service.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": roadmapItemResponse(item, nil)})
}

// List GET /roadmap-items.
func (h *RoadmapHandler) List(c *fiber.Ctx) error {
	filter := repository.RoadmapFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.RoadmapStatus(strings.TrimSpace(part)))
		}
	}
	if quarter := c.Query("quarter"); quarter != "" {
		filter.Quarter = &quarter
	}
	filter.Limit = parseInt(c.Query("page_size"), 50)
	filter.Offset = (parseInt(c.Query("page"), 1) - 1) * filter.Limit

	items, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	resp := make([]dto.RoadmapItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, roadmapItemResponse(&items[i], nil))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get GET /roadmap-items/:id. Related suggestion ids are joined back to the
// suggestions that still exist.
func (h *RoadmapHandler) Get(c *fiber.Ctx) error {
	item, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	related, err := h.service.ResolveRelated(c.Context(), item)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": roadmapItemResponse(item, related)})
}

// Update PATCH /roadmap-items/:id.
func (h *RoadmapHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateRoadmapItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.RoadmapUpdateInput{
		Title:               req.Title,
		Description:         req.Description,
		Status:              req.Status,
		Priority:            req.Priority,
		Quarter:             req.Quarter,
		EstimatedCompletion: req.EstimatedCompletion,
		AssignedTo:          req.AssignedTo,
		RelatedSuggestions:  req.RelatedSuggestions,
	}
	item, err := h.service.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": roadmapItemResponse(item, nil)})
}

// Delete DELETE /roadmap-items/:id.
func (h *RoadmapHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func roadmapItemResponse(item *domain.RoadmapItem, related []domain.Suggestion) dto.RoadmapItemResponse {
	resp := dto.RoadmapItemResponse{
		ID:                  item.ID,
		Title:               item.Title,
		Description:         item.Description,
		Status:              item.Status,
		Priority:            item.Priority,
		Quarter:             item.Quarter,
		EstimatedCompletion: item.EstimatedCompletion,
		AssignedTo:          item.AssignedTo,
		RelatedSuggestions:  item.RelatedSuggestions,
		CreatedAt:           item.CreatedAt,
	}
	for i := range related {
		resp.Related = append(resp.Related, suggestionResponse(&related[i]))
	}
	return resp
}
