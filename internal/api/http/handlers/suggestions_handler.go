package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/suggestion-box/internal/api/dto"
	"github.com/spec-kit/suggestion-box/internal/auth"
	"github.com/spec-kit/suggestion-box/internal/domain"
	"github.com/spec-kit/suggestion-box/internal/repository"
	"github.com/spec-kit/suggestion-box/internal/service"
	apperrors "github.com/spec-kit/suggestion-box/pkg/util/errorutil"
)

// SuggestionsHandler manages suggestion endpoints.
type SuggestionsHandler struct {
	service *service.SuggestionService
}

// NewSuggestionsHandler constructs handler.
func NewSuggestionsHandler(suggestionService *service.SuggestionService) *SuggestionsHandler {
	return &SuggestionsHandler{service: suggestionService}
}

// Create POST /suggestions.
func (h *SuggestionsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateSuggestionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.SuggestionCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
	}
	suggestion, err := h.service.Create(c.Context(), principal.User, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": suggestionResponse(suggestion)})
}

// List GET /suggestions.
func (h *SuggestionsHandler) List(c *fiber.Ctx) error {
	filter := parseSuggestionQuery(c)
	suggestions, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.SuggestionResponse, 0, len(suggestions))
	for i := range suggestions {
		items = append(items, suggestionResponse(&suggestions[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /suggestions/:id.
func (h *SuggestionsHandler) Get(c *fiber.Ctx) error {
	suggestion, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": suggestionResponse(suggestion)})
}

// Update PATCH /suggestions/:id. Authors may edit their own suggestions;
// admins may edit any.
func (h *SuggestionsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	suggestion, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if !principal.User.IsAdmin() && suggestion.AuthorID != principal.User.ID {
		return apperrors.NewForbidden("only the author or an admin may edit a suggestion")
	}

	var req dto.UpdateSuggestionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.SuggestionUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      req.Status,
		Priority:    req.Priority,
		Votes:       req.Votes,
		AdminNotes:  req.AdminNotes,
		Tags:        req.Tags,
	}
	updated, err := h.service.Update(c.Context(), suggestion.ID, principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": suggestionResponse(updated)})
}

// Delete DELETE /suggestions/:id.
func (h *SuggestionsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// StartVoteSession POST /suggestions/:id/vote-session/start.
func (h *SuggestionsHandler) StartVoteSession(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	suggestion, err := h.service.StartVoteSession(c.Context(), c.Params("id"), principalID(principal))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": suggestionResponse(suggestion)})
}

// StopVoteSession POST /suggestions/:id/vote-session/stop.
func (h *SuggestionsHandler) StopVoteSession(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	suggestion, err := h.service.EndVoteSession(c.Context(), c.Params("id"), principalID(principal))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": suggestionResponse(suggestion)})
}

// SubmitVote POST /suggestions/:id/votes.
func (h *SuggestionsHandler) SubmitVote(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SubmitVoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	suggestion, err := h.service.SubmitVote(c.Context(), c.Params("id"), principal.User.ID, req.VoteType)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": suggestionResponse(suggestion)})
}

func parseSuggestionQuery(c *fiber.Ctx) repository.SuggestionFilter {
	filter := repository.SuggestionFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.SuggestionStatus(strings.TrimSpace(part)))
		}
	}
	if categoryStr := c.Query("category"); categoryStr != "" {
		for _, part := range strings.Split(categoryStr, ",") {
			filter.Categories = append(filter.Categories, domain.SuggestionCategory(strings.TrimSpace(part)))
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		for _, part := range strings.Split(priorityStr, ",") {
			filter.Priorities = append(filter.Priorities, domain.Priority(strings.TrimSpace(part)))
		}
	}
	if author := c.Query("author_id"); author != "" {
		filter.AuthorID = &author
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func principalID(principal *auth.Principal) string {
	if principal == nil || principal.User == nil {
		return ""
	}
	return principal.User.ID
}

func suggestionResponse(s *domain.Suggestion) dto.SuggestionResponse {
	resp := dto.SuggestionResponse{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Category:    s.Category,
		Status:      s.Status,
		Priority:    s.Priority,
		AuthorID:    s.AuthorID,
		AuthorName:  s.AuthorName,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Votes:       s.Votes,
		AdminNotes:  s.AdminNotes,
		Tags:        s.Tags,
	}
	if s.VoteSession != nil {
		tally := s.VoteSession.Tally()
		resp.VoteSession = &dto.VoteSessionResponse{
			IsActive:  s.VoteSession.IsActive,
			StartedAt: s.VoteSession.StartedAt,
			UpVotes:   tally.Up,
			DownVotes: tally.Down,
			Total:     tally.Total,
		}
	}
	return resp
}
