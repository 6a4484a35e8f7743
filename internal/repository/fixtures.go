package repository

import (
	"context"
	"time"

	"github.com/spec-kit/suggestion-box/internal/auth"
	"github.com/spec-kit/suggestion-box/internal/domain"
)

// SeedFixtures loads the demo dataset into the given repositories. Intended
// for the in-memory store, where the data lives for the process lifetime.
// Every seeded account uses the password "password".
func SeedFixtures(ctx context.Context, users UserRepository, suggestions SuggestionRepository, roadmap RoadmapRepository, bcryptCost int) error {
	hash, err := auth.HashPassword("password", bcryptCost)
	if err != nil {
		return err
	}

	now := time.Now()
	seedUsers := []domain.User{
		{
			ID:           "1",
			Email:        "admin@company.com",
			Name:         "Admin User",
			Role:         domain.RoleAdmin,
			PasswordHash: hash,
			CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			LastLogin:    &now,
		},
		{
			ID:           "2",
			Email:        "employee@company.com",
			Name:         "John Employee",
			Role:         domain.RoleEmployee,
			PasswordHash: hash,
			CreatedAt:    time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			LastLogin:    &now,
		},
		{
			ID:           "3",
			Email:        "jane@company.com",
			Name:         "Jane Smith",
			Role:         domain.RoleEmployee,
			PasswordHash: hash,
			CreatedAt:    time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			LastLogin:    &now,
		},
	}
	for i := range seedUsers {
		if err := users.Create(ctx, &seedUsers[i]); err != nil {
			return err
		}
	}

	seedSuggestions := []domain.Suggestion{
		{
			ID:          "s-1",
			Title:       "Dark Mode Support",
			Description: "Add dark mode toggle to improve user experience during night time usage.",
			Category:    domain.CategoryFeature,
			Status:      domain.SuggestionStatusApproved,
			Priority:    domain.PriorityMedium,
			AuthorID:    "2",
			AuthorName:  "John Employee",
			CreatedAt:   time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 1, 16, 14, 20, 0, 0, time.UTC),
			Votes:       12,
			AdminNotes:  "Great idea, will implement in Q2",
			Tags:        []string{"ux", "theme"},
		},
		{
			ID:          "s-2",
			Title:       "Mobile App Version",
			Description: "Create a mobile application for better accessibility on phones and tablets.",
			Category:    domain.CategoryFeature,
			Status:      domain.SuggestionStatusPending,
			Priority:    domain.PriorityHigh,
			AuthorID:    "3",
			AuthorName:  "Jane Smith",
			CreatedAt:   time.Date(2024, 1, 20, 9, 15, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 1, 20, 9, 15, 0, 0, time.UTC),
			Votes:       25,
			Tags:        []string{"mobile"},
		},
	}
	// seed oldest-first so the newest-first store ordering comes out right
	for i := range seedSuggestions {
		if err := suggestions.Create(ctx, &seedSuggestions[i]); err != nil {
			return err
		}
	}

	completion := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	seedRoadmap := []domain.RoadmapItem{
		{
			ID:                 "r-1",
			Title:              "User Authentication System",
			Description:        "Implement secure user authentication with role-based access control.",
			Status:             domain.RoadmapStatusCompleted,
			Priority:           domain.PriorityHigh,
			Quarter:            "Q1 2024",
			AssignedTo:         "Development Team",
			RelatedSuggestions: []string{},
			CreatedAt:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:                  "r-2",
			Title:               "Dark Mode Implementation",
			Description:         "Add dark mode support across the entire application.",
			Status:              domain.RoadmapStatusInProgress,
			Priority:            domain.PriorityMedium,
			Quarter:             "Q2 2024",
			EstimatedCompletion: &completion,
			AssignedTo:          "UI/UX Team",
			RelatedSuggestions:  []string{"s-1"},
			CreatedAt:           time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for i := range seedRoadmap {
		if err := roadmap.Create(ctx, &seedRoadmap[i]); err != nil {
			return err
		}
	}

	return nil
}
