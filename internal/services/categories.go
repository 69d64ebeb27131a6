// Package services orchestrates the domain: it validates inputs against
// ownership and business rules, drives the repositories, and publishes
// lifecycle events. Handlers stay thin and repositories stay dumb.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"grana/internal/core"
	"grana/internal/storage"
)

type CategoryService struct {
	categories storage.CategoryRepository
}

func NewCategoryService(categories storage.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// CategoryInput is a create request after boundary validation.
type CategoryInput struct {
	Name        string
	Description string
	Color       string
	Icon        string
	Type        core.TransactionType
}

// CategoryUpdate carries partial changes; nil fields are left untouched.
type CategoryUpdate struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *string
	Type        *core.TransactionType
	IsDefault   *bool
}

func (s *CategoryService) Create(ctx context.Context, userID string, in CategoryInput) (core.Category, error) {
	c := core.Category{
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Color:       in.Color,
		Icon:        in.Icon,
		Type:        in.Type,
	}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}

	taken, err := s.categories.CategoryNameExists(ctx, userID, c.Name, c.Type, 0)
	if err != nil {
		return core.Category{}, fmt.Errorf("check category name: %w", err)
	}
	if taken {
		return core.Category{}, fmt.Errorf("category %q (%s): %w", c.Name, c.Type, core.ErrConflict)
	}

	created, err := s.categories.CreateCategory(ctx, c)
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

func (s *CategoryService) FindAll(ctx context.Context, userID string) ([]core.Category, error) {
	return s.categories.ListCategories(ctx, userID)
}

func (s *CategoryService) FindOne(ctx context.Context, userID string, id int64) (core.Category, error) {
	return s.categories.GetCategory(ctx, userID, id)
}

func (s *CategoryService) Update(ctx context.Context, userID string, id int64, patch CategoryUpdate) (core.Category, error) {
	existing, err := s.categories.GetCategory(ctx, userID, id)
	if err != nil {
		return core.Category{}, err
	}

	if existing.IsDefault && patch.IsDefault != nil && !*patch.IsDefault {
		return core.Category{}, fmt.Errorf("category %d is a default category: %w", id, core.ErrForbidden)
	}

	if patch.Name != nil {
		existing.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	if patch.Color != nil {
		existing.Color = *patch.Color
	}
	if patch.Icon != nil {
		existing.Icon = *patch.Icon
	}
	if patch.Type != nil {
		existing.Type = *patch.Type
	}
	if patch.IsDefault != nil {
		existing.IsDefault = *patch.IsDefault
	}
	if err := existing.Validate(); err != nil {
		return core.Category{}, err
	}

	if patch.Name != nil || patch.Type != nil {
		taken, err := s.categories.CategoryNameExists(ctx, userID, existing.Name, existing.Type, id)
		if err != nil {
			return core.Category{}, fmt.Errorf("check category name: %w", err)
		}
		if taken {
			return core.Category{}, fmt.Errorf("category %q (%s): %w", existing.Name, existing.Type, core.ErrConflict)
		}
	}

	updated, err := s.categories.UpdateCategory(ctx, existing)
	if err != nil {
		return core.Category{}, fmt.Errorf("update category: %w", err)
	}
	return updated, nil
}

func (s *CategoryService) Remove(ctx context.Context, userID string, id int64) error {
	existing, err := s.categories.GetCategory(ctx, userID, id)
	if err != nil {
		return err
	}
	if existing.IsDefault {
		return fmt.Errorf("category %d is a default category: %w", id, core.ErrForbidden)
	}

	count, err := s.categories.CountCategoryTransactions(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("count category transactions: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("category %d has %d transactions: %w", id, count, core.ErrConflict)
	}

	if err := s.categories.DeleteCategory(ctx, userID, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// CreateDefaultCategories seeds the starter set for a user. Seeds whose
// (name, type) pair already exists are skipped, so re-running it is harmless.
// It returns how many categories were actually created.
func (s *CategoryService) CreateDefaultCategories(ctx context.Context, userID string) (int, error) {
	created := 0
	for _, seed := range core.DefaultCategorySeeds() {
		exists, err := s.categories.CategoryNameExists(ctx, userID, seed.Name, seed.Type, 0)
		if err != nil {
			return created, fmt.Errorf("check seed %q: %w", seed.Name, err)
		}
		if exists {
			continue
		}
		_, err = s.categories.CreateCategory(ctx, core.Category{
			UserID:    userID,
			Name:      seed.Name,
			Color:     seed.Color,
			Icon:      seed.Icon,
			Type:      seed.Type,
			IsDefault: true,
		})
		if err != nil {
			// Concurrent seeding of the same user can race; the unique index
			// wins and the seed is simply already there.
			if errors.Is(err, core.ErrConflict) {
				continue
			}
			return created, fmt.Errorf("seed category %q: %w", seed.Name, err)
		}
		created++
	}
	if created > 0 {
		slog.InfoContext(ctx, "Seeded default categories", "user_id", userID, "created", created)
	}
	return created, nil
}
