package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hypevault/backend-go/internal/domain"
	"github.com/hypevault/backend-go/internal/repository"
)

var ErrTagNameTaken = errors.New("tag name already in use")

// TagService owns the global tag set. Names are unique ignoring case, so
// "Grails" and "grails" are the same tag.
type TagService struct {
	repo repository.TagRepository
}

func NewTagService(repo repository.TagRepository) *TagService {
	return &TagService{repo: repo}
}

func (s *TagService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.repo.List(ctx)
}

func (s *TagService) CreateTag(ctx context.Context, tag *domain.Tag) (int64, error) {
	tag.Name = strings.TrimSpace(tag.Name)
	if tag.Name == "" {
		return 0, errors.New("tag name is required")
	}

	existing, err := s.repo.FindByName(ctx, tag.Name)
	if err != nil {
		return 0, fmt.Errorf("failed to check tag name %q: %w", tag.Name, err)
	}
	if existing != nil {
		return 0, ErrTagNameTaken
	}

	return s.repo.Create(ctx, tag)
}

func (s *TagService) UpdateTag(ctx context.Context, tag *domain.Tag) error {
	tag.Name = strings.TrimSpace(tag.Name)
	if tag.Name == "" {
		return errors.New("tag name is required")
	}

	existing, err := s.repo.FindByName(ctx, tag.Name)
	if err != nil {
		return fmt.Errorf("failed to check tag name %q: %w", tag.Name, err)
	}
	if existing != nil && existing.ID != tag.ID {
		return ErrTagNameTaken
	}

	return s.repo.Update(ctx, tag)
}

func (s *TagService) DeleteTag(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
