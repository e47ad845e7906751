package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/errors"
	"github.com/mrlokans/bookshelf/internal/id"
	"github.com/mrlokans/bookshelf/internal/validation"
)

const tagConflict = "a tag with this name already exists"

type TagRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

type AssociateTagsRequest struct {
	TagIDs []string `json:"tag_ids" validate:"required,min=1,dive,notblank"`
}

type TagService struct {
	store     TagStore
	validator *validation.Validator
	now       Clock
}

func NewTagService(store TagStore, validator *validation.Validator, now Clock) *TagService {
	if now == nil {
		now = SystemClock
	}
	return &TagService{store: store, validator: validator, now: now}
}

// CreateTag stores a new tag. Names are unique.
func (s *TagService) CreateTag(ctx context.Context, req TagRequest) (*entities.Tag, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	tag := &entities.Tag{Name: req.Name, CreatedAt: stamp(s.now())}
	if err := s.store.CreateTag(ctx, tag); err != nil {
		return nil, translate(err, "create tag", tagConflict)
	}

	slog.Debug("tag created", "id", tag.ID, "name", tag.Name)
	return tag, nil
}

// ListTags returns all tags, newest first.
func (s *TagService) ListTags(ctx context.Context) ([]entities.Tag, error) {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, translate(err, "list tags", tagConflict)
	}
	return tags, nil
}

func (s *TagService) GetTag(ctx context.Context, id string) (*entities.Tag, error) {
	if err := requireUUID("tag", id); err != nil {
		return nil, err
	}
	tag, err := s.store.GetTagByID(ctx, id)
	if err != nil {
		return nil, translate(err, "get tag", tagConflict)
	}
	return tag, nil
}

// UpdateTag renames a tag.
func (s *TagService) UpdateTag(ctx context.Context, id string, req TagRequest) (*entities.Tag, error) {
	if err := requireUUID("tag", id); err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	tag, err := s.store.UpdateTag(ctx, id, func(t *entities.Tag) error {
		t.Name = req.Name
		return nil
	})
	if err != nil {
		return nil, translate(err, "update tag", tagConflict)
	}
	return tag, nil
}

// DeleteTag removes the tag and its associations; books are kept.
func (s *TagService) DeleteTag(ctx context.Context, id string) error {
	if err := requireUUID("tag", id); err != nil {
		return err
	}
	if err := s.store.DeleteTag(ctx, id); err != nil {
		return translate(err, "delete tag", tagConflict)
	}
	return nil
}

// AssociateTags adds tags to a book's tag set. Existing associations are
// kept as they are, so the call is idempotent. If the book or any tag is
// unknown nothing is changed.
func (s *TagService) AssociateTags(ctx context.Context, bookID string, req AssociateTagsRequest) (*entities.Book, error) {
	if err := requireUUID("book", bookID); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	tagIDs := dedupe(req.TagIDs)
	var malformed []string
	for _, tagID := range tagIDs {
		if !id.IsUUID(tagID) {
			malformed = append(malformed, tagID)
		}
	}
	if len(malformed) > 0 {
		return nil, errors.NotFound("tag not found").WithDetails(map[string]any{"ids": malformed})
	}

	now := s.now()
	book, err := s.store.AddTagsToBook(ctx, bookID, tagIDs, func(b *entities.Book) {
		b.UpdatedAt = nextUpdatedAt(now, b.UpdatedAt)
	})
	if err != nil {
		return nil, translate(err, "associate tags", tagConflict)
	}
	return book, nil
}

// DisassociateTag removes one tag from a book's tag set.
func (s *TagService) DisassociateTag(ctx context.Context, bookID, tagID string) (*entities.Book, error) {
	if err := requireUUID("book", bookID); err != nil {
		return nil, err
	}
	if err := requireUUID("tag", tagID); err != nil {
		return nil, err
	}

	now := s.now()
	book, err := s.store.RemoveTagFromBook(ctx, bookID, tagID, func(b *entities.Book) {
		b.UpdatedAt = nextUpdatedAt(now, b.UpdatedAt)
	})
	if err != nil {
		return nil, translate(err, "remove tag from book", tagConflict)
	}
	return book, nil
}

// BooksByTag returns the books carrying a tag, newest first.
func (s *TagService) BooksByTag(ctx context.Context, tagID string) ([]entities.Book, error) {
	if err := requireUUID("tag", tagID); err != nil {
		return nil, err
	}
	books, err := s.store.GetBooksByTag(ctx, tagID)
	if err != nil {
		return nil, translate(err, "list books by tag", tagConflict)
	}
	return books, nil
}

// dedupe keeps the first occurrence of each id, preserving order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		v = strings.TrimSpace(v)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
