package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/errors"
	"github.com/mrlokans/bookshelf/internal/validation"
)

const bookConflict = "a book with this title already exists"

type CreateBookRequest struct {
	Title         string `json:"title" validate:"required,notblank,max=255"`
	Author        string `json:"author" validate:"required,notblank,max=255"`
	Publisher     string `json:"publisher" validate:"max=255"`
	PublishedDate string `json:"published_date" validate:"omitempty,datetime=2006-01-02"`
	PageCount     int    `json:"page_count" validate:"required,min=1"`
	Language      string `json:"language" validate:"required,notblank,max=5"`
}

// UpdateBookRequest holds a partial update; nil fields are left unchanged.
type UpdateBookRequest struct {
	Title         *string `json:"title,omitempty" validate:"omitempty,notblank,max=255"`
	Author        *string `json:"author,omitempty" validate:"omitempty,notblank,max=255"`
	Publisher     *string `json:"publisher,omitempty" validate:"omitempty,max=255"`
	PublishedDate *string `json:"published_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PageCount     *int    `json:"page_count,omitempty" validate:"omitempty,min=1"`
	Language      *string `json:"language,omitempty" validate:"omitempty,notblank,max=5"`
}

func (r UpdateBookRequest) empty() bool {
	return r.Title == nil && r.Author == nil && r.Publisher == nil &&
		r.PublishedDate == nil && r.PageCount == nil && r.Language == nil
}

type BookService struct {
	store     BookStore
	validator *validation.Validator
	now       Clock
}

func NewBookService(store BookStore, validator *validation.Validator, now Clock) *BookService {
	if now == nil {
		now = SystemClock
	}
	return &BookService{store: store, validator: validator, now: now}
}

// CreateBook validates the request and stores a new book whose created_at
// and updated_at are equal.
func (s *BookService) CreateBook(ctx context.Context, req CreateBookRequest) (*entities.Book, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	req.Language = strings.TrimSpace(req.Language)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	now := stamp(s.now())
	published, err := s.parsePublishedDate(req.PublishedDate, now)
	if err != nil {
		return nil, err
	}

	book := &entities.Book{
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     strings.TrimSpace(req.Publisher),
		PublishedDate: published,
		PageCount:     req.PageCount,
		LanguageCode:  req.Language,
		Tags:          []entities.Tag{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, translate(err, "create book", bookConflict)
	}

	slog.Debug("book created", "id", book.ID, "title", book.Title)
	return book, nil
}

// ListBooks returns all books, newest first.
func (s *BookService) ListBooks(ctx context.Context, withTags bool) ([]entities.Book, error) {
	books, err := s.store.ListBooks(ctx, withTags)
	if err != nil {
		return nil, translate(err, "list books", bookConflict)
	}
	return books, nil
}

func (s *BookService) GetBook(ctx context.Context, id string) (*entities.Book, error) {
	if err := requireUUID("book", id); err != nil {
		return nil, err
	}
	book, err := s.store.GetBookByID(ctx, id, true)
	if err != nil {
		return nil, translate(err, "get book", bookConflict)
	}
	return book, nil
}

// UpdateBook applies the supplied fields and advances updated_at.
func (s *BookService) UpdateBook(ctx context.Context, id string, req UpdateBookRequest) (*entities.Book, error) {
	if err := requireUUID("book", id); err != nil {
		return nil, err
	}
	trimPtr(req.Title)
	trimPtr(req.Author)
	trimPtr(req.Language)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.empty() {
		return nil, errors.Validation("at least one field must be provided")
	}

	now := s.now()
	var published *entities.Date
	if req.PublishedDate != nil {
		var err error
		if published, err = s.parsePublishedDate(*req.PublishedDate, stamp(now)); err != nil {
			return nil, err
		}
	}

	book, err := s.store.UpdateBook(ctx, id, func(b *entities.Book) error {
		if req.Title != nil {
			b.Title = *req.Title
		}
		if req.Author != nil {
			b.Author = *req.Author
		}
		if req.Publisher != nil {
			b.Publisher = strings.TrimSpace(*req.Publisher)
		}
		if req.PublishedDate != nil {
			b.PublishedDate = published
		}
		if req.PageCount != nil {
			b.PageCount = *req.PageCount
		}
		if req.Language != nil {
			b.LanguageCode = *req.Language
		}
		b.UpdatedAt = nextUpdatedAt(now, b.UpdatedAt)
		return nil
	})
	if err != nil {
		return nil, translate(err, "update book", bookConflict)
	}
	return book, nil
}

// DeleteBook removes the book with its reviews and tag associations.
func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	if err := requireUUID("book", id); err != nil {
		return err
	}
	if err := s.store.DeleteBook(ctx, id); err != nil {
		return translate(err, "delete book", bookConflict)
	}
	slog.Debug("book deleted", "id", id)
	return nil
}

// maxZoneOffset is the furthest any timezone runs ahead of UTC (UTC+14).
const maxZoneOffset = 14 * time.Hour

// parsePublishedDate accepts an empty value (no date) or a YYYY-MM-DD date
// that is not after today anywhere on Earth, so a client east of UTC can use
// its local date.
func (s *BookService) parsePublishedDate(raw string, now time.Time) (*entities.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	date, err := entities.ParseDate(raw)
	if err != nil {
		return nil, errors.ValidationWithDetails("validation failed", map[string]string{
			"published_date": "must be a date in 2006-01-02 format",
		})
	}
	if date.After(entities.DateOf(now.Add(maxZoneOffset))) {
		return nil, errors.ValidationWithDetails("validation failed", map[string]string{
			"published_date": "must not be in the future",
		})
	}
	return &date, nil
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
