package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/errors"
	"github.com/mrlokans/bookshelf/internal/validation"
)

// CreateReviewRequest is a new review. Rating is a pointer so that an
// explicit 0 can be told apart from a missing value.
type CreateReviewRequest struct {
	Rating     *int    `json:"rating" validate:"required,gte=0,lt=5"`
	ReviewText string  `json:"review_text" validate:"required,notblank,max=5000"`
	UserUID    *string `json:"user_uid,omitempty" validate:"omitempty,max=64"`
}

// UpdateReviewRequest holds a partial update; nil fields are left unchanged.
type UpdateReviewRequest struct {
	Rating     *int    `json:"rating,omitempty" validate:"omitempty,gte=0,lt=5"`
	ReviewText *string `json:"review_text,omitempty" validate:"omitempty,notblank,max=5000"`
	UserUID    *string `json:"user_uid,omitempty" validate:"omitempty,max=64"`
}

type ReviewService struct {
	store     ReviewStore
	validator *validation.Validator
	now       Clock
}

func NewReviewService(store ReviewStore, validator *validation.Validator, now Clock) *ReviewService {
	if now == nil {
		now = SystemClock
	}
	return &ReviewService{store: store, validator: validator, now: now}
}

// CreateReview adds a review to an existing book.
func (s *ReviewService) CreateReview(ctx context.Context, bookID string, req CreateReviewRequest) (*entities.Review, error) {
	if err := requireUUID("book", bookID); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	now := stamp(s.now())
	review := &entities.Review{
		Rating:     *req.Rating,
		ReviewText: strings.TrimSpace(req.ReviewText),
		UserUID:    blankToNil(req.UserUID),
		BookID:     bookID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.CreateReview(ctx, review); err != nil {
		return nil, translate(err, "create review", "review already exists")
	}

	slog.Debug("review created", "id", review.ID, "book_id", bookID)
	return review, nil
}

// ListReviews returns a book's reviews, newest first.
func (s *ReviewService) ListReviews(ctx context.Context, bookID string) ([]entities.Review, error) {
	if err := requireUUID("book", bookID); err != nil {
		return nil, err
	}
	reviews, err := s.store.ListReviewsForBook(ctx, bookID)
	if err != nil {
		return nil, translate(err, "list reviews", "")
	}
	return reviews, nil
}

func (s *ReviewService) GetReview(ctx context.Context, id string) (*entities.Review, error) {
	review, err := s.store.GetReviewByID(ctx, id)
	if err != nil {
		return nil, translate(err, "get review", "")
	}
	return review, nil
}

// UpdateReview applies the supplied fields and advances updated_at.
func (s *ReviewService) UpdateReview(ctx context.Context, id string, req UpdateReviewRequest) (*entities.Review, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.Rating == nil && req.ReviewText == nil && req.UserUID == nil {
		return nil, errors.Validation("at least one field must be provided")
	}

	now := s.now()
	review, err := s.store.UpdateReview(ctx, id, func(r *entities.Review) error {
		if req.Rating != nil {
			r.Rating = *req.Rating
		}
		if req.ReviewText != nil {
			r.ReviewText = strings.TrimSpace(*req.ReviewText)
		}
		if req.UserUID != nil {
			r.UserUID = blankToNil(req.UserUID)
		}
		r.UpdatedAt = nextUpdatedAt(now, r.UpdatedAt)
		return nil
	})
	if err != nil {
		return nil, translate(err, "update review", "")
	}
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, id string) error {
	if err := s.store.DeleteReview(ctx, id); err != nil {
		return translate(err, "delete review", "")
	}
	return nil
}

// blankToNil treats an empty user reference as absent.
func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
