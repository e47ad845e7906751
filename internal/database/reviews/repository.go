// Package reviews provides database operations for book reviews.
//
// This package implements the ReviewStore interface defined in
// internal/services/reviews.go.
//
//	var _ services.ReviewStore = (*Repository)(nil)
package reviews

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// Repository handles all review database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("reviews.created_at DESC").Order("reviews.id DESC")
}

// CreateReview inserts a review after checking, in the same transaction,
// that its book exists.
func (r *Repository) CreateReview(ctx context.Context, review *entities.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireBook(tx, review.BookID); err != nil {
			return err
		}
		return tx.Create(review).Error
	})
}

// ListReviewsForBook retrieves a book's reviews, newest first.
func (r *Repository) ListReviewsForBook(ctx context.Context, bookID string) ([]entities.Review, error) {
	db := r.db.WithContext(ctx)
	if err := requireBook(db, bookID); err != nil {
		return nil, err
	}
	var reviews []entities.Review
	if err := db.Scopes(newestFirst).Where("book_id = ?", bookID).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetReviewByID retrieves a review by ID.
func (r *Repository) GetReviewByID(ctx context.Context, id string) (*entities.Review, error) {
	return getReview(r.db.WithContext(ctx), id)
}

// UpdateReview loads the review, lets apply mutate it and persists the
// mutable columns in one transaction.
func (r *Repository) UpdateReview(ctx context.Context, id string, apply func(*entities.Review) error) (*entities.Review, error) {
	var updated *entities.Review
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		review, err := getReview(tx, id)
		if err != nil {
			return err
		}
		if err := apply(review); err != nil {
			return err
		}
		result := tx.Model(&entities.Review{ID: id}).
			Select("rating", "review_text", "user_uid", "updated_at").
			Updates(review)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return database.NewNotFoundError("review", id)
		}
		updated = review
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteReview deletes a review.
func (r *Repository) DeleteReview(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.NewNotFoundError("review", id)
	}
	return nil
}

func getReview(db *gorm.DB, id string) (*entities.Review, error) {
	var review entities.Review
	if err := db.Where("id = ?", id).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, database.NewNotFoundError("review", id)
		}
		return nil, err
	}
	return &review, nil
}

func requireBook(db *gorm.DB, bookID string) error {
	var count int64
	if err := db.Model(&entities.Book{}).Where("id = ?", bookID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return database.NewNotFoundError("book", bookID)
	}
	return nil
}
