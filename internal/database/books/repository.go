// Package books provides database operations for book management.
//
// This package implements the BookStore interface defined in
// internal/services/books.go.
//
// # Interface Implementation
//
//	var _ services.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByID(ctx, id, true)
package books

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// updatableColumns are written by UpdateBook. created_at is never among them.
var updatableColumns = []string{
	"title", "author", "publisher", "published_date", "page_count", "language_code", "updated_at",
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// PreloadTags loads a book's tags ordered by name.
func PreloadTags(db *gorm.DB) *gorm.DB {
	return db.Preload("Tags", func(db *gorm.DB) *gorm.DB {
		return db.Order("tags.name ASC")
	})
}

// NewestFirst orders books by creation time, newest first, with id as a
// tiebreaker so the order is stable.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("books.created_at DESC").Order("books.id DESC")
}

// CreateBook inserts a book. A duplicate title yields gorm.ErrDuplicatedKey.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(book).Error
}

// GetBookByID retrieves a book, optionally with its tags.
func (r *Repository) GetBookByID(ctx context.Context, id string, withTags bool) (*entities.Book, error) {
	return getBook(r.db.WithContext(ctx), id, withTags)
}

// ListBooks retrieves all books, newest first.
func (r *Repository) ListBooks(ctx context.Context, withTags bool) ([]entities.Book, error) {
	query := r.db.WithContext(ctx).Scopes(NewestFirst)
	if withTags {
		query = query.Scopes(PreloadTags)
	}
	var books []entities.Book
	if err := query.Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// UpdateBook loads the book, lets apply mutate it and writes the mutable
// columns back, all inside one transaction. The returned book carries its
// tags.
func (r *Repository) UpdateBook(ctx context.Context, id string, apply func(*entities.Book) error) (*entities.Book, error) {
	var updated *entities.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		book, err := getBook(tx, id, false)
		if err != nil {
			return err
		}
		if err := apply(book); err != nil {
			return err
		}
		result := tx.Model(&entities.Book{ID: id}).Select(updatableColumns).Updates(book)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return database.NewNotFoundError("book", id)
		}
		updated, err = getBook(tx, id, true)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteBook removes a book together with its reviews and tag associations.
func (r *Repository) DeleteBook(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&entities.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.BookTag{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&entities.Book{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return database.NewNotFoundError("book", id)
		}
		return nil
	})
}

func getBook(db *gorm.DB, id string, withTags bool) (*entities.Book, error) {
	if withTags {
		db = db.Scopes(PreloadTags)
	}
	var book entities.Book
	if err := db.Where("books.id = ?", id).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, database.NewNotFoundError("book", id)
		}
		return nil, err
	}
	if withTags && book.Tags == nil {
		book.Tags = []entities.Tag{}
	}
	return &book, nil
}
