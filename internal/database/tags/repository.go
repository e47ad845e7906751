// Package tags provides database operations for tag management and
// book/tag associations.
//
// This package implements the TagStore interface defined in
// internal/services/tags.go.
//
// # Interface Implementation
//
//	var _ services.TagStore = (*Repository)(nil)
//
// # Usage
//
//	repo := tags.NewRepository(db)
//	book, err := repo.AddTagsToBook(ctx, bookID, []string{tagID}, touch)
package tags

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// TouchFunc is called with the book whose tag set changed so the caller can
// advance its updated_at before it is persisted.
type TouchFunc func(book *entities.Book)

// Repository handles all tag database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new tags repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateTag creates a new tag. A duplicate name yields gorm.ErrDuplicatedKey.
func (r *Repository) CreateTag(ctx context.Context, tag *entities.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

// ListTags retrieves all tags, newest first.
func (r *Repository) ListTags(ctx context.Context) ([]entities.Tag, error) {
	var tags []entities.Tag
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Find(&tags).Error
	return tags, err
}

// GetTagByID retrieves a tag by ID.
func (r *Repository) GetTagByID(ctx context.Context, id string) (*entities.Tag, error) {
	return getTag(r.db.WithContext(ctx), id)
}

// UpdateTag loads the tag, lets apply mutate it and saves the name in one
// transaction.
func (r *Repository) UpdateTag(ctx context.Context, id string, apply func(*entities.Tag) error) (*entities.Tag, error) {
	var updated *entities.Tag
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tag, err := getTag(tx, id)
		if err != nil {
			return err
		}
		if err := apply(tag); err != nil {
			return err
		}
		if err := tx.Model(&entities.Tag{ID: id}).Update("name", tag.Name).Error; err != nil {
			return err
		}
		updated = tag
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTag deletes a tag and its book associations. Books are kept.
func (r *Repository) DeleteTag(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&entities.BookTag{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&entities.Tag{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return database.NewNotFoundError("tag", id)
		}
		return nil
	})
}

// AddTagsToBook associates tags with a book. Existing associations are left
// alone, so repeating a call is a no-op. Either every tag is linked or, when
// the book or any tag is missing, nothing is. touch runs only when at least
// one new association was created. The book is returned with its tags.
func (r *Repository) AddTagsToBook(ctx context.Context, bookID string, tagIDs []string, touch TouchFunc) (*entities.Book, error) {
	var result *entities.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.Where("id = ?", bookID).First(&book).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return database.NewNotFoundError("book", bookID)
			}
			return err
		}

		if err := requireTags(tx, tagIDs); err != nil {
			return err
		}

		links := make([]entities.BookTag, 0, len(tagIDs))
		for _, tagID := range tagIDs {
			links = append(links, entities.BookTag{BookID: bookID, TagID: tagID})
		}
		inserted := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links)
		if inserted.Error != nil {
			return inserted.Error
		}

		if inserted.RowsAffected > 0 && touch != nil {
			if err := touchBook(tx, &book, touch); err != nil {
				return err
			}
		}

		var err error
		result, err = loadBookWithTags(tx, bookID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveTagFromBook removes a single association. The tag itself is kept.
func (r *Repository) RemoveTagFromBook(ctx context.Context, bookID, tagID string, touch TouchFunc) (*entities.Book, error) {
	var result *entities.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.Where("id = ?", bookID).First(&book).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return database.NewNotFoundError("book", bookID)
			}
			return err
		}
		if _, err := getTag(tx, tagID); err != nil {
			return err
		}

		deleted := tx.Where("book_id = ? AND tag_id = ?", bookID, tagID).Delete(&entities.BookTag{})
		if deleted.Error != nil {
			return deleted.Error
		}
		if deleted.RowsAffected == 0 {
			return database.NewNotFoundError("tag association", tagID)
		}

		if touch != nil {
			if err := touchBook(tx, &book, touch); err != nil {
				return err
			}
		}

		var err error
		result, err = loadBookWithTags(tx, bookID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetBooksByTag retrieves books that carry a tag, newest first.
func (r *Repository) GetBooksByTag(ctx context.Context, tagID string) ([]entities.Book, error) {
	db := r.db.WithContext(ctx)
	if _, err := getTag(db, tagID); err != nil {
		return nil, err
	}

	var result []entities.Book
	err := db.Scopes(books.NewestFirst, books.PreloadTags).
		Joins("JOIN book_tags ON book_tags.book_id = books.id").
		Where("book_tags.tag_id = ?", tagID).
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func getTag(db *gorm.DB, id string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := db.Where("id = ?", id).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, database.NewNotFoundError("tag", id)
		}
		return nil, err
	}
	return &tag, nil
}

// requireTags fails with a NotFoundError listing every unknown id.
func requireTags(tx *gorm.DB, tagIDs []string) error {
	var found []string
	if err := tx.Model(&entities.Tag{}).Where("id IN ?", tagIDs).Pluck("id", &found).Error; err != nil {
		return err
	}
	known := make(map[string]struct{}, len(found))
	for _, id := range found {
		known[id] = struct{}{}
	}
	var missing []string
	for _, id := range tagIDs {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return &database.NotFoundError{Entity: "tag", IDs: missing}
	}
	return nil
}

func touchBook(tx *gorm.DB, book *entities.Book, touch TouchFunc) error {
	touch(book)
	return tx.Model(&entities.Book{ID: book.ID}).Update("updated_at", book.UpdatedAt).Error
}

func loadBookWithTags(tx *gorm.DB, bookID string) (*entities.Book, error) {
	var book entities.Book
	if err := tx.Scopes(books.PreloadTags).Where("id = ?", bookID).First(&book).Error; err != nil {
		return nil, err
	}
	if book.Tags == nil {
		book.Tags = []entities.Tag{}
	}
	return &book, nil
}
