package services

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/database/tags"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// BookStore persists books. Multi-table operations (DeleteBook) must be
// atomic.
type BookStore interface {
	CreateBook(ctx context.Context, book *entities.Book) error
	GetBookByID(ctx context.Context, id string, withTags bool) (*entities.Book, error)
	ListBooks(ctx context.Context, withTags bool) ([]entities.Book, error)
	UpdateBook(ctx context.Context, id string, apply func(*entities.Book) error) (*entities.Book, error)
	DeleteBook(ctx context.Context, id string) error
}

// ReviewStore persists reviews. CreateReview and ListReviewsForBook fail
// when the book does not exist.
type ReviewStore interface {
	CreateReview(ctx context.Context, review *entities.Review) error
	ListReviewsForBook(ctx context.Context, bookID string) ([]entities.Review, error)
	GetReviewByID(ctx context.Context, id string) (*entities.Review, error)
	UpdateReview(ctx context.Context, id string, apply func(*entities.Review) error) (*entities.Review, error)
	DeleteReview(ctx context.Context, id string) error
}

// TagStore persists tags and book/tag associations.
type TagStore interface {
	CreateTag(ctx context.Context, tag *entities.Tag) error
	ListTags(ctx context.Context) ([]entities.Tag, error)
	GetTagByID(ctx context.Context, id string) (*entities.Tag, error)
	UpdateTag(ctx context.Context, id string, apply func(*entities.Tag) error) (*entities.Tag, error)
	DeleteTag(ctx context.Context, id string) error
	AddTagsToBook(ctx context.Context, bookID string, tagIDs []string, touch tags.TouchFunc) (*entities.Book, error)
	RemoveTagFromBook(ctx context.Context, bookID, tagID string, touch tags.TouchFunc) (*entities.Book, error)
	GetBooksByTag(ctx context.Context, tagID string) ([]entities.Book, error)
}
