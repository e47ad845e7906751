package http

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
)

// Each controller depends only on the service methods it calls.

// BookService is what BooksController needs.
type BookService interface {
	CreateBook(ctx context.Context, req services.CreateBookRequest) (*entities.Book, error)
	ListBooks(ctx context.Context, withTags bool) ([]entities.Book, error)
	GetBook(ctx context.Context, id string) (*entities.Book, error)
	UpdateBook(ctx context.Context, id string, req services.UpdateBookRequest) (*entities.Book, error)
	DeleteBook(ctx context.Context, id string) error
}

// ReviewService is what ReviewsController needs.
type ReviewService interface {
	CreateReview(ctx context.Context, bookID string, req services.CreateReviewRequest) (*entities.Review, error)
	ListReviews(ctx context.Context, bookID string) ([]entities.Review, error)
	GetReview(ctx context.Context, id string) (*entities.Review, error)
	UpdateReview(ctx context.Context, id string, req services.UpdateReviewRequest) (*entities.Review, error)
	DeleteReview(ctx context.Context, id string) error
}

// TagService is what TagsController needs.
type TagService interface {
	CreateTag(ctx context.Context, req services.TagRequest) (*entities.Tag, error)
	ListTags(ctx context.Context) ([]entities.Tag, error)
	GetTag(ctx context.Context, id string) (*entities.Tag, error)
	UpdateTag(ctx context.Context, id string, req services.TagRequest) (*entities.Tag, error)
	DeleteTag(ctx context.Context, id string) error
	AssociateTags(ctx context.Context, bookID string, req services.AssociateTagsRequest) (*entities.Book, error)
	DisassociateTag(ctx context.Context, bookID, tagID string) (*entities.Book, error)
	BooksByTag(ctx context.Context, tagID string) ([]entities.Book, error)
}
