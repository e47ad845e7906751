package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/errors"
)

func requireCode(t *testing.T, err error, code errors.Code) *errors.Error {
	t.Helper()
	var domainErr *errors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code, domainErr.Error())
	return domainErr
}

func TestBookService_CreateBook(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	book, err := s.books.CreateBook(ctx, duneRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, book.ID)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "en", book.LanguageCode)
	assert.Nil(t, book.PublishedDate)
	assert.NotNil(t, book.Tags)
	assert.Empty(t, book.Tags)
	assert.Equal(t, book.CreatedAt, book.UpdatedAt)

	stored, err := s.books.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.True(t, stored.CreatedAt.Equal(stored.UpdatedAt))
	assert.True(t, stored.CreatedAt.Equal(book.CreatedAt), "stored timestamp round-trips at microsecond precision")
}

func TestBookService_CreateBook_Validation(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		mut   func(r *CreateBookRequest)
		field string
	}{
		{"missing title", func(r *CreateBookRequest) { r.Title = "  " }, "title"},
		{"missing author", func(r *CreateBookRequest) { r.Author = "" }, "author"},
		{"zero pages", func(r *CreateBookRequest) { r.PageCount = 0 }, "page_count"},
		{"long language", func(r *CreateBookRequest) { r.Language = "english" }, "language"},
		{"bad date", func(r *CreateBookRequest) { r.PublishedDate = "1965/08/01" }, "published_date"},
		{"future date", func(r *CreateBookRequest) { r.PublishedDate = "2024-01-17" }, "published_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := duneRequest()
			tt.mut(&req)

			_, err := s.books.CreateBook(ctx, req)

			domainErr := requireCode(t, err, errors.CodeValidation)
			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.field)
		})
	}
}

func TestBookService_CreateBook_PublishedToday(t *testing.T) {
	s := setupServices(t)
	req := duneRequest()
	req.PublishedDate = "2024-01-15"

	book, err := s.books.CreateBook(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, book.PublishedDate)
	assert.Equal(t, "2024-01-15", book.PublishedDate.String())
}

func TestBookService_CreateBook_PublishedTodayEastOfUTC(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	// 10:30 UTC on the 15th is already 00:30 on the 16th in UTC+14.
	req := duneRequest()
	req.PublishedDate = "2024-01-16"
	book, err := s.books.CreateBook(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-16", book.PublishedDate.String())

	// Before midnight in UTC+14 the 16th is still ahead of every timezone.
	s.clock.t = time.Date(2024, 1, 15, 9, 59, 0, 0, time.UTC)
	req = duneRequest()
	req.Title = "Dune Messiah"
	req.PublishedDate = "2024-01-16"
	_, err = s.books.CreateBook(ctx, req)
	requireCode(t, err, errors.CodeValidation)
}

func TestBookService_CreateBook_DuplicateTitle(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	_, err := s.books.CreateBook(ctx, duneRequest())
	require.NoError(t, err)

	_, err = s.books.CreateBook(ctx, duneRequest())
	requireCode(t, err, errors.CodeConflict)
}

func TestBookService_GetBook_NotFound(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	_, err := s.books.GetBook(ctx, "0f8fad5b-d9cb-469f-a165-70867728950e")
	requireCode(t, err, errors.CodeNotFound)

	_, err = s.books.GetBook(ctx, "not-a-uuid")
	requireCode(t, err, errors.CodeNotFound)
}

func TestBookService_UpdateBook(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	book, err := s.books.CreateBook(ctx, duneRequest())
	require.NoError(t, err)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		s.clock.Advance(time.Minute)
		updated, err := s.books.UpdateBook(ctx, book.ID, UpdateBookRequest{
			Publisher:     ptr("Chilton"),
			PublishedDate: ptr("1965-08-01"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Dune", updated.Title)
		assert.Equal(t, "Chilton", updated.Publisher)
		assert.Equal(t, "1965-08-01", updated.PublishedDate.String())
		assert.True(t, updated.CreatedAt.Equal(book.CreatedAt), "created_at is immutable")
		assert.True(t, updated.UpdatedAt.After(book.UpdatedAt))
	})

	t.Run("updated_at strictly increases with a frozen clock", func(t *testing.T) {
		prev, err := s.books.GetBook(ctx, book.ID)
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			next, err := s.books.UpdateBook(ctx, book.ID, UpdateBookRequest{PageCount: ptr(413 + i)})
			require.NoError(t, err)
			assert.True(t, next.UpdatedAt.After(prev.UpdatedAt), "update %d", i)
			prev = next
		}
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		_, err := s.books.UpdateBook(ctx, book.ID, UpdateBookRequest{})
		requireCode(t, err, errors.CodeValidation)
	})

	t.Run("missing book", func(t *testing.T) {
		_, err := s.books.UpdateBook(ctx, "0f8fad5b-d9cb-469f-a165-70867728950e", UpdateBookRequest{PageCount: ptr(1)})
		requireCode(t, err, errors.CodeNotFound)
	})

	t.Run("title collision", func(t *testing.T) {
		other := duneRequest()
		other.Title = "Dune Messiah"
		_, err := s.books.CreateBook(ctx, other)
		require.NoError(t, err)

		_, err = s.books.UpdateBook(ctx, book.ID, UpdateBookRequest{Title: ptr("Dune Messiah")})
		requireCode(t, err, errors.CodeConflict)
	})
}

func TestBookService_ListBooks(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	first, err := s.books.CreateBook(ctx, duneRequest())
	require.NoError(t, err)
	s.clock.Advance(time.Second)
	req := duneRequest()
	req.Title = "Dune Messiah"
	second, err := s.books.CreateBook(ctx, req)
	require.NoError(t, err)

	books, err := s.books.ListBooks(ctx, true)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, second.ID, books[0].ID)
	assert.Equal(t, first.ID, books[1].ID)
}

func TestBookService_DeleteBook_CascadesReviews(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	book, err := s.books.CreateBook(ctx, duneRequest())
	require.NoError(t, err)

	var reviewIDs []string
	for i := 0; i < 3; i++ {
		review, err := s.reviews.CreateReview(ctx, book.ID, CreateReviewRequest{Rating: ptr(i), ReviewText: "fine"})
		require.NoError(t, err)
		reviewIDs = append(reviewIDs, review.ID)
	}

	require.NoError(t, s.books.DeleteBook(ctx, book.ID))

	for _, id := range reviewIDs {
		_, err := s.reviews.GetReview(ctx, id)
		requireCode(t, err, errors.CodeNotFound)
	}
	_, err = s.reviews.ListReviews(ctx, book.ID)
	requireCode(t, err, errors.CodeNotFound)

	err = s.books.DeleteBook(ctx, book.ID)
	requireCode(t, err, errors.CodeNotFound)
}

func TestBookService_DeleteBook_FailureKeepsReviews(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	book, err := s.books.CreateBook(ctx, duneRequest())
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := s.reviews.CreateReview(ctx, book.ID, CreateReviewRequest{Rating: ptr(i), ReviewText: "fine"})
		require.NoError(t, err)
	}

	err = s.db.Callback().Delete().Before("gorm:delete").Register("test:fail_book_delete", func(tx *gorm.DB) {
		if tx.Statement.Table == "books" {
			tx.AddError(fmt.Errorf("disk full"))
		}
	})
	require.NoError(t, err)

	err = s.books.DeleteBook(ctx, book.ID)
	requireCode(t, err, errors.CodeInternal)

	_, err = s.books.GetBook(ctx, book.ID)
	require.NoError(t, err)
	remaining, err := s.reviews.ListReviews(ctx, book.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 3)
}
