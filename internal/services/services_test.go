package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/dbtest"
	"github.com/mrlokans/bookshelf/internal/database/reviews"
	"github.com/mrlokans/bookshelf/internal/database/tags"
	"github.com/mrlokans/bookshelf/internal/validation"
)

// fakeClock returns a settable time so tests can freeze or advance it.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type testServices struct {
	books   *BookService
	reviews *ReviewService
	tags    *TagService
	clock   *fakeClock
	db      *gorm.DB
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	db := dbtest.New(t)
	v := validation.New()
	clock := &fakeClock{t: time.Date(2024, 1, 15, 10, 30, 0, 123456789, time.UTC)}

	return &testServices{
		books:   NewBookService(books.NewRepository(db.DB), v, clock.Now),
		reviews: NewReviewService(reviews.NewRepository(db.DB), v, clock.Now),
		tags:    NewTagService(tags.NewRepository(db.DB), v, clock.Now),
		clock:   clock,
		db:      db.DB,
	}
}

func ptr[T any](v T) *T { return &v }

func duneRequest() CreateBookRequest {
	return CreateBookRequest{Title: "Dune", Author: "Herbert", PageCount: 412, Language: "en"}
}
