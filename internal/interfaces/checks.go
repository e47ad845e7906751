package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/reviews"
	"github.com/mrlokans/bookshelf/internal/database/tags"
	"github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/services"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.BookStore = (*books.Repository)(nil)
var _ services.ReviewStore = (*reviews.Repository)(nil)
var _ services.TagStore = (*tags.Repository)(nil)

// =============================================================================
// Service Layer
// =============================================================================

var _ http.BookService = (*services.BookService)(nil)
var _ http.ReviewService = (*services.ReviewService)(nil)
var _ http.TagService = (*services.TagService)(nil)
