// Package interfaces documents the core abstractions used throughout the
// application and holds compile-time checks that the concrete types satisfy
// them.
//
// # Layers
//
// Requests flow through three layers, each depending on the next only
// through an interface declared by the consumer:
//
//   - HTTP controllers (internal/http) depend on BookService, ReviewService
//     and TagService (internal/http/stores.go).
//   - Services (internal/services) depend on BookStore, ReviewStore and
//     TagStore (internal/services/interfaces.go).
//   - Repositories (internal/database/books, reviews, tags) implement the
//     stores on top of gorm.
//
// # Adding a New Entity
//
//  1. Add the gorm model to internal/entities and a migration pair for each
//     dialect under internal/database/migrations.
//  2. Write a repository package under internal/database. Return raw gorm
//     errors or database.NotFoundError; run multi-step writes in a
//     transaction.
//  3. Declare the store interface in internal/services and write the service.
//     Translate store errors into internal/errors codes there.
//  4. Declare the service interface in internal/http/stores.go and register
//     the huma operations in a controller.
//  5. Add both checks to checks.go.
package interfaces
