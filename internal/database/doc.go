// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, dialect selection, migrations on start
//	├── migrations/      # Embedded SQL schema per dialect (golang-migrate)
//	├── books/           # Book CRUD and cascade delete
//	├── reviews/         # Review CRUD scoped to books
//	├── tags/            # Tag CRUD and book/tag associations
//	└── dbtest/          # Migrated SQLite databases for tests
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type holding a *gorm.DB:
//
//	db, err := database.NewDatabase(cfg.Database)
//
//	booksRepo := books.NewRepository(db.DB)
//	tagsRepo := tags.NewRepository(db.DB)
//
//	book, err := booksRepo.GetBookByID(ctx, id)
//
// Repositories return raw gorm errors (gorm.ErrRecordNotFound,
// gorm.ErrDuplicatedKey). Translating them into domain errors is the job of
// internal/services.
//
// # Transactions
//
// Operations spanning several tables run inside gorm's Transaction helper
// within a single repository method, e.g. books.Repository.DeleteBook.
//
// # Adding a New Domain
//
//  1. Add NNNNNN_name.up.sql / .down.sql scripts for every dialect in migrations/
//  2. Create a sub-package with a Repository struct and NewRepository(db *gorm.DB)
//  3. Implement the store interface declared by internal/services
//  4. Add a compile-time check in internal/interfaces/checks.go
package database
