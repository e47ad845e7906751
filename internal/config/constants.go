package config

// DefaultDatabasePath is the SQLite file used when DATABASE_PATH is unset.
const DefaultDatabasePath = "./bookshelf.db"
