package entities

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/id"
)

// Column bounds shared by the schema, service validation and API docs.
const (
	MaxTitleLength      = 255
	MaxAuthorLength     = 255
	MaxPublisherLength  = 255
	MaxLanguageLength   = 5
	MaxTagNameLength    = 100
	MaxReviewTextLength = 5000
	MaxUserUIDLength    = 64

	// Ratings are valid in [MinRating, RatingUpperBound).
	MinRating        = 0
	RatingUpperBound = 5
)

type Book struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Title         string    `gorm:"uniqueIndex;size:255;not null" json:"title"`
	Author        string    `gorm:"size:255;not null" json:"author"`
	Publisher     string    `gorm:"size:255" json:"publisher"`
	PublishedDate *Date     `json:"published_date,omitempty"`
	PageCount     int       `gorm:"not null" json:"page_count"`
	LanguageCode  string    `gorm:"column:language_code;size:5;not null" json:"language"`
	Reviews       []Review  `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
	Tags          []Tag     `gorm:"many2many:book_tags;" json:"tags"`
	CreatedAt     time.Time `gorm:"autoCreateTime:false;index" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// BeforeCreate assigns a UUID when the caller did not set one.
func (b *Book) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = id.NewUUID()
	}
	return nil
}

// BookTag is a row of the book/tag join table.
type BookTag struct {
	BookID string `gorm:"primaryKey;size:36"`
	TagID  string `gorm:"primaryKey;size:36;index"`
}

func (BookTag) TableName() string {
	return "book_tags"
}
