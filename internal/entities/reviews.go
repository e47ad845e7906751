package entities

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/id"
)

type Review struct {
	ID         string    `gorm:"primaryKey;size:32" json:"id"`
	Rating     int       `gorm:"not null;check:chk_reviews_rating,rating >= 0 AND rating < 5" json:"rating"`
	ReviewText string    `gorm:"type:text;not null" json:"review_text"`
	UserUID    *string   `gorm:"size:64;index" json:"user_uid,omitempty"`
	BookID     string    `gorm:"size:36;not null;index" json:"book_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

// BeforeCreate assigns a prefixed random token, e.g. "rev-V1StGXR8_Z5jdHi6B-myT".
func (r *Review) BeforeCreate(_ *gorm.DB) error {
	if r.ID != "" {
		return nil
	}
	generated, err := id.Generate(id.ReviewPrefix)
	if err != nil {
		return fmt.Errorf("failed to generate review id: %w", err)
	}
	r.ID = generated
	return nil
}
