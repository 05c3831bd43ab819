package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type PostModel struct {
	ID            string         `gorm:"type:uuid;primary_key"`
	Slug          string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_posts_slug"`
	Title         string         `gorm:"type:varchar(200);not null"`
	Content       string         `gorm:"type:text;not null"`
	Excerpt       string         `gorm:"type:varchar(500);not null"`
	Tags          pq.StringArray `gorm:"type:text[]"`
	FeaturedImage string         `gorm:"type:varchar(500)"`
	Status        string         `gorm:"type:varchar(20);not null;default:'draft';index"`
	AuthorID      string         `gorm:"type:uuid;not null;index"`
	Views         int            `gorm:"not null;default:0"`
	Likes         int            `gorm:"not null;default:0"`
	ReadingTime   int            `gorm:"not null;default:1"`
	PublishedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Generated by Postgres from title/excerpt/content; never written by the app.
	SearchVector string `gorm:"->;type:tsvector;column:search_vector"`

	Author UserModel `gorm:"foreignKey:AuthorID"`
}

func (PostModel) TableName() string { return "posts" }

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
