package main

import (
	"fmt"

	"blog-app/internal/entity"
	"blog-app/internal/repo/persistent"
	"blog-app/internal/usecase"
	"blog-app/pkg/config"
	"blog-app/pkg/database"
	"blog-app/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	userRepo := persistent.NewUserRepository(db)
	postRepo := persistent.NewPostRepository(db)
	postUseCase := usecase.NewPostUseCase(postRepo, nil, log)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}

	author := &entity.User{
		Name:     "Demo Author",
		Email:    "author@example.com",
		Password: string(hashedPassword),
		Bio:      "Writes about Go and backend engineering.",
		Role:     entity.RoleUser,
	}
	if err := userRepo.Create(author); err != nil {
		log.Warn("Seed user already exists, skipping: %v", err)
		existing, lookupErr := userRepo.GetByEmail(author.Email)
		if lookupErr != nil {
			panic(lookupErr)
		}
		author = existing
	}

	seedPosts := []usecase.CreatePostInput{
		{
			Title:   "Getting Started with Go",
			Content: "Go is a statically typed language designed for building simple, reliable and efficient software. This post walks through installing the toolchain, writing your first program and understanding the module system.",
			Excerpt: "Install the toolchain and write your first Go program.",
			Tags:    []string{"go", "tutorial"},
			Status:  entity.StatusPublished,
		},
		{
			Title:   "Full-Text Search in Postgres",
			Content: "Postgres ships a capable text search engine: tsvector columns, GIN indexes and ranking functions cover most applications without a dedicated search cluster.",
			Excerpt: "tsvector, GIN indexes and ts_rank in practice.",
			Tags:    []string{"postgres", "search"},
			Status:  entity.StatusPublished,
		},
		{
			Title:   "Draft: Notes on Caching",
			Content: "Unfinished notes on cache invalidation strategies. Not ready to publish yet.",
			Excerpt: "Work-in-progress notes on caching.",
			Tags:    []string{"caching"},
			Status:  entity.StatusDraft,
		},
	}

	for _, in := range seedPosts {
		post, err := postUseCase.CreatePost(author.ID, in)
		if err != nil {
			log.Warn("Skipping seed post %q: %v", in.Title, err)
			continue
		}
		log.Info("Seeded post %s (%s)", post.Slug, post.Status)
	}

	log.Info("Database seeded successfully!")
}
