package persistent

import (
	"blog-app/internal/entity"
	"blog-app/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	post := &entity.Post{
		ID:            m.ID,
		Slug:          m.Slug,
		Title:         m.Title,
		Content:       m.Content,
		Excerpt:       m.Excerpt,
		Tags:          []string(m.Tags),
		FeaturedImage: m.FeaturedImage,
		Status:        entity.PostStatus(m.Status),
		AuthorID:      m.AuthorID,
		Views:         m.Views,
		Likes:         m.Likes,
		ReadingTime:   m.ReadingTime,
		PublishedAt:   m.PublishedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	if m.Author.ID != "" {
		post.Author = &entity.Author{
			ID:     m.Author.ID,
			Name:   m.Author.Name,
			Email:  m.Author.Email,
			Avatar: m.Author.Avatar,
			Bio:    m.Author.Bio,
		}
	}

	return post
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:            e.ID,
		Slug:          e.Slug,
		Title:         e.Title,
		Content:       e.Content,
		Excerpt:       e.Excerpt,
		Tags:          e.Tags,
		FeaturedImage: e.FeaturedImage,
		Status:        string(e.Status),
		AuthorID:      e.AuthorID,
		Views:         e.Views,
		Likes:         e.Likes,
		ReadingTime:   e.ReadingTime,
		PublishedAt:   e.PublishedAt,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Password:  m.Password,
		Avatar:    m.Avatar,
		Bio:       m.Bio,
		Role:      entity.UserRole(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Password:  e.Password,
		Avatar:    e.Avatar,
		Bio:       e.Bio,
		Role:      string(e.Role),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
