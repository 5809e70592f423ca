package api

import (
	"github.com/Vraj209/peaknorth-blog-api/app/blog"
)

type Handler struct {
	posts    blog.PostStore
	ideas    blog.IdeaStore
	settings blog.SettingsStore
	service  *blog.Service
}

func NewHandler(posts blog.PostStore, ideas blog.IdeaStore, settings blog.SettingsStore, service *blog.Service) *Handler {
	return &Handler{
		posts:    posts,
		ideas:    ideas,
		settings: settings,
		service:  service,
	}
}
