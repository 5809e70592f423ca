package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Vraj209/peaknorth-blog-api/app/blog"
	"github.com/Vraj209/peaknorth-blog-api/app/schedule"
)

type createPostRequest struct {
	Brief  blog.Brief `json:"brief"`
	Tags   []string   `json:"tags"`
	IdeaID string     `json:"ideaId"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Action string `json:"action"`
}

type createIdeaRequest struct {
	Topic          string   `json:"topic"`
	Persona        string   `json:"persona"`
	Goal           string   `json:"goal"`
	TargetAudience string   `json:"targetAudience"`
	Priority       string   `json:"priority"`
	Tags           []string `json:"tags"`
}

func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if req.Brief.Topic == "" || req.Brief.Persona == "" || req.Brief.Goal == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brief requires topic, persona and goal"})
		return
	}

	post := &blog.Post{
		Status: blog.StatusBrief,
		Brief:  req.Brief,
		Tags:   req.Tags,
		IdeaID: req.IdeaID,
	}

	if err := h.posts.Create(c.Request.Context(), post); err != nil {
		slog.Error("Failed to create post", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.posts.ListAll(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list posts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"total": len(posts),
	})
}

func (h *Handler) GetPost(c *gin.Context) {
	id := c.Param("id")

	post, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		slog.Error("Failed to get post", "post", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get post"})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":           post,
		"allowedActions": blog.AllowedActions(post.Status),
	})
}

func (h *Handler) UpdatePostStatus(c *gin.Context) {
	id := c.Param("id")

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	var post *blog.Post
	var err error
	switch {
	case blog.Action(req.Action) == blog.ActionSchedule:
		// Scheduling stamps a computed slot, so it goes through the
		// cadence path rather than a bare status change.
		h.SchedulePost(c)
		return
	case req.Action != "":
		post, err = h.service.Transition(c.Request.Context(), id, blog.Action(req.Action))
	case req.Status != "":
		post, err = h.service.TransitionTo(c.Request.Context(), id, blog.Status(req.Status))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either status or action is required"})
		return
	}

	if err != nil {
		h.renderServiceError(c, id, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) PublishPost(c *gin.Context) {
	id := c.Param("id")

	post, err := h.service.ForcePublish(c.Request.Context(), id)
	if err != nil {
		h.renderServiceError(c, id, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) SchedulePost(c *gin.Context) {
	id := c.Param("id")

	cadence, err := h.settings.GetCadence(c.Request.Context())
	if err != nil {
		slog.Error("Failed to load cadence settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cadence settings"})
		return
	}
	if cadence == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Cadence settings not configured"})
		return
	}

	post, err := h.service.Schedule(c.Request.Context(), id, *cadence, time.Now())
	if err != nil {
		h.renderServiceError(c, id, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) CreateIdea(c *gin.Context) {
	var req createIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if req.Topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Idea topic is required"})
		return
	}

	idea := &blog.Idea{
		Topic:          req.Topic,
		Persona:        req.Persona,
		Goal:           req.Goal,
		TargetAudience: req.TargetAudience,
		Priority:       blog.Priority(req.Priority),
		Tags:           req.Tags,
	}

	if err := h.ideas.Create(c.Request.Context(), idea); err != nil {
		slog.Error("Failed to create idea", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create idea"})
		return
	}

	c.JSON(http.StatusCreated, idea)
}

func (h *Handler) ListIdeas(c *gin.Context) {
	ideas, err := h.ideas.List(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list ideas", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list ideas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ideas": ideas,
		"total": len(ideas),
	})
}

func (h *Handler) PickIdea(c *gin.Context) {
	idea, err := h.ideas.PickNext(c.Request.Context())
	if err != nil {
		slog.Error("Failed to pick next idea", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to pick next idea"})
		return
	}
	if idea == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No unused ideas available"})
		return
	}

	c.JSON(http.StatusOK, idea)
}

func (h *Handler) DeleteIdea(c *gin.Context) {
	id := c.Param("id")

	found, err := h.ideas.Delete(c.Request.Context(), id)
	if err != nil {
		slog.Error("Failed to delete idea", "idea", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete idea"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Idea not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) ListReadyToPublish(c *gin.Context) {
	now := time.Now().UTC().UnixMilli()

	posts, err := h.posts.ListReadyToPublish(c.Request.Context(), now)
	if err != nil {
		slog.Error("Failed to list posts ready to publish", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posts ready to publish"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"total": len(posts),
		"asOf":  now,
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.posts.Stats(c.Request.Context())
	if err != nil {
		slog.Error("Failed to compute stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetCadence(c *gin.Context) {
	cadence, err := h.settings.GetCadence(c.Request.Context())
	if err != nil {
		slog.Error("Failed to load cadence settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cadence settings"})
		return
	}
	if cadence == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cadence settings not configured"})
		return
	}

	c.JSON(http.StatusOK, cadence)
}

func (h *Handler) UpdateCadence(c *gin.Context) {
	var cadence schedule.CadenceConfig
	if err := c.ShouldBindJSON(&cadence); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := cadence.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cadence config", "details": err.Error()})
		return
	}

	if err := h.settings.UpsertCadence(c.Request.Context(), cadence); err != nil {
		slog.Error("Failed to store cadence settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store cadence settings"})
		return
	}

	c.JSON(http.StatusOK, cadence)
}

func (h *Handler) PreviewNextSlot(c *gin.Context) {
	cadence, err := h.settings.GetCadence(c.Request.Context())
	if err != nil {
		slog.Error("Failed to load cadence settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cadence settings"})
		return
	}
	if cadence == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cadence settings not configured"})
		return
	}

	now := time.Now()
	slot, err := schedule.ComputeNextSlot(now, *cadence)
	if err != nil {
		slog.Error("Failed to compute next slot", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute next slot", "details": err.Error()})
		return
	}

	scheduledLocal, err := schedule.FormatInZone(slot.ScheduledAt, cadence.Timezone, "Mon, 2 Jan 2006 15:04 MST")
	if err != nil {
		scheduledLocal = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"scheduledAt":      slot.ScheduledAt,
		"createAt":         slot.CreateAt,
		"scheduledAtLocal": scheduledLocal,
		"scheduledIn":      schedule.Relative(time.UnixMilli(slot.ScheduledAt), now),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if stats, err := h.posts.Stats(c.Request.Context()); err == nil {
		health["posts"] = stats.Total
	}
	if ideas, err := h.ideas.List(c.Request.Context()); err == nil {
		health["ideas"] = len(ideas)
	}

	c.JSON(http.StatusOK, health)
}

// renderServiceError maps lifecycle errors to HTTP responses.
func (h *Handler) renderServiceError(c *gin.Context, id string, err error) {
	switch {
	case errors.Is(err, blog.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case errors.Is(err, blog.ErrLegacyReadOnly):
		c.JSON(http.StatusConflict, gin.H{"error": "Legacy posts are read-only"})
	case errors.Is(err, blog.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Status transition not allowed", "details": err.Error()})
	default:
		slog.Error("Post operation failed", "post", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Post operation failed"})
	}
}
