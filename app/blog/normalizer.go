package blog

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/Vraj209/peaknorth-blog-api/app/docstore"
)

// NormalizePost maps a raw stored document into the unified Post shape.
// The discriminant is resolved once, by field presence: documents carrying
// automation fields (status/brief/outline) decode directly, flat legacy
// documents (title/content/isPublished) are upgraded, and anything that
// cannot be mapped degrades to a minimal DRAFT placeholder so one corrupt
// record never breaks a listing.
func NormalizePost(doc docstore.Document) Post {
	data := doc.Data
	if data == nil {
		return placeholderPost(doc)
	}

	switch {
	case isAutomationShape(data):
		return decodeAutomationPost(doc)
	case isLegacyShape(data):
		return normalizeLegacyPost(doc)
	default:
		return placeholderPost(doc)
	}
}

func isAutomationShape(data map[string]any) bool {
	if _, ok := data["status"].(string); ok {
		return true
	}
	if _, ok := data["brief"].(map[string]any); ok {
		return true
	}
	if _, ok := data["outline"].(map[string]any); ok {
		return true
	}
	return false
}

func isLegacyShape(data map[string]any) bool {
	if _, ok := data["isPublished"]; ok {
		return true
	}
	_, hasTitle := data["title"]
	_, hasContent := data["content"]
	return hasTitle || hasContent
}

func decodeAutomationPost(doc docstore.Document) Post {
	data := make(map[string]any, len(doc.Data))
	for k, v := range doc.Data {
		data[k] = v
	}

	// Older revisions stored instants as RFC 3339 strings; coerce every
	// time field to epoch millis before decoding into the typed shape.
	for _, field := range []string{"scheduledAt", "createAt", "publishedAt", "createdAt", "updatedAt"} {
		if raw, ok := data[field]; ok {
			data[field] = toMillis(raw)
		}
	}
	if status, ok := data["status"].(string); ok {
		data["status"] = strings.ToUpper(status)
	}

	payload, err := json.Marshal(data)
	if err != nil {
		slog.Warn("Post document could not be normalized", "id", doc.ID, "error", err)
		return placeholderPost(doc)
	}

	var post Post
	if err := json.Unmarshal(payload, &post); err != nil {
		slog.Warn("Post document could not be normalized", "id", doc.ID, "error", err)
		return placeholderPost(doc)
	}

	post.ID = doc.ID
	if !post.Status.Valid() {
		post.Status = StatusDraft
	}
	if post.CreatedAt == 0 {
		post.CreatedAt = doc.CreatedAt.UnixMilli()
	}
	return post
}

func normalizeLegacyPost(doc docstore.Document) Post {
	data := doc.Data

	title := toString(data["title"])
	content := toString(data["content"])
	slug := toString(data["slug"])
	if slug == "" && title != "" {
		slug = Slugify(title)
	}

	status := StatusDraft
	var publicURL string
	if toBool(data["isPublished"]) {
		status = StatusPublished
		if slug != "" {
			publicURL = "/blog/" + slug
		}
	}

	createdAt := toMillis(data["createdAt"])
	if createdAt == 0 {
		createdAt = doc.CreatedAt.UnixMilli()
	}

	wordCount := countWords(content)
	return Post{
		ID:          doc.ID,
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   toMillis(data["updatedAt"]),
		PublishedAt: toMillis(data["publishedAt"]),
		Brief:       Brief{Topic: title},
		Draft: Draft{
			Content:           content,
			WordCount:         wordCount,
			EstimatedReadTime: estimateReadTime(wordCount),
		},
		SEO: SEO{
			MetaTitle: title,
			Slug:      slug,
		},
		Tags:      toStringSlice(data["tags"]),
		PublicURL: publicURL,
		Legacy:    true,
	}
}

func placeholderPost(doc docstore.Document) Post {
	return Post{
		ID:        doc.ID,
		Status:    StatusDraft,
		CreatedAt: doc.CreatedAt.UnixMilli(),
	}
}

// NormalizeIdea maps a raw idea document. Both schema variants of the
// "used" concept are accepted: a tri-state status string (canonical) and
// the older boolean used flag.
func NormalizeIdea(doc docstore.Document) Idea {
	data := doc.Data

	idea := Idea{
		ID:             doc.ID,
		Topic:          toString(data["topic"]),
		Persona:        toString(data["persona"]),
		Goal:           toString(data["goal"]),
		TargetAudience: toString(data["targetAudience"]),
		Priority:       Priority(strings.ToLower(toString(data["priority"]))),
		Tags:           toStringSlice(data["tags"]),
		Status:         IdeaStatusUnused,
		CreatedAt:      toMillis(data["createdAt"]),
		UpdatedAt:      toMillis(data["updatedAt"]),
	}

	if idea.CreatedAt == 0 {
		idea.CreatedAt = doc.CreatedAt.UnixMilli()
	}
	if idea.Priority != PriorityLow && idea.Priority != PriorityMedium && idea.Priority != PriorityHigh {
		idea.Priority = PriorityMedium
	}

	if status := strings.ToUpper(toString(data["status"])); status != "" {
		switch IdeaStatus(status) {
		case IdeaStatusUnused, IdeaStatusProcessing, IdeaStatusUsed:
			idea.Status = IdeaStatus(status)
		}
	} else if toBool(data["used"]) {
		idea.Status = IdeaStatusUsed
	}

	return idea
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}

func toBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func toStringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// toMillis coerces the instant encodings seen across document revisions:
// epoch-millisecond numbers and RFC 3339 strings.
func toMillis(v any) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case int64:
		return t
	case int:
		return int64(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed.UnixMilli()
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed.UnixMilli()
		}
	case time.Time:
		return t.UnixMilli()
	}
	return 0
}

func countWords(content string) int {
	return len(strings.Fields(content))
}

// estimateReadTime assumes ~200 words per minute, minimum one minute for
// non-empty content.
func estimateReadTime(wordCount int) int {
	if wordCount == 0 {
		return 0
	}
	return (wordCount + 199) / 200
}
