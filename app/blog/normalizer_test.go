package blog

import (
	"testing"
	"time"

	"github.com/Vraj209/peaknorth-blog-api/app/docstore"
)

func TestNormalizePost_AutomationShape(t *testing.T) {
	doc := docstore.Document{
		ID: "post-1",
		Data: map[string]any{
			"status": "needs_review",
			"brief": map[string]any{
				"topic":   "Winter hiking",
				"persona": "outdoor guide",
				"goal":    "inspire",
			},
			"scheduledAt": float64(1750000000000),
			"createdAt":   "2025-03-04T10:00:00Z",
			"tags":        []any{"hiking", "winter"},
		},
	}

	post := NormalizePost(doc)

	if post.ID != "post-1" {
		t.Errorf("Expected id post-1, got %s", post.ID)
	}
	if post.Status != StatusNeedsReview {
		t.Errorf("Expected status NEEDS_REVIEW, got %s", post.Status)
	}
	if post.Brief.Topic != "Winter hiking" {
		t.Errorf("Expected brief topic to survive, got %q", post.Brief.Topic)
	}
	if post.ScheduledAt != 1750000000000 {
		t.Errorf("Expected scheduledAt 1750000000000, got %d", post.ScheduledAt)
	}

	wantCreated := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC).UnixMilli()
	if post.CreatedAt != wantCreated {
		t.Errorf("Expected createdAt %d from RFC3339 string, got %d", wantCreated, post.CreatedAt)
	}
	if post.Legacy {
		t.Error("Automation posts must not be marked legacy")
	}
}

func TestNormalizePost_LegacyPublished(t *testing.T) {
	doc := docstore.Document{
		ID: "legacy-1",
		Data: map[string]any{
			"title":       "Crème Brûlée at Home",
			"content":     "one two three four five",
			"isPublished": true,
			"createdAt":   float64(1700000000000),
			"tags":        []any{"dessert"},
		},
	}

	post := NormalizePost(doc)

	if post.Status != StatusPublished {
		t.Errorf("Expected published legacy post, got status %s", post.Status)
	}
	if post.PublicURL == "" {
		t.Error("Expected a public URL on a published legacy post")
	}
	if post.PublicURL != "/blog/creme-brulee-at-home" {
		t.Errorf("Expected slugged public URL, got %q", post.PublicURL)
	}
	if post.Brief.Topic != "Crème Brûlée at Home" {
		t.Errorf("Expected title mapped to brief topic, got %q", post.Brief.Topic)
	}
	if post.Draft.WordCount != 5 {
		t.Errorf("Expected word count 5, got %d", post.Draft.WordCount)
	}
	if post.Draft.EstimatedReadTime != 1 {
		t.Errorf("Expected 1 minute read time, got %d", post.Draft.EstimatedReadTime)
	}
	if !post.Legacy {
		t.Error("Expected legacy marker on legacy-shaped post")
	}
}

func TestNormalizePost_LegacyUnpublishedDraft(t *testing.T) {
	doc := docstore.Document{
		ID: "legacy-2",
		Data: map[string]any{
			"title":       "Unfinished piece",
			"content":     "work in progress",
			"isPublished": false,
		},
		CreatedAt: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	post := NormalizePost(doc)

	if post.Status != StatusDraft {
		t.Errorf("Expected unpublished legacy post as DRAFT, got %s", post.Status)
	}
	if post.PublicURL != "" {
		t.Errorf("Expected no public URL on an unpublished post, got %q", post.PublicURL)
	}
	if post.CreatedAt != doc.CreatedAt.UnixMilli() {
		t.Errorf("Expected createdAt from document metadata, got %d", post.CreatedAt)
	}
}

func TestNormalizePost_MalformedDegradesToPlaceholder(t *testing.T) {
	createdAt := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		data map[string]any
	}{
		{"nil data", nil},
		{"unrecognized fields", map[string]any{"foo": "bar", "count": float64(3)}},
		{"status present but brief is a string", map[string]any{"status": "DRAFT", "brief": "not an object"}},
	}

	for _, tc := range cases {
		doc := docstore.Document{ID: "broken", Data: tc.data, CreatedAt: createdAt}

		post := NormalizePost(doc)

		if post.ID != "broken" {
			t.Errorf("%s: expected id to survive, got %q", tc.name, post.ID)
		}
		if post.Status != StatusDraft {
			t.Errorf("%s: expected DRAFT placeholder, got %s", tc.name, post.Status)
		}
		if post.CreatedAt != createdAt.UnixMilli() {
			t.Errorf("%s: expected createdAt from document metadata, got %d", tc.name, post.CreatedAt)
		}
	}
}

func TestNormalizePost_UnknownStatusFallsBackToDraft(t *testing.T) {
	doc := docstore.Document{
		ID: "post-2",
		Data: map[string]any{
			"status": "HALF_DONE",
			"brief":  map[string]any{"topic": "x"},
		},
	}

	post := NormalizePost(doc)
	if post.Status != StatusDraft {
		t.Errorf("Expected unknown status coerced to DRAFT, got %s", post.Status)
	}
}

func TestNormalizeIdea_StatusVariants(t *testing.T) {
	cases := []struct {
		name string
		data map[string]any
		want IdeaStatus
	}{
		{"canonical status", map[string]any{"topic": "a", "status": "PROCESSING"}, IdeaStatusProcessing},
		{"lowercase status", map[string]any{"topic": "a", "status": "used"}, IdeaStatusUsed},
		{"boolean used true", map[string]any{"topic": "a", "used": true}, IdeaStatusUsed},
		{"boolean used false", map[string]any{"topic": "a", "used": false}, IdeaStatusUnused},
		{"no marker at all", map[string]any{"topic": "a"}, IdeaStatusUnused},
		{"unknown status string", map[string]any{"topic": "a", "status": "MAYBE"}, IdeaStatusUnused},
	}

	for _, tc := range cases {
		idea := NormalizeIdea(docstore.Document{ID: "idea-1", Data: tc.data})
		if idea.Status != tc.want {
			t.Errorf("%s: expected status %s, got %s", tc.name, tc.want, idea.Status)
		}
	}
}

func TestNormalizeIdea_PriorityDefaultsToMedium(t *testing.T) {
	cases := []map[string]any{
		{"topic": "a"},
		{"topic": "a", "priority": "urgent"},
		{"topic": "a", "priority": float64(3)},
	}

	for _, data := range cases {
		idea := NormalizeIdea(docstore.Document{ID: "idea-1", Data: data})
		if idea.Priority != PriorityMedium {
			t.Errorf("Expected medium priority for %v, got %s", data, idea.Priority)
		}
	}

	idea := NormalizeIdea(docstore.Document{ID: "idea-1", Data: map[string]any{"topic": "a", "priority": "HIGH"}})
	if idea.Priority != PriorityHigh {
		t.Errorf("Expected high priority, got %s", idea.Priority)
	}
}

func TestToMillis(t *testing.T) {
	ref := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   any
		want int64
	}{
		{"float64", float64(1700000000000), 1700000000000},
		{"int64", int64(1700000000000), 1700000000000},
		{"rfc3339", "2025-03-04T10:00:00Z", ref.UnixMilli()},
		{"rfc3339 with offset", "2025-03-04T05:00:00-05:00", ref.UnixMilli()},
		{"time.Time", ref, ref.UnixMilli()},
		{"garbage string", "yesterday", 0},
		{"nil", nil, 0},
	}

	for _, tc := range cases {
		if got := toMillis(tc.in); got != tc.want {
			t.Errorf("toMillis %s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}
