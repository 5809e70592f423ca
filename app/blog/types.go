package blog

// Instants throughout the package are epoch milliseconds (0 = unset),
// matching the documents the external workflow engine reads and writes.

// Post is the unified view over both the automation and legacy collections.
type Post struct {
	ID            string   `json:"id"`
	Status        Status   `json:"status"`
	ScheduledAt   int64    `json:"scheduledAt,omitempty"`
	CreateAt      int64    `json:"createAt,omitempty"`
	PublishedAt   int64    `json:"publishedAt,omitempty"`
	CreatedAt     int64    `json:"createdAt,omitempty"`
	UpdatedAt     int64    `json:"updatedAt,omitempty"`
	Brief         Brief    `json:"brief"`
	Outline       Outline  `json:"outline"`
	Draft         Draft    `json:"draft"`
	SEO           SEO      `json:"seo"`
	FeaturedImage *Image   `json:"featuredImage,omitempty"`
	Images        []Image  `json:"images,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	IdeaID        string   `json:"ideaId,omitempty"`
	PublicURL     string   `json:"publicUrl,omitempty"`
	ErrorMessage  string   `json:"errorMessage,omitempty"`

	// Legacy marks posts that live in the read-only legacy collection.
	Legacy bool `json:"legacy,omitempty"`
}

// Brief is the structured input that seeds content generation.
type Brief struct {
	Topic          string   `json:"topic"`
	Persona        string   `json:"persona"`
	Goal           string   `json:"goal"`
	TargetAudience string   `json:"targetAudience,omitempty"`
	KeyPoints      []string `json:"keyPoints,omitempty"`
}

// Outline is the intermediate content plan between brief and draft.
type Outline struct {
	Title        string           `json:"title"`
	Introduction string           `json:"introduction"`
	Sections     []OutlineSection `json:"sections"`
	Conclusion   string           `json:"conclusion"`
	CallToAction string           `json:"callToAction,omitempty"`
}

type OutlineSection struct {
	Heading   string   `json:"heading"`
	SubPoints []string `json:"subPoints,omitempty"`
}

// Draft is the generated long-form body prior to SEO finalization.
type Draft struct {
	Content           string `json:"content"`
	WordCount         int    `json:"wordCount"`
	EstimatedReadTime int    `json:"estimatedReadTime"` // minutes
}

// SEO is the generated publishing metadata.
type SEO struct {
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	FocusKeyword    string   `json:"focusKeyword"`
	Keywords        []string `json:"keywords,omitempty"`
	Slug            string   `json:"slug"`
}

// Image is a media attachment; the bytes themselves live in external blob
// storage, only the reference is kept on the post.
type Image struct {
	URL         string `json:"url"`
	StoragePath string `json:"storagePath,omitempty"`
	Filename    string `json:"filename,omitempty"`
	Size        int64  `json:"size,omitempty"`
	AltText     string `json:"altText,omitempty"`
	Caption     string `json:"caption,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

// Idea is a candidate topic queued for conversion into a post.
type Idea struct {
	ID             string     `json:"id"`
	Topic          string     `json:"topic"`
	Persona        string     `json:"persona"`
	Goal           string     `json:"goal"`
	TargetAudience string     `json:"targetAudience,omitempty"`
	Priority       Priority   `json:"priority"`
	Tags           []string   `json:"tags,omitempty"`
	Status         IdeaStatus `json:"status"`
	CreatedAt      int64      `json:"createdAt,omitempty"`
	UpdatedAt      int64      `json:"updatedAt,omitempty"`
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// weight orders ideas for picking: high first, unknown values lowest.
func (p Priority) weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

type IdeaStatus string

// Canonical representation of the idea "used" concept. Older documents
// carry a boolean "used" flag instead; the read boundary accepts both,
// writes emit only the status.
const (
	IdeaStatusUnused     IdeaStatus = "UNUSED"
	IdeaStatusProcessing IdeaStatus = "PROCESSING"
	IdeaStatusUsed       IdeaStatus = "USED"
)

// Stats are the dashboard aggregate counts, computed by scanning the
// merged normalized set. No persistent counters are kept.
type Stats struct {
	Total       int `json:"total"`
	Published   int `json:"published"`
	Scheduled   int `json:"scheduled"`
	NeedsReview int `json:"needsReview"`
	Drafts      int `json:"drafts"`
}
