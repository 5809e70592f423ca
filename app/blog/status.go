package blog

// Status is a blog post lifecycle stage. The forward path is
// BRIEF -> OUTLINE -> DRAFT -> NEEDS_REVIEW -> APPROVED -> SCHEDULED ->
// PUBLISHED; UNPUBLISHED and REGENERATE are side excursions.
type Status string

const (
	StatusBrief       Status = "BRIEF"
	StatusOutline     Status = "OUTLINE"
	StatusDraft       Status = "DRAFT"
	StatusNeedsReview Status = "NEEDS_REVIEW"
	StatusRegenerate  Status = "REGENERATE"
	StatusApproved    Status = "APPROVED"
	StatusScheduled   Status = "SCHEDULED"
	StatusPublished   Status = "PUBLISHED"
	StatusUnpublished Status = "UNPUBLISHED"
)

var validStatuses = map[Status]bool{
	StatusBrief:       true,
	StatusOutline:     true,
	StatusDraft:       true,
	StatusNeedsReview: true,
	StatusRegenerate:  true,
	StatusApproved:    true,
	StatusScheduled:   true,
	StatusPublished:   true,
	StatusUnpublished: true,
}

func (s Status) Valid() bool {
	return validStatuses[s]
}

// Action is a named operation a caller can request against a post.
type Action string

const (
	ActionSubmitForReview Action = "submit_for_review"
	ActionApprove         Action = "approve"
	ActionRequestChanges  Action = "request_changes"
	ActionRegenerate      Action = "regenerate"
	ActionSchedule        Action = "schedule"
	ActionPublish         Action = "publish"
	ActionUnpublish       Action = "unpublish"
	ActionRepublish       Action = "republish"
)

// allowedTransitions lists every valid (from, to) pair: the generator's
// forward progression plus the reviewer actions. Anything absent here is
// rejected.
var allowedTransitions = map[Status][]Status{
	StatusBrief:       {StatusOutline},
	StatusOutline:     {StatusDraft},
	StatusDraft:       {StatusNeedsReview, StatusApproved},
	StatusNeedsReview: {StatusApproved, StatusDraft, StatusRegenerate},
	StatusRegenerate:  {StatusRegenerate, StatusDraft},
	StatusApproved:    {StatusApproved, StatusScheduled, StatusPublished},
	StatusScheduled:   {StatusPublished},
	StatusPublished:   {StatusUnpublished},
	StatusUnpublished: {StatusPublished},
}

// CanTransition reports whether a direct status change from one stage to
// another is permitted.
func CanTransition(from, to Status) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// statusActions maps each stage to the reviewer actions enabled from it.
// BRIEF and OUTLINE are generator-only stages: no human action applies.
var statusActions = map[Status][]Action{
	StatusDraft:       {ActionSubmitForReview, ActionApprove},
	StatusNeedsReview: {ActionApprove, ActionRequestChanges, ActionRegenerate},
	StatusRegenerate:  {ActionRegenerate},
	StatusApproved:    {ActionApprove, ActionSchedule, ActionPublish},
	StatusScheduled:   {ActionPublish},
	StatusPublished:   {ActionUnpublish},
	StatusUnpublished: {ActionRepublish},
}

// AllowedActions returns the reviewer actions permitted from a stage.
func AllowedActions(s Status) []Action {
	actions := statusActions[s]
	out := make([]Action, len(actions))
	copy(out, actions)
	return out
}

// actionTarget resolves an action against the current stage to the
// resulting stage. Returns false when the action is not permitted.
func actionTarget(from Status, a Action) (Status, bool) {
	switch a {
	case ActionSubmitForReview:
		if from == StatusDraft {
			return StatusNeedsReview, true
		}
	case ActionApprove:
		if from == StatusDraft || from == StatusNeedsReview || from == StatusApproved {
			return StatusApproved, true
		}
	case ActionRequestChanges:
		if from == StatusNeedsReview {
			return StatusDraft, true
		}
	case ActionRegenerate:
		if from == StatusNeedsReview || from == StatusRegenerate {
			return StatusRegenerate, true
		}
	case ActionSchedule:
		if from == StatusApproved {
			return StatusScheduled, true
		}
	case ActionPublish:
		if from == StatusApproved || from == StatusScheduled {
			return StatusPublished, true
		}
	case ActionUnpublish:
		if from == StatusPublished {
			return StatusUnpublished, true
		}
	case ActionRepublish:
		if from == StatusUnpublished {
			return StatusPublished, true
		}
	}
	return "", false
}
