package blog

import (
	"reflect"
	"testing"
)

var allStatuses = []Status{
	StatusBrief,
	StatusOutline,
	StatusDraft,
	StatusNeedsReview,
	StatusRegenerate,
	StatusApproved,
	StatusScheduled,
	StatusPublished,
	StatusUnpublished,
}

func TestCanTransition_FullMatrix(t *testing.T) {
	type pair struct{ from, to Status }

	allowed := map[pair]bool{
		{StatusBrief, StatusOutline}:          true,
		{StatusOutline, StatusDraft}:          true,
		{StatusDraft, StatusNeedsReview}:      true,
		{StatusDraft, StatusApproved}:         true,
		{StatusNeedsReview, StatusApproved}:   true,
		{StatusNeedsReview, StatusDraft}:      true,
		{StatusNeedsReview, StatusRegenerate}: true,
		{StatusRegenerate, StatusRegenerate}:  true,
		{StatusRegenerate, StatusDraft}:       true,
		{StatusApproved, StatusApproved}:      true,
		{StatusApproved, StatusScheduled}:     true,
		{StatusApproved, StatusPublished}:     true,
		{StatusScheduled, StatusPublished}:    true,
		{StatusPublished, StatusUnpublished}:  true,
		{StatusUnpublished, StatusPublished}:  true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := allowed[pair{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s): expected %v, got %v", from, to, want, got)
			}
		}
	}
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	if CanTransition(Status("BOGUS"), StatusDraft) {
		t.Error("Expected no transitions from an unknown status")
	}
	if CanTransition(StatusDraft, Status("BOGUS")) {
		t.Error("Expected no transition to an unknown status")
	}
}

func TestAllowedActions(t *testing.T) {
	cases := []struct {
		status Status
		want   []Action
	}{
		{StatusBrief, []Action{}},
		{StatusOutline, []Action{}},
		{StatusDraft, []Action{ActionSubmitForReview, ActionApprove}},
		{StatusNeedsReview, []Action{ActionApprove, ActionRequestChanges, ActionRegenerate}},
		{StatusRegenerate, []Action{ActionRegenerate}},
		{StatusApproved, []Action{ActionApprove, ActionSchedule, ActionPublish}},
		{StatusScheduled, []Action{ActionPublish}},
		{StatusPublished, []Action{ActionUnpublish}},
		{StatusUnpublished, []Action{ActionRepublish}},
	}

	for _, tc := range cases {
		got := AllowedActions(tc.status)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("AllowedActions(%s): expected %v, got %v", tc.status, tc.want, got)
		}
	}
}

func TestActionTarget(t *testing.T) {
	cases := []struct {
		from   Status
		action Action
		want   Status
		ok     bool
	}{
		{StatusDraft, ActionSubmitForReview, StatusNeedsReview, true},
		{StatusDraft, ActionApprove, StatusApproved, true},
		{StatusNeedsReview, ActionApprove, StatusApproved, true},
		{StatusNeedsReview, ActionRequestChanges, StatusDraft, true},
		{StatusNeedsReview, ActionRegenerate, StatusRegenerate, true},
		{StatusRegenerate, ActionRegenerate, StatusRegenerate, true},
		{StatusApproved, ActionSchedule, StatusScheduled, true},
		{StatusApproved, ActionPublish, StatusPublished, true},
		{StatusScheduled, ActionPublish, StatusPublished, true},
		{StatusDraft, ActionPublish, "", false},
		{StatusPublished, ActionUnpublish, StatusUnpublished, true},
		{StatusUnpublished, ActionRepublish, StatusPublished, true},
		{StatusBrief, ActionApprove, "", false},
		{StatusPublished, ActionApprove, "", false},
		{StatusDraft, ActionSchedule, "", false},
		{StatusDraft, Action("bogus"), "", false},
	}

	for _, tc := range cases {
		got, ok := actionTarget(tc.from, tc.action)
		if ok != tc.ok || got != tc.want {
			t.Errorf("actionTarget(%s, %s): expected (%s, %v), got (%s, %v)", tc.from, tc.action, tc.want, tc.ok, got, ok)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range allStatuses {
		if !s.Valid() {
			t.Errorf("Expected %s to be a valid status", s)
		}
	}
	for _, s := range []Status{"", "draft", "DELETED"} {
		if s.Valid() {
			t.Errorf("Expected %q to be invalid", s)
		}
	}
}
