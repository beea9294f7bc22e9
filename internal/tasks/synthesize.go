package tasks

import (
	"fmt"
	"strings"
	"time"

	"pulseboard/api/internal/ingest"
)

type TaskType string

const (
	TypeSlack TaskType = "slack"
	TypeDocs  TaskType = "docs"
	TypeNotes TaskType = "notes"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Task is one actionable record derived from an upload. Tasks are
// created in a single synthesis pass and never mutated; a new upload
// replaces the whole set.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        TaskType `json:"type"`
	Priority    Priority `json:"priority"`
	Status      string   `json:"status"`
	Assignee    string   `json:"assignee,omitempty"`
	CreatedAt   string   `json:"createdAt"`
}

// Synthesizer derives tasks from normalized upload records. The clock
// is injectable because the docs branch stamps synthesis time:
// paragraphs carry no timestamp of their own, so those tasks are the
// one non-deterministic output of an otherwise pure pass.
type Synthesizer struct {
	now func() time.Time
}

func New() *Synthesizer {
	return &Synthesizer{now: time.Now}
}

// NewWithClock is used by tests that need deterministic docs timestamps.
func NewWithClock(now func() time.Time) *Synthesizer {
	return &Synthesizer{now: now}
}

// Synthesize applies the classification rules to normalized records.
// Output order is fixed: message-derived tasks in source order, then
// paragraph-derived, then one task per note. There is no cross-type
// ordering by time.
func (s *Synthesizer) Synthesize(data ingest.Normalized) []Task {
	out := []Task{}

	for i, msg := range data.Messages {
		lower := strings.ToLower(msg.Text)
		if !strings.Contains(lower, "sprint") && !strings.Contains(lower, "task") {
			continue
		}
		priority := PriorityMedium
		if strings.Contains(lower, "urgent") {
			priority = PriorityHigh
		}
		out = append(out, Task{
			ID:          fmt.Sprintf("slack-%d", i),
			Title:       fmt.Sprintf("Sprint Planning Task #%d", i+1),
			Description: msg.Text,
			Type:        TypeSlack,
			Priority:    priority,
			Status:      "pending",
			Assignee:    msg.User,
			CreatedAt:   msg.Timestamp,
		})
	}

	for i, content := range data.Paragraphs {
		if !strings.Contains(content, "Team") {
			continue
		}
		out = append(out, Task{
			ID:          fmt.Sprintf("docs-%d", i),
			Title:       fmt.Sprintf("Team Assignment #%d", i+1),
			Description: content,
			Type:        TypeDocs,
			Priority:    PriorityHigh,
			Status:      "pending",
			CreatedAt:   s.now().UTC().Format(ingest.TimestampFormat),
		})
	}

	for _, note := range data.Notes {
		priority := PriorityMedium
		// "Pending" with a capital P is what the note exports emit for
		// open items; the lower-cased default set during normalization
		// deliberately does not match.
		if note.Status == "Pending" {
			priority = PriorityHigh
		}
		assignee := ""
		if len(note.Attendees) > 0 {
			assignee = note.Attendees[0]
		}
		out = append(out, Task{
			ID:          note.NoteID,
			Title:       "Note Task: " + truncate(note.Content, 50) + "...",
			Description: note.Content,
			Type:        TypeNotes,
			Priority:    priority,
			Status:      note.Status,
			Assignee:    assignee,
			CreatedAt:   note.CreatedAt,
		})
	}

	return out
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
