package tasks

import (
	"strings"
	"testing"
	"time"

	"pulseboard/api/internal/ingest"
)

func fixedClock() func() time.Time {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestSynthesizeSlackRules(t *testing.T) {
	data := ingest.Normalized{
		Messages: []ingest.Message{
			{User: "alice", Text: "urgent sprint task", Timestamp: "2023-11-14T22:13:20.000Z", Team: "core"},
			{User: "bob", Text: "lunch plans", Timestamp: "2023-11-14T22:14:20.000Z"},
			{User: "carol", Text: "new TASK incoming", Timestamp: "2023-11-14T22:15:20.000Z"},
		},
	}

	got := NewWithClock(fixedClock()).Synthesize(data)

	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}
	first := got[0]
	if first.ID != "slack-0" {
		t.Errorf("id = %q, want slack-0", first.ID)
	}
	if first.Title != "Sprint Planning Task #1" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Priority != PriorityHigh {
		t.Errorf("priority = %q, want high", first.Priority)
	}
	if first.Assignee != "alice" {
		t.Errorf("assignee = %q, want alice", first.Assignee)
	}
	if first.CreatedAt != "2023-11-14T22:13:20.000Z" {
		t.Errorf("createdAt = %q", first.CreatedAt)
	}

	second := got[1]
	if second.ID != "slack-2" {
		t.Errorf("id = %q, want slack-2 (ordinal of source message)", second.ID)
	}
	if second.Priority != PriorityMedium {
		t.Errorf("priority = %q, want medium", second.Priority)
	}
}

func TestSynthesizeDocsRules(t *testing.T) {
	data := ingest.Normalized{
		Paragraphs: []string{
			"Team Alpha owns ingestion",
			"team beta is lower case and must not match",
			"Handing off to Team Gamma",
		},
	}

	got := NewWithClock(fixedClock()).Synthesize(data)

	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}
	if got[0].ID != "docs-0" || got[1].ID != "docs-2" {
		t.Errorf("ids = %q, %q", got[0].ID, got[1].ID)
	}
	if got[1].Title != "Team Assignment #3" {
		t.Errorf("title = %q", got[1].Title)
	}
	for _, task := range got {
		if task.Priority != PriorityHigh {
			t.Errorf("docs task priority = %q, want high", task.Priority)
		}
		if task.Assignee != "" {
			t.Errorf("docs task should have no assignee, got %q", task.Assignee)
		}
		if task.CreatedAt != "2024-03-01T12:00:00.000Z" {
			t.Errorf("createdAt = %q, want synthesis time", task.CreatedAt)
		}
	}
}

func TestSynthesizeNoteRules(t *testing.T) {
	long := strings.Repeat("x", 60)
	data := ingest.Normalized{
		Notes: []ingest.Note{
			{
				NoteID:    "n1",
				Content:   long,
				CreatedAt: "2023-11-14T22:13:20.000Z",
				Attendees: []string{"bob", "carol"},
				Status:    "Pending",
			},
			{NoteID: "n2", Content: "short", CreatedAt: "2023-11-14T22:14:20.000Z", Status: "pending"},
		},
	}

	got := NewWithClock(fixedClock()).Synthesize(data)

	if len(got) != 2 {
		t.Fatalf("expected one task per note, got %d", len(got))
	}
	first := got[0]
	if first.ID != "n1" {
		t.Errorf("note task keeps the note id, got %q", first.ID)
	}
	if want := "Note Task: " + long[:50] + "..."; first.Title != want {
		t.Errorf("title = %q, want %q", first.Title, want)
	}
	if first.Priority != PriorityHigh {
		t.Errorf("priority = %q, want high for exact-case Pending", first.Priority)
	}
	if first.Assignee != "bob" {
		t.Errorf("assignee = %q, want first attendee", first.Assignee)
	}
	if first.CreatedAt != "2023-11-14T22:13:20.000Z" {
		t.Errorf("createdAt = %q", first.CreatedAt)
	}

	// Lower-cased "pending" is the normalization default, not the
	// export's open-item marker, and stays medium priority.
	if got[1].Priority != PriorityMedium {
		t.Errorf("priority = %q, want medium", got[1].Priority)
	}
	if got[1].Status != "pending" {
		t.Errorf("status passes through, got %q", got[1].Status)
	}
}

func TestSynthesizeOrderIsSlackThenDocsThenNotes(t *testing.T) {
	data := ingest.Normalized{
		Messages:   []ingest.Message{{User: "a", Text: "task one", Timestamp: "2023-11-14T23:00:00.000Z"}},
		Paragraphs: []string{"Team order check"},
		Notes:      []ingest.Note{{NoteID: "n1", Content: "c", CreatedAt: "2023-11-14T21:00:00.000Z"}},
	}

	got := NewWithClock(fixedClock()).Synthesize(data)

	if len(got) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(got))
	}
	wantTypes := []TaskType{TypeSlack, TypeDocs, TypeNotes}
	for i, want := range wantTypes {
		if got[i].Type != want {
			t.Errorf("task %d type = %q, want %q", i, got[i].Type, want)
		}
	}
}

func TestSynthesizeDeterministicForIdenticalInput(t *testing.T) {
	data := ingest.Normalized{
		Messages: []ingest.Message{{User: "a", Text: "sprint", Timestamp: "2023-11-14T22:13:20.000Z"}},
		Notes:    []ingest.Note{{NoteID: "n1", Content: "c", CreatedAt: "2023-11-14T22:13:20.000Z"}},
	}
	synth := NewWithClock(fixedClock())

	a := synth.Synthesize(data)
	b := synth.Synthesize(data)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("task %d differs between passes: %+v vs %+v", i, a[i], b[i])
		}
	}
}
