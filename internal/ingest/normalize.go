package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// TimestampFormat is the millisecond ISO-8601 form the dashboard
// expects for every timestamp the pipeline produces.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// RawUpload is the untyped payload a user exports from their
// collaboration tools. All three sections are optional.
type RawUpload struct {
	SlackData      *SlackExport `json:"slack_data"`
	GoogleDocsData *DocsExport  `json:"google_docs_data"`
	NoteTakerData  *NotesExport `json:"note_taker_data"`
}

type SlackExport struct {
	Messages []SlackMessage `json:"messages"`
}

type SlackMessage struct {
	User string `json:"user"`
	Text string `json:"text"`
	TS   string `json:"ts"`
	Team string `json:"team"`
}

type DocsExport struct {
	Body *DocsBody `json:"body"`
}

type DocsBody struct {
	Content []DocsItem `json:"content"`
}

type DocsItem struct {
	Paragraph *DocsParagraph `json:"paragraph"`
}

type DocsParagraph struct {
	Elements []DocsElement `json:"elements"`
}

type DocsElement struct {
	TextRun *DocsTextRun `json:"textRun"`
}

type DocsTextRun struct {
	Content string `json:"content"`
}

type NotesExport struct {
	Notes []RawNote `json:"notes"`
}

type RawNote struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	Timestamp string        `json:"timestamp"`
	Metadata  *NoteMetadata `json:"metadata"`
}

type NoteMetadata struct {
	Attendees []string `json:"attendees"`
	Status    string   `json:"status"`
}

// Message is a chat message in canonical form.
type Message struct {
	User      string `json:"user"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	Team      string `json:"team"`
}

// Note is a meeting note in canonical form. Attendees keep source order.
type Note struct {
	NoteID    string   `json:"noteId"`
	Content   string   `json:"content"`
	CreatedAt string   `json:"createdAt"`
	Attendees []string `json:"attendees"`
	Status    string   `json:"status"`
}

// Normalized is the canonical output of an upload: one slice per
// section, empty when the section is absent.
type Normalized struct {
	Messages   []Message `json:"messages"`
	Paragraphs []string  `json:"paragraphs"`
	Notes      []Note    `json:"notes"`
}

// Normalize converts a raw upload into the canonical schema. Absent
// sections become empty slices. A structurally malformed entry inside
// a present section is skipped and logged rather than aborting the
// whole normalization; upload data is externally produced and partial
// validity is the norm.
func Normalize(raw RawUpload) Normalized {
	out := Normalized{
		Messages:   []Message{},
		Paragraphs: []string{},
		Notes:      []Note{},
	}

	if raw.SlackData != nil {
		for i, msg := range raw.SlackData.Messages {
			ts, err := slackTimestamp(msg.TS)
			if err != nil {
				log.Warn("ingest: skipping malformed slack message", "index", i, "err", err)
				continue
			}
			out.Messages = append(out.Messages, Message{
				User:      msg.User,
				Text:      msg.Text,
				Timestamp: ts,
				Team:      msg.Team,
			})
		}
	}

	if raw.GoogleDocsData != nil && raw.GoogleDocsData.Body != nil {
		for _, item := range raw.GoogleDocsData.Body.Content {
			out.Paragraphs = append(out.Paragraphs, paragraphText(item))
		}
	}

	if raw.NoteTakerData != nil {
		for i, note := range raw.NoteTakerData.Notes {
			createdAt, err := noteTimestamp(note.Timestamp)
			if err != nil {
				log.Warn("ingest: skipping malformed note", "index", i, "err", err)
				continue
			}
			attendees := []string{}
			status := "pending"
			if note.Metadata != nil {
				if note.Metadata.Attendees != nil {
					attendees = note.Metadata.Attendees
				}
				if note.Metadata.Status != "" {
					status = note.Metadata.Status
				}
			}
			out.Notes = append(out.Notes, Note{
				NoteID:    note.ID,
				Content:   note.Content,
				CreatedAt: createdAt,
				Attendees: attendees,
				Status:    status,
			})
		}
	}

	return out
}

// slackTimestamp converts the "<secs>.<frac>" decimal form into
// millisecond ISO-8601. The fractional part is discarded, matching how
// the exports are consumed downstream.
func slackTimestamp(ts string) (string, error) {
	whole, _, _ := strings.Cut(ts, ".")
	secs, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return "", err
	}
	return time.Unix(secs, 0).UTC().Format(TimestampFormat), nil
}

func noteTimestamp(ts string) (string, error) {
	secs, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return "", err
	}
	return time.Unix(secs, 0).UTC().Format(TimestampFormat), nil
}

// paragraphText walks the nested paragraph/elements/textRun chain and
// returns the first text run's content, or "" when any link is absent.
func paragraphText(item DocsItem) string {
	if item.Paragraph == nil || len(item.Paragraph.Elements) == 0 {
		return ""
	}
	run := item.Paragraph.Elements[0].TextRun
	if run == nil {
		return ""
	}
	return run.Content
}
