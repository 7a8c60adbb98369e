package project

import (
	"bytes"
	"encoding/json"
	"time"

	"voicemail-console/pkg/jsonx"
)

// Project is a named group of numbers sharing one mailbox.
type Project struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Numbers       []Number `json:"dids"`
	Notes         []Note   `json:"notes,omitempty"`
	NewMessages   int      `json:"newMessages"`
	TotalMessages int      `json:"totalMessages"`
	IsCatchAll    bool     `json:"isCatchAll,omitempty"`
	GreetingType  string   `json:"greetingType,omitempty"`
	GreetingURL   string   `json:"greetingUrl,omitempty"`
}

// HasNumber reports whether number is in the active set.
func (p Project) HasNumber(number string) bool {
	for _, n := range p.Numbers {
		if n.Value == number {
			return true
		}
	}
	return false
}

func (p Project) clone() Project {
	out := p
	out.Numbers = append([]Number(nil), p.Numbers...)
	out.Notes = append([]Note(nil), p.Notes...)
	return out
}

// Number is one assigned DID. The API sends either a bare string or an
// object; both decode here.
type Number struct {
	Value     string     `json:"number"`
	StartDate jsonx.Time `json:"startDate"`
	EndDate   jsonx.Time `json:"endDate"`
	Added     jsonx.Time `json:"added"`
}

type numberAlias Number

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Number{Value: s}
		return nil
	}
	var a numberAlias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*n = Number(a)
	return nil
}

// Start returns the activation start, falling back to the added time.
func (n Number) Start() time.Time {
	if !n.StartDate.IsZero() {
		return n.StartDate.Time
	}
	return n.Added.Time
}

// Note is a project note. Notes are created and deleted, never edited.
type Note struct {
	ID        jsonx.FlexString `json:"id"`
	Text      string           `json:"text"`
	CreatedAt jsonx.Time       `json:"created_at"`
	CreatedBy string           `json:"created_by"`
}

// NoteInput is the body of an add-note request.
type NoteInput struct {
	Text      string `json:"text"`
	CreatedBy string `json:"created_by,omitempty"`
}

// ArchiveRequest is the body of a global number archive.
type ArchiveRequest struct {
	Reason     string `json:"reason"`
	ArchivedBy string `json:"archivedBy"`
}

// Metadata describes a number as the remote service knows it.
type Metadata struct {
	Carrier  string     `json:"carrier"`
	Type     string     `json:"type"`
	Location string     `json:"location"`
	Archived bool       `json:"archived"`
	DNC      bool       `json:"dnc"`
	History  []CallInfo `json:"history"`
}

type CallInfo struct {
	Date     jsonx.Time       `json:"date"`
	Type     string           `json:"type"`
	Duration jsonx.FlexString `json:"duration"`
	Result   string           `json:"result"`
}
