package voicemail

import "voicemail-console/pkg/jsonx"

// Voicemail is one message as the remote service reports it.
type Voicemail struct {
	ID            jsonx.FlexString `json:"id"`
	Caller        string           `json:"caller"`
	Timestamp     jsonx.Time       `json:"timestamp"`
	Duration      jsonx.FlexString `json:"duration"`
	IsNew         bool             `json:"isNew"`
	Transcription string           `json:"transcription,omitempty"`
	AudioURL      string           `json:"audioUrl,omitempty"`
	ProjectID     string           `json:"projectId,omitempty"`
	Notes         []Note           `json:"notes,omitempty"`
}

func (v Voicemail) clone() Voicemail {
	out := v
	out.Notes = append([]Note(nil), v.Notes...)
	return out
}

// Note is a voicemail note. It is a separate type from project notes.
type Note struct {
	ID        jsonx.FlexString `json:"id"`
	Text      string           `json:"text"`
	Timestamp jsonx.Time       `json:"timestamp"`
	User      string           `json:"user"`
}
