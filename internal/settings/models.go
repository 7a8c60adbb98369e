package settings

// Settings is the operator configuration record. The server owns its
// final shape; the cache only ever holds what the server returned.
type Settings struct {
	NotificationEmail    string `json:"notificationEmail"`
	NotificationSMS      string `json:"notificationSMS"`
	TranscriptionEnabled bool   `json:"transcriptionEnabled"`
	RetentionDays        int    `json:"retentionDays"`
	MaxMessageLength     int    `json:"maxMessageLength"`
	DefaultGreeting      string `json:"defaultGreeting"`
	CatchAllEnabled      bool   `json:"catchAllEnabled"`
	CatchAllGreeting     string `json:"catchAllGreeting"`
}

// Patch is a full or partial settings write. Nil fields are not sent.
type Patch struct {
	NotificationEmail    *string `json:"notificationEmail,omitempty"`
	NotificationSMS      *string `json:"notificationSMS,omitempty"`
	TranscriptionEnabled *bool   `json:"transcriptionEnabled,omitempty"`
	RetentionDays        *int    `json:"retentionDays,omitempty"`
	MaxMessageLength     *int    `json:"maxMessageLength,omitempty"`
	DefaultGreeting      *string `json:"defaultGreeting,omitempty"`
	CatchAllEnabled      *bool   `json:"catchAllEnabled,omitempty"`
	CatchAllGreeting     *string `json:"catchAllGreeting,omitempty"`
}

// Full builds a Patch carrying every field of s.
func Full(s Settings) Patch {
	return Patch{
		NotificationEmail:    &s.NotificationEmail,
		NotificationSMS:      &s.NotificationSMS,
		TranscriptionEnabled: &s.TranscriptionEnabled,
		RetentionDays:        &s.RetentionDays,
		MaxMessageLength:     &s.MaxMessageLength,
		DefaultGreeting:      &s.DefaultGreeting,
		CatchAllEnabled:      &s.CatchAllEnabled,
		CatchAllGreeting:     &s.CatchAllGreeting,
	}
}

// Defaults is served whenever the remote record cannot be loaded.
func Defaults() Settings {
	return Settings{
		NotificationEmail:    "",
		NotificationSMS:      "",
		TranscriptionEnabled: true,
		RetentionDays:        30,
		MaxMessageLength:     300,
		DefaultGreeting:      "Please leave a message after the tone.",
		CatchAllEnabled:      false,
		CatchAllGreeting:     "You have reached our general voicemail box. Please leave a message after the tone.",
	}
}
