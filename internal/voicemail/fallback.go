package voicemail

import (
	_ "embed"
	"fmt"
	"time"

	"voicemail-console/pkg/jsonx"

	"gopkg.in/yaml.v3"
)

//go:embed fallback.yaml
var fallbackYAML []byte

type fixture struct {
	Voicemails []struct {
		ID            string        `yaml:"id"`
		Caller        string        `yaml:"caller"`
		ReceivedAgo   time.Duration `yaml:"received_ago"`
		Duration      string        `yaml:"duration"`
		IsNew         bool          `yaml:"is_new"`
		Transcription string        `yaml:"transcription"`
		AudioURL      string        `yaml:"audio_url"`
	} `yaml:"voicemails"`
}

var fallbackFixture = mustParseFallback(fallbackYAML)

// Fallback returns the built-in sample voicemails stamped relative to now.
func Fallback(now time.Time) []Voicemail {
	out := make([]Voicemail, 0, len(fallbackFixture.Voicemails))
	for _, v := range fallbackFixture.Voicemails {
		out = append(out, Voicemail{
			ID:            jsonx.FlexString(v.ID),
			Caller:        v.Caller,
			Timestamp:     jsonx.At(now.Add(-v.ReceivedAgo).UTC()),
			Duration:      jsonx.FlexString(v.Duration),
			IsNew:         v.IsNew,
			Transcription: v.Transcription,
			AudioURL:      v.AudioURL,
		})
	}
	return out
}

func mustParseFallback(b []byte) fixture {
	var f fixture
	if err := yaml.Unmarshal(b, &f); err != nil {
		panic(fmt.Errorf("parse voicemail fallback: %w", err))
	}
	return f
}
