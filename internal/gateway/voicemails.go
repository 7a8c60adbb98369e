package gateway

import (
	"context"
	"net/http"

	"voicemail-console/internal/voicemail"
)

func (c *Client) ListVoicemails(ctx context.Context) ([]voicemail.Voicemail, error) {
	var out []voicemail.Voicemail
	err := c.do(ctx, "list_voicemails", http.MethodGet, "/api/voicemails", nil, &out)
	return out, err
}

func (c *Client) AddVoicemailNote(ctx context.Context, id, text string) error {
	body := struct {
		Note string `json:"note"`
	}{text}
	return c.do(ctx, "add_voicemail_note", http.MethodPost, "/api/voicemails/"+seg(id)+"/notes", body, nil)
}

func (c *Client) AddVoicemailToDNC(ctx context.Context, id, notes string) (string, error) {
	body := struct {
		Notes string `json:"notes"`
	}{notes}
	var out struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, "add_to_dnc", http.MethodPost, "/api/voicemails/"+seg(id)+"/add-to-dnc", body, &out)
	return out.Message, err
}

func (c *Client) AddNumberToDNC(ctx context.Context, phoneNumber string) error {
	body := struct {
		PhoneNumber string `json:"phoneNumber"`
	}{phoneNumber}
	return c.do(ctx, "add_number_to_dnc", http.MethodPost, "/api/dnc", body, nil)
}

func (c *Client) ShareVoicemail(ctx context.Context, id string, recipients []string) error {
	body := struct {
		Recipients []string `json:"recipients"`
	}{recipients}
	return c.do(ctx, "share_voicemail", http.MethodPost, "/api/voicemails/"+seg(id)+"/share", body, nil)
}

var _ voicemail.Gateway = (*Client)(nil)
