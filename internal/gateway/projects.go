package gateway

import (
	"context"
	"net/http"

	"voicemail-console/internal/project"
)

func (c *Client) ListProjects(ctx context.Context) ([]project.Project, error) {
	var out []project.Project
	err := c.do(ctx, "list_projects", http.MethodGet, "/api/projects", nil, &out)
	return out, err
}

func (c *Client) CreateProject(ctx context.Context, in project.Input) (project.Project, error) {
	var out project.Project
	err := c.do(ctx, "create_project", http.MethodPost, "/api/projects", in, &out)
	return out, err
}

func (c *Client) UpdateProject(ctx context.Context, id string, p project.Patch) (project.Project, error) {
	var out project.Project
	err := c.do(ctx, "update_project", http.MethodPatch, "/api/projects/"+seg(id), p, &out)
	return out, err
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, "delete_project", http.MethodDelete, "/api/projects/"+seg(id), nil, nil)
}

func (c *Client) AddProjectNumber(ctx context.Context, id, number string) error {
	body := struct {
		DID string `json:"did"`
	}{number}
	return c.do(ctx, "add_number", http.MethodPost, "/api/projects/"+seg(id)+"/dids", body, nil)
}

func (c *Client) RemoveProjectNumber(ctx context.Context, id, number string) error {
	return c.do(ctx, "remove_number", http.MethodDelete, "/api/projects/"+seg(id)+"/dids/"+seg(number), nil, nil)
}

func (c *Client) ArchiveProjectNumber(ctx context.Context, id, number string) error {
	return c.do(ctx, "archive_number", http.MethodPost, "/api/projects/"+seg(id)+"/dids/"+seg(number)+"/archive", nil, nil)
}

type numbersBody struct {
	DIDs []project.Number `json:"dids"`
}

func (c *Client) AddProjectNumbers(ctx context.Context, id string, numbers []project.Number) ([]project.Number, error) {
	var out numbersBody
	err := c.do(ctx, "add_numbers_bulk", http.MethodPost, "/api/projects/"+seg(id)+"/dids/bulk", numbersBody{DIDs: numbers}, &out)
	return out.DIDs, err
}

func (c *Client) ArchiveNumber(ctx context.Context, number string, req project.ArchiveRequest) error {
	return c.do(ctx, "archive_number_global", http.MethodPost, "/api/archive/number/"+seg(number), req, nil)
}

func (c *Client) NumberMetadata(ctx context.Context, number string) (project.Metadata, error) {
	var out project.Metadata
	err := c.do(ctx, "number_metadata", http.MethodGet, "/api/numbers/"+seg(number)+"/meta", nil, &out)
	return out, err
}

func (c *Client) AddProjectNote(ctx context.Context, id string, in project.NoteInput) (project.Note, error) {
	var out struct {
		Note project.Note `json:"note"`
	}
	err := c.do(ctx, "add_project_note", http.MethodPost, "/api/projects/"+seg(id)+"/notes", in, &out)
	return out.Note, err
}

func (c *Client) DeleteProjectNote(ctx context.Context, id, noteID string) error {
	return c.do(ctx, "delete_project_note", http.MethodDelete, "/api/projects/"+seg(id)+"/notes/"+seg(noteID), nil, nil)
}

var _ project.Gateway = (*Client)(nil)
