package project

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed fallback.yaml
var fallbackYAML []byte

type fixture struct {
	Projects []struct {
		ID            string   `yaml:"id"`
		Name          string   `yaml:"name"`
		Description   string   `yaml:"description"`
		Numbers       []string `yaml:"dids"`
		GreetingType  string   `yaml:"greeting_type"`
		GreetingURL   string   `yaml:"greeting_url"`
		NewMessages   int      `yaml:"new_messages"`
		TotalMessages int      `yaml:"total_messages"`
		IsCatchAll    bool     `yaml:"is_catch_all"`
	} `yaml:"projects"`
}

var fallbackProjects = mustParseFallback(fallbackYAML)

// Fallback returns a fresh copy of the built-in sample projects.
func Fallback() []Project {
	out := make([]Project, len(fallbackProjects))
	for i, p := range fallbackProjects {
		out[i] = p.clone()
	}
	return out
}

func parseFallback(b []byte) ([]Project, error) {
	var f fixture
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse project fallback: %w", err)
	}
	out := make([]Project, 0, len(f.Projects))
	for _, fp := range f.Projects {
		p := Project{
			ID:            fp.ID,
			Name:          fp.Name,
			Description:   fp.Description,
			GreetingType:  fp.GreetingType,
			GreetingURL:   fp.GreetingURL,
			NewMessages:   fp.NewMessages,
			TotalMessages: fp.TotalMessages,
			IsCatchAll:    fp.IsCatchAll,
		}
		for _, n := range fp.Numbers {
			p.Numbers = append(p.Numbers, Number{Value: n})
		}
		out = append(out, p)
	}
	return out, nil
}

func mustParseFallback(b []byte) []Project {
	p, err := parseFallback(b)
	if err != nil {
		panic(err)
	}
	return p
}
