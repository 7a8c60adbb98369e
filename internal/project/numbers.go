package project

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"voicemail-console/internal/lifecycle"
	"voicemail-console/pkg/jsonx"
)

var numberSeparators = regexp.MustCompile(`[\n,]`)

// SplitNumbers splits raw on newlines and commas, trims each token and
// drops the empty ones.
func SplitNumbers(raw string) []string {
	var out []string
	for _, tok := range numberSeparators.Split(raw, -1) {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// AddNumber assigns number to project id. Locally the number is appended
// with a start of now unless the project already holds it.
func (s *Store) AddNumber(ctx context.Context, id, number string) error {
	err := s.gw.AddProjectNumber(ctx, id, number)
	s.record(ctx, "add_number", id, err)
	if err != nil {
		return fmt.Errorf("add number to %s: %w", id, err)
	}

	now := jsonx.At(s.clock().UTC())
	s.mutate(id, func(p *Project) {
		if !p.HasNumber(number) {
			p.Numbers = append(p.Numbers, Number{Value: number, StartDate: now, Added: now})
		}
	})
	return nil
}

// RemoveNumber deletes the assignment; every exact match is dropped locally.
func (s *Store) RemoveNumber(ctx context.Context, id, number string) error {
	err := s.gw.RemoveProjectNumber(ctx, id, number)
	s.record(ctx, "remove_number", id, err)
	if err != nil {
		return fmt.Errorf("remove number from %s: %w", id, err)
	}
	s.mutate(id, func(p *Project) { p.Numbers = without(p.Numbers, number) })
	return nil
}

// ArchiveNumber archives the assignment on the server. Locally it has the
// same effect as RemoveNumber.
func (s *Store) ArchiveNumber(ctx context.Context, id, number string) error {
	err := s.gw.ArchiveProjectNumber(ctx, id, number)
	s.record(ctx, "archive_number", id, err)
	if err != nil {
		return fmt.Errorf("archive number in %s: %w", id, err)
	}
	s.mutate(id, func(p *Project) { p.Numbers = without(p.Numbers, number) })
	return nil
}

// AddBulkNumbers sends one record per token in raw, all sharing start and
// end, and appends the server's canonical records. Zero start or end are
// sent as null.
func (s *Store) AddBulkNumbers(ctx context.Context, id, raw string, start, end time.Time) ([]Number, error) {
	tokens := SplitNumbers(raw)
	if len(tokens) == 0 {
		return nil, ErrNoNumbers
	}
	added := jsonx.At(s.clock().UTC())
	batch := make([]Number, 0, len(tokens))
	for _, tok := range tokens {
		batch = append(batch, Number{
			Value:     tok,
			StartDate: jsonx.At(start),
			EndDate:   jsonx.At(end),
			Added:     added,
		})
	}

	canonical, err := s.gw.AddProjectNumbers(ctx, id, batch)
	s.record(ctx, "add_bulk_numbers", id, err)
	if err != nil {
		return nil, fmt.Errorf("add numbers to %s: %w", id, err)
	}

	s.mutate(id, func(p *Project) {
		for _, n := range canonical {
			if !p.HasNumber(n.Value) {
				p.Numbers = append(p.Numbers, n)
			}
		}
	})
	return canonical, nil
}

// ArchiveNumberGlobal archives number in the service-wide archive. The
// cache is not touched.
func (s *Store) ArchiveNumberGlobal(ctx context.Context, number, reason, archivedBy string) error {
	err := s.gw.ArchiveNumber(ctx, number, ArchiveRequest{Reason: reason, ArchivedBy: archivedBy})
	s.record(ctx, "archive_number_global", "", err)
	if err != nil {
		return fmt.Errorf("archive number %s: %w", number, err)
	}
	return nil
}

func (s *Store) NumberMetadata(ctx context.Context, number string) (Metadata, error) {
	m, err := s.gw.NumberMetadata(ctx, number)
	if err != nil {
		return Metadata{}, fmt.Errorf("number metadata %s: %w", number, err)
	}
	return m, nil
}

// Assignments flattens every cached number for the lifecycle sweep.
func (s *Store) Assignments() []lifecycle.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []lifecycle.Assignment
	for _, id := range s.order {
		p := s.projects[id]
		for _, n := range p.Numbers {
			out = append(out, lifecycle.Assignment{
				ProjectID:   p.ID,
				ProjectName: p.Name,
				Number:      n.Value,
				Start:       n.Start(),
				End:         n.EndDate.Ptr(),
			})
		}
	}
	return out
}

func without(numbers []Number, number string) []Number {
	out := numbers[:0]
	for _, n := range numbers {
		if n.Value != number {
			out = append(out, n)
		}
	}
	return out
}
