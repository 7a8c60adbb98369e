package project

import (
	"context"
	"fmt"
)

// AddNote posts a note and appends the note the server created.
func (s *Store) AddNote(ctx context.Context, id, text, author string) (Note, error) {
	n, err := s.gw.AddProjectNote(ctx, id, NoteInput{Text: text, CreatedBy: author})
	s.record(ctx, "add_note", id, err)
	if err != nil {
		return Note{}, fmt.Errorf("add note to %s: %w", id, err)
	}
	s.mutate(id, func(p *Project) { p.Notes = append(p.Notes, n) })
	return n, nil
}

func (s *Store) DeleteNote(ctx context.Context, id, noteID string) error {
	err := s.gw.DeleteProjectNote(ctx, id, noteID)
	s.record(ctx, "delete_note", id, err)
	if err != nil {
		return fmt.Errorf("delete note %s from %s: %w", noteID, id, err)
	}
	s.mutate(id, func(p *Project) {
		kept := p.Notes[:0]
		for _, n := range p.Notes {
			if n.ID.String() != noteID {
				kept = append(kept, n)
			}
		}
		p.Notes = kept
	})
	return nil
}
