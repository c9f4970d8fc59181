package roster

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ragnr99/portfolio-hub/internal/battle"

	"gopkg.in/yaml.v3"
)

// FileSource serves species from a YAML document of the form
//
//	species:
//	  - id: 6
//	    name: charizard
//	    ...
type FileSource struct {
	species []Species
	byID    map[int]int
}

// LoadFile reads a roster from a YAML file.
func LoadFile(path string) (*FileSource, error) {
	cleanPath := filepath.Clean(path)
	b, err := os.ReadFile(cleanPath) //nolint:gosec // path is cleaned and comes from config
	if err != nil {
		return nil, err
	}
	return ParseFile(b)
}

// ParseFile decodes a YAML roster document.
func ParseFile(b []byte) (*FileSource, error) {
	var doc struct {
		Species []Species `yaml:"species"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("error while decoding roster: %w", err)
	}
	fs := &FileSource{species: doc.Species, byID: make(map[int]int, len(doc.Species))}
	for i, sp := range doc.Species {
		if _, dup := fs.byID[sp.ID]; dup {
			return nil, fmt.Errorf("duplicate species id %d", sp.ID)
		}
		fs.byID[sp.ID] = i
	}
	return fs, nil
}

func (fs *FileSource) All(ctx context.Context) ([]Species, error) {
	out := make([]Species, len(fs.species))
	copy(out, fs.species)
	return out, nil
}

func (fs *FileSource) ByID(ctx context.Context, id int) (Species, error) {
	i, ok := fs.byID[id]
	if !ok {
		return Species{}, fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	sp := fs.species[i]
	sp.Moves = append([]battle.Move(nil), sp.Moves...)
	return sp, nil
}
