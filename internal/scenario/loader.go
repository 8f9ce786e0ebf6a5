package scenario

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"github.com/vovakirdan/guard-patrol/internal/scenario/formats"
)

// Expected holds known answers for a scenario.
type Expected = formats.Expected

// Scenario represents a complete scenario definition.
type Scenario struct {
	ID       string
	Name     string
	Grid     string
	Expected *Expected
	Metadata map[string]string
	FilePath string
}

// Map parses the scenario grid.
func (s *Scenario) Map() (patrol.Map, error) {
	m, err := ParseString(s.Grid)
	if err != nil {
		return patrol.Map{}, fmt.Errorf("scenario %s: %w", s.ID, err)
	}
	return m, nil
}

// Hash returns a hex SHA-256 of the normalized grid. Scenarios with the same
// grid share a hash regardless of ID or line endings.
func (s *Scenario) Hash() string {
	text, err := Normalize(s.Grid)
	if err != nil {
		text = s.Grid
	}
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Loader handles loading scenarios from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new scenario loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all scenario files.
// Returns scenarios sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Scenario, error) {
	var scenarios []Scenario

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !slices.Contains(formats.FormatExtensions(), ext) {
			return nil
		}

		sc, err := LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		scenarios = append(scenarios, sc)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].ID < scenarios[j].ID
	})

	return scenarios, nil
}

// LoadByID loads a specific scenario by ID.
func (l *Loader) LoadByID(id string) (Scenario, error) {
	scenarios, err := l.LoadAll()
	if err != nil {
		return Scenario{}, err
	}

	for _, sc := range scenarios {
		if sc.ID == id {
			return sc, nil
		}
	}

	return Scenario{}, fmt.Errorf("scenario not found: %s", id)
}

// ListIDs returns all scenario IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	scenarios, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(scenarios))
	for i, sc := range scenarios {
		ids[i] = sc.ID
	}
	return ids, nil
}

// LoadFile loads a single scenario file. YAML files without an id take the
// file name as their ID.
func LoadFile(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, path, ext)
	if err != nil {
		return Scenario{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	if parsed.ID == "" {
		parsed.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if parsed.Name == "" {
		parsed.Name = parsed.ID
	}

	return Scenario{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Grid:     parsed.Grid,
		Expected: parsed.Expected,
		Metadata: parsed.Metadata,
		FilePath: path,
	}, nil
}

// Resolve loads ref as a file path if it exists, otherwise as a scenario ID
// under root.
func Resolve(ref, root string) (Scenario, error) {
	if _, err := os.Stat(ref); err == nil {
		return LoadFile(ref)
	}
	if root == "" {
		return Scenario{}, fmt.Errorf("scenario not found: %s", ref)
	}
	return NewLoader(root).LoadByID(ref)
}

// parseByExtension routes to the correct parser. Anything that is not YAML
// is read as a raw grid, so puzzle inputs load without renaming.
func parseByExtension(data []byte, path, ext string) (formats.Scenario, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.ParseText(data, path)
	}
}
