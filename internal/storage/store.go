// Package storage keeps solver runs on disk, one directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/postviz/internal/layout"
)

const (
	inputFile    = "input.yaml"
	optionsFile  = "options.json"
	metadataFile = "metadata.json"
	postsFile    = "posts.csv"
)

// ErrRunNotFound is returned for an id with no stored run.
var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Timestamp    time.Time `json:"timestamp"`
	Solver       string    `json:"solver"`
	PostSize     float64   `json:"postSize"`
	RunLength    float64   `json:"runLength"`
	Obstructions int       `json:"obstructions"`
	Options      int       `json:"options"`
}

// Run is a stored solver request and its reply.
type Run struct {
	Meta    RunMetadata
	Input   layout.Input
	Options []layout.Option
}

// Save writes a new run and returns its id.
func (s *Store) Save(name, solver string, in layout.Input, options []layout.Option) (string, error) {
	runID := uuid.NewString()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Name:         name,
		Timestamp:    time.Now().UTC(),
		Solver:       solver,
		PostSize:     in.PostSize,
		RunLength:    in.RunHorLength,
		Obstructions: len(in.Obstructions),
		Options:      len(options),
	}

	inData, err := yaml.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("storage: encode input: %w", err)
	}
	if err := os.WriteFile(filepath.Join(runDir, inputFile), inData, 0644); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, optionsFile), options); err != nil {
		return "", err
	}
	if err := writePostsCSV(filepath.Join(runDir, postsFile), options); err != nil {
		return "", err
	}
	// metadata goes last; List ignores directories without it
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns the metadata of every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.loadMeta(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

// Latest returns the newest run.
func (s *Store) Latest() (*Run, error) {
	runs, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}
	return s.Load(runs[0].ID)
}

func (s *Store) Load(runID string) (*Run, error) {
	meta, err := s.loadMeta(runID)
	if err != nil {
		return nil, err
	}
	runDir := filepath.Join(s.baseDir, runID)

	run := &Run{Meta: *meta}
	inData, err := os.ReadFile(filepath.Join(runDir, inputFile))
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(inData, &run.Input); err != nil {
		return nil, fmt.Errorf("storage: run %s: decode input: %w", runID, err)
	}

	optData, err := os.ReadFile(filepath.Join(runDir, optionsFile))
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(optData, &run.Options); err != nil {
		return nil, fmt.Errorf("storage: run %s: decode options: %w", runID, err)
	}
	return run, nil
}

// LoadPosts reads the flat post table of a run: one row per post with its
// option index.
func (s *Store) LoadPosts(runID string) (map[int][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, postsFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	posts := make(map[int][]float64)
	for i := 1; i < len(records); i++ {
		opt, err := strconv.Atoi(records[i][0])
		if err != nil {
			continue
		}
		loc, err := strconv.ParseFloat(records[i][2], 64)
		if err != nil {
			continue
		}
		posts[opt] = append(posts[opt], loc)
	}
	return posts, nil
}

func (s *Store) loadMeta(runID string) (*RunMetadata, error) {
	if runID == "" || filepath.Base(runID) != runID {
		return nil, fmt.Errorf("%w: %q", ErrRunNotFound, runID)
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: run %s: decode metadata: %w", runID, err)
	}
	return &meta, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writePostsCSV(path string, options []layout.Option) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"option", "post", "location"}); err != nil {
		return err
	}
	for i, o := range options {
		for j, loc := range o.PostLocations {
			row := []string{strconv.Itoa(i), strconv.Itoa(j), strconv.FormatFloat(loc, 'f', 6, 64)}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}
