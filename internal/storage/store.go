package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/cyberfolio/internal/config"
	"github.com/san-kum/cyberfolio/internal/scramble"
)

var ErrTraceNotFound = errors.New("storage: trace not found")

var framesHeader = []string{"iteration", "frontier", "text"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// TraceMetadata describes one recorded scramble run.
type TraceMetadata struct {
	ID         string                `json:"id"`
	Text       string                `json:"text"`
	Preset     string                `json:"preset,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
	RandSeed   uint64                `json:"rand_seed"`
	Options    config.ScrambleConfig `json:"options"`
	Frames     int                   `json:"frames"`
	DurationMs int64                 `json:"duration_ms"`
}

// ScrambleOptions returns the recorded options, rejecting values that could
// not have produced a run.
func (m TraceMetadata) ScrambleOptions() (scramble.Options, error) {
	opts := m.Options.Options()
	if err := opts.Validate(); err != nil {
		return scramble.Options{}, fmt.Errorf("trace %s: %w", m.ID, err)
	}
	return opts, nil
}

func traceName(meta TraceMetadata) string {
	name := meta.Preset
	if name == "" {
		name = "trace"
	}
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' {
			return '-'
		}
		return r
	}, name)
}

// Save writes metadata.json and frames.csv under a new trace directory and
// returns its ID. ID, Timestamp and Frames are filled in from the call.
func (s *Store) Save(meta TraceMetadata, frames []scramble.Frame) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", traceName(meta), now.UnixNano())
	meta.Timestamp = now
	meta.Frames = len(frames)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(framesHeader); err != nil {
		return "", err
	}
	for _, f := range frames {
		row := []string{strconv.Itoa(f.Iteration), strconv.Itoa(f.Frontier), f.Text}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns every readable trace, oldest first.
func (s *Store) List() ([]TraceMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []TraceMetadata{}, nil
		}
		return nil, err
	}

	traces := make([]TraceMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		traces = append(traces, *meta)
	}

	sort.Slice(traces, func(i, j int) bool {
		return traces[i].Timestamp.Before(traces[j].Timestamp)
	})
	return traces, nil
}

func (s *Store) Load(id string) (*TraceMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTraceNotFound, id)
		}
		return nil, err
	}

	var meta TraceMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("trace %s: %w", id, err)
	}
	return &meta, nil
}

// LoadFrames reads frames.csv back. The last frame is marked Done.
func (s *Store) LoadFrames(id string) ([]scramble.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "frames.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTraceNotFound, id)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(framesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("trace %s: %w", id, err)
	}
	if len(records) < 2 {
		return []scramble.Frame{}, nil
	}

	frames := make([]scramble.Frame, 0, len(records)-1)
	for i, record := range records[1:] {
		iteration, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("trace %s row %d: %w", id, i+1, err)
		}
		frontier, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("trace %s row %d: %w", id, i+1, err)
		}
		frames = append(frames, scramble.Frame{Text: record[2], Iteration: iteration, Frontier: frontier})
	}
	frames[len(frames)-1].Done = true
	return frames, nil
}
