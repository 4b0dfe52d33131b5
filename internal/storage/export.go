package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/cyberfolio/internal/scramble"
)

// ExportData is a trace in a single JSON document.
type ExportData struct {
	Trace  TraceMetadata    `json:"trace"`
	Frames []scramble.Frame `json:"frames"`
}

func WriteJSON(w io.Writer, meta TraceMetadata, frames []scramble.Frame) error {
	meta.Frames = len(frames)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Trace: meta, Frames: frames})
}

func ExportJSON(path string, meta TraceMetadata, frames []scramble.Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, frames)
}
