package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/example/scrawl/internal/geom"
)

// FileVersion is written into every saved board.
const FileVersion = 1

// File is the on-disk board format.
type File struct {
	Version  int       `json:"version"`
	View     geom.View `json:"view"`
	Elements []Element `json:"elements"`
}

// Save writes the board to path as indented JSON.
func Save(path string, view geom.View, elems []Element) error {
	f := File{Version: FileVersion, View: view, Elements: elems}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write board: %w", err)
	}
	return nil
}

// Load reads a board file. Unknown JSON fields are ignored and a missing
// or zero view scale falls back to 1.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read board: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse board %s: %w", path, err)
	}
	if f.View.Scale <= 0 {
		f.View.Scale = 1
	}
	return f, nil
}

// MarshalElements encodes elements as a JSON array, the format used for
// clipboard transfer between boards.
func MarshalElements(elems []Element) ([]byte, error) {
	return json.Marshal(elems)
}

// UnmarshalElements decodes a JSON array of elements. It errors on
// anything that is not a non-empty array of typed elements, so arbitrary
// pasted text is not mistaken for board content.
func UnmarshalElements(data []byte) ([]Element, error) {
	var elems []Element
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("parse elements: %w", err)
	}
	if len(elems) == 0 {
		return nil, errors.New("no elements")
	}
	for _, el := range elems {
		if el.Type == "" {
			return nil, errors.New("element missing type")
		}
	}
	return elems, nil
}
