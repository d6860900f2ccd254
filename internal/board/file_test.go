package board

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/scrawl/internal/geom"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.scrawl")
	elems := []Element{
		{ID: "a", Type: TypePen, X: 5, Y: 5, Width: 40, Height: 40, ZIndex: 1,
			Points: []geom.Point{{X: 5, Y: 5}, {X: 35, Y: 35}}, Color: "#ff0000"},
		{ID: "b", Type: TypeSticky, X: 100, Y: 100, Width: 160, Height: 120, ZIndex: 2, Content: "note"},
	}
	view := geom.View{X: 12, Y: -7, Scale: 1.5}

	if err := Save(path, view, elems); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if f.Version != FileVersion {
		t.Errorf("Expected version %d, got %d", FileVersion, f.Version)
	}
	if f.View != view {
		t.Errorf("Expected view %+v, got %+v", view, f.View)
	}
	if len(f.Elements) != 2 {
		t.Fatalf("Expected 2 elements, got %d", len(f.Elements))
	}
	if f.Elements[0].ID != "a" || len(f.Elements[0].Points) != 2 {
		t.Errorf("Unexpected first element: %+v", f.Elements[0])
	}
	if f.Elements[1].Content != "note" {
		t.Errorf("Expected sticky content 'note', got '%s'", f.Elements[1].Content)
	}
}

func TestLoadDefaultsScale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.scrawl")
	data := `{"version":1,"elements":[{"id":"x","type":"rect","x":0,"y":0,"width":50,"height":50,"zIndex":1,"unknownField":true}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if f.View.Scale != 1 {
		t.Errorf("Expected scale defaulted to 1, got %v", f.View.Scale)
	}
	if len(f.Elements) != 1 || f.Elements[0].Type != TypeRect {
		t.Errorf("Unexpected elements: %+v", f.Elements)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.scrawl")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestUnmarshalElements(t *testing.T) {
	data := []byte(`[{"id":"a","type":"rect","x":1,"y":2,"width":30,"height":40,"zIndex":1}]`)
	elems, err := UnmarshalElements(data)
	if err != nil {
		t.Fatalf("UnmarshalElements failed: %v", err)
	}
	if len(elems) != 1 || elems[0].Type != TypeRect {
		t.Errorf("Unexpected elements: %+v", elems)
	}

	for _, bad := range []string{`[]`, `{"not":"an array"}`, `just text`, `[{"id":"a"}]`} {
		if _, err := UnmarshalElements([]byte(bad)); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}
