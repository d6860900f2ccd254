package board

import (
	"testing"

	"github.com/example/scrawl/internal/geom"
)

func testElements() []Element {
	return []Element{
		{ID: "a", Type: TypeRect, X: 0, Y: 0, Width: 50, Height: 50, ZIndex: 1},
		{ID: "b", Type: TypeCircle, X: 100, Y: 0, Width: 30, Height: 30, ZIndex: 2},
		{ID: "c", Type: TypeText, X: 0, Y: 100, Width: 80, Height: 24, ZIndex: 3, Content: "hi"},
	}
}

func TestInsertIsPure(t *testing.T) {
	before := testElements()
	out := Insert(before, Element{ID: "d", Type: TypeLine, ZIndex: 4})
	if len(out) != 4 {
		t.Fatalf("Expected 4 elements, got %d", len(out))
	}
	if len(before) != 3 {
		t.Fatalf("Expected input to stay at 3 elements, got %d", len(before))
	}
	if out[3].ID != "d" {
		t.Errorf("Expected new element appended last, got '%s'", out[3].ID)
	}
}

func TestUpdateCopiesOnWrite(t *testing.T) {
	before := testElements()
	out := Update(before, "b", func(el *Element) {
		el.X = 999
		el.Color = "#ff0000"
	})
	if before[1].X != 100 || before[1].Color != "" {
		t.Fatalf("Expected input untouched, got %+v", before[1])
	}
	el, ok := ByID(out, "b")
	if !ok {
		t.Fatal("Expected element 'b' in result")
	}
	if el.X != 999 || el.Color != "#ff0000" {
		t.Errorf("Expected mutation applied, got %+v", el)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	before := testElements()
	out := Update(before, "nope", func(el *Element) { el.X = 1 })
	if len(out) != len(before) {
		t.Fatalf("Expected unchanged length, got %d", len(out))
	}
	for i := range out {
		if out[i].ID != before[i].ID || out[i].X != before[i].X {
			t.Errorf("Expected element %d unchanged, got %+v", i, out[i])
		}
	}
}

func TestRemove(t *testing.T) {
	out := Remove(testElements(), "a", "c")
	if len(out) != 1 {
		t.Fatalf("Expected 1 element, got %d", len(out))
	}
	if out[0].ID != "b" {
		t.Errorf("Expected 'b' to survive, got '%s'", out[0].ID)
	}
}

func TestDuplicate(t *testing.T) {
	before := testElements()
	out, ids := Duplicate(before, "a", "b")
	if len(ids) != 2 {
		t.Fatalf("Expected 2 fresh ids, got %d", len(ids))
	}
	if len(out) != 5 {
		t.Fatalf("Expected 5 elements, got %d", len(out))
	}
	if ids[0] == "a" || ids[1] == "b" || ids[0] == ids[1] {
		t.Errorf("Expected fresh unique ids, got %v", ids)
	}

	first, ok := ByID(out, ids[0])
	if !ok {
		t.Fatal("Expected first duplicate in result")
	}
	if first.X != 20 || first.Y != 20 {
		t.Errorf("Expected duplicate of 'a' at (20,20), got (%v,%v)", first.X, first.Y)
	}
	if first.ZIndex != 4 {
		t.Errorf("Expected first duplicate at zIndex 4, got %d", first.ZIndex)
	}

	second, _ := ByID(out, ids[1])
	if second.ZIndex != 5 {
		t.Errorf("Expected second duplicate at zIndex 5, got %d", second.ZIndex)
	}
	if second.X != 120 || second.Y != 20 {
		t.Errorf("Expected duplicate of 'b' at (120,20), got (%v,%v)", second.X, second.Y)
	}

	if len(before) != 3 {
		t.Errorf("Expected input untouched, got %d elements", len(before))
	}
}

func TestDuplicateSkipsUnknownIDs(t *testing.T) {
	out, ids := Duplicate(testElements(), "a", "ghost")
	if len(ids) != 1 {
		t.Fatalf("Expected 1 fresh id, got %d", len(ids))
	}
	if len(out) != 4 {
		t.Fatalf("Expected 4 elements, got %d", len(out))
	}
}

func TestBringToFront(t *testing.T) {
	out := BringToFront(testElements(), "a", "b")
	a, _ := ByID(out, "a")
	b, _ := ByID(out, "b")
	if a.ZIndex != 4 || b.ZIndex != 4 {
		t.Fatalf("Expected both targets at zIndex 4, got %d and %d", a.ZIndex, b.ZIndex)
	}
	if out[0].ID != "c" {
		t.Errorf("Expected 'c' at the back, got '%s'", out[0].ID)
	}
	// Stable sort keeps the targets in their original relative order.
	if out[1].ID != "a" || out[2].ID != "b" {
		t.Errorf("Expected order c,a,b, got %s,%s,%s", out[0].ID, out[1].ID, out[2].ID)
	}
}

func TestSendToBack(t *testing.T) {
	out := SendToBack(testElements(), "b", "c")
	b, _ := ByID(out, "b")
	c, _ := ByID(out, "c")
	if b.ZIndex != 0 || c.ZIndex != 0 {
		t.Fatalf("Expected both targets at zIndex 0, got %d and %d", b.ZIndex, c.ZIndex)
	}
	if out[0].ID != "b" || out[1].ID != "c" || out[2].ID != "a" {
		t.Errorf("Expected order b,c,a, got %s,%s,%s", out[0].ID, out[1].ID, out[2].ID)
	}
}

func TestMaxZMinZ(t *testing.T) {
	elems := []Element{{ID: "x", ZIndex: -4}, {ID: "y", ZIndex: 7}}
	if got := MaxZ(elems); got != 7 {
		t.Errorf("Expected MaxZ 7, got %d", got)
	}
	if got := MinZ(elems); got != -4 {
		t.Errorf("Expected MinZ -4, got %d", got)
	}
	if got := MaxZ(nil); got != 0 {
		t.Errorf("Expected MaxZ 0 for empty, got %d", got)
	}
}

func TestSortByZStable(t *testing.T) {
	elems := []Element{
		{ID: "first", ZIndex: 5},
		{ID: "second", ZIndex: 5},
		{ID: "under", ZIndex: 1},
	}
	out := SortByZ(elems)
	if out[0].ID != "under" || out[1].ID != "first" || out[2].ID != "second" {
		t.Fatalf("Expected under,first,second, got %s,%s,%s", out[0].ID, out[1].ID, out[2].ID)
	}
}

func TestElementBounds(t *testing.T) {
	el := Element{X: 10, Y: 20, Width: 30, Height: 40}
	if got := el.Bounds(); got != (geom.Rect{X: 10, Y: 20, Width: 30, Height: 40}) {
		t.Fatalf("Unexpected bounds: %+v", got)
	}
	if c := el.Center(); c.X != 25 || c.Y != 40 {
		t.Errorf("Expected center (25,40), got %+v", c)
	}
}
