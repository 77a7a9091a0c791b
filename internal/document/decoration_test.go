package document

import (
	"testing"

	"github.com/dshills/viewspan/internal/textrange"
)

func TestAddDecorationGeneratesUniqueIDs(t *testing.T) {
	m := NewModel("one\ntwo\nthree", nil)

	a := m.AddDecoration(0, textrange.NewRange(1, 1, 1, 3), nil)
	b := m.AddDecoration(0, textrange.NewRange(2, 1, 2, 3), nil)

	if a == "" || b == "" {
		t.Fatal("decoration ids must not be empty")
	}
	if a == b {
		t.Error("decoration ids must be unique")
	}
	if m.DecorationCount() != 2 {
		t.Errorf("DecorationCount = %d, want 2", m.DecorationCount())
	}
}

func TestRemoveDecoration(t *testing.T) {
	m := NewModel("one", nil)
	id := m.AddDecoration(0, textrange.NewRange(1, 1, 1, 2), nil)

	if err := m.RemoveDecoration(id); err != nil {
		t.Fatalf("RemoveDecoration: %v", err)
	}
	if err := m.RemoveDecoration(id); err != ErrDecorationNotFound {
		t.Errorf("second remove error = %v, want ErrDecorationNotFound", err)
	}
	if m.DecorationCount() != 0 {
		t.Errorf("DecorationCount = %d, want 0", m.DecorationCount())
	}
}

func TestChangeDecorationRange(t *testing.T) {
	m := NewModel("one\ntwo", nil)
	id := m.AddDecoration(0, textrange.NewRange(1, 1, 1, 2), nil)

	moved := textrange.NewRange(2, 1, 2, 4)
	if err := m.ChangeDecorationRange(id, moved); err != nil {
		t.Fatalf("ChangeDecorationRange: %v", err)
	}
	d, ok := m.DecorationByID(id)
	if !ok {
		t.Fatal("decoration disappeared")
	}
	if !d.Range.Equals(moved) {
		t.Errorf("range = %s, want %s", d.Range, moved)
	}

	if err := m.ChangeDecorationRange("no-such-id", moved); err != ErrDecorationNotFound {
		t.Errorf("error = %v, want ErrDecorationNotFound", err)
	}
}

func TestDecorationsInRangeIntersection(t *testing.T) {
	m := NewModel("aaaa\nbbbb\ncccc\ndddd", nil)

	inside := m.AddDecoration(0, textrange.NewRange(2, 1, 2, 3), nil)
	straddling := m.AddDecoration(0, textrange.NewRange(1, 2, 3, 2), nil)
	outside := m.AddDecoration(0, textrange.NewRange(4, 1, 4, 3), nil)

	got := m.DecorationsInRange(textrange.NewRange(2, 1, 3, 1), 0, FilterPolicy{})

	ids := make(map[string]bool)
	for _, d := range got {
		ids[d.ID] = true
	}
	if !ids[inside] || !ids[straddling] {
		t.Error("intersecting decorations missing from result")
	}
	if ids[outside] {
		t.Error("non-intersecting decoration included")
	}
}

func TestDecorationsInRangeOrdering(t *testing.T) {
	m := NewModel("aaaa\nbbbb", nil)

	second := m.AddDecoration(0, textrange.NewRange(2, 1, 2, 2), nil)
	firstLate := m.AddDecoration(0, textrange.NewRange(1, 1, 1, 4), nil)
	firstSame := m.AddDecoration(0, textrange.NewRange(1, 1, 1, 2), nil)

	got := m.DecorationsInRange(m.FullRange(), 0, FilterPolicy{})
	if len(got) != 3 {
		t.Fatalf("got %d decorations, want 3", len(got))
	}

	// Position order first, insertion order for equal starts.
	if got[0].ID != firstLate || got[1].ID != firstSame || got[2].ID != second {
		t.Errorf("order = [%s %s %s], want [%s %s %s]",
			got[0].ID, got[1].ID, got[2].ID, firstLate, firstSame, second)
	}
}

func TestDecorationsInRangeOwnerScope(t *testing.T) {
	m := NewModel("aaaa", nil)

	shared := m.AddDecoration(0, textrange.NewRange(1, 1, 1, 2), nil)
	mine := m.AddDecoration(7, textrange.NewRange(1, 1, 1, 3), nil)
	theirs := m.AddDecoration(9, textrange.NewRange(1, 1, 1, 4), nil)

	got := m.DecorationsInRange(m.FullRange(), 7, FilterPolicy{})
	ids := make(map[string]bool)
	for _, d := range got {
		ids[d.ID] = true
	}
	if !ids[shared] || !ids[mine] {
		t.Error("owner query must include shared and own decorations")
	}
	if ids[theirs] {
		t.Error("owner query must exclude other owners")
	}
}

func TestDecorationsInRangeFilterPolicy(t *testing.T) {
	m := NewModel("aaaa", nil)

	m.AddDecoration(0, textrange.NewRange(1, 1, 1, 2),
		&DecorationOptions{Category: CategorySquiggle})
	kept := m.AddDecoration(0, textrange.NewRange(1, 1, 1, 3),
		&DecorationOptions{Category: CategoryHighlight})

	policy := NewFilterPolicy(CategorySquiggle)
	got := m.DecorationsInRange(m.FullRange(), 0, policy)

	if len(got) != 1 {
		t.Fatalf("got %d decorations, want 1", len(got))
	}
	if got[0].ID != kept {
		t.Errorf("kept id = %s, want %s", got[0].ID, kept)
	}
}

func TestDecorationObserver(t *testing.T) {
	m := NewModel("aaaa", nil)

	fired := 0
	m.OnDecorationsChanged(func() { fired++ })

	id := m.AddDecoration(0, textrange.NewRange(1, 1, 1, 2), nil)
	if err := m.ChangeDecorationRange(id, textrange.NewRange(1, 2, 1, 3)); err != nil {
		t.Fatalf("ChangeDecorationRange: %v", err)
	}
	if err := m.RemoveDecoration(id); err != nil {
		t.Fatalf("RemoveDecoration: %v", err)
	}

	if fired != 3 {
		t.Errorf("decoration observer fired %d times, want 3", fired)
	}
}
