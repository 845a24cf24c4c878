package service

import (
	"math/rand"
	"testing"

	"github.com/advisorsite/internal/db"
	"github.com/google/go-cmp/cmp"
)

func TestMove(t *testing.T) {
	cases := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"backwards", 2, 0, []string{"C", "A", "B", "D"}},
		{"forwards", 0, 2, []string{"B", "C", "A", "D"}},
		{"to end", 1, 3, []string{"A", "C", "D", "B"}},
		{"same index", 1, 1, []string{"A", "B", "C", "D"}},
		{"out of range", 5, 0, []string{"A", "B", "C", "D"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := []string{"A", "B", "C", "D"}
			got := Move(input, tc.from, tc.to)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("unexpected order (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"A", "B", "C", "D"}, input); diff != "" {
				t.Fatalf("input was mutated:\n%s", diff)
			}
		})
	}
}

func clientList(names ...string) []db.Client {
	out := make([]db.Client, len(names))
	for i, name := range names {
		out[i] = db.Client{Model: db.Model{ID: uint(i + 1)}, Name: name, OrderIndex: i}
	}
	return out
}

func TestMoveByIDSkipsNoops(t *testing.T) {
	items := clientList("A", "B", "C")

	if _, ok := MoveByID(items, 2, 2); ok {
		t.Fatal("expected drop onto itself to be a no-op")
	}
	if _, ok := MoveByID(items, 9, 1); ok {
		t.Fatal("expected unknown moved id to be a no-op")
	}
	if _, ok := MoveByID(items, 1, 9); ok {
		t.Fatal("expected unknown target id to be a no-op")
	}

	moved, ok := MoveByID(items, 3, 1)
	if !ok {
		t.Fatal("expected move to apply")
	}
	if diff := cmp.Diff([]string{"C", "A", "B"}, names(moved)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestArrangeByIDsRequiresPermutation(t *testing.T) {
	items := clientList("A", "B", "C")

	if _, ok := ArrangeByIDs(items, []uint{1, 2}); ok {
		t.Fatal("expected short list to be rejected")
	}
	if _, ok := ArrangeByIDs(items, []uint{1, 1, 2}); ok {
		t.Fatal("expected duplicate id to be rejected")
	}
	if _, ok := ArrangeByIDs(items, []uint{1, 2, 7}); ok {
		t.Fatal("expected unknown id to be rejected")
	}

	arranged, ok := ArrangeByIDs(items, []uint{3, 1, 2})
	if !ok {
		t.Fatal("expected permutation to be accepted")
	}
	if diff := cmp.Diff([]string{"C", "A", "B"}, names(arranged)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestRenumberKeepsOrderDense(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	items := clientList("A", "B", "C", "D", "E", "F")

	for i := 0; i < 200; i++ {
		from, to := rng.Intn(len(items)), rng.Intn(len(items))
		items = Renumber(Move(items, from, to))
		if !IsDense(items) {
			t.Fatalf("order not dense after move %d->%d: %+v", from, to, items)
		}
	}

	seen := make(map[uint]bool)
	for _, item := range items {
		seen[item.ID] = true
	}
	if len(seen) != 6 {
		t.Fatalf("expected every id to survive, got %v", seen)
	}
}
