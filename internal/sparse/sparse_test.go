package sparse

import "testing"

func TestSparseSetBasic(t *testing.T) {
	s := NewSparseSet(100)
	if !s.IsEmpty() {
		t.Fatal("new set should be empty")
	}
	if s.Contains(5) {
		t.Fatal("empty set should not contain 5")
	}

	s.Insert(5)
	if !s.Contains(5) {
		t.Fatal("set should contain 5 after insert")
	}
	s.Insert(5)
	if s.Size() != 1 {
		t.Fatalf("duplicate insert should not grow size, got %d", s.Size())
	}

	s.Insert(10)
	s.Insert(3)
	if s.Size() != 3 {
		t.Fatalf("expected size 3, got %d", s.Size())
	}

	s.Remove(10)
	if s.Contains(10) {
		t.Fatal("10 should have been removed")
	}
	if s.Size() != 2 {
		t.Fatalf("expected size 2 after remove, got %d", s.Size())
	}

	s.Clear()
	if !s.IsEmpty() {
		t.Fatal("set should be empty after Clear")
	}
}

func TestSparseSetOutOfRange(t *testing.T) {
	s := NewSparseSet(4)
	if s.Contains(100) {
		t.Fatal("out-of-range value must not be reported as contained")
	}
}

func TestSparseSetSortedKey(t *testing.T) {
	s := NewSparseSet(10)
	for _, v := range []uint32{7, 1, 4, 1, 9} {
		s.Insert(v)
	}
	key := s.SortedKey()
	want := []uint32{1, 4, 7, 9}
	if len(key) != len(want) {
		t.Fatalf("expected %v, got %v", want, key)
	}
	for i := range want {
		if key[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, key)
		}
	}
}

func TestSparseSetIter(t *testing.T) {
	s := NewSparseSet(10)
	s.Insert(2)
	s.Insert(4)
	seen := map[uint32]bool{}
	s.Iter(func(v uint32) { seen[v] = true })
	if len(seen) != 2 || !seen[2] || !seen[4] {
		t.Fatalf("iter did not visit all members: %v", seen)
	}
}
