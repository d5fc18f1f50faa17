package engine

import (
	"testing"

	"os8util/device"
	"os8util/directory"
	"os8util/sixbit"
)

func freshDirectory(t *testing.T) *directory.Directory {
	t.Helper()
	d := directory.New()
	Create(d, device.DECtape)
	return d
}

func TestCreateProducesSingleEmptyExtent(t *testing.T) {
	d := freshDirectory(t)
	seg := d.Segments[0]

	if got := seg.NumberFiles(); got != 1 {
		t.Fatalf("NumberFiles() = %d, want 1", got)
	}
	if got := seg.FirstFileBlock(); got != device.DECtape.FirstDataBlock {
		t.Fatalf("FirstFileBlock() = %d, want %d", got, device.DECtape.FirstDataBlock)
	}

	c := directory.NewCursor(d)
	if !c.Valid() {
		t.Fatal("fresh directory has no entries")
	}
	e := c.Read()
	if !e.Empty {
		t.Fatal("fresh directory's only entry should be empty")
	}
	want := device.DECtape.TotalBlocks - device.DECtape.FirstDataBlock
	if e.Length != want {
		t.Errorf("Length = %d, want %d", e.Length, want)
	}
	if c.Valid() {
		t.Fatal("fresh directory should have exactly one entry")
	}
}

func TestGetEmptyEntryLargestFit(t *testing.T) {
	d := freshDirectory(t)
	e, ok := GetEmptyEntry(d, directory.Entry{}, 0)
	if !ok {
		t.Fatal("expected an empty entry")
	}
	want := device.DECtape.TotalBlocks - device.DECtape.FirstDataBlock
	if e.Length != want {
		t.Errorf("Length = %d, want %d", e.Length, want)
	}
}

func TestGetEmptyEntryNoneLargeEnough(t *testing.T) {
	d := freshDirectory(t)
	total := device.DECtape.TotalBlocks - device.DECtape.FirstDataBlock
	_, ok := GetEmptyEntry(d, directory.Entry{}, total+1)
	if ok {
		t.Fatal("expected no empty entry to satisfy an oversized request")
	}
}

func TestEnterInsertsPresentEntryAndShrinksEmpty(t *testing.T) {
	d := freshDirectory(t)
	name, _ := sixbit.Encode("HELLO.TX")

	empty, ok := GetEmptyEntry(d, directory.Entry{}, 3)
	if !ok {
		t.Fatal("expected an empty entry")
	}
	origLength := empty.Length

	entry, err := Enter(d, name, 3, empty)
	if err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if entry.Name != name {
		t.Errorf("Name = %v, want %v", entry.Name, name)
	}
	if entry.Length != 3 {
		t.Errorf("Length = %d, want 3", entry.Length)
	}
	if entry.FileBlock != device.DECtape.FirstDataBlock {
		t.Errorf("FileBlock = %d, want %d", entry.FileBlock, device.DECtape.FirstDataBlock)
	}

	found, ok := Lookup(d, sixbit.ExactPattern(name))
	if !ok {
		t.Fatal("Lookup did not find the entered file")
	}
	if found.Length != 3 {
		t.Errorf("looked-up Length = %d, want 3", found.Length)
	}

	remaining, ok := GetEmptyEntry(d, directory.Entry{}, 0)
	if !ok {
		t.Fatal("expected a remaining empty entry")
	}
	if remaining.Length != origLength-3 {
		t.Errorf("remaining empty Length = %d, want %d", remaining.Length, origLength-3)
	}
}

func TestDeleteMakesEntryEmpty(t *testing.T) {
	d := freshDirectory(t)
	name, _ := sixbit.Encode("FOO.TX")

	empty, _ := GetEmptyEntry(d, directory.Entry{}, 5)
	entry, err := Enter(d, name, 5, empty)
	if err != nil {
		t.Fatalf("Enter: %v", err)
	}

	Delete(d, entry)

	if _, ok := Lookup(d, sixbit.ExactPattern(name)); ok {
		t.Fatal("deleted file should no longer be found by Lookup")
	}

	c := directory.NewCursor(d)
	var sawEmptyOfLength5 bool
	for c.Valid() {
		e := c.Read()
		if e.Empty && e.Length == 5 {
			sawEmptyOfLength5 = true
		}
	}
	if !sawEmptyOfLength5 {
		t.Fatal("expected an empty entry of length 5 after delete")
	}
}

func TestConsolidateMergesAdjacentEmpties(t *testing.T) {
	d := freshDirectory(t)
	nameA, _ := sixbit.Encode("A.TX")
	nameB, _ := sixbit.Encode("B.TX")

	emptyA, _ := GetEmptyEntry(d, directory.Entry{}, 4)
	a, err := Enter(d, nameA, 4, emptyA)
	if err != nil {
		t.Fatalf("Enter A: %v", err)
	}
	emptyB, _ := GetEmptyEntry(d, directory.Entry{}, 4)
	b, err := Enter(d, nameB, 4, emptyB)
	if err != nil {
		t.Fatalf("Enter B: %v", err)
	}

	total := device.DECtape.TotalBlocks - device.DECtape.FirstDataBlock

	Delete(d, a)
	// Deleting a shifts b's words down, so b's recorded offset is stale;
	// look it up again before deleting it.
	b, ok := Lookup(d, sixbit.ExactPattern(nameB))
	if !ok {
		t.Fatal("B.TX not found after deleting A.TX")
	}
	Delete(d, b)
	Consolidate(d)

	c := directory.NewCursor(d)
	count := 0
	for c.Valid() {
		e := c.Read()
		count++
		if !e.Empty {
			t.Fatalf("unexpected present entry after deleting everything: %+v", e)
		}
		if e.Length != total {
			t.Errorf("merged empty Length = %d, want %d", e.Length, total)
		}
	}
	if count != 1 {
		t.Fatalf("expected a single merged empty entry, got %d entries", count)
	}
}

func TestZeroCollapsesToSingleExtent(t *testing.T) {
	d := freshDirectory(t)
	name, _ := sixbit.Encode("FOO.TX")
	empty, _ := GetEmptyEntry(d, directory.Entry{}, 10)
	if _, err := Enter(d, name, 10, empty); err != nil {
		t.Fatalf("Enter: %v", err)
	}

	Zero(d, device.DECtape)

	seg := d.Segments[0]
	if got := seg.NumberFiles(); got != 1 {
		t.Fatalf("NumberFiles() = %d, want 1", got)
	}
	if got := seg.NextSegment(); got != 0 {
		t.Fatalf("NextSegment() = %d, want 0", got)
	}

	c := directory.NewCursor(d)
	e := c.Read()
	if !e.Empty {
		t.Fatal("expected the sole entry to be empty after Zero")
	}
	want := device.DECtape.TotalBlocks - device.DECtape.FirstDataBlock
	if e.Length != want {
		t.Errorf("Length = %d, want %d", e.Length, want)
	}
}

// TestEnterCascadesToNewSegmentWhenFull fills segment 1 past its capacity
// with many small one-block files, forcing Enter's makeRoom path to append
// a second segment and relocate entries to reach it.
func TestEnterCascadesToNewSegmentWhenFull(t *testing.T) {
	d := freshDirectory(t)

	const fileCount = 60
	names := make([]sixbit.Name, fileCount)
	for i := 0; i < fileCount; i++ {
		n, err := sixbit.Encode(shortName(i))
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		names[i] = n

		empty, ok := GetEmptyEntry(d, directory.Entry{}, 1)
		if !ok {
			t.Fatalf("file %d: no empty entry large enough", i)
		}
		if _, err := Enter(d, n, 1, empty); err != nil {
			t.Fatalf("file %d: Enter: %v", i, err)
		}
	}

	if d.Segments[1] == nil {
		t.Fatal("expected a second segment to have been allocated")
	}

	for i, n := range names {
		if _, ok := Lookup(d, sixbit.ExactPattern(n)); !ok {
			t.Errorf("file %d (%s) not found after cascade", i, n.String())
		}
	}
}

func shortName(i int) string {
	letters := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	return string([]byte{letters[i/26], letters[i%26]}) + ".TX"
}
