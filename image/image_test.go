package image

import (
	"path/filepath"
	"testing"

	"os8util/device"
	"os8util/sixbit"
)

func tempImageGeometry() device.Geometry {
	return device.Geometry{
		Name: "test", TotalBlocks: 20, FirstDirBlock: 1, SegmentCount: 6,
		FirstDataBlock: 7, Packing: 0,
	}
}

func TestCreateNewThenOpenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.dsk")
	g := tempImageGeometry()

	img, err := CreateNew(path, g, false)
	if err != nil {
		t.Fatalf("CreateNew: %v", err)
	}

	name, _ := sixbit.Encode("FOO.BIN")
	if _, err := img.CopyIn([]byte("hello world"), name, false); err != nil {
		t.Fatalf("CopyIn: %v", err)
	}
	if err := img.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path, FormatDisk, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reopened.Close()

	data, err := reopened.CopyOut(name, false)
	if err != nil {
		t.Fatalf("CopyOut: %v", err)
	}
	if string(data[:len("hello world")]) != "hello world" {
		t.Errorf("CopyOut = %q, want it to start with %q", data, "hello world")
	}
}

func TestCreateNewRefusesExistingFileByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.dsk")
	g := tempImageGeometry()

	first, err := CreateNew(path, g, false)
	if err != nil {
		t.Fatalf("first CreateNew: %v", err)
	}
	// Release the first image's lock so only the existence check is tested.
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := CreateNew(path, g, false); err == nil {
		t.Fatal("expected an error creating over an existing file without allowExisting")
	}
	if _, err := CreateNew(path, g, true); err != nil {
		t.Fatalf("CreateNew with allowExisting: %v", err)
	}
}

func TestDirListsFilesAndSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.dsk")
	g := tempImageGeometry()

	img, err := CreateNew(path, g, false)
	if err != nil {
		t.Fatalf("CreateNew: %v", err)
	}
	defer img.Close()

	name, _ := sixbit.Encode("FOO.BIN")
	if _, err := img.CopyIn([]byte("abc"), name, false); err != nil {
		t.Fatalf("CopyIn: %v", err)
	}

	files, summary := img.Dir(false)
	if len(files) != 1 {
		t.Fatalf("Dir() = %d files, want 1", len(files))
	}
	if files[0].Name != "FOO.BIN" {
		t.Errorf("file name = %q, want FOO.BIN", files[0].Name)
	}
	if summary.FileCount != 1 {
		t.Errorf("FileCount = %d, want 1", summary.FileCount)
	}
	if summary.UsedBlocks+summary.FreeBlocks != g.TotalBlocks-g.FirstDataBlock {
		t.Errorf("UsedBlocks+FreeBlocks = %d, want %d", summary.UsedBlocks+summary.FreeBlocks, g.TotalBlocks-g.FirstDataBlock)
	}
}

func TestDeleteRemovesMatchingFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.dsk")
	g := tempImageGeometry()

	img, err := CreateNew(path, g, false)
	if err != nil {
		t.Fatalf("CreateNew: %v", err)
	}
	defer img.Close()

	nameA, _ := sixbit.Encode("A.TX")
	nameB, _ := sixbit.Encode("B.TX")
	if _, err := img.CopyIn([]byte("a"), nameA, false); err != nil {
		t.Fatalf("CopyIn A: %v", err)
	}
	if _, err := img.CopyIn([]byte("b"), nameB, false); err != nil {
		t.Fatalf("CopyIn B: %v", err)
	}

	pattern, err := sixbit.ParsePattern("*.TX")
	if err != nil {
		t.Fatalf("ParsePattern: %v", err)
	}

	n, err := img.Delete([]sixbit.Pattern{pattern}, nil)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d files, want 2", n)
	}

	files, _ := img.Dir(false)
	if len(files) != 0 {
		t.Errorf("expected no files left, got %d", len(files))
	}
}

func TestDeleteReportsNotFoundWhenNoMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.dsk")
	g := tempImageGeometry()

	img, err := CreateNew(path, g, false)
	if err != nil {
		t.Fatalf("CreateNew: %v", err)
	}
	defer img.Close()

	pattern, _ := sixbit.ParsePattern("NOPE.TX")
	if _, err := img.Delete([]sixbit.Pattern{pattern}, nil); err == nil {
		t.Fatal("expected an error when no pattern matches anything")
	}
}
