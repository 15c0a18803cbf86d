package source_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cstyle/internal/source"
)

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.c")
	raw := []byte("\xEF\xBB\xBFint x;\r\nint y;\r\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if string(f.Content) != "int x;\nint y;\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&source.FileHadBOM == 0 {
		t.Error("BOM flag not set")
	}
	if f.Flags&source.FileNormalizedCRLF == 0 {
		t.Error("CRLF flag not set")
	}
}

func TestLoadRejectsBinaryContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.c")
	if err := os.WriteFile(path, []byte{0x7F, 'E', 'L', 'F', 0x00, 0x01}, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	if _, err := fs.Load(path); !errors.Is(err, source.ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
}

func TestResolveSpans(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte("int x;\nint yy;\n"))

	start, end := fs.Resolve(source.Span{File: id, Start: 11, End: 13})
	if start != (source.LineCol{Line: 2, Col: 5}) {
		t.Errorf("start = %+v", start)
	}
	if end != (source.LineCol{Line: 2, Col: 7}) {
		t.Errorf("end = %+v", end)
	}
}

func TestLineColAt(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.c", []byte("ab\ncd\n")))

	tests := []struct {
		off  uint32
		want source.LineCol
	}{
		{0, source.LineCol{Line: 1, Col: 1}},
		{1, source.LineCol{Line: 1, Col: 2}},
		{3, source.LineCol{Line: 2, Col: 1}},
		{4, source.LineCol{Line: 2, Col: 2}},
	}
	for _, tt := range tests {
		if got := f.LineColAt(tt.off); got != tt.want {
			t.Errorf("LineColAt(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestGetLineAndLineCount(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.c", []byte("first\nsecond\nthird")))

	if f.LineCount() != 3 {
		t.Errorf("LineCount = %d", f.LineCount())
	}
	if got := f.GetLine(2); got != "second" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Errorf("GetLine(3) = %q", got)
	}
	if got := f.GetLine(9); got != "" {
		t.Errorf("out-of-range line = %q", got)
	}
	if f.LineStart(2) != 6 {
		t.Errorf("LineStart(2) = %d", f.LineStart(2))
	}
}

func TestPathKindHelpers(t *testing.T) {
	headers := []string{"a.h", "b.HPP", "dir/c.hh", "d.hxx"}
	for _, p := range headers {
		if !source.IsHeaderPath(p) {
			t.Errorf("IsHeaderPath(%q) = false", p)
		}
		if source.IsSourcePath(p) {
			t.Errorf("IsSourcePath(%q) = true", p)
		}
	}
	sources := []string{"a.c", "b.CPP", "dir/c.cc", "d.cxx"}
	for _, p := range sources {
		if !source.IsSourcePath(p) {
			t.Errorf("IsSourcePath(%q) = false", p)
		}
	}
	if source.IsHeaderPath("readme.txt") || source.IsSourcePath("readme.txt") {
		t.Error("unrelated extension classified")
	}
	if got := source.Stem("dir/timer.c"); got != "timer" {
		t.Errorf("Stem = %q", got)
	}
}

func TestGetByPathTracksLatest(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("a.c", []byte("old\n"))
	fs.AddVirtual("a.c", []byte("new\n"))

	f, ok := fs.GetByPath("a.c")
	if !ok {
		t.Fatal("path not found")
	}
	if string(f.Content) != "new\n" {
		t.Errorf("content = %q", f.Content)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d", fs.Len())
	}
}
