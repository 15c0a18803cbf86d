package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"cstyle/internal/diag"
	"cstyle/internal/driver"
	"cstyle/internal/rules"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestListSourceFilesFiltersAndSorts(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"b.c":        "int g_x;\n",
		"a.h":        "#pragma once\n",
		"sub/c.cpp":  "int g_y;\n",
		"notes.txt":  "ignored\n",
		"Makefile":   "ignored\n",
		"sub/d.hxx":  "#pragma once\n",
		"sub/e.json": "{}\n",
	})

	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.h"),
		filepath.Join(dir, "b.c"),
		filepath.Join(dir, "sub", "c.cpp"),
		filepath.Join(dir, "sub", "d.hxx"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
}

func TestCheckDirFindsViolations(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"timer.c": "int g_BadName;\n",
		"timer.h": "#ifndef _TIMER_H\n#define _TIMER_H\n#endif\n",
	})

	result, err := driver.CheckDir(context.Background(), dir, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Status() != driver.StatusViolations {
		t.Fatalf("status = %v, want violations", result.Status())
	}
	var found bool
	for _, d := range result.Bag.Items() {
		if d.Code.ID() == "GlobalNamingPattern" {
			found = true
		}
	}
	if !found {
		t.Fatalf("naming violation not reported: %v", result.Bag.Items())
	}
}

func TestCheckCleanTree(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"adc.c": "int g_sampleCount;\n",
		"adc.h": "#ifndef _ADC_H\n#define _ADC_H\n#endif\n",
	})

	result, err := driver.CheckDir(context.Background(), dir, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Status() != driver.StatusClean {
		t.Fatalf("status = %v, diagnostics: %v", result.Status(), result.Bag.Items())
	}
	errors, warnings, infos := result.Counts()
	if errors+warnings+infos != 0 {
		t.Fatalf("counts = %d/%d/%d", errors, warnings, infos)
	}
}

func TestCheckBinaryFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.c")
	if err := os.WriteFile(path, []byte{'i', 'n', 't', 0x00, 0x01, 0x02}, 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := driver.Check(context.Background(), dir, []string{path}, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Status() != driver.StatusFatal {
		t.Fatalf("status = %v, want fatal", result.Status())
	}
	var decode bool
	for _, d := range result.Bag.Items() {
		if d.Code == diag.IODecodeError {
			decode = true
		}
	}
	if !decode {
		t.Fatalf("missing decode diagnostic: %v", result.Bag.Items())
	}
}

func TestCheckUnreadableFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.c")

	result, err := driver.Check(context.Background(), dir, []string{missing}, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Status() != driver.StatusFatal {
		t.Fatalf("status = %v, want fatal", result.Status())
	}
	if len(result.Files) != 1 || !result.Files[0].Fatal {
		t.Fatalf("file results = %+v", result.Files)
	}
}

// The merged output must not depend on worker interleaving.
func TestCheckDeterministicAcrossJobs(t *testing.T) {
	files := map[string]string{}
	for _, name := range []string{"a.c", "b.c", "c.c", "d.c", "e.c"} {
		files[name] = "int g_BadOne;\nint g_BadTwo;\nstatic int Wrong;\n"
	}
	dir := writeTree(t, files)

	run := func(jobs int) []string {
		t.Helper()
		result, err := driver.CheckDir(context.Background(), dir, driver.Options{Jobs: jobs})
		if err != nil {
			t.Fatal(err)
		}
		var out []string
		for _, d := range result.Bag.Items() {
			f := result.FileSet.Get(d.Primary.File)
			out = append(out, f.Path+":"+d.Code.ID()+":"+d.Message)
		}
		return out
	}

	serial := run(1)
	if len(serial) == 0 {
		t.Fatal("fixture produced no diagnostics")
	}
	for _, jobs := range []int{2, 4, 8} {
		if got := run(jobs); !reflect.DeepEqual(got, serial) {
			t.Fatalf("jobs=%d diverged:\n%v\nvs\n%v", jobs, got, serial)
		}
	}
}

func TestCheckHonorsContextCancel(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.c": "int g_x;\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := driver.Check(ctx, dir, []string{filepath.Join(dir, "a.c")}, driver.Options{}); err == nil {
		t.Fatal("cancelled context not surfaced")
	}
}

func TestCheckCacheHit(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.c": "int g_BadName;\n"})
	cache, err := driver.OpenResultCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := driver.Options{Cache: cache}

	first, err := driver.CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Files[0].CacheHit {
		t.Fatal("first run reported a cache hit")
	}

	second, err := driver.CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Files[0].CacheHit {
		t.Fatal("second run missed the cache")
	}
	if second.Bag.Len() != first.Bag.Len() {
		t.Fatalf("cached run found %d diagnostics, fresh run %d", second.Bag.Len(), first.Bag.Len())
	}
}

func TestCheckCacheInvalidatedByConfig(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.c": "int g_BadName;\n"})
	cache, err := driver.OpenResultCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := driver.CheckDir(context.Background(), dir, driver.Options{Cache: cache}); err != nil {
		t.Fatal(err)
	}

	cfg := rules.NewConfig()
	off := false
	if err := cfg.Set("GlobalNamingPattern", rules.Override{Enabled: &off}); err != nil {
		t.Fatal(err)
	}
	result, err := driver.CheckDir(context.Background(), dir, driver.Options{Cache: cache, Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	if result.Files[0].CacheHit {
		t.Fatal("config change did not invalidate the cache entry")
	}
}
