package rules

import (
	"fmt"
	"path"
	"strings"

	"cstyle/internal/diag"
	"cstyle/internal/source"
)

// CheckFilePairs runs the source/header pairing rule over the whole file
// set. It is a post-pass over paths, not a per-file checker: a file's
// counterpart lives in a different file.
func CheckFilePairs(fset *source.FileSet, cfg *Config, reporter diag.Reporter) {
	code := diag.RuleFilePairing
	if !cfg.Enabled(code) {
		return
	}
	severity := cfg.Severity(code)
	require := cfg.BoolParam(code, "require-counterpart")

	type entry struct {
		id   source.FileID
		path string
		stem string
		dir  string
	}
	var headers, sources []entry
	for i := 0; i < fset.Len(); i++ {
		f := fset.Get(source.FileID(i))
		e := entry{id: f.ID, path: f.Path, stem: source.Stem(f.Path), dir: path.Dir(f.Path)}
		switch {
		case source.IsHeaderPath(f.Path):
			headers = append(headers, e)
		case source.IsSourcePath(f.Path):
			sources = append(sources, e)
		}
	}

	// a stem needs a match from the opposite kind, so index per kind
	headerKeys := make(map[string]bool)
	headerFolded := make(map[string]string)
	for _, e := range headers {
		headerKeys[e.dir+"/"+e.stem] = true
		headerFolded[strings.ToLower(e.dir+"/"+e.stem)] = e.stem
	}
	sourceKeys := make(map[string]bool)
	sourceFolded := make(map[string]string)
	for _, e := range sources {
		sourceKeys[e.dir+"/"+e.stem] = true
		sourceFolded[strings.ToLower(e.dir+"/"+e.stem)] = e.stem
	}

	report := func(e entry, msg string) {
		reporter.Report(code, severity,
			source.Span{File: e.id, Start: 0, End: 0}, msg, nil)
	}
	checkOne := func(e entry, other map[string]bool, otherFolded map[string]string, kind string) {
		key := e.dir + "/" + e.stem
		if other[key] {
			return
		}
		if got, ok := otherFolded[strings.ToLower(key)]; ok {
			report(e, fmt.Sprintf("counterpart %s stem %q differs in case from %q", kind, got, e.stem))
			return
		}
		if require {
			report(e, fmt.Sprintf("no counterpart %s for %s", kind, source.BaseName(e.path)))
		}
	}
	for _, e := range sources {
		checkOne(e, headerKeys, headerFolded, "header")
	}
	for _, e := range headers {
		checkOne(e, sourceKeys, sourceFolded, "source")
	}
}
