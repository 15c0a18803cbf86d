package driver

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"cstyle/internal/diag"
	"cstyle/internal/lexer"
	"cstyle/internal/rules"
	"cstyle/internal/source"
	"cstyle/internal/structure"
)

// DefaultMaxDiagnostics caps the per-file bag when the caller does not set
// a limit.
const DefaultMaxDiagnostics = 1000

// Options configures one checker run.
type Options struct {
	Config         *rules.Config
	MaxDiagnostics int
	Jobs           int
	Cache          *ResultCache // nil disables result caching
}

var checkedExts = map[string]bool{
	".c": true, ".cc": true, ".cpp": true, ".cxx": true,
	".h": true, ".hh": true, ".hpp": true, ".hxx": true,
}

// ListSourceFiles returns the sorted list of C/C++ files under dir.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if checkedExts[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// sorted for a deterministic FileID assignment
	sort.Strings(files)
	return files, nil
}

// CheckDir checks every C/C++ file found under dir.
func CheckDir(ctx context.Context, dir string, opts Options) (*RunResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	return Check(ctx, dir, files, opts)
}

// Check runs the full pipeline over the given files in parallel. Files are
// loaded sequentially in sorted order so FileIDs follow path order, which
// makes the merged bag's sort a stable path/position/rule total order no
// matter how the workers interleave.
func Check(ctx context.Context, baseDir string, paths []string, opts Options) (*RunResult, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = rules.NewConfig()
	}
	maxDiags := opts.MaxDiagnostics
	if maxDiags <= 0 {
		maxDiags = DefaultMaxDiagnostics
	}

	files := append([]string(nil), paths...)
	sort.Strings(files)

	fileSet := source.NewFileSetWithBase(baseDir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, p := range files {
		id, err := fileSet.Load(p)
		if err != nil {
			loadErrors[p] = err
			continue
		}
		fileIDs[p] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	fingerprint := cfg.Fingerprint()
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(files), 1)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				bag := diag.NewBag(maxDiags)

				if loadErr, hadErr := loadErrors[path]; hadErr {
					code := diag.IOLoadFileError
					if errors.Is(loadErr, source.ErrDecode) {
						code = diag.IODecodeError
					}
					bag.Add(diag.NewError(code, source.Span{},
						"failed to load file: "+loadErr.Error()))
					results[i] = FileResult{Path: path, Bag: bag, Fatal: true}
					return nil
				}

				fileID := fileIDs[path]
				file := fileSet.Get(fileID)

				if opts.Cache != nil {
					if cached, hit := opts.Cache.Get(file, fingerprint); hit {
						for _, d := range cached {
							bag.Add(d)
						}
						results[i] = FileResult{Path: path, FileID: fileID, Bag: bag, CacheHit: true}
						return nil
					}
				}

				// duplicates are filtered at emit time; Bag.Dedup below only
				// has to handle cross-source overlap after the merge
				reporter := diag.NewDedupReporter(&diag.BagReporter{Bag: bag})
				lx := lexer.New(file, lexer.Options{Reporter: reporter})
				tokens := lx.Tokens()
				lines := lexer.ScanLines(file)
				index := structure.Build(file, tokens, reporter)
				rules.Run(file, tokens, lines, index, cfg, reporter)

				bag.Sort()
				bag.Dedup()

				if opts.Cache != nil {
					// best effort; a failed write just means a re-check next run
					_ = opts.Cache.Put(file, fingerprint, bag.Items())
				}

				results[i] = FileResult{Path: path, FileID: fileID, Bag: bag}
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	pairBag := diag.NewBag(maxDiags)
	rules.CheckFilePairs(fileSet, cfg, &diag.BagReporter{Bag: pairBag})

	merged := diag.NewBag(maxDiags)
	for i := range results {
		merged.Merge(results[i].Bag)
	}
	merged.Merge(pairBag)
	merged.Sort()
	merged.Dedup()

	return &RunResult{FileSet: fileSet, Files: results, Bag: merged}, nil
}
