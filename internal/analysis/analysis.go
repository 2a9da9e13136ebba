// Package analysis implements C10: the unified-analysis driver that wires
// C1-C9 together into one call. Grounded in pyscn's service/parse_cache.go
// and service/parallel_executor.go for the parallel-phase-then-seal shape,
// upgraded to golang.org/x/sync/errgroup for structured per-file error
// capture, and in original_source/src/priority/unified_analysis_utils.rs
// for the add_item/sort/file-context-adjustment contract.
package analysis

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/debtcore/debtcore/domain"
	"github.com/debtcore/debtcore/internal/callgraph"
	"github.com/debtcore/debtcore/internal/entropy"
	"github.com/debtcore/debtcore/internal/lang"
	"github.com/debtcore/debtcore/internal/purity"
)

// FileInput is one source file handed to the driver: its path and raw
// bytes. Reading files off disk is the caller's concern (a CLI entrypoint,
// a watch loop); this package only ever consumes already-read bytes.
type FileInput struct {
	Path   string
	Source []byte
}

// Driver orchestrates one full analysis run. Each Analyze call builds its
// own entropy analyzer (and memoization cache), shared only by the tasks
// of that run.
type Driver struct {
	Config   domain.Config
	Coverage *domain.CoverageData
}

// NewDriver builds a driver from a validated Config and optional coverage
// data (nil disables coverage-aware scoring entirely, scoring every
// function at 0% covered).
func NewDriver(cfg domain.Config, coverage *domain.CoverageData) *Driver {
	return &Driver{Config: cfg, Coverage: coverage}
}

// Analyze runs the full eight-step pipeline (spec.md §4.9) over files and
// returns the sorted, filtered result.
func (d *Driver) Analyze(files []FileInput) domain.UnifiedAnalysis {
	var timings []domain.PhaseTiming
	phase := func(name string, fn func()) {
		start := time.Now()
		fn()
		timings = append(timings, domain.PhaseTiming{Phase: name, DurationMS: time.Since(start).Milliseconds()})
	}

	files = filterIgnored(files, d.Config.IgnorePatterns)

	var parsed []parsedFile
	var failures []domain.ParseFailed
	phase("parse", func() {
		parsed, failures = parseAll(files)
	})

	// Step 4: a file-line-count cache built in the same sweep that already
	// holds every file's bytes in memory, so later phases never re-scan a
	// source buffer just to bound a line number against its file's length.
	fileLineCounts := make(map[string]int, len(parsed))
	for _, p := range parsed {
		fileLineCounts[p.path] = p.lineCount
	}

	var funcs []domain.FunctionMetrics
	var infos []callgraph.FuncInfo
	phase("build-functions", func() {
		funcs, infos = buildFunctions(parsed)
	})

	var graph *domain.CallGraph
	phase("call-graph", func() {
		graph = callgraph.Build(infos)
	})

	var purityResults []purity.Result
	phase("purity", func() {
		purityResults = runPurityFixedPoint(infos)
	})

	entropyAnalyzer := entropy.NewAnalyzer(d.Config.Entropy)
	var scores []domain.UnifiedScore
	var roles []domain.Role
	phase("score", func() {
		scores, roles = d.scoreAll(funcs, infos, graph, purityResults, entropyAnalyzer)
	})

	dataFlow := buildDataFlowGraph(graph, infos, purityResults)

	var analysis domain.UnifiedAnalysis
	phase("debt-items", func() {
		analysis = d.buildDebtItems(parsed, funcs, infos, scores, roles, fileLineCounts, graph)
	})

	analysis.CallGraph = graph
	analysis.DataFlowGraph = dataFlow
	analysis.Timings = timings
	analysis.ParseFailures = failures

	sortAnalysis(&analysis)

	return analysis
}

type parsedFile struct {
	path      string
	lineCount int
	source    []byte
	functions []lang.FunctionSpan
	failure   *domain.ParseFailed
}

// adapterFor picks a fresh Adapter instance per file based on its
// extension. A fresh instance per call (rather than one shared adapter) is
// required since the tree-sitter-backed adapters hold a single mutable
// parser per instance that is not safe to drive from multiple goroutines
// at once.
func adapterFor(path string) lang.Adapter {
	switch {
	case strings.HasSuffix(path, ".rs"):
		return lang.NewRustAdapter()
	case strings.HasSuffix(path, ".py"):
		return lang.NewPythonAdapter()
	case strings.HasSuffix(path, ".ts"), strings.HasSuffix(path, ".tsx"),
		strings.HasSuffix(path, ".js"), strings.HasSuffix(path, ".jsx"):
		return lang.NewTSJSAdapter()
	default:
		return nil
	}
}

// filterIgnored drops every file matching one of the ignore.patterns globs
// (§6) before it ever reaches an adapter. A pattern is checked against both
// the file's full path and its bare name, matching doublestar against
// whichever form the pattern was written for (a bare "*_test.go" as much as
// a rooted "vendor/**").
func filterIgnored(files []FileInput, patterns []string) []FileInput {
	if len(patterns) == 0 {
		return files
	}
	kept := files[:0:0]
	for _, f := range files {
		if !matchesIgnorePatterns(f.Path, patterns) {
			kept = append(kept, f)
		}
	}
	return kept
}

func matchesIgnorePatterns(path string, patterns []string) bool {
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

// parseAll runs step 1: parses every file in parallel, each on its own
// adapter instance, collecting results into an index-stable slice so no
// ordering guarantees are lost to goroutine scheduling.
func parseAll(files []FileInput) ([]parsedFile, []domain.ParseFailed) {
	results := make([]parsedFile, len(files))
	g, _ := errgroup.WithContext(context.Background())

	for i := range files {
		i := i
		g.Go(func() error {
			f := files[i]
			lineCount := bytes.Count(f.Source, []byte("\n")) + 1
			adapter := adapterFor(f.Path)
			if adapter == nil {
				results[i] = parsedFile{
					path: f.Path, lineCount: lineCount, source: f.Source,
					failure: &domain.ParseFailed{Path: f.Path, Message: "no adapter registered for this file extension"},
				}
				return nil
			}
			res := adapter.Parse(f.Path, f.Source)
			results[i] = parsedFile{
				path: f.Path, lineCount: lineCount, source: f.Source,
				functions: res.Functions, failure: res.Failure,
			}
			return nil
		})
	}
	_ = g.Wait() // every goroutine above always returns nil; errors surface as per-file Failure instead

	var failures []domain.ParseFailed
	for _, r := range results {
		if r.failure != nil {
			failures = append(failures, *r.failure)
		}
	}
	return results, failures
}

// isEntryPoint is a conservative, name/attribute-based heuristic for the
// framework-entry-point detection spec.md §4.6 asks the call-graph builder
// to treat as reachability roots: a bare "main", or an attribute mentioning
// a common web/CLI/test-runner hook.
func isEntryPoint(name string, attrs []string) bool {
	if strings.EqualFold(shortName(name), "main") {
		return true
	}
	for _, a := range attrs {
		lower := strings.ToLower(a)
		if strings.Contains(lower, "route") || strings.Contains(lower, "handler") ||
			strings.Contains(lower, "get") || strings.Contains(lower, "post") ||
			strings.Contains(lower, "command") {
			return true
		}
	}
	return false
}

func shortName(name string) string {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		return name[i+2:]
	}
	return name
}
