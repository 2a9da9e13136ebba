// Package coverage parses LCOV-format coverage reports (spec.md §6) into
// domain.CoverageData. LCOV gives per-function call counts (FNDA) and
// per-line hit counts (DA) but never a function's line range directly;
// this parser reconstructs each function's span by attributing every DA
// line to the nearest preceding FN record within the same SF block, the
// same technique genhtml itself uses to render per-function coverage.
package coverage

import (
	"bufio"
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/debtcore/debtcore/domain"
)

type fnRecord struct {
	line int
	name string
}

type fileState struct {
	path      string
	functions []fnRecord
	fnCounts  map[string]int // name -> FNDA count
	lineHits  map[int]int    // line -> DA count
}

func newFileState() *fileState {
	return &fileState{fnCounts: make(map[string]int), lineHits: make(map[int]int)}
}

// Parse reads an LCOV report and returns the parsed coverage data plus one
// ParseFailed per malformed record it had to skip. A malformed record
// never aborts the parse — the surrounding file's other records are still
// honored, matching spec.md §7's "malformed LCOV line" ParseError example
// ("recorded, file/line skipped, driver continues").
func Parse(data []byte) (*domain.CoverageData, []domain.ParseFailed) {
	result := &domain.CoverageData{Files: make(map[string]domain.FileCoverage)}
	var failures []domain.ParseFailed

	var cur *fileState
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "SF:"):
			cur = newFileState()
			cur.path = strings.TrimPrefix(line, "SF:")
		case strings.HasPrefix(line, "FN:"):
			if cur == nil {
				continue
			}
			rec, err := parseFN(strings.TrimPrefix(line, "FN:"))
			if err != nil {
				failures = append(failures, domain.ParseFailed{Path: cur.path, Message: err.Error()})
				continue
			}
			cur.functions = append(cur.functions, rec)
		case strings.HasPrefix(line, "FNDA:"):
			if cur == nil {
				continue
			}
			name, count, err := parseFNDA(strings.TrimPrefix(line, "FNDA:"))
			if err != nil {
				failures = append(failures, domain.ParseFailed{Path: cur.path, Message: err.Error()})
				continue
			}
			cur.fnCounts[name] = count
		case strings.HasPrefix(line, "DA:"):
			if cur == nil {
				continue
			}
			lineNo, hits, err := parseDA(strings.TrimPrefix(line, "DA:"))
			if err != nil {
				failures = append(failures, domain.ParseFailed{Path: cur.path, Message: err.Error()})
				continue
			}
			cur.lineHits[lineNo] = hits
		case line == "end_of_record":
			if cur != nil {
				result.Files[cur.path] = buildFileCoverage(cur)
			}
			cur = nil
		}
	}

	return result, failures
}

func parseFN(rest string) (fnRecord, error) {
	parts := strings.SplitN(rest, ",", 2)
	if len(parts) != 2 {
		return fnRecord{}, fmt.Errorf("malformed FN record: %q", rest)
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return fnRecord{}, fmt.Errorf("malformed FN line number: %q", rest)
	}
	return fnRecord{line: n, name: strings.TrimSpace(parts[1])}, nil
}

func parseFNDA(rest string) (string, int, error) {
	parts := strings.SplitN(rest, ",", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("malformed FNDA record: %q", rest)
	}
	count, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return "", 0, fmt.Errorf("malformed FNDA count: %q", rest)
	}
	return strings.TrimSpace(parts[1]), count, nil
}

func parseDA(rest string) (int, int, error) {
	parts := strings.SplitN(rest, ",", 2)
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("malformed DA record: %q", rest)
	}
	lineNo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("malformed DA line number: %q", rest)
	}
	// A DA record's hit count is itself comma-separated from an optional
	// checksum field lcov sometimes appends; only the count matters here.
	countField := strings.SplitN(parts[1], ",", 2)[0]
	hits, err := strconv.Atoi(strings.TrimSpace(countField))
	if err != nil {
		return 0, 0, fmt.Errorf("malformed DA hit count: %q", rest)
	}
	return lineNo, hits, nil
}

// buildFileCoverage attributes every DA line to the function whose FN
// record is the closest one at or before that line within the same file,
// then derives each function's LinesHit/LinesTotal and ExecutionCount
// (from FNDA) from that attribution.
func buildFileCoverage(f *fileState) domain.FileCoverage {
	sort.Slice(f.functions, func(i, j int) bool { return f.functions[i].line < f.functions[j].line })

	fc := domain.FileCoverage{File: f.path, Functions: make(map[string]domain.FunctionCoverage)}
	if len(f.functions) == 0 {
		return fc
	}

	totals := make(map[string]*domain.FunctionCoverage, len(f.functions))
	for _, rec := range f.functions {
		norm := domain.NormalizeFunctionName(rec.name)
		totals[norm] = &domain.FunctionCoverage{Name: norm, ExecutionCount: f.fnCounts[rec.name]}
	}

	for lineNo, hits := range f.lineHits {
		owner := ownerOf(f.functions, lineNo)
		if owner == "" {
			continue
		}
		norm := domain.NormalizeFunctionName(owner)
		fcov := totals[norm]
		fcov.LinesTotal++
		if hits > 0 {
			fcov.LinesHit++
		}
	}

	for name, fcov := range totals {
		fc.Functions[name] = *fcov
	}
	return fc
}

// ownerOf returns the name of the last function (by FN line) at or before
// lineNo, or "" if lineNo precedes every function in the file (e.g. an
// import or module-level statement outside any function body).
func ownerOf(functions []fnRecord, lineNo int) string {
	owner := ""
	for _, rec := range functions {
		if rec.line > lineNo {
			break
		}
		owner = rec.name
	}
	return owner
}
