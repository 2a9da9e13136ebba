package purity

import (
	"strings"

	"github.com/debtcore/debtcore/domain"
	"github.com/debtcore/debtcore/internal/metrics"
)

// ioPattern mirrors io_detector.rs's IoPattern table: a method name,
// optionally gated on a receiver type seen immediately before the "."
// or "::" that precedes it, mapped to an operation kind. An empty
// receiver means the pattern matches regardless of receiver.
type ioPattern struct {
	receiver string
	method   string
	kind     domain.IoKind
}

var filePatterns = []ioPattern{
	{"", "read", domain.IoFile},
	{"", "write", domain.IoFile},
	{"", "read_to_string", domain.IoFile},
	{"", "read_to_end", domain.IoFile},
	{"", "write_all", domain.IoFile},
	{"File", "open", domain.IoFile},
	{"File", "create", domain.IoFile},
	{"File", "read", domain.IoFile},
	{"File", "write", domain.IoFile},
	{"File", "write_all", domain.IoFile},
	{"File", "read_to_end", domain.IoFile},
	{"File", "read_to_string", domain.IoFile},
	{"BufReader", "new", domain.IoFile},
	{"BufWriter", "new", domain.IoFile},
	{"BufReader", "read_line", domain.IoFile},
	{"BufWriter", "flush", domain.IoFile},
}

var networkPatterns = []ioPattern{
	{"TcpStream", "connect", domain.IoNetwork},
	{"TcpListener", "bind", domain.IoNetwork},
	{"TcpListener", "accept", domain.IoNetwork},
	{"UdpSocket", "bind", domain.IoNetwork},
	{"UdpSocket", "send", domain.IoNetwork},
	{"UdpSocket", "recv", domain.IoNetwork},
	{"", "get", domain.IoNetwork},
	{"", "post", domain.IoNetwork},
	{"", "put", domain.IoNetwork},
	{"", "delete", domain.IoNetwork},
	{"", "send", domain.IoNetwork},
	{"", "fetch", domain.IoNetwork},
	{"", "request", domain.IoNetwork},
}

var databasePatterns = []ioPattern{
	{"", "execute", domain.IoDB},
	{"", "query", domain.IoDB},
	{"", "prepare", domain.IoDB},
	{"", "query_as", domain.IoDB},
	{"", "fetch", domain.IoDB},
	{"", "fetch_one", domain.IoDB},
	{"", "fetch_all", domain.IoDB},
}

// consoleMacros mirrors CONSOLE_IO_MACROS: any call-shaped use of these
// names (detectIO steps over the "!" token of a macro invocation, so a
// call "println(" reads identically to a macro use "println!(") counts
// as console I/O.
var consoleMacros = map[string]bool{
	"println": true, "print": true, "eprintln": true, "eprint": true,
	"dbg": true, "write": true, "writeln": true,
}

// ioModulePaths mirrors is_io_module_path: any "::"-joined path segment
// sequence containing one of these module roots is I/O regardless of
// the trailing method name.
var ioModuleKind = map[string]domain.IoKind{
	"fs": domain.IoFile,
	"net": domain.IoNetwork,
}

// detectIO walks the token stream looking for: (a) receiver.method(...)
// or Receiver::method(...) calls matching the pattern tables above, (b)
// bare call-shaped uses of a console macro name, (c) module-path calls
// through fs/net (optionally behind tokio::/async_std:: prefixes),
// async equivalents counting the same as their sync counterparts since
// a trailing ".await" follows the call's "(" and does not change how the
// call itself is matched.
func detectIO(toks []metrics.Tok, lang domain.Language, startLine int) []domain.IoOperation {
	var ops []domain.IoOperation
	for i, t := range toks {
		next := i + 1
		if next < len(toks) && toks[next].Text == "!" {
			next++ // macro invocation: name ! (
		}
		if next >= len(toks) || toks[next].Text != "(" {
			continue
		}
		name := t.Text
		if !isIdentLike(name) {
			continue
		}

		if name == "write" || name == "writeln" {
			if precededByStdIO(toks, i) {
				ops = append(ops, domain.IoOperation{Kind: domain.IoConsole, Line: t.Line})
				continue
			}
			if name == "writeln" {
				continue
			}
			// any other write( is matched against the pattern tables below
		} else if consoleMacros[name] {
			ops = append(ops, domain.IoOperation{Kind: domain.IoConsole, Line: t.Line})
			continue
		}

		receiver := receiverBefore(toks, i)
		if kind, ok := moduleKindBefore(toks, i); ok {
			ops = append(ops, domain.IoOperation{Kind: kind, Line: t.Line})
			continue
		}
		if kind, ok := matchPattern(filePatterns, name, receiver); ok {
			ops = append(ops, domain.IoOperation{Kind: kind, Line: t.Line})
			continue
		}
		if kind, ok := matchPattern(networkPatterns, name, receiver); ok {
			ops = append(ops, domain.IoOperation{Kind: kind, Line: t.Line})
			continue
		}
		if kind, ok := matchPattern(databasePatterns, name, receiver); ok {
			ops = append(ops, domain.IoOperation{Kind: kind, Line: t.Line})
			continue
		}
	}
	return ops
}

func matchPattern(patterns []ioPattern, name, receiver string) (domain.IoKind, bool) {
	for _, p := range patterns {
		if p.method != name {
			continue
		}
		if p.receiver == "" {
			return p.kind, true
		}
		if receiver != "" && strings.Contains(receiver, p.receiver) {
			return p.kind, true
		}
	}
	return "", false
}

// receiverBefore returns the identifier immediately preceding a "." or
// "::" before the call at index i, e.g. "file" in "file.write(...)" or
// "File" in "File::create(...)".
func receiverBefore(toks []metrics.Tok, callIdx int) string {
	if callIdx < 2 {
		return ""
	}
	sep := toks[callIdx-1].Text
	if sep != "." && sep != "::" {
		return ""
	}
	return toks[callIdx-2].Text
}

// moduleKindBefore looks back through a "::"-joined path for fs/net
// roots, recognising std::, tokio::, and async_std:: prefixes (async
// variants count the same as sync per §4.5).
func moduleKindBefore(toks []metrics.Tok, callIdx int) (domain.IoKind, bool) {
	j := callIdx - 1
	var segs []string
	for j >= 1 && toks[j].Text == "::" {
		segs = append([]string{toks[j-1].Text}, segs...)
		j -= 2
	}
	for _, s := range segs {
		if kind, ok := ioModuleKind[s]; ok {
			return kind, true
		}
		if s == "stdout" || s == "stderr" || s == "stdin" {
			return domain.IoConsole, true
		}
	}
	return "", false
}

// precededByStdIO recognises write!/writeln! targeting a std::io stream,
// distinguished from an arbitrary "write(" call by the io module path
// appearing somewhere on the same line.
func precededByStdIO(toks []metrics.Tok, callIdx int) bool {
	if toks[callIdx].Text != "write" && toks[callIdx].Text != "writeln" {
		return false
	}
	line := toks[callIdx].Line
	for j := callIdx - 1; j >= 0 && toks[j].Line == line; j-- {
		if toks[j].Text == "io" {
			return true
		}
	}
	for j := callIdx + 1; j < len(toks) && toks[j].Line == line; j++ {
		if toks[j].Text == "io" {
			return true
		}
	}
	return false
}

func isIdentLike(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
