package compose

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/keyloom/internal/input/keysym"
)

// sequence is one compose definition, parsed or builtin.
type sequence struct {
	seq   []keysym.Symbol
	text  string
	final keysym.Symbol
}

// parseFile reads an XCompose-style file. Only the plain subset is
// supported: `<sym> <sym> ... : "text" [symname]` lines, `#` comments
// and blank lines. `include` lines are ignored; the builtin base
// table plays the role of the included system defaults.
func parseFile(path string) ([]sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Line: 0, Detail: "opening compose file", Err: err}
	}
	defer f.Close()
	return parseReader(f, path)
}

func parseReader(r io.Reader, path string) ([]sequence, error) {
	var defs []sequence
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "include") {
			continue
		}
		def, err := parseLine(line)
		if err != nil {
			return nil, &ParseError{Path: path, Line: lineNo, Detail: "bad sequence line", Err: err}
		}
		defs = append(defs, def)
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Path: path, Line: lineNo, Detail: "reading compose file", Err: err}
	}
	return defs, nil
}

func parseLine(line string) (sequence, error) {
	var def sequence
	rest := line

	for {
		rest = strings.TrimLeft(rest, " \t")
		if !strings.HasPrefix(rest, "<") {
			break
		}
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			return def, fmt.Errorf("unterminated symbol token")
		}
		name := strings.TrimSpace(rest[1:end])
		sym, err := keysym.ParseName(name)
		if err != nil {
			return def, err
		}
		def.seq = append(def.seq, sym)
		rest = rest[end+1:]
	}
	if len(def.seq) == 0 {
		return def, fmt.Errorf("line defines no symbol sequence")
	}

	rest = strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(rest, ":") {
		return def, fmt.Errorf("missing ':' between sequence and result")
	}
	rest = strings.TrimLeft(rest[1:], " \t")

	if strings.HasPrefix(rest, `"`) {
		text, remain, err := parseQuoted(rest)
		if err != nil {
			return def, err
		}
		def.text = text
		rest = strings.TrimLeft(remain, " \t")
	}

	if rest != "" && !strings.HasPrefix(rest, "#") {
		name := rest
		if i := strings.IndexAny(name, " \t#"); i >= 0 {
			trailing := strings.TrimLeft(name[i:], " \t")
			if trailing != "" && !strings.HasPrefix(trailing, "#") {
				return def, fmt.Errorf("unexpected trailing %q", trailing)
			}
			name = name[:i]
		}
		sym, err := keysym.ParseName(name)
		if err != nil {
			return def, err
		}
		def.final = sym
	}

	if def.text == "" && def.final == keysym.None {
		return def, fmt.Errorf("line produces neither text nor a symbol")
	}
	return def, nil
}

// parseQuoted consumes a double-quoted string starting at s[0],
// honoring \" and \\ escapes, and returns what follows it.
func parseQuoted(s string) (text, rest string, err error) {
	var b strings.Builder
	i := 1
	for i < len(s) {
		switch s[i] {
		case '\\':
			if i+1 >= len(s) {
				return "", "", fmt.Errorf("dangling escape in quoted text")
			}
			b.WriteByte(s[i+1])
			i += 2
		case '"':
			return b.String(), s[i+1:], nil
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return "", "", fmt.Errorf("unterminated quoted text")
}
