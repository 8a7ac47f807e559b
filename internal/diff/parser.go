package diff

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kmacinski/vdiff/internal/log"
)

// Probe reports whether a path exists. It decides whether the b/ prefix of a
// "+++" header is a diff marker or part of the real path.
type Probe func(path string) bool

// StatProbe returns a Probe that stats paths relative to root.
func StatProbe(root string) Probe {
	return func(path string) bool {
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		_, err := os.Stat(path)
		return err == nil
	}
}

// Option configures a Parser.
type Option func(*Parser)

// WithProbe sets the path existence probe. A nil probe keeps paths unstripped.
func WithProbe(p Probe) Option {
	return func(ps *Parser) {
		ps.probe = p
	}
}

// Parser builds a Document from raw diff lines in a single forward pass.
type Parser struct {
	probe Probe

	lines         []Line
	currentFile   string
	currentLineNo int
	abSeen        bool
	maxLineLength int
	malformed     int
}

// NewParser returns a parser that probes the current directory by default.
func NewParser(opts ...Option) *Parser {
	p := &Parser{probe: StatProbe(".")}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Feed consumes one raw line. Trailing "\n" or "\r\n" is stripped.
func (p *Parser) Feed(raw string) {
	text := strings.TrimSuffix(raw, "\n")
	text = strings.TrimSuffix(text, "\r")

	line := Line{Kind: Classify(text), Text: text}

	switch line.Kind {
	case KindFileHeader:
		if strings.HasPrefix(text, "---") {
			if strings.HasPrefix(text, "--- a/") {
				p.abSeen = true
			}
		} else {
			p.currentFile = p.newFilePath(text)
		}
	case KindHunkSeparator:
		p.currentLineNo = hunkStart(text)
		if p.currentLineNo == UnknownLine {
			p.malformed++
			log.Warn(log.CatParse, "malformed hunk header", "line", len(p.lines)+1, "text", text)
		}
	case KindAddition, KindContext:
		line.Source = &Source{File: p.currentFile, Line: p.currentLineNo}
		if p.currentLineNo != UnknownLine {
			p.currentLineNo++
		}
	case KindDeletion:
		line.Source = &Source{File: p.currentFile, Line: p.currentLineNo}
	}

	p.maxLineLength = max(p.maxLineLength, DisplayWidth(text))
	p.lines = append(p.lines, line)
}

// newFilePath extracts the path of a "+++" header. The b/ prefix is only
// dropped when the diff used a/ on the "---" side and the stripped path exists.
func (p *Parser) newFilePath(text string) string {
	if len(text) <= 4 {
		return ""
	}
	path := text[4:]
	if i := strings.IndexByte(path, '\t'); i >= 0 {
		path = path[:i]
	}
	if p.abSeen && p.probe != nil && strings.HasPrefix(path, "b/") {
		if stripped := path[2:]; p.probe(stripped) {
			path = stripped
		}
	}
	return path
}

// Document returns the lines parsed so far. The parser must not be fed afterwards.
func (p *Parser) Document() *Document {
	return &Document{lines: p.lines, maxLineLength: p.maxLineLength}
}

// Malformed returns the number of hunk headers whose start line could not be read.
func (p *Parser) Malformed() int {
	return p.malformed
}

// Parse reads r to completion and returns the parsed document.
// An input without lines yields an empty document, not an error.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	p := NewParser(opts...)
	br := bufio.NewReader(r)
	for {
		s, err := br.ReadString('\n')
		if s != "" {
			p.Feed(s)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading diff: %w", err)
		}
	}
	doc := p.Document()
	log.Debug(log.CatParse, "parsed diff", "lines", doc.Len(), "max_width", doc.MaxLineLength(), "malformed_hunks", p.Malformed())
	return doc, nil
}

// hunkStart reads the new-file start line from "@@ -a,b +c,d @@".
// It returns UnknownLine when the header is malformed.
func hunkStart(text string) int {
	fields := strings.Fields(text)
	if len(fields) < 3 {
		return UnknownLine
	}
	num, _, _ := strings.Cut(fields[2], ",")
	n, err := strconv.Atoi(num)
	if err != nil || n < 0 {
		return UnknownLine
	}
	return n
}
