package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Unreleased is the version heading for changes not yet shipped.
const Unreleased = "Unreleased"

var linkDefPattern = regexp.MustCompile(`^\[[^\]]+\]:\s+\S+\s*$`)

// Entry is one version section of a changelog.
type Entry struct {
	Version string
	Date    string
	Content string
}

// Released reports whether the entry is for a shipped version.
func (e Entry) Released() bool {
	return !strings.EqualFold(e.Version, Unreleased)
}

// Changelog is a parsed Keep a Changelog file.
type Changelog struct {
	Entries []Entry
	Links   map[string]string
}

// FindVersion finds an entry by version, ignoring a leading "v".
func (c *Changelog) FindVersion(version string) *Entry {
	version = strings.TrimPrefix(version, "v")

	for i := range c.Entries {
		if strings.TrimPrefix(c.Entries[i].Version, "v") == version {
			return &c.Entries[i]
		}
	}
	return nil
}

// ParseChangelog splits source at its level-2 headings. Link reference
// definitions are collected into Links and removed from entry content.
func ParseChangelog(source []byte) *Changelog {
	reader := text.NewReader(source)
	ctx := parser.NewContext()
	doc := md.Parser().Parse(reader, parser.WithContext(ctx))

	changelog := &Changelog{Links: make(map[string]string)}
	for _, ref := range ctx.References() {
		changelog.Links[string(ref.Label())] = string(ref.Destination())
	}

	type heading struct {
		version, date string
		start, body   int
	}
	var headings []heading

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 2 {
			return ast.WalkContinue, nil
		}

		version, date := parseVersionHeading(headingText(h, source))
		lines := h.Lines()
		var start, body int
		if lines.Len() > 0 {
			start = lineStart(source, lines.At(0).Start)
			body = lines.At(lines.Len() - 1).Stop
		}
		headings = append(headings, heading{version: version, date: date, start: start, body: body})
		return ast.WalkSkipChildren, nil
	})

	for i, h := range headings {
		end := len(source)
		if i+1 < len(headings) {
			end = headings[i+1].start
		}

		content := ""
		if h.body < end {
			content = stripLinkDefinitions(string(source[h.body:end]))
		}
		changelog.Entries = append(changelog.Entries, Entry{
			Version: h.version,
			Date:    h.date,
			Content: content,
		})
	}

	return changelog
}

// WriteChangelog renders entries, newest first, as a Keep a Changelog file.
func WriteChangelog(title string, entries []Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", title)

	for _, e := range entries {
		sb.WriteString("\n")
		switch {
		case e.Date != "":
			fmt.Fprintf(&sb, "## [%s] - %s\n", e.Version, e.Date)
		default:
			fmt.Fprintf(&sb, "## [%s]\n", e.Version)
		}
		if content := strings.TrimSpace(e.Content); content != "" {
			sb.WriteString("\n")
			sb.WriteString(content)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func headingText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(source))
		case *ast.Link:
			for lc := c.FirstChild(); lc != nil; lc = lc.NextSibling() {
				if t, ok := lc.(*ast.Text); ok {
					buf.Write(t.Segment.Value(source))
				}
			}
		}
	}
	return buf.String()
}

// parseVersionHeading reads "[1.0.0] - 2024-01-15", "1.0.0 - 2024-01-15"
// or a bare version.
func parseVersionHeading(heading string) (version, date string) {
	heading = strings.TrimSpace(heading)
	heading = strings.TrimPrefix(heading, "[")

	if idx := strings.Index(heading, "]"); idx != -1 {
		version = heading[:idx]
		rest := strings.TrimSpace(heading[idx+1:])
		if strings.HasPrefix(rest, "- ") {
			date = strings.TrimSpace(rest[2:])
		}
		return version, date
	}
	if idx := strings.Index(heading, " - "); idx != -1 {
		return strings.TrimSpace(heading[:idx]), strings.TrimSpace(heading[idx+3:])
	}
	return heading, ""
}

// lineStart returns the offset of the beginning of the line holding pos, so
// the "## " marker belongs to its own heading.
func lineStart(source []byte, pos int) int {
	if i := bytes.LastIndexByte(source[:pos], '\n'); i != -1 {
		return i + 1
	}
	return 0
}

func stripLinkDefinitions(content string) string {
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !linkDefPattern.MatchString(line) {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
