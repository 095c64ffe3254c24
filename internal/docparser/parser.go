// Package docparser turns saved API documentation pages into class models.
//
// A page is split into member sections by ScanSections, each section is
// reduced to a MemberInfo by ExtractMember, and the members are folded into a
// ClassInfo. Extraction never fails a whole run: unreadable pages are logged
// and skipped.
package docparser

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// IndexPage is the table-of-contents page, which documents no class.
const IndexPage = "index.html"

// ErrInputDirMissing is returned when the documentation directory does not exist.
var ErrInputDirMissing = errors.New("documentation directory not found")

// Parser extracts class models from documentation pages.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a parser that reports skipped input through logger.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// pageState is threaded through the section fold of a single page.
type pageState struct {
	members   map[string]MemberInfo
	extends   string
	ancestors []string // every distinct ancestor seen, in order
	err       error
}

func (s pageState) step(sec Section) pageState {
	if s.err != nil {
		return s
	}
	member, ok, err := ExtractMember(sec)
	if err != nil {
		s.err = err
		return s
	}
	if !ok {
		return s
	}
	s.members[member.Name] = member
	if member.InheritedFrom != "" {
		if s.extends == "" {
			s.extends = member.InheritedFrom
		}
		if !slices.Contains(s.ancestors, member.InheritedFrom) {
			s.ancestors = append(s.ancestors, member.InheritedFrom)
		}
	}
	return s
}

// ParsePage builds the model for class name from the markup of its page.
func (p *Parser) ParsePage(name, page string) (*ClassInfo, error) {
	state := pageState{members: make(map[string]MemberInfo)}
	for _, sec := range ScanSections(page) {
		state = state.step(sec)
	}
	if state.err != nil {
		return nil, state.err
	}

	if len(state.ancestors) > 1 {
		p.logger.Debug("members inherit from several classes, keeping the first",
			"class", name, "extends", state.extends, "ancestors", strings.Join(state.ancestors, ","))
	}

	class := NewClassInfo(name)
	class.Members = state.members
	class.Extends = state.extends
	class.Description = classDescription(Prelude(page))
	return class, nil
}

// ParseFile parses one saved page. The class name is the file name without
// its extension.
func (p *Parser) ParseFile(path string) (class *ClassInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Debug("parser panic", "file", path, "stack", string(debug.Stack()))
			class, err = nil, fmt.Errorf("parse %s: %v", path, r)
		}
	}()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	class, err = p.ParsePage(name, string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return class, nil
}

// ParseDirectory parses every *.html page in dir, in file name order,
// skipping the index page. Pages that fail to parse or document no members
// are logged and left out of the result.
func (p *Parser) ParseDirectory(dir string) ([]*ClassInfo, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputDirMissing, dir)
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInputDirMissing, dir)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	sort.Strings(files)

	var classes []*ClassInfo
	for _, file := range files {
		base := filepath.Base(file)
		if base == IndexPage {
			continue
		}

		class, err := p.ParseFile(file)
		if err != nil {
			p.logger.Error("skipping page", "file", base, "error", err)
			continue
		}
		if len(class.Members) == 0 {
			p.logger.Warn("no members found", "file", base)
			continue
		}

		p.logger.Info("parsed page", "file", base, "class", class.Name, "members", len(class.Members))
		classes = append(classes, class)
	}
	return classes, nil
}

// classDescription returns the first paragraph of the class-level
// description block.
func classDescription(prelude string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(prelude))
	if err != nil {
		return ""
	}
	return firstParagraph(doc.Find("div.class-description").First())
}
