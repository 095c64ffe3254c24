// Package generator renders parsed class models as a TypeScript declaration file.
package generator

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/example/svtypes/internal/docparser"
	"github.com/example/svtypes/internal/typemap"
)

// Header is the attribution comment at the top of every generated file.
const Header = `/**
 * Type definitions for Dreamtonics Synthesizer V Studio Scripting API
 * Generated from official documentation
 * https://resource.dreamtonics.com/scripting/index.html
 */`

// preamble holds hand-written interfaces for values the documentation only
// describes in prose.
//
//go:embed preamble.d.ts
var preamble string

const fileTemplate = `{{ .Header }}

{{ .Preamble }}
{{- range .Classes }}

{{ template "class" . }}
{{- end }}
`

const classTemplate = `{{ if .Description }}/**
 * {{ .Description }}
 */
{{ end }}declare class {{ .Name }}{{ if .Extends }} extends {{ .Extends }}{{ end }} {
{{- range $i, $m := .Members }}
{{- if $i }}
{{ end }}
{{- if $m.Doc }}
  /**
{{- range $m.Doc }}
   * {{ . }}
{{- end }}
   */
{{- end }}
  {{ $m.Signature }}
{{- end }}
}`

type fileView struct {
	Header   string
	Preamble string
	Classes  []classView
}

type classView struct {
	Name        string
	Description string
	Extends     string
	Members     []memberView
}

type memberView struct {
	Doc       []string
	Signature string
}

// Renderer turns class models into declaration text.
type Renderer struct {
	types *typemap.Normalizer
	tmpl  *template.Template
}

// NewRenderer creates a renderer that resolves types with n.
func NewRenderer(n *typemap.Normalizer) *Renderer {
	if n == nil {
		n = typemap.New(nil)
	}
	tmpl := template.Must(template.New("file").Parse(fileTemplate))
	template.Must(tmpl.New("class").Parse(classTemplate))
	return &Renderer{types: n, tmpl: tmpl}
}

// Render produces the declaration file. Classes are ordered by name and
// members by name; inherited members are left to their ancestor. The input
// is not modified.
func (r *Renderer) Render(classes []*docparser.ClassInfo) (string, error) {
	sorted := make([]*docparser.ClassInfo, len(classes))
	copy(sorted, classes)
	docparser.SortClasses(sorted)

	view := fileView{
		Header:   Header,
		Preamble: strings.TrimSpace(preamble),
		Classes:  make([]classView, 0, len(sorted)),
	}
	for _, class := range sorted {
		view.Classes = append(view.Classes, r.classView(class))
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render declarations: %w", err)
	}
	return buf.String(), nil
}

// WriteFile renders classes and replaces path with the result. The text is
// built in memory and moved into place, so a failed run never leaves a
// truncated file.
func (r *Renderer) WriteFile(path string, classes []*docparser.ClassInfo) error {
	content, err := r.Render(classes)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace output file: %w", err)
	}
	return nil
}

func (r *Renderer) classView(class *docparser.ClassInfo) classView {
	members := class.OwnMembers()
	view := classView{
		Name:        class.Name,
		Description: class.Description,
		Extends:     class.Extends,
		Members:     make([]memberView, 0, len(members)),
	}
	for _, m := range members {
		view.Members = append(view.Members, r.memberView(class.Name, m))
	}
	return view
}

func (r *Renderer) memberView(class string, m docparser.MemberInfo) memberView {
	returnType := r.types.Return(class, m.Name, m.ReturnType, m.ReturnDescription)

	params := make([]string, 0, len(m.Parameters))
	var doc []string
	if m.Description != "" {
		doc = append(doc, m.Description)
	}
	for _, p := range m.Parameters {
		paramType := r.types.Param(class, m.Name, p.Name, p.Type)
		params = append(params, p.Name+": "+paramType)
		doc = append(doc, joinNonEmpty("@param", "{"+paramType+"}", p.Name, p.Description))
	}
	if returnType != typemap.Void {
		doc = append(doc, joinNonEmpty("@returns", "{"+returnType+"}", m.ReturnDescription))
	}

	var sig strings.Builder
	if m.IsStatic {
		sig.WriteString("static ")
	}
	if m.IsProperty {
		if m.IsStatic {
			sig.WriteString("readonly ")
		}
		fmt.Fprintf(&sig, "%s: %s;", m.Name, returnType)
	} else {
		fmt.Fprintf(&sig, "%s(%s): %s;", m.Name, strings.Join(params, ", "), returnType)
	}

	return memberView{Doc: doc, Signature: sig.String()}
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
