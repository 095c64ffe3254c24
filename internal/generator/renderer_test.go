package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/svtypes/internal/docparser"
	"github.com/example/svtypes/internal/typemap"
)

func newRenderer() *Renderer {
	return NewRenderer(typemap.New(typemap.DefaultOverrides()))
}

func noteClass() *docparser.ClassInfo {
	c := docparser.NewClassInfo("Note")
	c.Members["getAttributes"] = docparser.MemberInfo{
		ID:          "getAttributes",
		Name:        "getAttributes",
		Description: "Get all note attributes.",
		ReturnType:  "object",
		IsProperty:  true,
	}
	return c
}

func trackClass() *docparser.ClassInfo {
	c := docparser.NewClassInfo("Track")
	c.Extends = "NestedObject"
	c.Members["getIndexInParent"] = docparser.MemberInfo{
		Name:          "getIndexInParent",
		ReturnType:    "number",
		InheritedFrom: "NestedObject",
	}
	return c
}

func automationClass() *docparser.ClassInfo {
	c := docparser.NewClassInfo("Automation")
	c.Description = "A set of control points."
	c.Extends = "NestedObject"
	c.Members["removeAll"] = docparser.MemberInfo{Name: "removeAll", ReturnType: docparser.VoidType}
	c.Members["add"] = docparser.MemberInfo{
		Name:        "add",
		Description: "Add a control point.",
		Parameters: []docparser.Parameter{
			{Name: "b", Type: "number", Description: "Position in blicks."},
			{Name: "v", Type: "number"},
		},
		ReturnType: "boolean",
	}
	c.Members["getAllPoints"] = docparser.MemberInfo{
		Name:       "getAllPoints",
		ReturnType: "Array.<Array.<number>>",
	}
	c.Members["getParent"] = docparser.MemberInfo{
		Name:              "getParent",
		ReturnType:        "Group",
		ReturnDescription: "the parent `Group`, or `undefined` when detached",
	}
	c.Members["QUARTER"] = docparser.MemberInfo{
		Name:       "QUARTER",
		ReturnType: "number",
		IsStatic:   true,
		IsProperty: true,
	}
	return c
}

func TestRenderEmpty(t *testing.T) {
	out, err := newRenderer().Render(nil)
	require.NoError(t, err)

	assert.Equal(t, Header+"\n\n"+strings.TrimSpace(preamble)+"\n", out)
}

func TestRenderPropertyWithOverride(t *testing.T) {
	out, err := newRenderer().Render([]*docparser.ClassInfo{noteClass()})
	require.NoError(t, err)

	want := `declare class Note {
  /**
   * Get all note attributes.
   * @returns {NoteAttributes}
   */
  getAttributes: NoteAttributes;
}
`
	assert.True(t, strings.HasSuffix(out, "\n\n"+want), "got:\n%s", out)
}

func TestRenderOmitsInheritedMembers(t *testing.T) {
	out, err := newRenderer().Render([]*docparser.ClassInfo{trackClass()})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(out, "\n\ndeclare class Track extends NestedObject {\n}\n"), "got:\n%s", out)
	assert.NotContains(t, out, "getIndexInParent")
}

func TestRenderMembers(t *testing.T) {
	out, err := newRenderer().Render([]*docparser.ClassInfo{automationClass()})
	require.NoError(t, err)

	want := `/**
 * A set of control points.
 */
declare class Automation extends NestedObject {
  /**
   * @returns {number}
   */
  static readonly QUARTER: number;

  /**
   * Add a control point.
   * @param {number} b Position in blicks.
   * @param {number} v
   * @returns {boolean}
   */
  add(b: number, v: number): boolean;

  /**
   * @returns {number[][]}
   */
  getAllPoints(): number[][];

  /**
   * @returns {Group | undefined} the parent ` + "`Group`, or `undefined`" + ` when detached
   */
  getParent(): Group | undefined;

  removeAll(): void;
}
`
	assert.True(t, strings.HasSuffix(out, "\n\n"+want), "got:\n%s", out)
}

func TestRenderParamOverride(t *testing.T) {
	c := docparser.NewClassInfo("SV")
	c.Members["showCustomDialog"] = docparser.MemberInfo{
		Name:       "showCustomDialog",
		Parameters: []docparser.Parameter{{Name: "form", Type: "object"}},
		ReturnType: "object",
	}

	out, err := newRenderer().Render([]*docparser.ClassInfo{c})
	require.NoError(t, err)

	assert.Contains(t, out, "   * @param {Form} form\n")
	assert.Contains(t, out, "  showCustomDialog(form: Form): any;\n")
}

func TestRenderOrdersClasses(t *testing.T) {
	input := []*docparser.ClassInfo{trackClass(), noteClass(), automationClass()}

	out, err := newRenderer().Render(input)
	require.NoError(t, err)

	automation := strings.Index(out, "declare class Automation")
	note := strings.Index(out, "declare class Note")
	track := strings.Index(out, "declare class Track")
	require.True(t, automation > 0 && note > 0 && track > 0)
	assert.Less(t, automation, note)
	assert.Less(t, note, track)

	// caller's slice is left alone
	assert.Equal(t, "Track", input[0].Name)
	assert.Equal(t, "Note", input[1].Name)
}

func TestRenderIsStable(t *testing.T) {
	r := newRenderer()
	first, err := r.Render([]*docparser.ClassInfo{automationClass(), noteClass()})
	require.NoError(t, err)
	second, err := r.Render([]*docparser.ClassInfo{noteClass(), automationClass()})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNewRendererWithoutNormalizer(t *testing.T) {
	out, err := NewRenderer(nil).Render([]*docparser.ClassInfo{noteClass()})
	require.NoError(t, err)

	assert.Contains(t, out, "  getAttributes: any;\n")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "synthesizer-v-api.d.ts")
	r := newRenderer()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	classes := []*docparser.ClassInfo{noteClass(), trackClass()}
	require.NoError(t, r.WriteFile(path, classes))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := r.Render(classes)
	require.NoError(t, err)
	assert.Equal(t, want, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}
