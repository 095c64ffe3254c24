package docparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanSections(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		wantIDs []string
		check   func(t *testing.T, sections []Section)
	}{
		{
			name:    "no headers",
			page:    `<html><body><p>nothing here</p></body></html>`,
			wantIDs: []string{},
		},
		{
			name:    "last section runs to end of input",
			page:    `<h4 class="name" id="a">a</h4><p>one</p><h4 class="name" id="b">b</h4><p>two`,
			wantIDs: []string{"a", "b"},
			check: func(t *testing.T, sections []Section) {
				assert.Equal(t, `<h4 class="name" id="a">a</h4><p>one</p>`, sections[0].Text)
				assert.Equal(t, `<h4 class="name" id="b">b</h4><p>two`, sections[1].Text)
			},
		},
		{
			name:    "horizontal rule ends a section",
			page:    `<h4 class="name" id="a">a</h4><p>one</p><hr><footer>x</footer>`,
			wantIDs: []string{"a"},
			check: func(t *testing.T, sections []Section) {
				assert.Equal(t, `<h4 class="name" id="a">a</h4><p>one</p>`, sections[0].Text)
			},
		},
		{
			name:    "headers without id or with another class are ignored",
			page:    `<h4 class="name">x</h4><h4 class="title" id="t">t</h4><H4 CLASS="name" ID="c">c</H4>`,
			wantIDs: []string{"c"},
		},
		{
			name:    "attribute order does not matter",
			page:    `<h4 id="first" class="name">first</h4>`,
			wantIDs: []string{"first"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections := ScanSections(tt.page)
			ids := make([]string, 0, len(sections))
			for _, s := range sections {
				ids = append(ids, s.MemberID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			if tt.check != nil {
				require.Len(t, sections, len(tt.wantIDs))
				tt.check(t, sections)
			}
		})
	}
}

func TestPrelude(t *testing.T) {
	page := `<div class="class-description"><p>About</p></div><h4 class="name" id="a">a</h4>`
	assert.Equal(t, `<div class="class-description"><p>About</p></div>`, Prelude(page))
	assert.Equal(t, "<p>plain</p>", Prelude("<p>plain</p>"))
}
