package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		contains []string
		excludes []string
	}{
		{
			name:     "heading and emphasis",
			src:      "# Dark mode\n\nNow **on** by default.",
			contains: []string{"<h1>Dark mode</h1>", "<strong>on</strong>"},
		},
		{
			name:     "strikethrough",
			src:      "~~beta~~ stable",
			contains: []string{"<del>beta</del>"},
		},
		{
			name:     "task list",
			src:      "- [x] shipped\n- [ ] docs",
			contains: []string{`type="checkbox"`, "shipped"},
		},
		{
			name:     "raw html dropped",
			src:      "hello <script>alert(1)</script>",
			excludes: []string{"<script>"},
		},
		{
			name:     "empty",
			src:      "",
			contains: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.src)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}
