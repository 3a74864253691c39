package slugx_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskerra/taskerra/pkg/slugx"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Development Team", "development-team"},
		{"diacritics", "Recuperação de Senha", "recuperacao-de-senha"},
		{"special characters", "Q4 Roadmap (draft!)", "q4-roadmap-draft"},
		{"collapses hyphen runs", "a --  b", "a-b"},
		{"trims edges", "  -hello world-  ", "hello-world"},
		{"numbers kept", "Sprint 42", "sprint-42"},
		{"already a slug", "already-a-slug", "already-a-slug"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, slugx.Slugify(tt.in))
		})
	}
}
