package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpandMultiValueArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "single values unchanged",
			args: []string{"-r", "rules", "-m", "http://x", "-t", "a.md"},
			want: []string{"-r", "rules", "-m", "http://x", "-t", "a.md"},
		},
		{
			name: "values after one flag",
			args: []string{"-r", "r1", "r2", "--tasklist", "a.md", "b.md", "c.md"},
			want: []string{"-r", "r1", "-r", "r2", "--tasklist", "a.md", "--tasklist", "b.md", "--tasklist", "c.md"},
		},
		{
			name: "inline value then bare values",
			args: []string{"--mcp=http://a", "http://b"},
			want: []string{"--mcp=http://a", "--mcp", "http://b"},
		},
		{
			name: "other flags end the run",
			args: []string{"-t", "a.md", "--timeout", "5s", "-t", "b.md"},
			want: []string{"-t", "a.md", "--timeout", "5s", "-t", "b.md"},
		},
		{
			name: "subcommand first",
			args: []string{"serve", "-t", "a.md", "b.md"},
			want: []string{"serve", "-t", "a.md", "-t", "b.md"},
		},
		{
			name: "values with commas are untouched",
			args: []string{"-t", "notes, draft.md"},
			want: []string{"-t", "notes, draft.md"},
		},
		{
			name: "double dash stops rewriting",
			args: []string{"-t", "a.md", "--", "b.md"},
			want: []string{"-t", "a.md", "--", "b.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, expandMultiValueArgs(tt.args)); diff != "" {
				t.Errorf("expandMultiValueArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
