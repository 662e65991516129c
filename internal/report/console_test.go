package report

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/brizzai/mcp-agent/internal/descriptor"
	"github.com/brizzai/mcp-agent/internal/models"
	"github.com/brizzai/mcp-agent/internal/rules"
	"github.com/brizzai/mcp-agent/internal/tasklist"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func TestRulesLoaded(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).RulesLoaded(&rules.Result{
		Rules: []models.Rule{
			{Source: "/r/a.sexp", Content: "(rule a)"},
			{Source: "/r/b.lisp", Content: "(rule b)"},
		},
		Skipped: []rules.Skip{{Path: "/missing", Err: rules.ErrNotDirectory}},
	})

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "/missing is not a directory, skipped"))
	assert.Contains(t, out, "Loaded 2 RAG file(s):\n\n--- File 1 ---\n(rule a)\n--------------\n\n--- File 2 ---\n(rule b)\n--------------\n")
	assert.Less(t, strings.Index(out, "/missing"), strings.Index(out, "Loaded 2"))
}

func TestRulesLoaded_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).RulesLoaded(&rules.Result{})

	assert.Equal(t, "Loaded 0 RAG file(s):\n", buf.String())
}

func TestDescriptorFetched(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf)

	console.DescriptorFetched(descriptor.Result{
		URL:        "http://a",
		Descriptor: &models.ServiceDescriptor{ServiceName: "billing"},
		Malformed:  []descriptor.MalformedEndpoint{{Index: 2, Err: descriptor.ErrMalformedEndpoint}},
	})
	console.DescriptorFetched(descriptor.Result{URL: "http://b", Err: errors.New("connection refused")})
	console.DescriptorFetched(descriptor.Result{URL: "http://c", Descriptor: &models.ServiceDescriptor{}})

	out := buf.String()
	assert.Contains(t, out, "MCP JSON loaded: service=billing")
	assert.Contains(t, out, "Skipped endpoint #3 from http://a")
	assert.Contains(t, out, "MCP request failed: connection refused")
	assert.Contains(t, out, "MCP JSON loaded: service=(unnamed)")
}

func TestDescriptorsDone(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).DescriptorsDone([]models.ServiceDescriptor{
		{ServiceName: "billing", Endpoints: []models.Endpoint{
			{Method: "GET", Path: "/invoices", Description: "List invoices"},
			{Method: "POST", Path: "/invoices", Description: "Create invoice"},
		}},
		{ServiceName: "empty"},
	})

	want := "\nMCP endpoints:\n" +
		"\n--- MCP Server 1: billing ---\n" +
		"  GET /invoices - List invoices\n" +
		"  POST /invoices - Create invoice\n" +
		"\n--- MCP Server 2: empty ---\n"
	assert.Equal(t, want, buf.String())
}

func TestTasklistLoaded(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).TasklistLoaded(&tasklist.Result{
		Content: "A\n\nB",
		Skipped: []tasklist.Skip{{Path: "/gone.md", Err: tasklist.ErrNotFound}},
	})

	out := buf.String()
	assert.Contains(t, out, "Tasklist file not found: /gone.md, skipped")
	assert.True(t, strings.HasSuffix(out, "\nCombined Tasklist content:\nA\n\nB\n"))
	assert.NotContains(t, out, NoTasklistMessage)
}

func TestTasklistLoaded_NoContent(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).TasklistLoaded(&tasklist.Result{
		Skipped: []tasklist.Skip{{Path: "/a.md", Err: tasklist.ErrNotFound}},
		Empty:   []string{"/b.md"},
	})

	out := buf.String()
	assert.Contains(t, out, NoTasklistMessage)
	assert.NotContains(t, out, "Combined Tasklist content")
}

func TestRulesLoaded_ContentPrintedVerbatim(t *testing.T) {
	var buf bytes.Buffer
	content := "(rule \"<red>not a color</>\")"
	NewConsole(&buf).RulesLoaded(&rules.Result{Rules: []models.Rule{{Content: content}}})

	assert.Contains(t, buf.String(), "\n"+content+"\n")
}
