package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/deemkeen/disclosures/catalog"
	"github.com/deemkeen/disclosures/db"
	"github.com/deemkeen/disclosures/domain"
	"github.com/deemkeen/disclosures/util"
)

// mockSession implements cli.Session for testing
type mockSession struct {
	reader io.Reader
	writer *bytes.Buffer
}

func newMockSession(input string) *mockSession {
	return &mockSession{
		reader: strings.NewReader(input),
		writer: &bytes.Buffer{},
	}
}

func (m *mockSession) Write(p []byte) (n int, err error) {
	return m.writer.Write(p)
}

func (m *mockSession) Read(p []byte) (n int, err error) {
	return m.reader.Read(p)
}

func newTestHandler(t *testing.T, isAdmin bool) (*Handler, *catalog.Service, *bytes.Buffer) {
	t.Helper()
	database, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	svc := catalog.NewService(db.NewStore(database))
	session := newMockSession("")
	conf := &util.AppConfig{}
	conf.Conf.DefaultPageId = 2

	return NewHandler(session, svc, isAdmin, conf), svc, session.writer
}

func TestExecute_Help(t *testing.T) {
	handler, _, output := newTestHandler(t, false)

	if err := handler.Execute([]string{"--help"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	result := output.String()
	for _, want := range []string{"disclosures CLI", "show [pageId]", "blocks -c <id>"} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected help output to contain %q, got: %s", want, result)
		}
	}
}

func TestExecute_HelpJSON(t *testing.T) {
	handler, _, output := newTestHandler(t, false)

	if err := handler.Execute([]string{"--help", "--json"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var helpResp HelpResponse
	if err := json.Unmarshal(output.Bytes(), &helpResp); err != nil {
		t.Fatalf("Expected valid JSON, got error: %v, output: %s", err, output.String())
	}
	if len(helpResp.Commands) != 6 {
		t.Errorf("Expected 6 commands in help response, got %d", len(helpResp.Commands))
	}
}

func TestExecute_UnknownCommand(t *testing.T) {
	handler, _, _ := newTestHandler(t, false)

	err := handler.Execute([]string{"unknowncommand"})
	if err == nil {
		t.Fatal("Expected error for unknown command")
	}
	if !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("Expected 'unknown command' error, got: %v", err)
	}
}

func TestExecute_NoCommand(t *testing.T) {
	handler, _, output := newTestHandler(t, false)

	if err := handler.Execute([]string{}); err != nil {
		t.Fatalf("Expected no error (should show help), got: %v", err)
	}
	if !strings.Contains(output.String(), "disclosures CLI") {
		t.Errorf("Expected help output when no command given, got: %s", output.String())
	}
}

func TestParseGlobalFlags(t *testing.T) {
	tests := []struct {
		name         string
		input        []string
		wantArgs     []string
		wantJSONMode bool
	}{
		{
			name:         "no flags",
			input:        []string{"show", "1"},
			wantArgs:     []string{"show", "1"},
			wantJSONMode: false,
		},
		{
			name:         "json flag at end",
			input:        []string{"show", "1", "--json"},
			wantArgs:     []string{"show", "1"},
			wantJSONMode: true,
		},
		{
			name:         "json flag at start",
			input:        []string{"--json", "blocks", "-c", "retention"},
			wantArgs:     []string{"blocks", "-c", "retention"},
			wantJSONMode: true,
		},
		{
			name:         "short json flag",
			input:        []string{"pages", "-j"},
			wantArgs:     []string{"pages"},
			wantJSONMode: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotArgs, gotJSON := parseGlobalFlags(tt.input)

			if gotJSON != tt.wantJSONMode {
				t.Errorf("parseGlobalFlags() jsonMode = %v, want %v", gotJSON, tt.wantJSONMode)
			}
			if strings.Join(gotArgs, " ") != strings.Join(tt.wantArgs, " ") {
				t.Errorf("parseGlobalFlags() args = %v, want %v", gotArgs, tt.wantArgs)
			}
		})
	}
}

func TestPages_JSON(t *testing.T) {
	handler, _, output := newTestHandler(t, false)

	if err := handler.Execute([]string{"pages", "-j"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var resp PagesResponse
	if err := json.Unmarshal(output.Bytes(), &resp); err != nil {
		t.Fatalf("Expected valid JSON: %v", err)
	}
	if resp.Count != 3 || len(resp.Pages[1].Categories) != 4 {
		t.Errorf("Unexpected pages response: %+v", resp)
	}
}

func TestShow_DefaultPage(t *testing.T) {
	handler, _, output := newTestHandler(t, false)

	if err := handler.Execute([]string{"show", "--json"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var resp ShowResponse
	if err := json.Unmarshal(output.Bytes(), &resp); err != nil {
		t.Fatalf("Expected valid JSON: %v", err)
	}
	if resp.Page.ID != 2 {
		t.Errorf("Expected default page 2, got %d", resp.Page.ID)
	}
	if len(resp.Groups) != 4 || resp.Total != 12 {
		t.Errorf("Expected 4 groups with 12 blocks, got %d groups, %d blocks", len(resp.Groups), resp.Total)
	}
	if resp.Groups[0].Blocks[0].Content == "" {
		t.Error("Expected block content in show output")
	}
}

func TestShow_Text(t *testing.T) {
	handler, svc, output := newTestHandler(t, false)
	page, _ := svc.Page(1)

	if err := handler.Execute([]string{"show", "1"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	result := output.String()
	if !strings.Contains(result, page.Title) {
		t.Errorf("Expected page title in output, got: %s", result)
	}
	if !strings.Contains(result, "== ") {
		t.Errorf("Expected category headings, got: %s", result)
	}
}

func TestShow_InvalidPage(t *testing.T) {
	handler, _, _ := newTestHandler(t, false)

	if err := handler.Execute([]string{"show", "abc"}); err == nil {
		t.Error("Expected error for non-numeric page id")
	}
	if err := handler.Execute([]string{"show", "99"}); err == nil {
		t.Error("Expected error for unknown page")
	}
}

func TestBlocks_Filters(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		count int
	}{
		{"all active", []string{"blocks"}, 12},
		{"one category", []string{"blocks", "-c", "retention"}, 3},
		{"unknown category", []string{"blocks", "--category", "yok"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _, output := newTestHandler(t, false)
			if err := handler.Execute(append(tt.args, "--json")); err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			var resp BlocksResponse
			if err := json.Unmarshal(output.Bytes(), &resp); err != nil {
				t.Fatalf("Expected valid JSON: %v", err)
			}
			if resp.Count != tt.count {
				t.Errorf("Expected %d blocks, got %d", tt.count, resp.Count)
			}
		})
	}
}

func TestBlocks_InactiveNeedsAll(t *testing.T) {
	handler, svc, output := newTestHandler(t, false)
	if _, err := svc.ToggleActive(1); err != nil {
		t.Fatal(err)
	}

	handler.Execute([]string{"blocks", "-j"})
	var resp BlocksResponse
	json.Unmarshal(output.Bytes(), &resp)
	if resp.Count != 11 {
		t.Errorf("Expected 11 active blocks, got %d", resp.Count)
	}

	output.Reset()
	handler.Execute([]string{"blocks", "--all", "-j"})
	json.Unmarshal(output.Bytes(), &resp)
	if resp.Count != 12 {
		t.Errorf("Expected 12 blocks with --all, got %d", resp.Count)
	}
}

func TestBlocks_MissingFlagValue(t *testing.T) {
	handler, _, _ := newTestHandler(t, false)

	if err := handler.Execute([]string{"blocks", "-c"}); err == nil {
		t.Error("Expected error for -c without value")
	}
}

func TestCategories_Text(t *testing.T) {
	handler, _, output := newTestHandler(t, false)

	if err := handler.Execute([]string{"categories"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(output.String(), "sifir-satis") || !strings.Contains(output.String(), "(5 blocks)") {
		t.Errorf("Unexpected categories output: %s", output.String())
	}
}

func TestReset(t *testing.T) {
	t.Run("requires admin", func(t *testing.T) {
		handler, _, _ := newTestHandler(t, false)
		if err := handler.Execute([]string{"reset", "--yes"}); err != errNotAdmin {
			t.Errorf("Expected errNotAdmin, got %v", err)
		}
	})

	t.Run("requires confirmation", func(t *testing.T) {
		handler, svc, _ := newTestHandler(t, true)
		svc.DeleteBlock(1)
		if err := handler.Execute([]string{"reset"}); err == nil {
			t.Error("Expected error without --yes")
		}
		if len(svc.Blocks()) != 11 {
			t.Error("Reset must not run without confirmation")
		}
	})

	t.Run("restores defaults", func(t *testing.T) {
		handler, svc, output := newTestHandler(t, true)
		svc.DeleteBlock(1)
		if err := handler.Execute([]string{"reset", "--yes", "-j"}); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if len(svc.Blocks()) != 12 {
			t.Errorf("Expected 12 blocks after reset, got %d", len(svc.Blocks()))
		}
		var resp ResetResponse
		if err := json.Unmarshal(output.Bytes(), &resp); err != nil || !resp.Reset {
			t.Errorf("Unexpected reset response: %s", output.String())
		}
	})
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		date domain.Date
		want string
	}{
		{"zero", domain.Date{}, "unknown"},
		{"today", domain.NewDate(now), "today"},
		{"yesterday", domain.NewDate(now.AddDate(0, 0, -1)), "1 day ago"},
		{"week", domain.NewDate(now.AddDate(0, 0, -7)), "7 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAge(tt.date, now); got != tt.want {
				t.Errorf("FormatAge() = %s, want %s", got, tt.want)
			}
		})
	}
}
