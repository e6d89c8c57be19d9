package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/disclosures/catalog"
	"github.com/deemkeen/disclosures/db"
	"github.com/deemkeen/disclosures/ui/common"
	"github.com/deemkeen/disclosures/util"
)

func setupMain(t *testing.T, isAdmin bool) MainModel {
	t.Helper()
	database, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	conf := &util.AppConfig{}
	conf.Conf.DefaultPageId = 1
	m := NewModel(catalog.NewService(db.NewStore(database)), conf, isAdmin, 120, 40)
	next, _ := m.Update(m.readerModel.Init()())
	return next.(MainModel)
}

func update(m MainModel, msg tea.Msg) (MainModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(MainModel), cmd
}

func TestTabIgnoredForReaders(t *testing.T) {
	m := setupMain(t, false)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != common.ReaderView {
		t.Error("Non-admin sessions must stay on the reader")
	}
	if strings.Contains(m.View(), "YÖNETİCİ") {
		t.Error("Non-admin header must not show the admin badge")
	}
}

func TestTabSwitchesToAdmin(t *testing.T) {
	m := setupMain(t, true)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != common.AdminPanelView {
		t.Fatal("Expected admin panel after tab")
	}
	if !strings.Contains(m.View(), "yönetim paneli") {
		t.Error("Expected admin view")
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != common.ReaderView {
		t.Error("Expected reader after shift+tab")
	}
}

func TestCompletionDialogResets(t *testing.T) {
	m := setupMain(t, false)

	m, _ = update(m, common.CompletedMsg{})
	if m.state != common.CompletionView {
		t.Fatal("Expected completion dialog")
	}
	if !strings.Contains(m.View(), "Tebrikler!") {
		t.Error("Expected congratulation message")
	}

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Expected reset command")
	}
	m, _ = update(m, cmd())
	if m.state != common.ReaderView {
		t.Error("Expected reader after reset")
	}
}

func TestTerminalTooSmall(t *testing.T) {
	m := setupMain(t, false)

	m, _ = update(m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.View(), "Terminal çok küçük") {
		t.Error("Expected size warning")
	}
}
