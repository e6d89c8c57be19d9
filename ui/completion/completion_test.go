package completion

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/disclosures/ui/common"
)

func TestEnterResetsProgress(t *testing.T) {
	m := InitialModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Expected reset command")
	}
	if _, ok := cmd().(common.ResetProgressMsg); !ok {
		t.Error("Expected ResetProgressMsg")
	}
}

func TestOtherKeysIgnored(t *testing.T) {
	m := InitialModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd != nil {
		t.Error("Expected no command for unrelated key")
	}
}

func TestView_ContainsMessage(t *testing.T) {
	view := InitialModel().ViewWithWidth(100, 30)

	for _, want := range []string{"Tebrikler!", "Tüm zorunlu bilgiler okundu", "Tamam, Sıfırla"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
}
