package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/bmark/internal/commands"
	"github.com/user/bmark/internal/store"
)

func newTestModel(seed ...string) model {
	s := store.NewWithSeed(seed)
	return initialModel(commands.NewRegistry(commands.NewHandlers(s), 1))
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitialModel_ListFocused(t *testing.T) {
	m := newTestModel()

	if m.adding {
		t.Error("expected adding=false on init, got true")
	}
	if m.input.Focused() {
		t.Error("expected input blurred on init, got focused")
	}
}

func TestInit_LoadsBookmarks(t *testing.T) {
	m := newTestModel("https://a.example", "https://b.example")

	msg := m.Init()()
	newModel, _ := m.Update(msg)
	m = newModel.(model)

	if got := len(m.list.Items()); got != 2 {
		t.Fatalf("expected 2 items, got %d", got)
	}
	if item := m.list.Items()[0].(bookmarkItem); item.url != "https://a.example" {
		t.Errorf("expected first item https://a.example, got %s", item.url)
	}
}

func TestUpdate_AFocusesInput(t *testing.T) {
	m := newTestModel()

	newModel, _ := m.Update(runes("a"))
	m = newModel.(model)

	if !m.adding {
		t.Error("expected adding=true after pressing a, got false")
	}
	if !m.input.Focused() {
		t.Error("expected input focused after pressing a")
	}
}

func TestUpdate_EscCancelsInput(t *testing.T) {
	m := newTestModel()
	m.adding = true
	m.input.Focus()
	m.input.SetValue("https://half.example")

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = newModel.(model)

	if m.adding {
		t.Error("expected adding=false after pressing Esc, got true")
	}
	if m.input.Focused() {
		t.Error("expected input blurred after pressing Esc")
	}
	if m.input.Value() != "" {
		t.Errorf("expected input cleared, got %q", m.input.Value())
	}
	if cmd != nil {
		t.Error("expected no command after Esc")
	}
}

func TestUpdate_EnterAddsBookmark(t *testing.T) {
	m := newTestModel()
	m.adding = true
	m.input.Focus()
	m.input.SetValue("https://a.example")

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = newModel.(model)
	if cmd == nil {
		t.Fatal("expected add command after Enter")
	}

	added, ok := cmd().(addedMsg)
	if !ok {
		t.Fatal("expected addedMsg from add command")
	}
	if added.err != nil {
		t.Fatalf("unexpected add error: %v", added.err)
	}

	newModel, cmd = m.Update(added)
	m = newModel.(model)
	if m.status != "Added: https://a.example" {
		t.Errorf("unexpected status %q", m.status)
	}

	newModel, _ = m.Update(cmd())
	m = newModel.(model)
	if got := len(m.list.Items()); got != 1 {
		t.Fatalf("expected 1 item after add, got %d", got)
	}
}

func TestUpdate_EnterIgnoresBlankInput(t *testing.T) {
	m := newTestModel()
	m.adding = true
	m.input.Focus()
	m.input.SetValue("   ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command for blank input")
	}
}

func TestUpdate_QQuitsOnlyFromList(t *testing.T) {
	m := newTestModel()

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command when pressing q from list mode")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg from q in list mode")
	}

	m.adding = true
	m.input.Focus()
	newModel, _ := m.Update(runes("q"))
	m = newModel.(model)
	if m.input.Value() != "q" {
		t.Errorf("expected q typed into input, got %q", m.input.Value())
	}
}

func TestUpdate_ErrorIsShownNotFatal(t *testing.T) {
	m := newTestModel()

	newModel, _ := m.Update(addedMsg{url: "https://a.example", err: errLock{}})
	m = newModel.(model)

	if m.err == nil {
		t.Fatal("expected error to be kept on the model")
	}
	// the shell keeps accepting input after a failure
	newModel, _ = m.Update(runes("a"))
	m = newModel.(model)
	if !m.adding {
		t.Error("expected shell to stay usable after an error")
	}
	if m.err != nil {
		t.Error("expected error cleared when starting a new add")
	}
}

func TestUpdate_JKNavigatesInListMode(t *testing.T) {
	m := newTestModel("https://a.example", "https://b.example")
	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = newModel.(model)
	newModel, _ = m.Update(m.Init()())
	m = newModel.(model)

	newModel, _ = m.Update(runes("j"))
	m = newModel.(model)
	if m.list.Index() != 1 {
		t.Errorf("expected index 1 after j, got %d", m.list.Index())
	}

	newModel, _ = m.Update(runes("k"))
	m = newModel.(model)
	if m.list.Index() != 0 {
		t.Errorf("expected index 0 after k, got %d", m.list.Index())
	}
}

type errLock struct{}

func (errLock) Error() string { return "Failed to lock state" }

func TestBrowserCommand(t *testing.T) {
	const url = "https://x.example/?a=1&calc"

	cases := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{"darwin", "open", []string{url}},
		{"linux", "xdg-open", []string{url}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", url}},
	}

	for _, tc := range cases {
		t.Run(tc.goos, func(t *testing.T) {
			name, args, err := browserCommand(tc.goos, url)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if name != tc.wantName {
				t.Errorf("got program %q, want %q", name, tc.wantName)
			}
			if len(args) != len(tc.wantArgs) {
				t.Fatalf("got args %q, want %q", args, tc.wantArgs)
			}
			for i := range args {
				if args[i] != tc.wantArgs[i] {
					t.Errorf("arg %d: got %q, want %q", i, args[i], tc.wantArgs[i])
				}
			}
		})
	}

	if _, _, err := browserCommand("plan9", url); err == nil {
		t.Error("expected error for unsupported OS")
	}
}
