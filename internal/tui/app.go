package tui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/bmark/internal/commands"
	"github.com/user/bmark/internal/logging"
)

var log = logging.For("tui")

type model struct {
	registry *commands.Registry
	input    textinput.Model
	list     list.Model
	adding   bool
	status   string
	err      error
}

type bookmarkItem struct {
	index int
	url   string
}

func (b bookmarkItem) Title() string {
	return b.url
}

func (b bookmarkItem) Description() string {
	return fmt.Sprintf("#%d", b.index+1)
}

func (b bookmarkItem) FilterValue() string {
	return b.url
}

func initialModel(registry *commands.Registry) model {
	ti := textinput.New()
	ti.Placeholder = "https://..."
	ti.CharLimit = 2048
	ti.Width = 50

	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Bookmarks"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return model{
		registry: registry,
		input:    ti,
		list:     l,
	}
}

type bookmarksMsg struct {
	bookmarks []string
	err       error
}

type addedMsg struct {
	url string
	err error
}

func (m model) Init() tea.Cmd {
	return m.loadBookmarks
}

func (m model) loadBookmarks() tea.Msg {
	resp := m.registry.Invoke(context.Background(), commands.NewGetBookmarksRequest())
	bookmarks, err := commands.DecodeBookmarks(resp)
	return bookmarksMsg{bookmarks: bookmarks, err: err}
}

func (m model) addBookmark(url string) tea.Cmd {
	return func() tea.Msg {
		resp := m.registry.Invoke(context.Background(), commands.NewAddBookmarkRequest(url))
		if !resp.OK() {
			return addedMsg{url: url, err: fmt.Errorf("%s", resp.Error)}
		}
		return addedMsg{url: url}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.adding {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc":
				m.adding = false
				m.input.Blur()
				m.input.Reset()
				return m, nil
			case "enter":
				url := strings.TrimSpace(m.input.Value())
				m.adding = false
				m.input.Blur()
				m.input.Reset()
				if url == "" {
					return m, nil
				}
				return m, m.addBookmark(url)
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "a":
			m.adding = true
			m.err = nil
			m.input.Focus()
			return m, textinput.Blink
		case "r":
			return m, m.loadBookmarks
		case "j", "down":
			m.list.CursorDown()
			return m, nil
		case "k", "up":
			m.list.CursorUp()
			return m, nil
		case "g":
			m.list.Select(0)
			return m, nil
		case "G":
			if n := len(m.list.Items()); n > 0 {
				m.list.Select(n - 1)
			}
			return m, nil
		case "o":
			if item, ok := m.list.SelectedItem().(bookmarkItem); ok {
				if err := openBrowser(item.url); err != nil {
					m.err = err
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-6)
		m.input.Width = msg.Width - 20
		return m, nil

	case bookmarksMsg:
		if msg.err != nil {
			log.Warn("get bookmarks failed", "error", msg.err)
			m.err = msg.err
			return m, nil
		}
		m.list.SetItems(bookmarksToItems(msg.bookmarks))
		return m, nil

	case addedMsg:
		if msg.err != nil {
			log.Warn("add bookmark failed", "url", msg.url, "error", msg.err)
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = "Added: " + msg.url
		return m, m.loadBookmarks
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func bookmarksToItems(bookmarks []string) []list.Item {
	items := make([]list.Item, 0, len(bookmarks))
	for i, url := range bookmarks {
		items = append(items, bookmarkItem{index: i, url: url})
	}
	return items
}

func (m model) View() string {
	var b strings.Builder

	if m.adding {
		inputStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
		b.WriteString(inputStyle.Render("Add: " + m.input.View()))
		b.WriteString("\n\n")
	}

	b.WriteString(m.list.View())

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("86")).
		MarginTop(1)
	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		Bold(true).
		MarginTop(1)

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	help := "[j/k]nav [g/G]top/end [a]dd [o]pen [r]efresh [q]uit"
	if m.adding {
		help = "[Enter]save [Esc]cancel"
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

// browserCommand returns the program and arguments that open url on goos.
// url is always passed as a single argument and never through a shell.
func browserCommand(goos, url string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{url}, nil
	case "linux":
		return "xdg-open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	default:
		return "", nil, fmt.Errorf("opening a browser is not supported on %s", goos)
	}
}

func openBrowser(url string) error {
	name, args, err := browserCommand(runtime.GOOS, url)
	if err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}

// Run starts the interactive bookmark shell.
func Run(registry *commands.Registry) error {
	p := tea.NewProgram(initialModel(registry), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
