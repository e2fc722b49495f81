package ui

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/trainreg/internal/trains"
	"github.com/nibzard/trainreg/internal/utils"
)

const maxFilterLen = len("HH:MM")

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	filterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// RunViewer opens a read-only terminal view of a trains file.
func RunViewer(ctx context.Context, store *trains.Store, path string) error {
	if !utils.IsTTY(os.Stdout) {
		return fmt.Errorf("view requires a TTY")
	}

	model := newViewerModel(store, path)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type viewerModel struct {
	store    *trains.Store
	path     string
	registry *trains.Registry
	loadErr  error
	filter   string // applied departure-time filter
	input    string // filter being typed
	editing  bool
	offset   int
	height   int
	showHelp bool
}

func newViewerModel(store *trains.Store, path string) *viewerModel {
	return &viewerModel{
		store:    store,
		path:     path,
		registry: trains.NewRegistry(),
	}
}

func (m *viewerModel) Init() tea.Cmd {
	m.refresh()
	return nil
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.clampOffset()
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.updateFilterInput(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "/":
			m.editing = true
			m.input = ""
		case "c":
			m.filter = ""
			m.offset = 0
		case "j", "down":
			m.offset++
			m.clampOffset()
		case "k", "up":
			if m.offset > 0 {
				m.offset--
			}
		case "h", "?":
			m.showHelp = !m.showHelp
		}
	}
	return m, nil
}

func (m *viewerModel) updateFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		m.filter = m.input
		m.editing = false
		m.offset = 0
	case tea.KeyEsc:
		m.editing = false
		m.input = ""
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if len(m.input) >= maxFilterLen {
				break
			}
			if (r >= '0' && r <= '9') || r == ':' {
				m.input += string(r)
			}
		}
	}
	return m, nil
}

func (m *viewerModel) refresh() {
	records, err := m.store.Load(m.path)
	if err != nil {
		m.loadErr = err
		m.registry.Replace(nil)
		return
	}
	m.loadErr = nil
	m.registry.Replace(records)
	m.clampOffset()
}

// visible returns the filtered records in registry order.
func (m *viewerModel) visible() []trains.Record {
	if m.filter == "" {
		return m.registry.Records()
	}
	return m.registry.Select(m.filter)
}

// pageSize is the number of rows that fit; each row takes two lines.
func (m *viewerModel) pageSize() int {
	if m.height <= 0 {
		return 0
	}
	size := (m.height - 10) / 2
	if size < 1 {
		size = 1
	}
	return size
}

func (m *viewerModel) clampOffset() {
	limit := len(m.visible()) - 1
	if size := m.pageSize(); size > 0 {
		limit = len(m.visible()) - size
	}
	if m.offset > limit {
		m.offset = limit
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *viewerModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Train departures: "+m.path) + "\n\n")

	if m.showHelp {
		writeViewerHelp(&b)
		return b.String()
	}

	switch {
	case m.editing:
		b.WriteString(filterStyle.Render("Departing at or after: "+m.input+"_") + "\n\n")
	case m.filter != "":
		b.WriteString(filterStyle.Render("Departing at or after "+m.filter+" (c to clear)") + "\n\n")
	}

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Error loading trains file:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		b.WriteString(footerStyle.Render("Press r to reload | q to quit") + "\n")
		return b.String()
	}

	records := m.visible()
	if len(records) == 0 {
		if m.filter != "" {
			b.WriteString(fmt.Sprintf("No trains depart at or after %s.\n\n", m.filter))
		} else {
			b.WriteString("No trains.\n\n")
		}
	} else {
		page := records[m.offset:]
		if size := m.pageSize(); size > 0 && len(page) > size {
			page = page[:size]
		}
		b.WriteString(RenderTable(page) + "\n")
		b.WriteString(fmt.Sprintf("%d-%d of %d\n\n", m.offset+1, m.offset+len(page), len(records)))
	}

	b.WriteString(footerStyle.Render("Press / to filter | h for help | q to quit") + "\n")
	return b.String()
}

func writeViewerHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Reload the file\n")
	b.WriteString("  /            Filter by departure time (enter to apply, esc to cancel)\n")
	b.WriteString("  c            Clear filter\n")
	b.WriteString("  j, down      Scroll down\n")
	b.WriteString("  k, up        Scroll up\n")
	b.WriteString("  h, ?         Toggle this help screen\n\n")
}
