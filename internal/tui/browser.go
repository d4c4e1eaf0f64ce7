package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"omnipkg/pkg/manager"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	PageUp  key.Binding
	PageDn  key.Binding
	Filter  key.Binding
	Details key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k")),
		Down:    key.NewBinding(key.WithKeys("down", "j")),
		Top:     key.NewBinding(key.WithKeys("home", "g")),
		Bottom:  key.NewBinding(key.WithKeys("end", "G")),
		PageUp:  key.NewBinding(key.WithKeys("pgup")),
		PageDn:  key.NewBinding(key.WithKeys("pgdown")),
		Filter:  key.NewBinding(key.WithKeys("/")),
		Details: key.NewBinding(key.WithKeys("enter")),
		Back:    key.NewBinding(key.WithKeys("esc", "b")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c")),
	}
}

// Browser is a scrollable, filterable view over an aggregated report.
type Browser struct {
	report   *manager.UnifiedReport
	packages []manager.Package
	filtered []manager.Package

	keys      keyMap
	styles    Styles
	textInput textinput.Model

	cursor     int
	scroll     int
	width      int
	height     int
	ready      bool
	quitting   bool
	inputMode  bool
	filterText string
	detailPkg  *manager.Package
}

// NewBrowser creates a browser over the report's packages.
func NewBrowser(u *manager.UnifiedReport) *Browser {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.CharLimit = 100
	ti.Width = 40

	pkgs := u.Packages()
	return &Browser{
		report:    u,
		packages:  pkgs,
		filtered:  pkgs,
		keys:      defaultKeyMap(),
		styles:    DefaultStyles(),
		textInput: ti,
	}
}

// Init implements tea.Model.
func (b *Browser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.ready = true

	case tea.KeyMsg:
		if b.inputMode {
			switch msg.String() {
			case "enter":
				b.inputMode = false
				b.applyFilter(b.textInput.Value())
			case "esc":
				b.inputMode = false
				b.textInput.SetValue(b.filterText)
			default:
				var cmd tea.Cmd
				b.textInput, cmd = b.textInput.Update(msg)
				return b, cmd
			}
			return b, nil
		}

		if b.detailPkg != nil {
			if key.Matches(msg, b.keys.Back) || key.Matches(msg, b.keys.Quit) || key.Matches(msg, b.keys.Details) {
				b.detailPkg = nil
			}
			return b, nil
		}

		switch {
		case key.Matches(msg, b.keys.Quit):
			b.quitting = true
			return b, tea.Quit
		case key.Matches(msg, b.keys.Up):
			b.moveCursor(-1)
		case key.Matches(msg, b.keys.Down):
			b.moveCursor(1)
		case key.Matches(msg, b.keys.PageUp):
			b.moveCursor(-b.visibleHeight())
		case key.Matches(msg, b.keys.PageDn):
			b.moveCursor(b.visibleHeight())
		case key.Matches(msg, b.keys.Top):
			b.cursor, b.scroll = 0, 0
		case key.Matches(msg, b.keys.Bottom):
			b.moveCursor(len(b.filtered))
		case key.Matches(msg, b.keys.Filter):
			b.inputMode = true
			b.textInput.SetValue(b.filterText)
			b.textInput.Focus()
		case key.Matches(msg, b.keys.Back):
			if b.filterText != "" {
				b.applyFilter("")
				b.textInput.SetValue("")
			}
		case key.Matches(msg, b.keys.Details):
			if b.cursor < len(b.filtered) {
				pkg := b.filtered[b.cursor]
				b.detailPkg = &pkg
			}
		}
	}
	return b, nil
}

func (b *Browser) applyFilter(text string) {
	b.filterText = text
	if text == "" {
		b.filtered = b.packages
	} else {
		needle := strings.ToLower(text)
		b.filtered = b.filtered[:0:0]
		for _, pkg := range b.packages {
			if strings.Contains(strings.ToLower(pkg.ID), needle) ||
				strings.Contains(strings.ToLower(pkg.Description), needle) {
				b.filtered = append(b.filtered, pkg)
			}
		}
	}
	b.cursor, b.scroll = 0, 0
}

func (b *Browser) moveCursor(delta int) {
	b.cursor += delta
	if b.cursor < 0 {
		b.cursor = 0
	}
	if b.cursor >= len(b.filtered) {
		b.cursor = len(b.filtered) - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
	if b.cursor < b.scroll {
		b.scroll = b.cursor
	}
	if b.cursor >= b.scroll+b.visibleHeight() {
		b.scroll = b.cursor - b.visibleHeight() + 1
	}
}

func (b *Browser) visibleHeight() int {
	h := b.height - 4 // header, filter line, footer
	if h < 1 {
		return 1
	}
	return h
}

// View implements tea.Model.
func (b *Browser) View() string {
	if !b.ready {
		return "Loading..."
	}
	if b.quitting {
		return ""
	}
	if b.detailPkg != nil {
		return b.renderDetails()
	}

	var sb strings.Builder
	sb.WriteString(b.renderHeader())
	sb.WriteString("\n")

	if b.inputMode {
		sb.WriteString(b.styles.InputPrompt.Render("Filter: "))
		sb.WriteString(b.textInput.View())
		sb.WriteString("\n")
	} else if b.filterText != "" {
		sb.WriteString(b.styles.Description.Render(fmt.Sprintf("Filter: %s (esc clears)", b.filterText)))
		sb.WriteString("\n")
	} else {
		sb.WriteString("\n")
	}

	sb.WriteString(b.renderList())
	sb.WriteString(b.renderFooter())
	return sb.String()
}

func (b *Browser) renderHeader() string {
	title := b.styles.Header.Render(fmt.Sprintf(" Packages (%d/%d) ", len(b.filtered), len(b.packages)))
	var right string
	if b.report.Stats.FailedManagers > 0 {
		right = b.styles.Error.Render(fmt.Sprintf("%d manager(s) failed", b.report.Stats.FailedManagers))
	}
	padding := b.width - lipgloss.Width(title) - lipgloss.Width(right) - 2
	if padding < 0 {
		padding = 0
	}
	return title + strings.Repeat(" ", padding) + right
}

func (b *Browser) renderList() string {
	if len(b.filtered) == 0 {
		return b.styles.Description.Render("  No packages match") + "\n"
	}

	var sb strings.Builder
	end := b.scroll + b.visibleHeight()
	if end > len(b.filtered) {
		end = len(b.filtered)
	}
	for i := b.scroll; i < end; i++ {
		sb.WriteString(b.renderLine(b.filtered[i], i == b.cursor))
		sb.WriteString("\n")
	}
	for i := end - b.scroll; i < b.visibleHeight(); i++ {
		sb.WriteString("\n")
	}
	return sb.String()
}

func (b *Browser) renderLine(pkg manager.Package, selected bool) string {
	cursor := "  "
	name := pkg.ID
	if selected {
		cursor = b.styles.Selected.Render("> ")
		name = b.styles.Selected.Render(name)
	} else {
		name = b.styles.PackageName.Render(name)
	}

	version := b.styles.PackageVersion.Render(pkg.InstalledVersion)
	badge := b.styles.ManagerBadge.Render("[" + pkg.Manager + "]")

	maxDesc := b.width - lipgloss.Width(cursor) - 25 - lipgloss.Width(version) - lipgloss.Width(badge) - 6
	desc := pkg.Description
	if runes := []rune(desc); maxDesc > 3 && len(runes) > maxDesc {
		desc = string(runes[:maxDesc-3]) + "..."
	}

	return fmt.Sprintf("%s%-25s %s %s %s", cursor, name, version, badge, b.styles.Description.Render(desc))
}

func (b *Browser) renderDetails() string {
	pkg := b.detailPkg
	var sb strings.Builder
	sb.WriteString(b.styles.Title.Render(pkg.ID))
	sb.WriteString(" ")
	sb.WriteString(b.styles.ManagerBadge.Render("[" + pkg.Manager + "]"))
	sb.WriteString("\n\n")
	if pkg.Name != "" && pkg.Name != pkg.ID {
		sb.WriteString(fmt.Sprintf("Name:       %s\n", pkg.Name))
	}
	sb.WriteString(fmt.Sprintf("Installed:  %s\n", b.styles.PackageVersion.Render(pkg.InstalledVersion)))
	if pkg.LatestVersion != "" {
		sb.WriteString(fmt.Sprintf("Latest:     %s\n", pkg.LatestVersion))
	}
	if pkg.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(b.styles.Description.Render(pkg.Description))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(b.styles.Footer.Render("esc:back  q:quit"))
	return sb.String()
}

func (b *Browser) renderFooter() string {
	hints := "j/k:move  /:filter  enter:details  q:quit"
	return b.styles.Footer.Width(b.width).Render(hints)
}

// Browse opens the interactive browser over an aggregated report.
func Browse(u *manager.UnifiedReport) error {
	p := tea.NewProgram(NewBrowser(u), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
