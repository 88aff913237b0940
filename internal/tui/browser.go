// Package tui implements the interactive package browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rantnar/nala/pkg/apt"
)

// ShowFunc fetches the full records for a package on demand.
type ShowFunc func(name string) ([]apt.Record, error)

type view int

const (
	viewList view = iota
	viewDetail
)

// filterMode narrows the list to a subset of packages.
type filterMode int

const (
	filterAll filterMode = iota
	filterInstalled
	filterUpgradable
)

type pkgItem struct {
	pkg apt.Package
}

func (i pkgItem) Title() string {
	if i.pkg.IsInstalled() {
		return i.pkg.Name + " " + installedBadge.String()
	}
	return i.pkg.Name
}

func (i pkgItem) Description() string {
	desc := i.pkg.Description
	if desc == "" {
		desc = "no description"
	}
	if i.pkg.IsUpgradable() {
		return i.pkg.Installed + " -> " + i.pkg.Candidate + "  " + desc
	}
	version := i.pkg.Candidate
	if version == "" {
		version = i.pkg.Installed
	}
	if version == "" {
		return desc
	}
	return version + "  " + desc
}

func (i pkgItem) FilterValue() string {
	return i.pkg.Name + " " + i.pkg.Description
}

type recordsMsg struct {
	name    string
	records []apt.Record
	err     error
}

type model struct {
	list   list.Model
	detail viewport.Model
	view   view
	show   ShowFunc
	all    []list.Item
	filter filterMode
	width  int
	height int
}

// Run opens the browser over the given packages.
func Run(packages []apt.Package, show ShowFunc) error {
	items := make([]list.Item, 0, len(packages))
	for _, pkg := range packages {
		items = append(items, pkgItem{pkg: pkg})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "nala package browser"
	l.Styles.Title = titleStyle
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.InstalledOnly, keys.UpgradableOnly}
	}

	m := model{list: l, show: show, all: items}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-1)
		m.detail.Width = msg.Width - 4
		m.detail.Height = msg.Height - 4
		return m, nil

	case recordsMsg:
		m.detail.SetContent(renderRecords(msg))
		m.detail.GotoTop()
		m.view = viewDetail
		return m, nil

	case tea.KeyMsg:
		// Let the list's filter input eat keys while active.
		if m.view == viewList && m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, keys.Quit):
			if m.view == viewDetail {
				m.view = viewList
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, keys.Back):
			if m.view == viewDetail {
				m.view = viewList
				return m, nil
			}

		case key.Matches(msg, keys.Open):
			if m.view == viewList {
				if item, ok := m.list.SelectedItem().(pkgItem); ok {
					return m, m.fetchRecords(item.pkg.Name)
				}
			}

		case key.Matches(msg, keys.InstalledOnly):
			if m.view == viewList {
				m.toggleFilter(filterInstalled)
				return m, nil
			}

		case key.Matches(msg, keys.UpgradableOnly):
			if m.view == viewList {
				m.toggleFilter(filterUpgradable)
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.view == viewDetail {
		m.detail, cmd = m.detail.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	if m.view == viewDetail {
		return lipgloss.JoinVertical(lipgloss.Left,
			detailBorder.Render(m.detail.View()),
			statusStyle.Render("esc back  ↑/↓ scroll  q quit"))
	}
	return m.list.View()
}

func (m model) fetchRecords(name string) tea.Cmd {
	return func() tea.Msg {
		records, err := m.show(name)
		return recordsMsg{name: name, records: records, err: err}
	}
}

// toggleFilter switches to mode, or back to the full list when mode is
// already active.
func (m *model) toggleFilter(mode filterMode) {
	if m.filter == mode {
		m.filter = filterAll
	} else {
		m.filter = mode
	}
	m.list.SetItems(m.visibleItems())
}

func (m model) visibleItems() []list.Item {
	if m.filter == filterAll {
		return m.all
	}
	var items []list.Item
	for _, item := range m.all {
		pi, ok := item.(pkgItem)
		if !ok {
			continue
		}
		switch m.filter {
		case filterInstalled:
			if pi.pkg.IsInstalled() {
				items = append(items, item)
			}
		case filterUpgradable:
			if pi.pkg.IsUpgradable() {
				items = append(items, item)
			}
		}
	}
	return items
}

func renderRecords(msg recordsMsg) string {
	if msg.err != nil {
		return errStyle.Render(fmt.Sprintf("could not load %s: %v", msg.name, msg.err))
	}
	if len(msg.records) == 0 {
		return errStyle.Render("no records for " + msg.name)
	}

	var b strings.Builder
	for i, rec := range msg.records {
		if i > 0 {
			b.WriteString("\n\n")
		}
		writeField(&b, "Package", rec.Name)
		writeField(&b, "Version", rec.Version)
		writeField(&b, "Architecture", rec.Architecture)
		writeField(&b, "Section", rec.Section)
		writeField(&b, "Maintainer", rec.Maintainer)
		writeField(&b, "Homepage", rec.Homepage)
		writeField(&b, "Depends", strings.Join(rec.Depends, ", "))
		writeField(&b, "Description", rec.Description)
	}
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s %s\n", fieldLabelStyle.Render(label+":"), value)
}
