package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/list"
	"github.com/stretchr/testify/assert"

	"github.com/rantnar/nala/pkg/apt"
)

func browserFixture() model {
	items := []list.Item{
		pkgItem{pkg: apt.Package{Name: "curl", Installed: "7.88.1-9", Candidate: "7.88.1-10"}},
		pkgItem{pkg: apt.Package{Name: "wget", Installed: "1.21.3-1", Candidate: "1.21.3-1"}},
		pkgItem{pkg: apt.Package{Name: "htop", Candidate: "3.2.2-2"}},
	}
	return model{all: items}
}

func itemNames(items []list.Item) []string {
	var names []string
	for _, item := range items {
		names = append(names, item.(pkgItem).pkg.Name)
	}
	return names
}

func TestVisibleItemsFilters(t *testing.T) {
	m := browserFixture()

	assert.Equal(t, []string{"curl", "wget", "htop"}, itemNames(m.visibleItems()))

	m.filter = filterInstalled
	assert.Equal(t, []string{"curl", "wget"}, itemNames(m.visibleItems()))

	m.filter = filterUpgradable
	assert.Equal(t, []string{"curl"}, itemNames(m.visibleItems()))
}

func TestToggleFilterFlipsBack(t *testing.T) {
	m := browserFixture()
	m.list = list.New(m.all, list.NewDefaultDelegate(), 0, 0)

	m.toggleFilter(filterUpgradable)
	assert.Equal(t, filterUpgradable, m.filter)

	m.toggleFilter(filterUpgradable)
	assert.Equal(t, filterAll, m.filter)

	m.toggleFilter(filterInstalled)
	m.toggleFilter(filterUpgradable)
	assert.Equal(t, filterUpgradable, m.filter)
}

func TestItemDescriptionShowsUpgrade(t *testing.T) {
	up := pkgItem{pkg: apt.Package{
		Name: "curl", Installed: "7.88.1-9", Candidate: "7.88.1-10",
		Description: "data transfer tool",
	}}
	assert.Equal(t, "7.88.1-9 -> 7.88.1-10  data transfer tool", up.Description())

	current := pkgItem{pkg: apt.Package{
		Name: "wget", Installed: "1.21.3-1", Candidate: "1.21.3-1",
		Description: "web downloader",
	}}
	assert.Equal(t, "1.21.3-1  web downloader", current.Description())
}
