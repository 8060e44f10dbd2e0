// Package ui models the transient interface state of the page: the expanded
// project card, the mobile menu, the contact modal and the active navigation
// section. Every type is a small value; the server rebuilds state per request
// from query parameters and the client script mirrors the same transitions.
package ui

import (
	"net/url"
	"slices"
)

// Query parameter names carrying UI state.
const (
	ParamExpanded = "expanded"
	ParamMenu     = "menu"
	ParamContact  = "contact"
	ParamSection  = "section"

	valueOpen = "open"
)

// NavItem is one entry of the sticky navigation.
type NavItem struct {
	Label   string
	Section string
}

// Href is the in-page fragment of the item.
func (n NavItem) Href() string {
	return "#" + n.Section
}

// NavItems is the navigation in display order.
var NavItems = []NavItem{
	{Label: "About", Section: "about"},
	{Label: "Experience", Section: "experience"},
	{Label: "Skills", Section: "skills"},
	{Label: "Projects", Section: "projects"},
	{Label: "Education", Section: "education"},
}

// IsNavSection reports whether id is a navigation target.
func IsNavSection(id string) bool {
	return slices.ContainsFunc(NavItems, func(n NavItem) bool { return n.Section == id })
}

// Expansion is the single expanded project, or none.
type Expansion struct {
	id string
}

// Expanded returns an expansion with id open.
func Expanded(id string) Expansion {
	return Expansion{id: id}
}

// ID returns the expanded project, or "" when everything is collapsed.
func (e Expansion) ID() string {
	return e.id
}

func (e Expansion) IsExpanded(id string) bool {
	return id != "" && e.id == id
}

// Toggle collapses id when it is open and otherwise opens it, implicitly
// collapsing whatever was open before.
func (e Expansion) Toggle(id string) Expansion {
	if e.IsExpanded(id) {
		return Expansion{}
	}
	return Expansion{id: id}
}

// Menu is the mobile navigation menu.
type Menu struct {
	open bool
}

func (m Menu) IsOpen() bool {
	return m.open
}

func (m Menu) Toggle() Menu {
	return Menu{open: !m.open}
}

// Navigate is the transition taken when a nav item is chosen: the menu closes.
func (m Menu) Navigate() Menu {
	return Menu{}
}

// Modal is the contact dialog.
type Modal struct {
	open bool
}

func (m Modal) IsOpen() bool {
	return m.open
}

func (m Modal) Open() Modal {
	return Modal{open: true}
}

func (m Modal) Close() Modal {
	return Modal{}
}

// State is the full interface state of one rendered page.
type State struct {
	Expansion Expansion
	Menu      Menu
	Contact   Modal
	Active    string
}

// ParseState reads state from query parameters. Unknown sections are ignored.
func ParseState(q url.Values) State {
	s := State{
		Expansion: Expanded(q.Get(ParamExpanded)),
		Menu:      Menu{open: q.Get(ParamMenu) == valueOpen},
		Contact:   Modal{open: q.Get(ParamContact) == valueOpen},
	}
	if section := q.Get(ParamSection); IsNavSection(section) {
		s.Active = section
	}
	return s
}

// Query encodes s back into query parameters.
func (s State) Query() url.Values {
	q := url.Values{}
	if s.Expansion.ID() != "" {
		q.Set(ParamExpanded, s.Expansion.ID())
	}
	if s.Menu.IsOpen() {
		q.Set(ParamMenu, valueOpen)
	}
	if s.Contact.IsOpen() {
		q.Set(ParamContact, valueOpen)
	}
	if s.Active != "" {
		q.Set(ParamSection, s.Active)
	}
	return q
}

// Link returns a same-page href for s, scrolled to fragment when set.
func (s State) Link(fragment string) string {
	href := "/"
	if q := s.Query().Encode(); q != "" {
		href += "?" + q
	}
	if fragment != "" {
		href += "#" + fragment
	}
	return href
}

// ToggleProject returns the state after clicking a project card.
func (s State) ToggleProject(id string) State {
	s.Expansion = s.Expansion.Toggle(id)
	return s
}

// ToggleMenu returns the state after clicking the menu button.
func (s State) ToggleMenu() State {
	s.Menu = s.Menu.Toggle()
	return s
}

// Navigate returns the state after choosing a nav item.
func (s State) Navigate(section string) State {
	s.Menu = s.Menu.Navigate()
	s.Active = section
	return s
}

func (s State) OpenContact() State {
	s.Contact = s.Contact.Open()
	return s
}

func (s State) CloseContact() State {
	s.Contact = s.Contact.Close()
	return s
}
