package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/ragibsmajic/portfolio/internal/content"
	"github.com/ragibsmajic/portfolio/internal/seo"
	"github.com/ragibsmajic/portfolio/internal/structured"
	"github.com/ragibsmajic/portfolio/internal/ui"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed assets/*
var assetFiles embed.FS

// DefaultAssetsPath is the URL prefix of the embedded stylesheet and script.
const DefaultAssetsPath = "/assets"

// Assets exposes the embedded stylesheet and script.
func Assets() fs.FS {
	sub, err := fs.Sub(assetFiles, "assets")
	if err != nil {
		panic(fmt.Sprintf("embedded assets missing: %v", err))
	}
	return sub
}

// Options configure a Site.
type Options struct {
	AboutVariant        string
	TechnologiesVariant string
	SEO                 seo.Options
	AssetsPath          string
	DefaultAvatar       string
	Lang                string
	Now                 func() time.Time
}

// Site renders one content snapshot. It is safe for concurrent use; nothing
// in it changes after NewSite.
type Site struct {
	store *content.Store
	opts  Options
	tmpl  *template.Template
	gen   *structured.Generator
	meta  seo.Meta
}

// NewSite parses the embedded templates and binds them to store.
func NewSite(store *content.Store, opts Options) (*Site, error) {
	if store == nil {
		return nil, &RenderError{Message: "content store is nil"}
	}
	if opts.AssetsPath == "" {
		opts.AssetsPath = DefaultAssetsPath
	}
	if opts.Lang == "" {
		opts.Lang = "en"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	switch opts.AboutVariant {
	case "":
		opts.AboutVariant = VariantAbout
	case VariantAbout, VariantHero:
	default:
		return nil, &RenderError{Message: fmt.Sprintf("unknown about variant %q", opts.AboutVariant)}
	}
	switch opts.TechnologiesVariant {
	case "":
		opts.TechnologiesVariant = VariantGrid
	case VariantGrid, VariantGrouped:
	default:
		return nil, &RenderError{Message: fmt.Sprintf("unknown technologies variant %q", opts.TechnologiesVariant)}
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &Site{
		store: store,
		opts:  opts,
		tmpl:  tmpl,
		gen:   &structured.Generator{SiteURL: opts.SEO.SiteURL, Now: opts.Now},
		meta:  seo.Build(opts.SEO, store.Profile()),
	}, nil
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("site").Funcs(template.FuncMap{
		"join": strings.Join,
	}).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse templates", Cause: err}
	}
	return tmpl, nil
}

func (s *Site) Store() *content.Store {
	return s.store
}

func (s *Site) Options() Options {
	return s.opts
}

func (s *Site) Meta() seo.Meta {
	return s.meta
}

// StructuredData generates every JSON-LD block for the current content.
func (s *Site) StructuredData() structured.Document {
	return s.gen.Document(s.store.Profile(), s.store.Experiences(), s.store.Education())
}

// NavLink is one rendered navigation entry.
type NavLink struct {
	Label   string
	Section string
	Href    string
	Active  bool
}

type Footer struct {
	Year        int
	Name        string
	Social      []SocialLink
	ContactHref string
}

// Contact is the contact modal.
type Contact struct {
	Open      bool
	Email     string
	Social    []SocialLink
	CloseHref string
}

// SectionData is a built section awaiting template execution.
type SectionData struct {
	ID       string
	Template string
	View     any
}

// PageData is everything RenderPage needs.
type PageData struct {
	Lang            string
	Title           string
	Meta            seo.Meta
	PersonJSON      template.JS
	ProfilePageJSON template.JS
	Assets          string
	Nav             []NavLink
	MenuOpen        bool
	MenuToggleHref  string
	ScrollThreshold float64
	Sections        []SectionData
	Footer          Footer
	Contact         Contact
}

// Page builds the page view model for state.
func (s *Site) Page(state ui.State) (PageData, error) {
	profile := s.store.Profile()

	person, err := structured.Script(s.gen.Person(profile))
	if err != nil {
		return PageData{}, &RenderError{Message: "failed to build person data", Cause: err}
	}
	page, err := structured.Script(s.gen.ProfilePage(profile))
	if err != nil {
		return PageData{}, &RenderError{Message: "failed to build profile page data", Cause: err}
	}

	data := PageData{
		Lang:            s.opts.Lang,
		Title:           s.meta.Title,
		Meta:            s.meta,
		PersonJSON:      person,
		ProfilePageJSON: page,
		Assets:          s.opts.AssetsPath,
		MenuOpen:        state.Menu.IsOpen(),
		MenuToggleHref:  state.ToggleMenu().Link(""),
		ScrollThreshold: ui.DefaultThreshold,
		Footer: Footer{
			Year:        s.opts.Now().Year(),
			Name:        profile.Name,
			Social:      SocialLinks(profile.Social),
			ContactHref: state.OpenContact().Link("contact"),
		},
		Contact: Contact{
			Open:      state.Contact.IsOpen(),
			Email:     profile.Email,
			Social:    SocialLinks(profile.Social),
			CloseHref: state.CloseContact().Link(""),
		},
	}

	for _, item := range ui.NavItems {
		data.Nav = append(data.Nav, NavLink{
			Label:   item.Label,
			Section: item.Section,
			Href:    state.Navigate(item.Section).Link(item.Section),
			Active:  state.Active == item.Section,
		})
	}

	for _, sec := range Sections(s.opts) {
		view, err := sec.Build(s, state)
		if err != nil {
			return PageData{}, &RenderError{Message: fmt.Sprintf("failed to build section %s", sec.ID), Cause: err}
		}
		data.Sections = append(data.Sections, SectionData{ID: sec.ID, Template: sec.Template, View: view})
	}
	return data, nil
}

type renderedSection struct {
	ID   string
	HTML template.HTML
}

type pageView struct {
	PageData
	Body []renderedSection
}

// RenderPage writes the full document. Nothing is written when any template fails.
func (s *Site) RenderPage(w io.Writer, data PageData) error {
	body := make([]renderedSection, 0, len(data.Sections))
	for _, sec := range data.Sections {
		var buf bytes.Buffer
		if err := s.tmpl.ExecuteTemplate(&buf, sec.Template, sec.View); err != nil {
			return &TemplateError{Message: fmt.Sprintf("failed to execute section %s", sec.ID), Cause: err}
		}
		body = append(body, renderedSection{ID: sec.ID, HTML: template.HTML(buf.String())}) //nolint:gosec // produced by html/template
	}
	return s.execute(w, "page", pageView{PageData: data, Body: body})
}

// Render builds and writes the page for state.
func (s *Site) Render(w io.Writer, state ui.State) error {
	data, err := s.Page(state)
	if err != nil {
		return err
	}
	return s.RenderPage(w, data)
}

type notFoundView struct {
	Lang   string
	Title  string
	Meta   seo.Meta
	Assets string
}

// RenderNotFound writes the 404 document.
func (s *Site) RenderNotFound(w io.Writer) error {
	meta := s.meta
	meta.Robots = seo.Robots{GoogleBot: seo.GoogleBot{MaxVideoPreview: -1, MaxImagePreview: "none", MaxSnippet: -1}}
	return s.execute(w, "not-found", notFoundView{
		Lang:   s.opts.Lang,
		Title:  s.meta.PageTitle("Page not found"),
		Meta:   meta,
		Assets: s.opts.AssetsPath,
	})
}

// RenderProject writes a single project card for state. The server exposes
// it at /projects/{id}; the page script toggles cards in place.
func (s *Site) RenderProject(w io.Writer, id string, state ui.State) error {
	for _, p := range s.store.Projects() {
		if p.ID != id {
			continue
		}
		view, err := projectView(p, state)
		if err != nil {
			return &RenderError{Message: fmt.Sprintf("failed to build project %s", id), Cause: err}
		}
		return s.execute(w, "project-card", view)
	}
	return &NotFoundError{Kind: "project", ID: id}
}

func (s *Site) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return &TemplateError{Message: fmt.Sprintf("failed to execute template %s", name), Cause: err}
	}
	if _, err := buf.WriteTo(w); err != nil {
		return &RenderError{Message: "failed to write output", Cause: err}
	}
	return nil
}
