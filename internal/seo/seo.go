// Package seo builds the document head metadata: title, description,
// robots directives, icons, OpenGraph and Twitter cards.
package seo

import (
	"fmt"
	"strings"

	"github.com/ragibsmajic/portfolio/internal/types"
)

// Social image dimensions.
const (
	ImageWidth  = 1200
	ImageHeight = 630
)

// Defaults used when Options leaves a field empty.
const (
	DefaultLocale    = "en_US"
	DefaultImagePath = "/og-image.png"
	TwitterCard      = "summary_large_image"
)

type Image struct {
	URL    string
	Width  int
	Height int
	Alt    string
}

type OpenGraph struct {
	Type        string
	Locale      string
	URL         string
	SiteName    string
	Title       string
	Description string
	Images      []Image
}

type Twitter struct {
	Card        string
	Site        string
	Title       string
	Description string
	Images      []string
}

// GoogleBot carries the crawler-specific robots directives.
type GoogleBot struct {
	Index           bool
	Follow          bool
	MaxVideoPreview int
	MaxImagePreview string
	MaxSnippet      int
}

type Robots struct {
	Index     bool
	Follow    bool
	GoogleBot GoogleBot
}

type Icons struct {
	Icon     string
	Shortcut string
	Apple    string
}

// Meta is everything rendered into <head>.
type Meta struct {
	Title         string
	TitleTemplate string
	Description   string
	Keywords      []string
	Author        string
	Creator       string
	Publisher     string
	Canonical     string
	Robots        Robots
	Icons         Icons
	OG            OpenGraph
	Twitter       Twitter
}

// Options are the site-level inputs; empty fields fall back to the profile.
type Options struct {
	SiteURL     string
	SiteName    string
	Title       string
	Description string
	Keywords    []string
	Locale      string
	ImagePath   string
	TwitterSite string
	NoIndex     bool
}

// Build assembles head metadata for the portfolio of profile.
func Build(opts Options, profile types.Profile) Meta {
	headline := fmt.Sprintf("%s - %s", profile.Name, profile.Title)

	title := opts.Title
	if title == "" {
		title = headline
	}
	description := opts.Description
	if description == "" {
		description = profile.Tagline
	}
	siteName := opts.SiteName
	if siteName == "" {
		siteName = profile.Name + " Portfolio"
	}
	locale := opts.Locale
	if locale == "" {
		locale = DefaultLocale
	}
	imagePath := opts.ImagePath
	if imagePath == "" {
		imagePath = DefaultImagePath
	}
	keywords := opts.Keywords
	if len(keywords) == 0 {
		keywords = []string{profile.Name, profile.Title}
	}

	index := !opts.NoIndex
	image := AbsoluteURL(opts.SiteURL, imagePath)

	return Meta{
		Title:         title,
		TitleTemplate: "%s | " + profile.Name,
		Description:   description,
		Keywords:      keywords,
		Author:        profile.Name,
		Creator:       profile.Name,
		Publisher:     profile.Name,
		Canonical:     opts.SiteURL,
		Robots: Robots{
			Index:  index,
			Follow: index,
			GoogleBot: GoogleBot{
				Index:           index,
				Follow:          index,
				MaxVideoPreview: -1,
				MaxImagePreview: "large",
				MaxSnippet:      -1,
			},
		},
		Icons: Icons{
			Icon:     "/favicon.ico",
			Shortcut: "/favicon.ico",
			Apple:    "/apple-touch-icon.png",
		},
		OG: OpenGraph{
			Type:        "website",
			Locale:      locale,
			URL:         opts.SiteURL,
			SiteName:    siteName,
			Title:       headline,
			Description: profile.Tagline,
			Images: []Image{{
				URL:    image,
				Width:  ImageWidth,
				Height: ImageHeight,
				Alt:    headline,
			}},
		},
		Twitter: Twitter{
			Card:        TwitterCard,
			Site:        opts.TwitterSite,
			Title:       headline,
			Description: profile.Tagline,
			Images:      []string{image},
		},
	}
}

// PageTitle applies the title template to a page name. An empty page yields
// the default title.
func (m Meta) PageTitle(page string) string {
	if page == "" {
		return m.Title
	}
	return fmt.Sprintf(m.TitleTemplate, page)
}

// KeywordList joins the keywords for the meta tag.
func (m Meta) KeywordList() string {
	return strings.Join(m.Keywords, ", ")
}

func (r Robots) Content() string {
	return directives(r.Index, r.Follow)
}

func (g GoogleBot) Content() string {
	parts := []string{directives(g.Index, g.Follow)}
	parts = append(parts,
		fmt.Sprintf("max-video-preview:%d", g.MaxVideoPreview),
		"max-image-preview:"+g.MaxImagePreview,
		fmt.Sprintf("max-snippet:%d", g.MaxSnippet))
	return strings.Join(parts, ", ")
}

func directives(index, follow bool) string {
	i, f := "index", "follow"
	if !index {
		i = "noindex"
	}
	if !follow {
		f = "nofollow"
	}
	return i + ", " + f
}

// AbsoluteURL resolves a site-relative path against the site URL. Absolute
// paths pass through; an empty site URL leaves the path relative.
func AbsoluteURL(siteURL, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if siteURL == "" {
		return path
	}
	return strings.TrimRight(siteURL, "/") + "/" + strings.TrimLeft(path, "/")
}
