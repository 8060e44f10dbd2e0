// Package site builds the static export of the portfolio: the rendered pages,
// embedded assets, user static files, crawler files and structured data.
package site

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/ragibsmajic/portfolio/internal/rendering"
	"github.com/ragibsmajic/portfolio/internal/seo"
	"github.com/ragibsmajic/portfolio/internal/ui"
	"golang.org/x/sync/errgroup"
)

// Output file names.
const (
	IndexFile          = "index.html"
	NotFoundFile       = "404.html"
	RobotsFile         = "robots.txt"
	SitemapFile        = "sitemap.xml"
	StructuredDataFile = "structured-data.json"
	AssetsDir          = "assets"
)

// DefaultConcurrency bounds parallel file writes.
const DefaultConcurrency = 8

// Options configure a build.
type Options struct {
	OutputDir   string
	StaticDir   string
	Exclude     []string
	Concurrency int
	Logger      *slog.Logger
}

// File is one written output file.
type File struct {
	Path  string
	Bytes int64
}

// Report summarizes a build.
type Report struct {
	BuildID   string
	OutputDir string
	Files     []File
	Excluded  []string
	Bytes     int64
	Duration  time.Duration
}

// BuildError represents a failed build step
type BuildError struct {
	Step  string
	Cause error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build error: %s: %v", e.Step, e.Cause)
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}

// Builder writes a Site to disk.
type Builder struct {
	site   *rendering.Site
	opts   Options
	logger *slog.Logger
}

// NewBuilder validates opts and returns a builder for site.
func NewBuilder(site *rendering.Site, opts Options) (*Builder, error) {
	if site == nil {
		return nil, &BuildError{Step: "configure", Cause: errors.New("site is nil")}
	}
	if strings.TrimSpace(opts.OutputDir) == "" {
		return nil, &BuildError{Step: "configure", Cause: errors.New("output directory is empty")}
	}
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, &BuildError{Step: "configure", Cause: fmt.Errorf("invalid exclude pattern %q", pattern)}
		}
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{site: site, opts: opts, logger: logger}, nil
}

// output is a file waiting to be written. Exactly one of data and src is set.
type output struct {
	path string
	data []byte
	src  func() (io.ReadCloser, error)
}

// Build cleans the output directory and writes every file. Files are
// written concurrently; the first failure cancels the rest.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{BuildID: uuid.New().String(), OutputDir: b.opts.OutputDir}
	log := b.logger.With(slog.String("build_id", report.BuildID))

	if err := b.cleanOutput(); err != nil {
		return nil, err
	}

	outputs, err := b.renderOutputs()
	if err != nil {
		return nil, err
	}

	assets, err := embeddedOutputs(rendering.Assets(), AssetsDir)
	if err != nil {
		return nil, &BuildError{Step: "assets", Cause: err}
	}
	outputs = append(outputs, assets...)

	if b.opts.StaticDir != "" {
		static, excluded, err := b.staticOutputs()
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, static...)
		report.Excluded = excluded
	}

	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Concurrency)
	for _, out := range outputs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			n, err := b.write(out)
			if err != nil {
				return &BuildError{Step: "write " + out.path, Cause: err}
			}
			mu.Lock()
			report.Files = append(report.Files, File{Path: out.path, Bytes: n})
			report.Bytes += n
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(report.Files, func(i, j int) bool { return report.Files[i].Path < report.Files[j].Path })
	report.Duration = time.Since(start)
	log.Info("Site built",
		slog.String("output", b.opts.OutputDir),
		slog.Int("files", len(report.Files)),
		slog.Int64("bytes", report.Bytes),
		slog.Duration("duration", report.Duration))
	return report, nil
}

func (b *Builder) cleanOutput() error {
	out, err := filepath.Abs(b.opts.OutputDir)
	if err != nil {
		return &BuildError{Step: "clean", Cause: err}
	}
	if out == filepath.Dir(out) {
		return &BuildError{Step: "clean", Cause: fmt.Errorf("refusing to clean filesystem root %s", out)}
	}
	if cwd, err := os.Getwd(); err == nil && out == cwd {
		return &BuildError{Step: "clean", Cause: fmt.Errorf("refusing to clean the working directory %s", out)}
	}
	if b.opts.StaticDir != "" {
		static, err := filepath.Abs(b.opts.StaticDir)
		if err == nil && (static == out || strings.HasPrefix(static, out+string(filepath.Separator))) {
			return &BuildError{Step: "clean", Cause: fmt.Errorf("static directory %s is inside the output directory", static)}
		}
	}
	if err := os.RemoveAll(out); err != nil {
		return &BuildError{Step: "clean", Cause: err}
	}
	if err := os.MkdirAll(out, 0755); err != nil {
		return &BuildError{Step: "clean", Cause: err}
	}
	return nil
}

func (b *Builder) renderOutputs() ([]output, error) {
	var index bytes.Buffer
	if err := b.site.Render(&index, ui.State{}); err != nil {
		return nil, &BuildError{Step: "render index", Cause: err}
	}

	var notFound bytes.Buffer
	if err := b.site.RenderNotFound(&notFound); err != nil {
		return nil, &BuildError{Step: "render 404", Cause: err}
	}

	data, err := json.MarshalIndent(b.site.StructuredData(), "", "  ")
	if err != nil {
		return nil, &BuildError{Step: "structured data", Cause: err}
	}

	opts := b.site.Options()
	outputs := []output{
		{path: IndexFile, data: index.Bytes()},
		{path: NotFoundFile, data: notFound.Bytes()},
		{path: StructuredDataFile, data: append(data, '\n')},
		{path: RobotsFile, data: Robots(opts.SEO)},
	}

	if opts.SEO.SiteURL != "" {
		sitemap, err := Sitemap(opts.SEO.SiteURL, opts.Now())
		if err != nil {
			return nil, &BuildError{Step: "sitemap", Cause: err}
		}
		outputs = append(outputs, output{path: SitemapFile, data: sitemap})
	} else {
		b.logger.Warn("Site URL not configured, skipping sitemap")
	}
	return outputs, nil
}

// embeddedOutputs lists every file of fsys under prefix.
func embeddedOutputs(fsys fs.FS, prefix string) ([]output, error) {
	var outputs []output
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		outputs = append(outputs, output{
			path: path.Join(prefix, p),
			src:  func() (io.ReadCloser, error) { return fsys.Open(p) },
		})
		return nil
	})
	return outputs, err
}

func (b *Builder) staticOutputs() ([]output, []string, error) {
	root := b.opts.StaticDir
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, &BuildError{Step: "static", Cause: err}
	}
	if !info.IsDir() {
		return nil, nil, &BuildError{Step: "static", Cause: fmt.Errorf("%s is not a directory", root)}
	}

	var outputs []output
	var excluded []string
	fsys := os.DirFS(root)
	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		if b.excluded(p) {
			excluded = append(excluded, p)
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if reserved(p) {
			b.logger.Warn("Static file shadows generated output, skipping", slog.String("path", p))
			excluded = append(excluded, p)
			return nil
		}
		outputs = append(outputs, output{
			path: p,
			src:  func() (io.ReadCloser, error) { return fsys.Open(p) },
		})
		return nil
	})
	if err != nil {
		return nil, nil, &BuildError{Step: "static", Cause: err}
	}
	return outputs, excluded, nil
}

func (b *Builder) excluded(p string) bool {
	for _, pattern := range b.opts.Exclude {
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
	}
	return false
}

func reserved(p string) bool {
	switch p {
	case IndexFile, NotFoundFile, RobotsFile, SitemapFile, StructuredDataFile:
		return true
	}
	return strings.HasPrefix(p, AssetsDir+"/")
}

func (b *Builder) write(out output) (int64, error) {
	dst := filepath.Join(b.opts.OutputDir, filepath.FromSlash(out.path))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, err
	}

	if out.src == nil {
		if err := os.WriteFile(dst, out.data, 0644); err != nil {
			return 0, err
		}
		return int64(len(out.data)), nil
	}

	src, err := out.src()
	if err != nil {
		return 0, err
	}
	defer src.Close() //nolint:errcheck

	f, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// Robots renders robots.txt for the site.
func Robots(opts seo.Options) []byte {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")
	if opts.NoIndex {
		sb.WriteString("Disallow: /\n")
	} else {
		sb.WriteString("Allow: /\n")
	}
	if opts.SiteURL != "" {
		sb.WriteString("\nSitemap: " + seo.AbsoluteURL(opts.SiteURL, SitemapFile) + "\n")
	}
	return []byte(sb.String())
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

// Sitemap renders sitemap.xml listing the single page.
func Sitemap(siteURL string, lastMod time.Time) ([]byte, error) {
	set := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{{
			Loc:        strings.TrimRight(siteURL, "/") + "/",
			LastMod:    lastMod.UTC().Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   1.0,
		}},
	}
	data, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(data, '\n')...), nil
}
