package views

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io"
	"sync"
	"sync/atomic"

	"offerdesk/internal/logger"
	. "offerdesk/internal/models"

	"github.com/yuin/goldmark"
)

//go:embed templates/*.html templates/*.md
var templateFS embed.FS

type Name string

const (
	Home        Name = "home"
	OfferLetter Name = "offer_letter"
	Contact     Name = "contact"
	NotFound    Name = "not_found"
	Loading     Name = "loading"

	layoutFile  = "templates/layout.html"
	homeCopy    = "templates/home.md"
	loadRefresh = 1
)

var ErrUnknownView = errors.New("unknown view")

// Route is one navigation target on the landing page.
type Route struct {
	Name string
	Path string
}

var Routes = []Route{
	{Name: "Home", Path: "/"},
	{Name: "Download Offer Letter", Path: "/download-offer-letter"},
	{Name: "Submit Form", Path: "/submit-form"},
}

// Input is one rendered form control.
type Input struct {
	Name        string
	Label       string
	Type        string
	Placeholder string
	Value       string
	Error       string
}

// Data is everything a page template reads.
type Data struct {
	Title        string
	FormID       string
	Path         string
	Refresh      int
	Notification *Notification
	Intro        template.HTML
	Routes       []Route
	Inputs       []Input
}

type view struct {
	once    sync.Once
	loading atomic.Bool
	ready   atomic.Bool
	tmpl    *template.Template
	err     error
	load    func() (*template.Template, error)
}

// get parses the view on first use. Callers that arrive while another
// request is parsing get ok=false and should show the loading page.
func (v *view) get() (tmpl *template.Template, ok bool, err error) {
	if v.ready.Load() {
		return v.tmpl, true, v.err
	}
	if !v.loading.CompareAndSwap(false, true) {
		return nil, false, nil
	}
	v.once.Do(func() {
		v.tmpl, v.err = v.load()
		v.ready.Store(true)
	})
	return v.tmpl, true, v.err
}

// Registry renders the pages. Each routed view is parsed lazily on its
// first request; the loading and not-found pages are parsed up front since
// they are the fallbacks.
type Registry struct {
	views    map[Name]*view
	loading  *template.Template
	notFound *template.Template
	log      logger.Logger
}

func New() (*Registry, error) {
	log := logger.New("views").Function("New")

	loading, err := parse(Loading)
	if err != nil {
		return nil, log.Err("failed to parse loading view", err)
	}
	notFound, err := parse(NotFound)
	if err != nil {
		return nil, log.Err("failed to parse not found view", err)
	}

	r := &Registry{
		views:    make(map[Name]*view),
		loading:  loading,
		notFound: notFound,
		log:      logger.New("views"),
	}
	for _, name := range []Name{Home, OfferLetter, Contact} {
		r.views[name] = &view{load: loader(name)}
	}
	return r, nil
}

func loader(name Name) func() (*template.Template, error) {
	return func() (*template.Template, error) {
		return parse(name)
	}
}

func parse(name Name) (*template.Template, error) {
	return template.New(string(name)).ParseFS(templateFS, layoutFile, "templates/"+fileName(name))
}

// Loaded reports whether a view's template has been parsed.
func (r *Registry) Loaded(name Name) bool {
	v, ok := r.views[name]
	return ok && v.ready.Load()
}

// Render writes the named view. It reports false when the loading page was
// written instead because the view is still being parsed.
func (r *Registry) Render(w io.Writer, name Name, data Data) (bool, error) {
	log := r.log.Function("Render")

	var (
		tmpl     *template.Template
		ready    = true
		execName = name
		err      error
	)
	switch name {
	case NotFound:
		tmpl = r.notFound
	case Loading:
		tmpl = r.loading
	default:
		v, ok := r.views[name]
		if !ok {
			return false, log.Err("failed to render view", ErrUnknownView, "view", name)
		}
		tmpl, ready, err = v.get()
		if err != nil {
			return false, log.Err("failed to parse view", err, "view", name)
		}
		if !ready {
			tmpl, execName = r.loading, Loading
			data = Data{Title: data.Title, Refresh: loadRefresh}
		}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, fileName(execName), data); err != nil {
		return false, log.Err("failed to execute view", err, "view", name)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return false, log.Err("failed to write view", err, "view", name)
	}
	return ready, nil
}

func fileName(name Name) string {
	return string(name) + ".html"
}

// Intro renders the landing page copy from markdown.
func Intro() (template.HTML, error) {
	raw, err := templateFS.ReadFile(homeCopy)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := goldmark.Convert(raw, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
