package web

import (
	_ "embed"
	"html/template"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/phyten/minigrep/internal/engine/opts"
)

const (
	stylesPath = "/assets/styles.css"
	scriptPath = "/assets/ui.js"
	searchPath = "/api/search"
)

var (
	//go:embed templates/index.html
	indexHTML string
	indexOnce sync.Once
	indexTmpl *template.Template

	//go:embed assets/styles.css
	stylesCSS string

	//go:embed assets/ui.js
	scriptJS string
)

type indexData struct {
	StylesPath string
	ScriptPath string
	SearchPath string
}

// App serves the search UI and the JSON search API.
type App struct {
	// Defaults apply to every search before query parameters are read.
	Defaults opts.Options
	Logger   logrus.FieldLogger
	// NewID returns the request id echoed in X-Request-ID and the response body.
	NewID func() string
}

// New returns an App that logs through logger and tags searches with UUIDs.
func New(defaults opts.Options, logger logrus.FieldLogger) *App {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &App{Defaults: defaults, Logger: logger, NewID: uuid.NewString}
}

// Register attaches the UI, its assets and the search API to r.
func (a *App) Register(r *mux.Router) {
	r.HandleFunc("/", indexHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(stylesPath, stylesHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(scriptPath, scriptHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(searchPath, a.searchHandler).Methods(http.MethodPost)
}

func indexHandler(w http.ResponseWriter, r *http.Request) {
	tmpl := loadTemplate()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Content-Security-Policy", "default-src 'none'; style-src 'self'; script-src 'self'; connect-src 'self'; form-action 'self'; base-uri 'none'")
	data := indexData{StylesPath: stylesPath, ScriptPath: scriptPath, SearchPath: searchPath}
	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "template rendering failed", http.StatusInternalServerError)
	}
}

func stylesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write([]byte(stylesCSS))
}

func scriptHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write([]byte(scriptJS))
}

func loadTemplate() *template.Template {
	indexOnce.Do(func() {
		indexTmpl = template.Must(template.New("index").Parse(indexHTML))
	})
	return indexTmpl
}
