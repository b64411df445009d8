// ABOUTME: Browser page rendering the search form and the controller state
// ABOUTME: Markup is embedded in the binary and rendered with html/template

package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"repo-search-api/core/interfaces"
	"repo-search-api/pkg/utils/parse"
	"repo-search-api/reposearch"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// PageHandler serves GET /
type PageHandler struct {
	searcher Searcher
	opts     []ControllerOption
	logger   interfaces.Logger
}

// NewPageHandler creates the page handler. Each request runs its own controller.
func NewPageHandler(searcher Searcher, logger interfaces.Logger, opts ...ControllerOption) *PageHandler {
	return &PageHandler{
		searcher: searcher,
		opts:     append([]ControllerOption{WithLogger(logger)}, opts...),
		logger:   logger,
	}
}

type pageView struct {
	Keywords  string
	Language  string
	Since     string
	Pages     string
	State     string
	Error     string
	Results   []reposearch.Repository
	NoResults bool
}

// ServeHTTP renders the form, running a search when the query string carries keywords
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	view := pageView{
		Keywords: q.Get("keywords"),
		Language: q.Get("language"),
		Since:    q.Get("earliestCreatedDate"),
		Pages:    q.Get("maxPages"),
	}

	controller := NewController(h.searcher, h.opts...)
	state := controller.State()
	if q.Has("keywords") {
		state = controller.Submit(r.Context(), reposearch.Criteria{
			Keywords:            view.Keywords,
			Language:            view.Language,
			EarliestCreatedDate: view.Since,
			MaxPages:            parse.IntOrZero(view.Pages),
		})
	}

	view.State = state.Name()
	switch s := state.(type) {
	case Success:
		view.Results = s.Results
		view.NoResults = len(s.Results) == 0
	case Failure:
		view.Error = s.Message
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		if h.logger != nil {
			h.logger.Error("Failed to render search page", map[string]interface{}{
				"error": err.Error(),
			})
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
