package routes

import (
	"io"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// Greeting is the body served for GET /
const Greeting = "Hello World from frontend"

type route struct {
	method string
	path   string
}

// Table dispatches requests on an exact (method, path) match and answers 404 otherwise
type Table struct {
	handlers map[route]http.HandlerFunc
}

// New returns the frontend route table
func New() *Table {
	table := &Table{handlers: make(map[route]http.HandlerFunc)}
	table.Handle(http.MethodGet, "/", greet)
	return table
}

// Handle registers handler for method and path, replacing any previous registration
func (table *Table) Handle(method string, path string, handler http.HandlerFunc) {
	table.handlers[route{method: method, path: path}] = handler
}

func (table *Table) lookup(method string, path string) (http.HandlerFunc, bool) {
	if handler, ok := table.handlers[route{method: method, path: path}]; ok {
		return handler, true
	}
	// HEAD is answered by the GET handler of the same path
	if method == http.MethodHead {
		handler, ok := table.handlers[route{method: http.MethodGet, path: path}]
		return handler, ok
	}
	return nil, false
}

func (table *Table) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler, ok := table.lookup(r.Method, r.URL.Path)
	if !ok {
		log.WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Debug("no route")
		http.NotFound(w, r)
		return
	}
	handler(w, r)
}

func greet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(Greeting)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	io.WriteString(w, Greeting)
}
