package imgfsd

import (
	"errors"
	"os"
	"sync"

	"github.com/cs212/imgfs/pkg/imgfs"
)

// Service wires an imgfs.Engine to the HTTP router under a single
// process-wide mutex (spec.md §5: "Exactly one: the open storage engine
// ... It is protected by a single process-wide mutex. Every engine
// operation ... executes with the mutex held end-to-end"). The mutex
// lives here, next to the engine, not as a package-level global
// (spec.md §9 design note).
type Service struct {
	mu        sync.Mutex
	eng       *imgfs.Engine
	indexPath string
	baseURL   string
}

// NewService returns a Service serving eng, with indexPath served for
// "/" and "/index.html" and baseURL used to build the Location header on
// redirects (e.g. "http://localhost:8000").
func NewService(eng *imgfs.Engine, indexPath, baseURL string) *Service {
	return &Service{eng: eng, indexPath: indexPath, baseURL: baseURL}
}

// routeKey is the dispatch table key: "METHOD PATH".
type routeKey struct {
	method string
	path   string
}

// Handler returns the imgfsd.Handler for this service, built as a fixed
// dispatch table the same way internal/cli builds its commandMap from
// allCommands() — indexed once at construction, not re-derived per
// request.
func (s *Service) Handler() Handler {
	routes := map[routeKey]func(Message) Response{
		{"GET", "/"}:             s.handleIndex,
		{"GET", "/index.html"}:   s.handleIndex,
		{"GET", "/imgfs/list"}:   s.handleList,
		{"GET", "/imgfs/read"}:   s.handleRead,
		{"GET", "/imgfs/delete"}: s.handleDelete,
		{"POST", "/imgfs/insert"}: s.handleInsert,
	}

	return func(msg Message) Response {
		path := pathOf(msg.URI)

		handler, ok := routes[routeKey{msg.Method, path}]
		if !ok {
			return errorResponse("invalid command")
		}

		return handler(msg)
	}
}

// pathOf strips the query string from a URI, giving the exact path used
// for route matching (spec.md §4.F / §9 Open Question: exact match, not
// the legacy prefix match).
func pathOf(uri string) string {
	for i, c := range uri {
		if c == '?' {
			return uri[:i]
		}
	}

	return uri
}

func (s *Service) handleIndex(_ Message) Response {
	data, err := os.ReadFile(s.indexPath)
	if err != nil {
		return errorResponse("index not found")
	}

	return okResponse("text/html", data)
}

func (s *Service) handleList(_ Message) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.eng.ListJSON()
	if err != nil {
		return errorResponse(err.Error())
	}

	return okResponse("application/json", data)
}

func (s *Service) handleRead(msg Message) Response {
	imgID, ok := QueryParam(msg.URI, "img_id")
	if !ok || imgID == "" {
		return errorResponse("missing img_id")
	}
	imgID = cloneString(imgID)

	resToken, ok := QueryParam(msg.URI, "res")
	if !ok {
		return errorResponse("missing resolution")
	}

	res, err := imgfs.ParseResolution(resToken)
	if err != nil {
		return errorResponse("invalid resolution")
	}

	s.mu.Lock()
	data, err := s.eng.Read(imgID, res)
	s.mu.Unlock()

	if err != nil {
		return errorResponse(errMessage(err))
	}

	// data was materialized into our own buffer by Engine.Read before the
	// mutex was released, so it's safe to write after unlocking
	// (spec.md §5 suspension-point rule).
	return okResponse("image/jpeg", data)
}

func (s *Service) handleDelete(msg Message) Response {
	imgID, ok := QueryParam(msg.URI, "img_id")
	if !ok || imgID == "" {
		return errorResponse("missing img_id")
	}
	imgID = cloneString(imgID)

	s.mu.Lock()
	err := s.eng.Delete(imgID)
	s.mu.Unlock()

	if err != nil {
		return errorResponse(errMessage(err))
	}

	return redirectResponse(s.baseURL + "/index.html")
}

func (s *Service) handleInsert(msg Message) Response {
	name, ok := QueryParam(msg.URI, "name")
	if !ok || name == "" {
		return errorResponse("missing name")
	}
	name = cloneString(name)

	body := make([]byte, len(msg.Body))
	copy(body, msg.Body)

	s.mu.Lock()
	err := s.eng.Insert(body, name)
	s.mu.Unlock()

	if err != nil {
		return errorResponse(errMessage(err))
	}

	return redirectResponse(s.baseURL + "/index.html")
}

// errMessage renders an engine error the way spec.md §7/§8 scenario S6
// expects: a short human-readable message, e.g. "No such image" for
// ErrNotFound.
func errMessage(err error) string {
	switch {
	case errors.Is(err, imgfs.ErrNotFound):
		return "No such image"
	case errors.Is(err, imgfs.ErrDuplicateID):
		return "Image already exists"
	case errors.Is(err, imgfs.ErrFull):
		return "imgFS is full"
	case errors.Is(err, imgfs.ErrResolutions):
		return "Invalid resolution"
	case errors.Is(err, imgfs.ErrInvalidArgument):
		return "Invalid argument"
	default:
		return err.Error()
	}
}

// cloneString copies s so it shares no memory with the Message it was taken
// from, honoring the "handler must copy any bytes it needs to persist" rule
// from SPEC_FULL.md §9.
func cloneString(s string) string {
	b := make([]byte, len(s))
	copy(b, s)

	return string(b)
}

