// Package contract is the single declaration of the HTTP API: operation
// name, method, path template, input schema and response body per status.
// The server mounts its routes from it and the Go client builds requests
// from it, so neither side restates the wire shape.
package contract

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/landaireal/landai-rent/internal/domain"
	"github.com/landaireal/landai-rent/internal/schema"
)

// ValidationError is the 400 body.
type ValidationError struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Message is the body of every other non-2xx response.
type Message struct {
	Message string `json:"message"`
}

type Route struct {
	Name   string
	Method string
	Path   string
	Input  *schema.Schema
	// Responses maps a status code to the Go type of its body; a nil type
	// means the status carries no body.
	Responses map[int]reflect.Type
}

func typeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

var (
	PropertiesList = Route{
		Name:   "properties.list",
		Method: http.MethodGet,
		Path:   "/api/properties",
		Responses: map[int]reflect.Type{
			http.StatusOK:                  typeOf[[]domain.Property](),
			http.StatusNotModified:         nil,
			http.StatusBadRequest:          typeOf[ValidationError](),
			http.StatusInternalServerError: typeOf[Message](),
		},
	}
	PropertiesGet = Route{
		Name:   "properties.get",
		Method: http.MethodGet,
		Path:   "/api/properties/:id",
		Responses: map[int]reflect.Type{
			http.StatusOK:                  typeOf[domain.Property](),
			http.StatusNotModified:         nil,
			http.StatusNotFound:            typeOf[Message](),
			http.StatusInternalServerError: typeOf[Message](),
		},
	}
	PropertiesCreate = Route{
		Name:   "properties.create",
		Method: http.MethodPost,
		Path:   "/api/properties",
		Input:  &schema.InsertProperty,
		Responses: map[int]reflect.Type{
			http.StatusCreated:               typeOf[domain.Property](),
			http.StatusBadRequest:            typeOf[ValidationError](),
			http.StatusUnauthorized:          typeOf[Message](),
			http.StatusRequestEntityTooLarge: typeOf[Message](),
			http.StatusInternalServerError:   typeOf[Message](),
		},
	}
	InquiriesCreate = Route{
		Name:   "inquiries.create",
		Method: http.MethodPost,
		Path:   "/api/inquiries",
		Input:  &schema.InsertInquiry,
		Responses: map[int]reflect.Type{
			http.StatusCreated:               typeOf[domain.Inquiry](),
			http.StatusBadRequest:            typeOf[ValidationError](),
			http.StatusRequestEntityTooLarge: typeOf[Message](),
			http.StatusTooManyRequests:       typeOf[Message](),
			http.StatusInternalServerError:   typeOf[Message](),
		},
	}
)

var registry = map[string]Route{
	PropertiesList.Name:   PropertiesList,
	PropertiesGet.Name:    PropertiesGet,
	PropertiesCreate.Name: PropertiesCreate,
	InquiriesCreate.Name:  InquiriesCreate,
}

func Lookup(name string) (Route, bool) {
	r, ok := registry[name]
	return r, ok
}

// All returns every route sorted by name.
func All() []Route {
	out := make([]Route, 0, len(registry))
	for _, r := range registry {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Declares reports whether status is part of the route's contract.
func (r Route) Declares(status int) bool {
	_, ok := r.Responses[status]
	return ok
}

// URL fills the route's path template; see BuildURL.
func (r Route) URL(params map[string]any) string { return BuildURL(r.Path, params) }

// BuildURL substitutes ":key" segments of path with the matching params,
// path-escaped. Params with no placeholder are ignored and placeholders with
// no param are left as they are.
func BuildURL(path string, params map[string]any) string {
	if len(params) == 0 {
		return path
	}
	segs := strings.Split(path, "/")
	for i, s := range segs {
		if !strings.HasPrefix(s, ":") {
			continue
		}
		if v, ok := params[s[1:]]; ok {
			segs[i] = url.PathEscape(fmt.Sprint(v))
		}
	}
	return strings.Join(segs, "/")
}

// RouterPattern rewrites ":key" segments as "{key}" for chi.
func RouterPattern(path string) string {
	segs := strings.Split(path, "/")
	for i, s := range segs {
		if strings.HasPrefix(s, ":") {
			segs[i] = "{" + s[1:] + "}"
		}
	}
	return strings.Join(segs, "/")
}
