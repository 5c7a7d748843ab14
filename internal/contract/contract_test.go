package contract

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/landaireal/landai-rent/internal/domain"
)

func TestBuildURL(t *testing.T) {
	cases := []struct {
		path   string
		params map[string]any
		want   string
	}{
		{"/api/properties/:id", map[string]any{"id": 7}, "/api/properties/7"},
		{"/api/properties/:id", nil, "/api/properties/:id"},
		{"/api/properties/:id", map[string]any{"other": 1}, "/api/properties/:id"},
		{"/api/properties", map[string]any{"id": 1}, "/api/properties"},
		{"/a/:x/b/:y", map[string]any{"x": "p q", "y": "z"}, "/a/p%20q/b/z"},
		{"/a/:idx", map[string]any{"id": 1}, "/a/:idx"},
	}
	for _, tc := range cases {
		if got := BuildURL(tc.path, tc.params); got != tc.want {
			t.Fatalf("BuildURL(%q, %v) = %q, want %q", tc.path, tc.params, got, tc.want)
		}
	}
}

func TestRouterPattern(t *testing.T) {
	if got := RouterPattern("/api/properties/:id"); got != "/api/properties/{id}" {
		t.Fatalf("got %q", got)
	}
	if got := RouterPattern("/api/properties"); got != "/api/properties" {
		t.Fatalf("got %q", got)
	}
}

func TestRegistry(t *testing.T) {
	names := []string{"inquiries.create", "properties.create", "properties.get", "properties.list"}
	all := All()
	if len(all) != len(names) {
		t.Fatalf("want %d routes, got %d", len(names), len(all))
	}
	for i, r := range all {
		if r.Name != names[i] {
			t.Fatalf("route %d: want %s, got %s", i, names[i], r.Name)
		}
		got, ok := Lookup(r.Name)
		if !ok || got.Path != r.Path {
			t.Fatalf("lookup %s failed", r.Name)
		}
		if r.Method == http.MethodPost && r.Input == nil {
			t.Fatalf("%s has no input schema", r.Name)
		}
	}
	if _, ok := Lookup("properties.delete"); ok {
		t.Fatal("unexpected route")
	}
}

func TestResponseShapes(t *testing.T) {
	if PropertiesGet.Responses[http.StatusOK] != reflect.TypeOf(domain.Property{}) {
		t.Fatal("properties.get 200 should be a Property")
	}
	if PropertiesList.Responses[http.StatusOK] != reflect.TypeOf([]domain.Property{}) {
		t.Fatal("properties.list 200 should be a list")
	}
	if !PropertiesGet.Declares(http.StatusNotFound) || PropertiesList.Declares(http.StatusNotFound) {
		t.Fatal("only properties.get declares 404")
	}
	if !PropertiesCreate.Declares(http.StatusBadRequest) || !InquiriesCreate.Declares(http.StatusBadRequest) {
		t.Fatal("creates declare 400")
	}
	if PropertiesList.Responses[http.StatusNotModified] != nil {
		t.Fatal("304 has no body")
	}
	if InquiriesCreate.URL(nil) != "/api/inquiries" {
		t.Fatal("inquiries path")
	}
}
