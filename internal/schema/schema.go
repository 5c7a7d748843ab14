// Package schema holds the declarative field rules shared by the API
// contract, the HTTP handlers and the Go client. A creation schema is the
// canonical one with the storage-assigned fields dropped via Omit.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Kind int

const (
	String Kind = iota
	Integer
	Boolean
	StringList
	Timestamp
)

// expected is the wording used in "Expected <kind>" messages.
func (k Kind) expected() string {
	switch k {
	case Integer:
		return "number"
	case Boolean:
		return "boolean"
	case StringList:
		return "array"
	default:
		return "string"
	}
}

type Field struct {
	Name     string
	Kind     Kind
	Optional bool   // may be absent or null
	Rules    string // validator tags applied to present, non-null values
}

type Schema struct {
	Name    string
	Fields  []Field
	omitted []string
}

// SystemFields are assigned by storage and never accepted from clients.
var SystemFields = []string{"id", "createdAt"}

var validate = validator.New()

// Omit derives a schema without the named fields. Keys with those names are
// dropped from decoded payloads rather than rejected.
func (s Schema) Omit(names ...string) Schema {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	out := Schema{Name: s.Name, omitted: append(append([]string(nil), s.omitted...), names...)}
	for _, f := range s.Fields {
		if _, ok := drop[f.Name]; ok {
			continue
		}
		out.Fields = append(out.Fields, f)
	}
	return out
}

func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (s Schema) Names() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Name
	}
	return out
}

// Omitted lists the names removed from the canonical schema.
func (s Schema) Omitted() []string { return append([]string(nil), s.omitted...) }

// ValidationError names the first field that failed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Decode parses body as a JSON object, validates it and decodes the cleaned
// object (declared fields only) into dst.
func (s Schema) Decode(body []byte, dst any) error {
	obj, err := parseObject(body)
	if err != nil {
		return err
	}
	clean, err := s.Validate(obj)
	if err != nil {
		return err
	}
	b, err := json.Marshal(clean)
	if err != nil {
		return fmt.Errorf("schema %s: re-encode: %w", s.Name, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("schema %s: decode: %w", s.Name, err)
	}
	return nil
}

// Validate checks obj field by field in declaration order and returns the
// declared, non-null values. Integers come back as int64.
func (s Schema) Validate(obj map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		raw, present := obj[f.Name]
		if !present || raw == nil {
			if f.Optional {
				continue
			}
			if !present {
				return nil, &ValidationError{Field: f.Name, Message: "Required"}
			}
			return nil, mistyped(f.Name, f.Kind.expected(), raw)
		}
		v, err := coerce(f, raw)
		if err != nil {
			return nil, err
		}
		if f.Rules != "" {
			if err := validate.Var(v, f.Rules); err != nil {
				return nil, &ValidationError{Field: f.Name, Message: message(err, v)}
			}
		}
		out[f.Name] = v
	}
	return out, nil
}

func parseObject(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &ValidationError{Message: "Invalid JSON body"}
	}
	if dec.More() {
		return nil, &ValidationError{Message: "Invalid JSON body"}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &ValidationError{Message: "Expected object, received " + kindOf(v)}
	}
	return obj, nil
}

func coerce(f Field, raw any) (any, error) {
	switch f.Kind {
	case String:
		s, ok := raw.(string)
		if !ok {
			return nil, mistyped(f.Name, "string", raw)
		}
		return s, nil
	case Integer:
		n, ok := raw.(json.Number)
		if !ok {
			return nil, mistyped(f.Name, "number", raw)
		}
		i, err := n.Int64()
		if err == nil {
			return i, nil
		}
		if errors.Is(err, strconv.ErrRange) {
			return nil, outOfRange(f.Name)
		}
		// exponent forms such as 7e3
		fl, err := n.Float64()
		if err != nil || fl != math.Trunc(fl) {
			return nil, &ValidationError{Field: f.Name, Message: "Expected integer, received float"}
		}
		// 2^63 itself is out of range; int64(fl) would wrap it negative
		if fl >= 1<<63 || fl < -(1<<63) {
			return nil, outOfRange(f.Name)
		}
		return int64(fl), nil
	case Boolean:
		b, ok := raw.(bool)
		if !ok {
			return nil, mistyped(f.Name, "boolean", raw)
		}
		return b, nil
	case StringList:
		arr, ok := raw.([]any)
		if !ok {
			return nil, mistyped(f.Name, "array", raw)
		}
		out := make([]string, len(arr))
		for i, it := range arr {
			s, ok := it.(string)
			if !ok {
				return nil, mistyped(fmt.Sprintf("%s.%d", f.Name, i), "string", it)
			}
			out[i] = s
		}
		return out, nil
	case Timestamp:
		s, ok := raw.(string)
		if !ok {
			return nil, mistyped(f.Name, "string", raw)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, &ValidationError{Field: f.Name, Message: "Invalid date"}
		}
		return t, nil
	}
	return nil, fmt.Errorf("schema: field %s has unknown kind %d", f.Name, f.Kind)
}

func outOfRange(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "Number must be between -9223372036854775808 and 9223372036854775807"}
}

func mistyped(field, want string, got any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("Expected %s, received %s", want, kindOf(got))}
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

// message turns the first validator failure into a client-facing sentence.
func message(err error, v any) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err.Error()
	}
	fe := errs[0]
	_, isString := v.(string)
	switch fe.Tag() {
	case "min":
		if isString {
			return fmt.Sprintf("String must contain at least %s character(s)", fe.Param())
		}
		return "Number must be greater than or equal to " + fe.Param()
	case "max":
		if isString {
			return fmt.Sprintf("String must contain at most %s character(s)", fe.Param())
		}
		return "Number must be less than or equal to " + fe.Param()
	case "gt":
		return "Number must be greater than " + fe.Param()
	case "oneof":
		opts := strings.Fields(fe.Param())
		for i, o := range opts {
			opts[i] = "'" + o + "'"
		}
		return fmt.Sprintf("Invalid enum value. Expected %s, received '%v'", strings.Join(opts, " | "), v)
	case "url":
		return "Invalid url"
	case "email":
		return "Invalid email"
	}
	return fmt.Sprintf("Invalid value (%s)", fe.Tag())
}
