package forms

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Field describes one input of a declarative form
type Field struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Type        string   `json:"type"` // "text", "email", "number", "select", "date"
	Required    bool     `json:"required"`
	Placeholder string   `json:"placeholder,omitempty"`
	Options     []string `json:"options,omitempty"` // Allowed values for "select" fields
}

// Hint returns the placeholder shown for an empty input
func (f Field) Hint() string {
	if f.Placeholder != "" {
		return f.Placeholder
	}
	return "Enter " + strings.ToLower(f.Label)
}

// Values is the flat string-keyed payload a form emits on submit
type Values map[string]string

// Adapter coerces a submitted payload into a typed value
type Adapter[T any] func(Values) (T, error)

// Schema is the presentation view of a form
type Schema struct {
	Fields      []Field `json:"fields"`
	SubmitLabel string  `json:"submit_label"`
}

// Form holds the draft state of one create or edit form
type Form[T any] struct {
	mu          sync.Mutex
	fields      []Field
	adapter     Adapter[T]
	submitLabel string
	draft       Values
	seeded      bool
}

// New creates a form over the given field list
func New[T any](fields []Field, adapter Adapter[T], submitLabel string) *Form[T] {
	if submitLabel == "" {
		submitLabel = "Submit"
	}
	f := &Form[T]{
		fields:      fields,
		adapter:     adapter,
		submitLabel: submitLabel,
		draft:       make(Values, len(fields)),
	}
	for _, field := range fields {
		f.draft[field.Name] = ""
	}
	return f
}

// Seed fills the draft from initial data. Only the first call has an effect.
func (f *Form[T]) Seed(initial map[string]any) *Form[T] {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seeded {
		return f
	}
	f.seeded = true
	for _, field := range f.fields {
		f.draft[field.Name] = stringify(initial[field.Name])
	}
	return f
}

// Set updates a single draft field
func (f *Form[T]) Set(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.draft[name]; !ok {
		return fmt.Errorf("unknown form field %q", name)
	}
	f.draft[name] = value
	return nil
}

// SetAll applies every known key of values to the draft; unknown keys are ignored
func (f *Form[T]) SetAll(values Values) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for name, value := range values {
		if _, ok := f.draft[name]; ok {
			f.draft[name] = value
		}
	}
}

// Draft returns a copy of the current draft
func (f *Form[T]) Draft() Values {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(Values, len(f.draft))
	for k, v := range f.draft {
		out[k] = v
	}
	return out
}

// Schema returns the field list and submit label
func (f *Form[T]) Schema() Schema {
	fields := make([]Field, len(f.fields))
	copy(fields, f.fields)
	return Schema{Fields: fields, SubmitLabel: f.submitLabel}
}

// Validate checks required fields in declaration order
func (f *Form[T]) Validate() error {
	draft := f.Draft()
	for _, field := range f.fields {
		if field.Required && strings.TrimSpace(draft[field.Name]) == "" {
			return Required(field)
		}
	}
	return nil
}

// SubmitRaw validates the draft and hands the raw payload to fn
func (f *Form[T]) SubmitRaw(fn func(Values) error) error {
	if err := f.Validate(); err != nil {
		return err
	}
	return fn(f.Draft())
}

// Submit validates the draft, coerces it through the adapter and calls fn
func (f *Form[T]) Submit(fn func(T) error) error {
	return f.SubmitRaw(func(values Values) error {
		value, err := f.adapter(values)
		if err != nil {
			return err
		}
		return fn(value)
	})
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
