package services

import (
	"errors"
	"sync"

	"SalesDashboard/app/forms"
	"SalesDashboard/app/store"
)

// OutcomeType is the class of a user-facing notification
type OutcomeType string

const (
	OutcomeSuccess OutcomeType = "success"
	OutcomeError   OutcomeType = "error"
)

// Actions reported with outcomes
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionReviewed = "reviewed"
)

// Outcome is the observable result of a controller operation. Presentation
// layers turn it into a toast; the activity journal stores it.
type Outcome struct {
	Type     OutcomeType `json:"type"`
	Message  string      `json:"message"`
	Field    string      `json:"field,omitempty"`
	Entity   string      `json:"entity,omitempty"`
	EntityID int         `json:"entity_id,omitempty"`
	Action   string      `json:"action,omitempty"`
}

// Notifier receives every outcome produced by the services
type Notifier interface {
	Notify(Outcome)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Outcome)

// Notify calls f
func (f NotifierFunc) Notify(o Outcome) { f(o) }

// Notifiers fans an outcome out to several notifiers in order
type Notifiers []Notifier

// Notify forwards o to every non-nil notifier
func (ns Notifiers) Notify(o Outcome) {
	for _, n := range ns {
		if n != nil {
			n.Notify(o)
		}
	}
}

// OutcomeRecorder keeps outcomes in memory
type OutcomeRecorder struct {
	mu       sync.Mutex
	outcomes []Outcome
}

// Notify records o
func (r *OutcomeRecorder) Notify(o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

// Outcomes returns a copy of everything recorded so far
func (r *OutcomeRecorder) Outcomes() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Outcome, len(r.outcomes))
	copy(out, r.outcomes)
	return out
}

// Last returns the most recent outcome
func (r *OutcomeRecorder) Last() (Outcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.outcomes) == 0 {
		return Outcome{}, false
	}
	return r.outcomes[len(r.outcomes)-1], true
}

// Success builds a success outcome for an entity change
func Success(entity, action string, id int, message string) Outcome {
	return Outcome{Type: OutcomeSuccess, Message: message, Entity: entity, EntityID: id, Action: action}
}

// Failure builds an error outcome from err
func Failure(entity string, id int, err error) Outcome {
	o := Outcome{Type: OutcomeError, Message: err.Error(), Entity: entity, EntityID: id}
	if ve, ok := forms.AsValidation(err); ok {
		o.Field = ve.Field
	}
	return o
}

// notifier is embedded by the entity services
type notifier struct {
	entity string
	out    Notifier
}

func (n notifier) succeed(action string, id int, message string) Outcome {
	o := Success(n.entity, action, id, message)
	if n.out != nil {
		n.out.Notify(o)
	}
	return o
}

// fail notifies the error and returns it unchanged
func (n notifier) fail(id int, err error) error {
	if n.out != nil {
		n.out.Notify(Failure(n.entity, id, err))
	}
	return err
}

// notFound wraps store.ErrNotFound with the entity label
func notFound(label string, id int) error {
	return &NotFoundError{Label: label, ID: id}
}

// NotFoundError reports a lookup miss for one entity id
type NotFoundError struct {
	Label string
	ID    int
}

func (e *NotFoundError) Error() string {
	return e.Label + " not found"
}

// Unwrap lets errors.Is match store.ErrNotFound
func (e *NotFoundError) Unwrap() error {
	return store.ErrNotFound
}

// IsNotFound reports whether err is a lookup miss
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
