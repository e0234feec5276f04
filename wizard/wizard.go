// Package wizard models the multi-step contact / project-discussion form
// as an explicit state struct mutated only through named transitions. The
// host owns rendering and network cancellation; the wizard owns field
// accumulation and step gating.
package wizard

import (
	"context"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Enumerated option sets offered by the form steps.
var (
	ProjectTypes = []string{
		"Web Application", "Mobile App", "E-Commerce", "API / Backend",
		"AI / ML Project", "Blockchain", "Other",
	}
	Budgets = []string{
		"Under $1k", "$1k - $5k", "$5k - $15k", "$15k+", "Not sure yet",
	}
	Timelines = []string{
		"ASAP", "1-2 weeks", "1-2 months", "3+ months", "Flexible",
	}
	Urgencies = []string{"low", "normal", "high", "urgent"}

	ContactPreferences = []string{"email", "phone", "either"}
)

// Step is one screen of the form. Validate reports whether the fields
// entered so far satisfy this step.
type Step struct {
	Name     string
	Validate func(fields map[string]string) bool
}

// SubmitFunc delivers the accumulated fields. The wizard treats the call
// as opaque; aborting it on unmount is the caller's concern.
type SubmitFunc func(ctx context.Context, fields map[string]string) error

// Wizard accumulates field values across a fixed sequence of steps.
type Wizard struct {
	steps      []Step
	step       int
	fields     map[string]string
	submitting bool
	submitted  bool
	errMsg     string
	submit     SubmitFunc
}

// New returns a wizard at step 0 with all fields empty.
func New(steps []Step, submit SubmitFunc) *Wizard {
	return &Wizard{
		steps:  steps,
		fields: make(map[string]string),
		submit: submit,
	}
}

// ContactSteps is the short three-step variant used by the contact page.
func ContactSteps() []Step {
	return []Step{
		{
			Name: "about-you",
			Validate: func(f map[string]string) bool {
				return filled(f["name"]) && ValidEmail(f["email"])
			},
		},
		{
			Name: "your-project",
			Validate: func(f map[string]string) bool {
				return oneOf(f["projectType"], ProjectTypes) && oneOf(f["timeline"], Timelines)
			},
		},
		{
			Name: "message",
			Validate: func(f map[string]string) bool {
				return filled(f["message"])
			},
		},
	}
}

// DiscussionSteps is the full five-step variant used by the
// project-discussion flow.
func DiscussionSteps() []Step {
	return []Step{
		{
			Name: "about-you",
			Validate: func(f map[string]string) bool {
				return filled(f["name"]) && ValidEmail(f["email"]) && filled(f["phone"])
			},
		},
		{
			Name: "your-project",
			Validate: func(f map[string]string) bool {
				return oneOf(f["projectType"], ProjectTypes) && oneOf(f["timeline"], Timelines)
			},
		},
		{
			Name: "budget-audience",
			Validate: func(f map[string]string) bool {
				return oneOf(f["budget"], Budgets) && filled(f["targetAudience"])
			},
		},
		{
			Name: "tech-features",
			Validate: func(f map[string]string) bool {
				return filled(f["technologies"]) && filled(f["features"])
			},
		},
		{
			Name: "message",
			Validate: func(f map[string]string) bool {
				return filled(f["message"]) && oneOf(f["contactPreference"], ContactPreferences)
			},
		},
	}
}

// Step returns the current step index.
func (w *Wizard) Step() int { return w.step }

// Field returns the current value for key.
func (w *Wizard) Field(key string) string { return w.fields[key] }

// Fields returns a copy of the accumulated field values.
func (w *Wizard) Fields() map[string]string {
	out := make(map[string]string, len(w.fields))
	for k, v := range w.fields {
		out[k] = v
	}
	return out
}

// Submitting reports whether a submission is in flight.
func (w *Wizard) Submitting() bool { return w.submitting }

// Submitted reports whether the wizard reached its terminal state.
func (w *Wizard) Submitted() bool { return w.submitted }

// Err returns the current error message, empty when none.
func (w *Wizard) Err() string { return w.errMsg }

// IsStepValid reports whether step index is complete.
func (w *Wizard) IsStepValid(index int) bool {
	if index < 0 || index >= len(w.steps) {
		return false
	}
	return w.steps[index].Validate(w.fields)
}

// UpdateField sets a field value on any step and clears any current error.
func (w *Wizard) UpdateField(key, value string) {
	w.fields[key] = value
	w.errMsg = ""
}

// Next advances to the following step. No-op when the current step is
// incomplete or already the last.
func (w *Wizard) Next() {
	if w.step >= len(w.steps)-1 {
		return
	}
	if !w.IsStepValid(w.step) {
		return
	}
	w.step++
}

// Back returns to the previous step unconditionally. No-op at step 0.
func (w *Wizard) Back() {
	if w.step > 0 {
		w.step--
	}
}

// Submit fires the submission. Only fireable at the last step and only
// when that step is valid; otherwise it is a no-op. On success the wizard
// reaches its terminal Submitted state; on failure the error message is
// recorded and the entered fields are retained so the user can retry.
func (w *Wizard) Submit(ctx context.Context) {
	if w.submitted || w.submitting {
		return
	}
	if w.step != len(w.steps)-1 || !w.IsStepValid(w.step) {
		return
	}

	w.submitting = true
	err := w.submit(ctx, w.Fields())
	w.submitting = false

	if err != nil {
		w.errMsg = err.Error()
		return
	}
	w.submitted = true
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}

func oneOf(s string, options []string) bool {
	for _, option := range options {
		if s == option {
			return true
		}
	}
	return false
}
