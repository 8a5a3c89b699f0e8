// Package assistant interprets natural-language instructions into
// constrained action batches applied through the same mutation paths as
// direct API edits.
package assistant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NewProjectPlaceholder is the sentinel project reference the model uses
// for a project created earlier in the same batch.
const NewProjectPlaceholder = "NEW_PROJECT"

// FallbackMessage is returned whenever the model output cannot be parsed
// into a plan.
const FallbackMessage = "Sorry, I couldn't process that request. Could you rephrase it?"

// ActionType identifies one of the constrained mutations the assistant
// may request.
type ActionType string

// Action type constants
const (
	// ActionCreateProject creates a new project
	ActionCreateProject ActionType = "create_project"
	// ActionCreateTask creates a new task in a project
	ActionCreateTask ActionType = "create_task"
	// ActionUpdateTask updates fields of an existing task
	ActionUpdateTask ActionType = "update_task"
	// ActionUpdateProject updates fields of an existing project
	ActionUpdateProject ActionType = "update_project"
)

// EntityRef is a loosely-typed entity reference. The model emits ids as
// JSON numbers or strings interchangeably, and project references may
// carry the NEW_PROJECT placeholder or even a category name.
type EntityRef string

// UnmarshalJSON accepts strings, numbers and null
func (r *EntityRef) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = EntityRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*r = EntityRef(n.String())
		return nil
	}
	return fmt.Errorf("invalid entity reference: %s", data)
}

// IsZero reports whether the reference is absent
func (r EntityRef) IsZero() bool {
	return r == ""
}

// IsNewProject reports whether the reference is the in-batch placeholder
func (r EntityRef) IsNewProject() bool {
	return string(r) == NewProjectPlaceholder
}

// UintID parses the reference as a numeric id
func (r EntityRef) UintID() (uint, error) {
	id, err := strconv.ParseUint(string(r), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", string(r))
	}
	return uint(id), nil
}

// OptionalString distinguishes an absent JSON field from an explicit
// null: null clears the stored value, absence leaves it untouched.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON marks the field as present and records the value
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// Action is one typed mutation request in a batch. Only the fields
// relevant to the action type are consulted.
type Action struct {
	Type            ActionType     `json:"type"`
	Name            string         `json:"name,omitempty"`
	Description     string         `json:"description,omitempty"`
	CategoryID      EntityRef      `json:"categoryId,omitempty"`
	ProjectID       EntityRef      `json:"projectId,omitempty"`
	ParentTaskID    EntityRef      `json:"parentTaskId,omitempty"`
	TaskID          EntityRef      `json:"taskId,omitempty"`
	PercentComplete *int           `json:"percentComplete,omitempty"`
	IsCompleted     *bool          `json:"isCompleted,omitempty"`
	Roadblocks      OptionalString `json:"roadblocks,omitempty"`
}

// Plan is the parsed model output: an ordered action batch plus the
// free-text message shown to the user.
type Plan struct {
	Actions         []Action `json:"actions"`
	ResponseMessage string   `json:"responseMessage"`
}

// ParsePlan converts raw model output into a Plan. Markdown code fences
// are stripped before decoding. Any shape mismatch degrades to an empty
// batch with the canned fallback message instead of surfacing a parse
// error.
func ParsePlan(raw string) Plan {
	cleaned := stripFences(raw)

	var plan Plan
	if err := json.Unmarshal([]byte(cleaned), &plan); err != nil {
		return Plan{ResponseMessage: FallbackMessage}
	}
	if plan.ResponseMessage == "" && len(plan.Actions) == 0 {
		return Plan{ResponseMessage: FallbackMessage}
	}
	return plan
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
