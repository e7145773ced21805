package model

// Inclusion is the operator applied to a filter's chosen values
type Inclusion string

const (
	IncludeAny Inclusion = "include_any"
	IncludeAll Inclusion = "include_all"
	ExcludeAny Inclusion = "exclude_any"
	Empty      Inclusion = "empty"
)

// Event names the notification bot understands
const (
	EventCreated   = "event_created"
	EventUpdated   = "event_updated_any"
	EventDeleted   = "event_deleted"
	EventCommented = "event_created_comment"
)

// FilterValue is one configured field filter of a subscription.
// IncludeAll is only legal when the referenced field is array-typed;
// when Inclusion is Empty, Values must be empty.
type FilterValue struct {
	Key       string    `json:"key"`
	Inclusion Inclusion `json:"inclusion"`
	Values    []string  `json:"values"`
}

// SubscriptionFilters is the full filter selection of one channel
// subscription. Projects is a list for forward compatibility but the
// engine treats it as single-valued.
type SubscriptionFilters struct {
	Events     []string      `json:"events"`
	Projects   []string      `json:"projects"`
	IssueTypes []string      `json:"issue_types"`
	Fields     []FilterValue `json:"fields"`
}
