package model

// IssueMetadata is the create-meta style response from the Jira API
// describing every project the user can see, with the issue types and
// field schemas each one carries.
type IssueMetadata struct {
	Projects []Project `json:"projects"`
}

// Project represents one project entry in the metadata tree
type Project struct {
	Key        string      `json:"key"`
	IssueTypes []IssueType `json:"issuetypes"`
}

// IssueType represents a Jira issue type and its field map
type IssueType struct {
	ID      string                     `json:"id"`
	Name    string                     `json:"name"`
	Subtask bool                       `json:"subtask"`
	Fields  map[string]FieldDescriptor `json:"fields"`
}

// FieldDescriptor describes one field of an issue type. Webhook-sourced
// payloads sometimes omit Key; the map key under Fields is authoritative
// in that case.
type FieldDescriptor struct {
	Key           string         `json:"key,omitempty"`
	Name          string         `json:"name"`
	Required      bool           `json:"required"`
	Schema        FieldSchema    `json:"schema"`
	AllowedValues []AllowedValue `json:"allowedValues,omitempty"`
}

// FieldSchema identifies the value shape of a field
type FieldSchema struct {
	Type   string `json:"type"`
	Custom string `json:"custom,omitempty"`
	Items  string `json:"items,omitempty"`
	System string `json:"system,omitempty"`
}

// AllowedValue is one legal choice for an enumerated field. Some value
// kinds carry Name, others carry Value; Label() picks whichever is set.
type AllowedValue struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

// Label returns the display text for the allowed value
func (v AllowedValue) Label() string {
	if v.Name != "" {
		return v.Name
	}
	return v.Value
}
