package engine

import "jira_notifier/internal/model"

// FieldKind tags how a field may be used as a subscription filter
type FieldKind int

const (
	// KindUnsupported fields cannot be filtered on
	KindUnsupported FieldKind = iota
	// KindEnumerated fields offer a closed set of selectable values
	KindEnumerated
	// KindFreeText fields accept arbitrary user-typed values
	KindFreeText
	// KindEpicLink is the cross-issue linking pseudo-field; its values are
	// resolved dynamically, not from static metadata
	KindEpicLink
)

// Jira schema type and custom field type identifiers
const (
	schemaTypePriority      = "priority"
	schemaTypeSecurityLevel = "securitylevel"
	schemaTypeOption        = "option"
	schemaTypeArray         = "array"

	itemsOption  = "option"
	itemsVersion = "version"
	itemsString  = "string"

	customEpicLink = "com.pyxis.greenhopper.jira:gh-epic-link"
	customSprint   = "com.pyxis.greenhopper.jira:gh-sprint"
)

// deniedCustomTypes lists custom field types whose allowed values are not
// project scoped (sprints are time-boxed iterations) and would mislead as
// subscription filters. Checked before every allow rule: a sprint field is
// an array of options and would otherwise slip through.
var deniedCustomTypes = map[string]bool{
	customSprint: true,
}

// ClassifyField decides whether a field is eligible as a subscription
// filter and which shape it takes.
func ClassifyField(field model.FieldDescriptor) FieldKind {
	schema := field.Schema

	if deniedCustomTypes[schema.Custom] {
		return KindUnsupported
	}

	switch schema.Type {
	case schemaTypePriority, schemaTypeSecurityLevel:
		return KindEnumerated
	}

	if schema.Custom == customEpicLink {
		return KindEpicLink
	}

	if schema.Type == schemaTypeOption {
		return KindEnumerated
	}

	if schema.Type == schemaTypeArray {
		switch schema.Items {
		case itemsOption, itemsVersion:
			return KindEnumerated
		case itemsString:
			// arrays of plain strings with no closed value set (labels)
			// take arbitrary user input
			if len(field.AllowedValues) == 0 {
				return KindFreeText
			}
			return KindEnumerated
		}
	}

	return KindUnsupported
}
