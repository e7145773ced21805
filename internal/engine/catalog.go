package engine

import (
	"sort"

	"jira_notifier/internal/model"
)

// FieldOption is one selectable value of a filterable field
type FieldOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterableField is one field a channel subscription may filter on,
// derived from the raw metadata tree.
type FilterableField struct {
	Key    string            `json:"key"`
	Name   string            `json:"name"`
	Schema model.FieldSchema `json:"schema"`
	// Values is empty when the field is free-text or its values are
	// resolved dynamically (epic link)
	Values []FieldOption `json:"values"`
	// UserDefined marks fields whose values are not enumerable; the user
	// types arbitrary text instead of choosing from Values
	UserDefined bool `json:"userDefined,omitempty"`
	// ValidIssueTypes records every issue type this field appeared on
	ValidIssueTypes []IssueTypeRef `json:"issueTypes"`
}

// BuildFilterCatalog computes the sorted list of filterable fields for the
// given projects. The epic link pseudo-field, when present, always comes
// first; the remaining fields are sorted by display name, case-sensitive
// ascending. Missing metadata or an empty project list yields an empty
// catalog, which callers render as a valid empty state.
func BuildFilterCatalog(metadata *model.IssueMetadata, projectKeys []string) []FilterableField {
	groups := normalizeFields(metadata, projectKeys)

	var epicLink *FilterableField
	fields := make([]FilterableField, 0, len(groups))

	for _, group := range groups {
		field := FilterableField{
			Key:             group.key,
			Name:            group.field.Name,
			Schema:          group.field.Schema,
			Values:          []FieldOption{},
			ValidIssueTypes: group.validIssueTypes,
		}

		switch ClassifyField(group.field) {
		case KindEpicLink:
			// legal values come from a live issue search, never from
			// static metadata, so Values stays empty here
			f := field
			epicLink = &f
		case KindFreeText:
			field.UserDefined = true
			fields = append(fields, field)
		case KindEnumerated:
			for _, allowed := range group.field.AllowedValues {
				field.Values = append(field.Values, FieldOption{
					Value: allowed.ID,
					Label: allowed.Label(),
				})
			}
			fields = append(fields, field)
		default:
			continue
		}
	}

	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Name < fields[j].Name
	})

	if epicLink != nil {
		return append([]FilterableField{*epicLink}, fields...)
	}
	return fields
}

// FindField returns the catalog entry with the given key, or nil. A nil
// result for a configured filter key means the field vanished from freshly
// fetched metadata and the stale filter should be dropped before saving.
func FindField(catalog []FilterableField, key string) *FilterableField {
	for i := range catalog {
		if catalog[i].Key == key {
			return &catalog[i]
		}
	}
	return nil
}

// ValidInclusions returns the inclusion operators the caller may offer for
// this field. IncludeAll only makes sense for array-typed fields, where an
// issue can carry several values at once.
func (f FilterableField) ValidInclusions() []model.Inclusion {
	if f.Schema.Type == schemaTypeArray {
		return []model.Inclusion{model.IncludeAny, model.IncludeAll, model.ExcludeAny, model.Empty}
	}
	return []model.Inclusion{model.IncludeAny, model.ExcludeAny, model.Empty}
}
