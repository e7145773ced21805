package engine

import (
	"fmt"
	"strings"

	"jira_notifier/internal/model"
)

// CheckFieldConflicts validates already-configured filters against the
// current issue-type selection. It returns a user-facing message for the
// first field that is missing on one of the selected issue types, or the
// empty string when everything is consistent. Reporting only the first
// conflict is deliberate: the caller re-runs the check after every change,
// so the user resolves conflicts one at a time.
//
// Configured filters whose key no longer appears in the catalog are skipped
// here; dropping those stale entries before saving is the caller's job.
func CheckFieldConflicts(catalog []FilterableField, issueTypes []model.IssueType, selected []string, configured []model.FilterValue) string {
	names := issueTypeNames(issueTypes)

	for _, filter := range configured {
		field := FindField(catalog, filter.Key)
		if field == nil {
			continue
		}
		var conflicting []string
		for _, id := range selected {
			if !hasIssueType(field.ValidIssueTypes, id) {
				conflicting = append(conflicting, resolveName(names, id))
			}
		}
		if len(conflicting) > 0 {
			return fmt.Sprintf("%s does not exist for issue type(s): %s.", field.Name, strings.Join(conflicting, ", "))
		}
	}
	return ""
}

// CheckAddedIssueTypes is the variant run when the user expands the
// issue-type selection: only the newly added ids are checked, and the
// message lists the filter fields the added issue type does not carry.
func CheckAddedIssueTypes(catalog []FilterableField, issueTypes []model.IssueType, previous, selected []string, configured []model.FilterValue) string {
	names := issueTypeNames(issueTypes)
	wasSelected := make(map[string]bool, len(previous))
	for _, id := range previous {
		wasSelected[id] = true
	}

	for _, id := range selected {
		if wasSelected[id] {
			continue
		}
		var missing []string
		for _, filter := range configured {
			field := FindField(catalog, filter.Key)
			if field == nil {
				continue
			}
			if !hasIssueType(field.ValidIssueTypes, id) {
				missing = append(missing, field.Name)
			}
		}
		if len(missing) > 0 {
			return fmt.Sprintf("Issue Type(s) \"%s\" does not have filter field(s): \"%s\".  Please update the conflicting fields or create a separate subscription.",
				resolveName(names, id), strings.Join(missing, ", "))
		}
	}
	return ""
}

// ValidateFilterValue checks one configured filter against its field's
// schema: IncludeAll is only legal for array-typed fields, and an Empty
// inclusion must not carry values.
func ValidateFilterValue(field FilterableField, filter model.FilterValue) error {
	if filter.Inclusion == model.IncludeAll && field.Schema.Type != schemaTypeArray {
		return fmt.Errorf("field %s is single-valued and cannot use include_all", field.Key)
	}
	if filter.Inclusion == model.Empty && len(filter.Values) > 0 {
		return fmt.Errorf("field %s requires empty values when inclusion is empty", field.Key)
	}
	return nil
}

func issueTypeNames(issueTypes []model.IssueType) map[string]string {
	names := make(map[string]string, len(issueTypes))
	for _, issueType := range issueTypes {
		names[issueType.ID] = issueType.Name
	}
	return names
}

func resolveName(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return id
}

func hasIssueType(refs []IssueTypeRef, id string) bool {
	for _, ref := range refs {
		if ref.ID == id {
			return true
		}
	}
	return false
}
