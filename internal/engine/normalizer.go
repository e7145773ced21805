package engine

import (
	"sort"

	"jira_notifier/internal/model"
)

// IssueTypeRef identifies one issue type a field legally appears on
type IssueTypeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// fieldGroup is one deduplicated field together with every issue type
// it appeared on across the considered projects.
type fieldGroup struct {
	key             string
	field           model.FieldDescriptor
	validIssueTypes []IssueTypeRef
}

// normalizeFields flattens the project -> issue type -> field tree into one
// deduplicated list of fields. The first occurrence of a field key keeps its
// descriptor as representative; every occurrence contributes its issue type
// to the group's validIssueTypes. Order is first-seen: projects in input
// order, issue types in metadata order, fields sorted by map key so the
// traversal is deterministic. Subtask issue types are skipped.
func normalizeFields(metadata *model.IssueMetadata, projectKeys []string) []fieldGroup {
	if metadata == nil || len(projectKeys) == 0 {
		return nil
	}

	var groups []fieldGroup
	index := make(map[string]int)

	for _, projectKey := range projectKeys {
		for _, project := range metadata.Projects {
			if project.Key != projectKey {
				continue
			}
			for _, issueType := range project.IssueTypes {
				if issueType.Subtask {
					continue
				}
				ref := IssueTypeRef{ID: issueType.ID, Name: issueType.Name}
				for _, mapKey := range sortedFieldKeys(issueType.Fields) {
					field := issueType.Fields[mapKey]
					key := field.Key
					if key == "" {
						// webhook payloads omit the field key; the map key is authoritative
						key = mapKey
					}
					if key == "" {
						key = field.Name
					}
					i, seen := index[key]
					if !seen {
						field.Key = key
						groups = append(groups, fieldGroup{key: key, field: field})
						i = len(groups) - 1
						index[key] = i
					}
					groups[i].validIssueTypes = appendIssueType(groups[i].validIssueTypes, ref)
				}
			}
		}
	}
	return groups
}

func sortedFieldKeys(fields map[string]model.FieldDescriptor) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// appendIssueType adds ref unless an entry with the same id is already present
func appendIssueType(refs []IssueTypeRef, ref IssueTypeRef) []IssueTypeRef {
	for _, existing := range refs {
		if existing.ID == ref.ID {
			return refs
		}
	}
	return append(refs, ref)
}
