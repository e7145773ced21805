package engine

import (
	"fmt"
	"strings"

	"jira_notifier/internal/model"
)

// defaultSecurityFieldKey is used for the security-level policy check when
// the catalog does not expose a security-level field of its own
const defaultSecurityFieldKey = "security"

// QueryPreview is the human-readable approximation of the server-side query
// a subscription will run. Advisory carries policy notes that apply to the
// subscription but are deliberately not injected into the query text.
type QueryPreview struct {
	Query    string `json:"query"`
	Advisory string `json:"advisory,omitempty"`
}

// SynthesizeQuery renders the chosen project, issue types and field filters
// into a preview query string. Clause order is fixed: project, issuetype,
// then configured filters in list order, joined with AND and suffixed with
// ORDER BY updated DESC.
//
// When securityLevelEmptyByDefault is set and no security-level filter is
// configured, the subscription behaves as though "security is EMPTY" were
// present; that is reported through Advisory so the literal query text the
// user reviewed never changes silently.
func SynthesizeQuery(filters model.SubscriptionFilters, catalog []FilterableField, securityLevelEmptyByDefault bool) QueryPreview {
	var clauses []string

	if len(filters.Projects) > 0 {
		clauses = append(clauses, fmt.Sprintf("project = %s", filters.Projects[0]))
	}
	if len(filters.IssueTypes) > 0 {
		clauses = append(clauses, fmt.Sprintf("issuetype IN (%s)", strings.Join(filters.IssueTypes, ",")))
	}
	for _, filter := range filters.Fields {
		if clause := renderFilterClause(filter); clause != "" {
			clauses = append(clauses, clause)
		}
	}

	preview := QueryPreview{
		Query: strings.Join(clauses, " AND ") + " ORDER BY updated DESC",
	}

	if securityLevelEmptyByDefault && !hasSecurityFilter(filters.Fields, catalog) {
		preview.Advisory = "only issues with an empty security level match this subscription (security is EMPTY)"
	}
	return preview
}

func renderFilterClause(filter model.FilterValue) string {
	switch filter.Inclusion {
	case model.Empty:
		// values, if any, are stale caller state and are ignored
		return fmt.Sprintf("%s is EMPTY", filter.Key)
	case model.IncludeAll:
		if len(filter.Values) == 0 {
			return ""
		}
		equalities := make([]string, 0, len(filter.Values))
		for _, value := range filter.Values {
			equalities = append(equalities, fmt.Sprintf("%s = %s", filter.Key, value))
		}
		return strings.Join(equalities, " AND ")
	case model.ExcludeAny:
		if len(filter.Values) == 0 {
			return ""
		}
		return fmt.Sprintf("%s not in (%s)", filter.Key, quoteJoin(filter.Values))
	default:
		if len(filter.Values) == 0 {
			return ""
		}
		return fmt.Sprintf("%s in (%s)", filter.Key, quoteJoin(filter.Values))
	}
}

func quoteJoin(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, value := range values {
		quoted = append(quoted, fmt.Sprintf("%q", value))
	}
	return strings.Join(quoted, ",")
}

// hasSecurityFilter reports whether any configured filter references the
// security-level field. The catalog entry with a securitylevel schema wins;
// without one the conventional "security" key is checked.
func hasSecurityFilter(configured []model.FilterValue, catalog []FilterableField) bool {
	securityKey := defaultSecurityFieldKey
	for _, field := range catalog {
		if field.Schema.Type == schemaTypeSecurityLevel {
			securityKey = field.Key
			break
		}
	}
	for _, filter := range configured {
		if filter.Key == securityKey {
			return true
		}
	}
	return false
}
