package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jira_notifier/internal/model"
)

func TestSynthesizeQuery(t *testing.T) {
	catalog := BuildFilterCatalog(testMetadata(), []string{"KT"})
	filters := model.SubscriptionFilters{
		Events:     []string{model.EventCreated},
		Projects:   []string{"KT"},
		IssueTypes: []string{"10001"},
		Fields: []model.FilterValue{
			{Key: "priority", Inclusion: model.IncludeAny, Values: []string{"1", "2"}},
		},
	}

	preview := SynthesizeQuery(filters, catalog, false)
	assert.Equal(t, `project = KT AND issuetype IN (10001) AND priority in ("1","2") ORDER BY updated DESC`, preview.Query)
	assert.Empty(t, preview.Advisory)
}

func TestSynthesizeQueryInclusionOperators(t *testing.T) {
	catalog := BuildFilterCatalog(testMetadata(), []string{"KT"})

	tests := []struct {
		name     string
		filter   model.FilterValue
		expected string
	}{
		{
			"include all renders one equality per value",
			model.FilterValue{Key: "labels", Inclusion: model.IncludeAll, Values: []string{"infra", "urgent"}},
			"project = KT AND labels = infra AND labels = urgent ORDER BY updated DESC",
		},
		{
			"exclude any",
			model.FilterValue{Key: "labels", Inclusion: model.ExcludeAny, Values: []string{"wontfix"}},
			`project = KT AND labels not in ("wontfix") ORDER BY updated DESC`,
		},
		{
			"empty",
			model.FilterValue{Key: "labels", Inclusion: model.Empty},
			"project = KT AND labels is EMPTY ORDER BY updated DESC",
		},
		{
			// stale values left behind by the caller must not break rendering
			"empty ignores leftover values",
			model.FilterValue{Key: "labels", Inclusion: model.Empty, Values: []string{"stale"}},
			"project = KT AND labels is EMPTY ORDER BY updated DESC",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filters := model.SubscriptionFilters{
				Projects: []string{"KT"},
				Fields:   []model.FilterValue{tt.filter},
			}
			preview := SynthesizeQuery(filters, catalog, false)
			assert.Equal(t, tt.expected, preview.Query)
		})
	}
}

func TestSynthesizeQuerySkipsValuelessFilters(t *testing.T) {
	filters := model.SubscriptionFilters{
		Projects: []string{"KT"},
		Fields: []model.FilterValue{
			{Key: "labels", Inclusion: model.IncludeAny},
		},
	}
	preview := SynthesizeQuery(filters, nil, false)
	assert.Equal(t, "project = KT ORDER BY updated DESC", preview.Query)
}

func TestSynthesizeQueryMultipleIssueTypes(t *testing.T) {
	filters := model.SubscriptionFilters{
		Projects:   []string{"KT"},
		IssueTypes: []string{"10001", "10002"},
	}
	preview := SynthesizeQuery(filters, nil, false)
	assert.Equal(t, "project = KT AND issuetype IN (10001,10002) ORDER BY updated DESC", preview.Query)
}

func TestSynthesizeQuerySecurityLevelAdvisory(t *testing.T) {
	catalog := BuildFilterCatalog(testMetadata(), []string{"KT"})
	filters := model.SubscriptionFilters{Projects: []string{"KT"}}

	preview := SynthesizeQuery(filters, catalog, true)
	assert.NotEmpty(t, preview.Advisory)
	// the advisory never leaks into the literal query text
	assert.Equal(t, "project = KT ORDER BY updated DESC", preview.Query)
}

func TestSynthesizeQuerySecurityLevelFilterSuppressesAdvisory(t *testing.T) {
	metadata := testMetadata()
	metadata.Projects[0].IssueTypes[0].Fields["security"] = model.FieldDescriptor{
		Key:           "security",
		Name:          "Security Level",
		Schema:        model.FieldSchema{Type: "securitylevel"},
		AllowedValues: []model.AllowedValue{{ID: "1", Name: "Internal"}},
	}
	catalog := BuildFilterCatalog(metadata, []string{"KT"})
	filters := model.SubscriptionFilters{
		Projects: []string{"KT"},
		Fields: []model.FilterValue{
			{Key: "security", Inclusion: model.IncludeAny, Values: []string{"1"}},
		},
	}

	preview := SynthesizeQuery(filters, catalog, true)
	assert.Empty(t, preview.Advisory)
}
