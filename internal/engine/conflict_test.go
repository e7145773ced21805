package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jira_notifier/internal/model"
)

func testIssueTypes() []model.IssueType {
	return testMetadata().Projects[0].IssueTypes
}

func TestCheckFieldConflictsNoConflict(t *testing.T) {
	catalog := BuildFilterCatalog(testMetadata(), []string{"KT"})
	configured := []model.FilterValue{
		{Key: "priority", Inclusion: model.IncludeAny, Values: []string{"1"}},
	}

	// priority exists on Bug (10001)
	msg := CheckFieldConflicts(catalog, testIssueTypes(), []string{"10001"}, configured)
	assert.Empty(t, msg)
}

func TestCheckFieldConflictsReportsMissingField(t *testing.T) {
	// a priority filter configured while only Bug was selected becomes
	// invalid once Task is added, because Task has no priority field
	catalog := BuildFilterCatalog(testMetadata(), []string{"KT"})
	configured := []model.FilterValue{
		{Key: "priority", Inclusion: model.IncludeAny, Values: []string{"1"}},
	}

	msg := CheckFieldConflicts(catalog, testIssueTypes(), []string{"10001", "10002"}, configured)
	require.NotEmpty(t, msg)
	assert.Equal(t, "Priority does not exist for issue type(s): Task.", msg)
}

func TestCheckFieldConflictsFirstFieldOnly(t *testing.T) {
	metadata := testMetadata()
	metadata.Projects[0].IssueTypes[0].Fields["components"] = model.FieldDescriptor{
		Key:           "components",
		Name:          "Components",
		Schema:        model.FieldSchema{Type: "array", Items: "option"},
		AllowedValues: []model.AllowedValue{{ID: "100", Name: "api"}},
	}
	catalog := BuildFilterCatalog(metadata, []string{"KT"})
	configured := []model.FilterValue{
		{Key: "components", Inclusion: model.IncludeAny, Values: []string{"100"}},
		{Key: "priority", Inclusion: model.IncludeAny, Values: []string{"1"}},
	}

	// both fields conflict with Task; only the first gets reported
	msg := CheckFieldConflicts(catalog, testIssueTypes(), []string{"10002"}, configured)
	assert.Equal(t, "Components does not exist for issue type(s): Task.", msg)
}

func TestCheckFieldConflictsSkipsVanishedFields(t *testing.T) {
	catalog := BuildFilterCatalog(testMetadata(), []string{"KT"})
	configured := []model.FilterValue{
		{Key: "customfield_99999", Inclusion: model.IncludeAny, Values: []string{"x"}},
	}

	// stale filters referencing fields gone from fresh metadata are the
	// caller's repair job, not a conflict
	msg := CheckFieldConflicts(catalog, testIssueTypes(), []string{"10001"}, configured)
	assert.Empty(t, msg)
}

func TestCheckAddedIssueTypes(t *testing.T) {
	catalog := BuildFilterCatalog(testMetadata(), []string{"KT"})
	configured := []model.FilterValue{
		{Key: "priority", Inclusion: model.IncludeAny, Values: []string{"1"}},
	}

	msg := CheckAddedIssueTypes(catalog, testIssueTypes(), []string{"10001"}, []string{"10001", "10002"}, configured)
	assert.Equal(t, "Issue Type(s) \"Task\" does not have filter field(s): \"Priority\".  Please update the conflicting fields or create a separate subscription.", msg)
}

func TestCheckAddedIssueTypesIgnoresExistingSelection(t *testing.T) {
	catalog := BuildFilterCatalog(testMetadata(), []string{"KT"})
	configured := []model.FilterValue{
		{Key: "priority", Inclusion: model.IncludeAny, Values: []string{"1"}},
	}

	// Task conflicts, but it was already selected before the change
	msg := CheckAddedIssueTypes(catalog, testIssueTypes(), []string{"10001", "10002"}, []string{"10001", "10002"}, configured)
	assert.Empty(t, msg)
}

func TestValidateFilterValue(t *testing.T) {
	catalog := BuildFilterCatalog(testMetadata(), []string{"KT"})
	labels := FindField(catalog, "labels")
	priority := FindField(catalog, "priority")
	require.NotNil(t, labels)
	require.NotNil(t, priority)

	assert.NoError(t, ValidateFilterValue(*labels, model.FilterValue{Key: "labels", Inclusion: model.IncludeAll, Values: []string{"a", "b"}}))
	assert.Error(t, ValidateFilterValue(*priority, model.FilterValue{Key: "priority", Inclusion: model.IncludeAll, Values: []string{"1", "2"}}))
	assert.Error(t, ValidateFilterValue(*priority, model.FilterValue{Key: "priority", Inclusion: model.Empty, Values: []string{"1"}}))
	assert.NoError(t, ValidateFilterValue(*priority, model.FilterValue{Key: "priority", Inclusion: model.Empty}))
}
