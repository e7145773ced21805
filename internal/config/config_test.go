package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("METADATA_BUCKET_NAME", "metadata-bucket")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("SECURITY_LEVEL_EMPTY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "xoxb-test", cfg.SlackBotToken)
	assert.Equal(t, "metadata-bucket", cfg.MetadataBucketName)
	assert.Equal(t, ":8080", cfg.BindAddr)
	assert.True(t, cfg.SecurityLevelEmptyByDefault)
	assert.Same(t, cfg, Get())
}

func TestLoadMissingVars(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("METADATA_BUCKET_NAME", "")
	t.Setenv("LOG_LEVEL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "METADATA_BUCKET_NAME")
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}
