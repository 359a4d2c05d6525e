package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.HTTPAddr)
	assert.Equal(t, "http://localhost:3000", cfg.DeployURL)
	assert.False(t, cfg.Offline)
	assert.Equal(t, "cgibeparking@gmail.com", cfg.MailSource)
	// every activation mail carries the operator copy unless overridden
	assert.Equal(t, []string{"cgibeparking@gmail.com"}, cfg.MailCC)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("IS_OFFLINE", "true")
	t.Setenv("MAIL_CC", "ops@cgi.com,lead@cgi.com")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.Offline)
	assert.Equal(t, []string{"ops@cgi.com", "lead@cgi.com"}, cfg.MailCC)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := loadConfig()
	assert.Nil(t, cfg)
	assert.Error(t, err)
}
