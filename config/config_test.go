package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromDefaults(t *testing.T) {
	dir := t.TempDir()
	env := writeFile(t, dir, ".env", "DATABASE_DSN=storefront.db\nJWT_SECRET=s3cret\n")

	cfg, err := LoadFrom(filepath.Join(dir, "missing.json"), env)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "storefront.db", cfg.DatabaseDSN)
	assert.EqualValues(t, 5<<20, cfg.UploadMaxBytes)
	assert.False(t, cfg.Production())
}

func TestLoadFromEnvFileOverridesJSON(t *testing.T) {
	dir := t.TempDir()
	js := writeFile(t, dir, "app.json", `{"app_port": "9000", "app_env": "production"}`)
	env := writeFile(t, dir, ".env", "APP_PORT=9100\nDATABASE_DSN=x\nJWT_SECRET=y\n")

	cfg, err := LoadFrom(js, env)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.AppPort)
	assert.Equal(t, "production", cfg.AppEnv)
	assert.True(t, cfg.Production())
}

func TestLoadFromRequiresDSNAndSecret(t *testing.T) {
	dir := t.TempDir()

	env := writeFile(t, dir, ".env", "JWT_SECRET=y\n")
	_, err := LoadFrom(filepath.Join(dir, "missing.json"), env)
	assert.ErrorIs(t, err, ErrMissingDSN)

	env = writeFile(t, dir, "b.env", "DATABASE_DSN=x\n")
	_, err = LoadFrom(filepath.Join(dir, "missing.json"), env)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestLoadFromRejectsUnknownDriver(t *testing.T) {
	dir := t.TempDir()
	env := writeFile(t, dir, ".env", "DB_DRIVER=oracle\nDATABASE_DSN=x\nJWT_SECRET=y\n")

	_, err := LoadFrom(filepath.Join(dir, "missing.json"), env)
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestDotEnvParsing(t *testing.T) {
	dir := t.TempDir()
	env := writeFile(t, dir, ".env", `
# comment line
DATABASE_DSN="quoted.db"
JWT_SECRET='single'
token_ttl=48h
`)

	cfg, err := LoadFrom(filepath.Join(dir, "missing.json"), env)
	require.NoError(t, err)

	assert.Equal(t, "quoted.db", cfg.DatabaseDSN)
	assert.Equal(t, "single", cfg.JWTSecret)
	assert.Equal(t, "48h0m0s", cfg.TokenTTL.String())
}
