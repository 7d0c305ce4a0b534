package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"microwave/internal/config"
	"microwave/internal/models"
	"microwave/internal/repository/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *app {
	t.Helper()
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "ctl.db"))
	require.NoError(t, err)
	a, err := newApp(conn, nil, config.AuthConfig{SigningKey: "sign", EncryptionKey: "enc", TokenTTL: time.Hour})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestConfigureAndStatus(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	var out bytes.Buffer
	require.NoError(t, runStatus(ctx, a, &out))
	assert.Equal(t, "Configured: no\n", out.String())

	out.Reset()
	require.NoError(t, runConfigure(ctx, a, &out, "admin", "pw", "Data Source=x"))
	assert.Contains(t, out.String(), `"admin" configured`)

	out.Reset()
	require.NoError(t, runStatus(ctx, a, &out))
	assert.Contains(t, out.String(), "Configured: yes")
	assert.Contains(t, out.String(), "Username:   admin")
	assert.Contains(t, out.String(), "Last login: never")
	assert.Contains(t, out.String(), "Connection string stored: true")

	_, err := a.auth.GenerateToken(ctx, "ADMIN", "pw")
	require.NoError(t, err)
}

func TestConfigure_RequiresPassword(t *testing.T) {
	a := newTestApp(t)
	err := runConfigure(context.Background(), a, &bytes.Buffer{}, "admin", "", "")
	assert.ErrorContains(t, err, passwordEnv)
}

func TestProgramsListAndDelete(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	res, err := a.programs.CreateProgram(ctx, models.CustomProgramInput{
		Name: "Pizza", Food: "Pizza congelada", PowerLevel: 8, TimeInSeconds: 420, Character: "P",
	})
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)

	var out bytes.Buffer
	require.NoError(t, runProgramsList(ctx, a, &out))
	listing := out.String()
	assert.Contains(t, listing, "Pipoca")
	assert.Contains(t, listing, "Feijão")
	assert.Contains(t, listing, res.Program.ID)
	assert.Contains(t, listing, "custom")

	out.Reset()
	require.NoError(t, runProgramsDelete(ctx, a, &out, res.Program.ID))
	assert.Contains(t, out.String(), "deletado")

	err = runProgramsDelete(ctx, a, &out, res.Program.ID)
	assert.Error(t, err)
}

func TestRootCommand_WithConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yml")
	body := fmt.Sprintf("db:\n  path: %s\nauth:\n  signing_key: s\n  encryption_key: e\n", filepath.Join(dir, "app.db"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs([]string{"--config", cfgPath, "configure", "-u", "admin", "-p", "pw"})
	require.NoError(t, rootCmd.Execute())

	out.Reset()
	rootCmd.SetArgs([]string{"--config", cfgPath, "status"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Username:   admin")
}
