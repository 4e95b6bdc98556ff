package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	req := require.New(t)
	viper.Reset()
	defer viper.Reset()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	req.NoError(os.WriteFile(path, []byte("purchase:\n  window: 30m\n  feeBps: 250\nauth:\n  jwtSecret: from-file\n"), 0o600))

	args := osArgs
	defer func() { osArgs = args }()
	osArgs = func() []string { return []string{"--config", path} }

	t.Setenv("PURCHASE_WEBHOOKSECRET", "from-env")

	req.NoError(Load("does/not/exist.yaml"))
	req.Equal("30m0s", viper.GetDuration("purchase.window").String())
	req.Equal(int64(250), viper.GetInt64("purchase.feeBps"))
	req.Equal("from-file", viper.GetString("auth.jwtSecret"))
	req.Equal("from-env", viper.GetString("purchase.webhookSecret"))
}

func TestLoadMissingFile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	require.Error(t, LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))
}
