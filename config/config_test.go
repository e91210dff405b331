package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/storage/dbconfig"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	p := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	return p
}

func TestLoad(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("empty file", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, ""))
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
	})

	t.Run("leveldb", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `
Ledger:
  Storage:
    Type: leveldb
    LevelDBOptions:
      DataDirectoryPath: /tmp/ledger
Logger:
  Level: debug
`))
		require.NoError(t, err)
		require.Equal(t, dbconfig.LevelDB, cfg.Ledger.Storage.Type)
		require.Equal(t, "/tmp/ledger", cfg.Ledger.Storage.LevelDBOptions.DataDirectoryPath)
		require.Equal(t, "debug", cfg.Logger.Level)
		require.Equal(t, DefaultLogEncoding, cfg.Logger.Encoding)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Load(writeConfig(t, "Ledger:\n  Store: {}\n"))
		require.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, data := range []string{
			"Ledger:\n  Storage:\n    Type: redis\n",
			"Ledger:\n  Storage:\n    Type: leveldb\n",
			"Ledger:\n  Storage:\n    Type: boltdb\n    BoltDBOptions:\n      FilePath: \"\"\n",
			"Logger:\n  Level: loud\n",
			"Logger:\n  Encoding: xml\n",
		} {
			_, err := Load(writeConfig(t, data))
			require.Error(t, err, data)
		}
	})
}

func TestLoggerBuild(t *testing.T) {
	for _, enc := range []string{"console", "json"} {
		log, err := Logger{Level: "warn", Encoding: enc}.Build()
		require.NoError(t, err)
		require.False(t, log.Core().Enabled(-1))
		require.True(t, log.Core().Enabled(1))
	}

	_, err := Logger{Level: "loud", Encoding: "json"}.Build()
	require.Error(t, err)
}
