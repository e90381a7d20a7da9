package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportLogFile(t *testing.T) {
	assert.Equal(t, filepath.Join("/tmp", "gaimportlog.3.web01.log"), ImportLogFile("/tmp", 3, "web01"))
}

func TestNewImportLogger(t *testing.T) {
	tests := []struct {
		name        string
		verbose     bool
		expectDebug bool
	}{
		{name: "Nível info por padrão", verbose: false, expectDebug: false},
		{name: "Verbose habilita debug", verbose: true, expectDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()

			logger, closer, err := NewImportLogger(dir, 5, tt.verbose)
			require.NoError(t, err)

			logger.Debug("mensagem de debug")
			logger.Info("mensagem de info")
			require.NoError(t, closer.Close())

			content, err := os.ReadFile(ImportLogFile(dir, 5, Hostname()))
			require.NoError(t, err)

			assert.Contains(t, string(content), "mensagem de info")
			assert.Contains(t, string(content), "site_id=5")
			assert.Equal(t, tt.expectDebug, strings.Contains(string(content), "mensagem de debug"))
		})
	}
}
