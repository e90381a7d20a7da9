package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// ImportLogFile é o caminho do log de importação de um site neste host
func ImportLogFile(dir string, siteID int, hostname string) string {
	return filepath.Join(dir, fmt.Sprintf("gaimportlog.%d.%s.log", siteID, hostname))
}

// Hostname retorna o nome do host usado nos arquivos de log
func Hostname() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return "localhost"
	}
	return hostname
}

// NewImportLogger cria um logger que escreve no log padrão e no arquivo de
// importação do site. Com verbose o nível passa a ser debug. O io.Closer
// fecha o arquivo.
func NewImportLogger(dir string, siteID int, verbose bool) (logrus.FieldLogger, io.Closer, error) {
	path := ImportLogFile(dir, siteID, Hostname())

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao abrir log de importação %s: %w", path, err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	logger.SetOutput(io.MultiWriter(logrus.StandardLogger().Out, file))
	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger.WithField("site_id", siteID), file, nil
}
