package importing

import (
	"errors"
	"fmt"
)

// Erros do ciclo de vida da importação
var (
	ErrImportAlreadyRunning = errors.New("import already running for site")
	ErrInvalidDateRange     = errors.New("The start date cannot be past the end date.")
	ErrImportCancelled      = errors.New("Import was cancelled.")
	ErrConcurrentUpdate     = errors.New("import status was modified concurrently")
	ErrStatusStore          = errors.New("error accessing import status store")
	ErrInvalidStatus        = errors.New("invalid import status document")
)

// ImportError é um erro com contexto adicional para a importação de um site
type ImportError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	SiteID  int    // Site envolvido
	Details string // Mensagem traduzida ou detalhes adicionais
}

func (e *ImportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

func NewImportError(err error, code string, siteID int, details string) *ImportError {
	return &ImportError{
		Err:     err,
		Code:    code,
		SiteID:  siteID,
		Details: details,
	}
}
