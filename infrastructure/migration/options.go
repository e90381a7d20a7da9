package migration

import (
	"context"
	"fmt"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ga-importer/infrastructure/repository"
	"github.com/vfg2006/ga-importer/internal/domain"
	"github.com/vfg2006/ga-importer/internal/usecases/importing"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Report resume uma execução da migração
type Report struct {
	Copied   int
	Upgraded int
	Skipped  int
	Failed   int
}

// CopyImportOptions copia os documentos de status e os períodos importados
// de um armazenamento para outro. Status gravados em versões anteriores são
// convertidos para a versão atual no caminho. Sem overwrite, opções que já
// existem no destino são mantidas.
func CopyImportOptions(ctx context.Context, from, to repository.OptionStore, overwrite bool) (Report, error) {
	var report Report

	for _, prefix := range []string{importing.StatusOptionPrefix, importing.ImportedRangeOptionPrefix} {
		options, err := from.GetLike(ctx, prefix)
		if err != nil {
			return report, fmt.Errorf("erro ao listar opções %s: %w", prefix, err)
		}

		names := make([]string, 0, len(options))
		for name := range options {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			value := options[name]
			logger := logrus.WithField("option", name)

			if !overwrite {
				existing, err := to.Get(ctx, name)
				if err != nil {
					return report, fmt.Errorf("erro ao consultar destino %s: %w", name, err)
				}
				if existing != nil {
					logger.Debug("Opção já existe no destino, ignorando")
					report.Skipped++
					continue
				}
			}

			if strings.HasPrefix(name, importing.StatusOptionPrefix) {
				upgraded, changed, err := upgradeStatus(value)
				if err != nil {
					logger.WithError(err).Warn("Status ilegível, não copiado")
					report.Failed++
					continue
				}
				if changed {
					report.Upgraded++
				}
				value = upgraded
			}

			if err := to.Set(ctx, name, value); err != nil {
				return report, fmt.Errorf("erro ao gravar %s: %w", name, err)
			}
			report.Copied++
		}
	}

	return report, nil
}

func upgradeStatus(raw string) (string, bool, error) {
	status := &domain.ImportStatus{}
	if err := json.Unmarshal([]byte(raw), status); err != nil {
		return "", false, err
	}
	if status.Version >= domain.ImportStatusVersion {
		return raw, false, nil
	}

	status.Migrate()
	out, err := json.Marshal(status)
	if err != nil {
		return "", false, err
	}
	return string(out), true, nil
}
