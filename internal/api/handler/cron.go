package handler

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ga-importer/internal/domain"
	"github.com/vfg2006/ga-importer/pkg/middleware"
)

// ImportScheduler é o agendador das importações pendentes
type ImportScheduler interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// RunImportJob dispara manualmente uma rodada de importação
func RunImportJob(scheduler ImportScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunImportJob")

		fields := logrus.Fields{}
		if claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims); ok {
			fields["username"] = claims.UserName
		}

		started := scheduler.TriggerManualSync(r.Context())
		if !started {
			logrus.WithFields(fields).Info("Rodada de importação já em andamento")
			writeJSON(w, http.StatusConflict, map[string]any{
				"message": "Já existe uma rodada de importação em andamento",
				"started": false,
			})
			return
		}

		logrus.WithFields(fields).Info("Rodada de importação iniciada manualmente")
		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Rodada de importação iniciada com sucesso",
			"started": true,
		})
	}
}

// GetCronStatus retorna o status do agendador
func GetCronStatus(scheduler ImportScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"import": scheduler.GetStatus(),
		})
	}
}
