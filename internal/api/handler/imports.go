package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ga-importer/internal/domain"
	"github.com/vfg2006/ga-importer/internal/usecases/importing"
	"github.com/vfg2006/ga-importer/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type StartImportRequest struct {
	SiteID                int                      `json:"idSite"`
	Property              string                   `json:"property"`
	Account               string                   `json:"account"`
	View                  string                   `json:"view"`
	StartDate             string                   `json:"start_date"`
	EndDate               string                   `json:"end_date"`
	ExtraCustomDimensions []domain.CustomDimension `json:"extra_custom_dimensions"`
	VerboseLogging        bool                     `json:"is_verbose_logging_enabled"`
}

type DateRangeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type VerboseLoggingRequest struct {
	Enabled bool `json:"enabled"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Warn("handler: erro ao codificar resposta")
	}
}

func siteIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName("site_id")
	if raw == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do site não fornecido", nil)
		return 0, false
	}

	siteID, err := strconv.Atoi(raw)
	if err != nil || siteID <= 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do site inválido", nil)
		return 0, false
	}
	return siteID, true
}

func parseDateRange(w http.ResponseWriter, startDate, endDate string) (*domain.Date, *domain.Date, bool) {
	start, err := domain.ParseOptionalDate(startDate)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inicial inválida, use YYYY-MM-DD", nil)
		return nil, nil, false
	}
	end, err := domain.ParseOptionalDate(endDate)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data final inválida, use YYYY-MM-DD", nil)
		return nil, nil, false
	}
	return start, end, true
}

// handleImportError converte os erros da importação em respostas da API
func handleImportError(w http.ResponseWriter, err error) {
	var importErr *importing.ImportError
	if errors.As(err, &importErr) {
		message := importErr.Details
		if message == "" {
			message = importErr.Err.Error()
		}
		apiErrors.WriteError(w, importErr.Code, message, map[string]any{
			"idSite": importErr.SiteID,
		})
		return
	}

	logrus.WithError(err).Error("handler: erro inesperado na importação")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar importação", nil)
}

func ListImports(service importing.StatusService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses, err := service.GetAllImportStatuses(r.Context())
		if err != nil {
			handleImportError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, statuses)
	}
}

func GetImport(service importing.StatusService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, ok := siteIDParam(w, r)
		if !ok {
			return
		}

		status, err := service.GetImportStatus(r.Context(), siteID)
		if err != nil {
			handleImportError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, service.Enrich(r.Context(), status))
	}
}

// StartImport cria a importação e aplica o período e o log detalhado quando informados
func StartImport(service importing.StatusService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - StartImport")

		var req StartImportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.SiteID <= 0 || req.View == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "idSite e view são obrigatórios", nil)
			return
		}

		start, end, ok := parseDateRange(w, req.StartDate, req.EndDate)
		if !ok {
			return
		}
		if start != nil && end != nil && start.After(end.Time) {
			handleImportError(w, importing.NewImportError(importing.ErrInvalidDateRange, apiErrors.ErrInvalidDateRange, req.SiteID, ""))
			return
		}

		ctx := r.Context()
		if _, err := service.StartingImport(ctx, req.Property, req.Account, req.View, req.SiteID, req.ExtraCustomDimensions); err != nil {
			handleImportError(w, err)
			return
		}

		if start != nil || end != nil {
			if err := service.SetImportDateRange(ctx, req.SiteID, start, end); err != nil {
				rollbackStart(ctx, service, req.SiteID)
				handleImportError(w, err)
				return
			}
		}

		if req.VerboseLogging {
			if err := service.SetIsVerboseLoggingEnabled(ctx, req.SiteID, true); err != nil {
				rollbackStart(ctx, service, req.SiteID)
				handleImportError(w, err)
				return
			}
		}

		status, err := service.GetImportStatus(ctx, req.SiteID)
		if err != nil {
			handleImportError(w, err)
			return
		}

		logrus.WithFields(logrus.Fields{
			"site_id": req.SiteID,
			"view":    req.View,
		}).Info("Importação criada")

		writeJSON(w, http.StatusCreated, service.Enrich(ctx, status))
	}
}

// rollbackStart remove a importação recém-criada quando a configuração
// complementar falha, evitando um status "started" sem período.
func rollbackStart(ctx context.Context, service importing.StatusService, siteID int) {
	if err := service.DeleteStatus(context.WithoutCancel(ctx), siteID); err != nil {
		logrus.WithFields(logrus.Fields{
			"site_id": siteID,
			"error":   err.Error(),
		}).Error("Erro ao desfazer criação da importação")
	}
}

func CancelImport(service importing.StatusService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, ok := siteIDParam(w, r)
		if !ok {
			return
		}

		if err := service.DeleteStatus(r.Context(), siteID); err != nil {
			handleImportError(w, err)
			return
		}

		logrus.WithField("site_id", siteID).Info("Importação cancelada")
		w.WriteHeader(http.StatusNoContent)
	}
}

func ResumeImport(service importing.StatusService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, ok := siteIDParam(w, r)
		if !ok {
			return
		}

		if err := service.ResumeImport(r.Context(), siteID); err != nil {
			handleImportError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func SetImportDateRange(service importing.StatusService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, ok := siteIDParam(w, r)
		if !ok {
			return
		}

		var req DateRangeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		start, end, ok := parseDateRange(w, req.StartDate, req.EndDate)
		if !ok {
			return
		}

		if err := service.SetImportDateRange(r.Context(), siteID, start, end); err != nil {
			handleImportError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func SetVerboseLogging(service importing.StatusService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, ok := siteIDParam(w, r)
		if !ok {
			return
		}

		var req VerboseLoggingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if err := service.SetIsVerboseLoggingEnabled(r.Context(), siteID, req.Enabled); err != nil {
			handleImportError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func GetImportedDateRange(service importing.StatusService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, ok := siteIDParam(w, r)
		if !ok {
			return
		}

		dates, err := service.GetImportedDateRange(r.Context(), siteID)
		if err != nil {
			handleImportError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"start_date": dates[0],
			"end_date":   dates[1],
		})
	}
}
