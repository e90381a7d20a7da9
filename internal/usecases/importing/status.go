package importing

//go:generate mockgen -source=status.go -destination=mocks/status_mock.go -package=mocks

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ga-importer/infrastructure/repository"
	"github.com/vfg2006/ga-importer/internal/domain"
	"github.com/vfg2006/ga-importer/internal/translation"
	"github.com/vfg2006/ga-importer/pkg/apiErrors"
	"github.com/vfg2006/ga-importer/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	StatusOptionPrefix        = "GoogleAnalyticsImporter.importStatus_"
	ImportedRangeOptionPrefix = "GoogleAnalyticsImporter.importedDateRange_"

	maxUpdateAttempts = 3
)

// Notifier recebe as mudanças de estado das importações
type Notifier interface {
	Notify(ctx context.Context, event domain.ImportStatusEvent) error
}

type StatusService interface {
	StartingImport(ctx context.Context, propertyID, accountID, viewID string, siteID int, extraCustomDimensions []domain.CustomDimension) (*domain.ImportStatus, error)
	DayImportFinished(ctx context.Context, siteID int, day domain.Date) error
	SetImportDateRange(ctx context.Context, siteID int, start, end *domain.Date) error
	SetIsVerboseLoggingEnabled(ctx context.Context, siteID int, enabled bool) error
	ResumeImport(ctx context.Context, siteID int) error
	ImportArchiveFinished(ctx context.Context, siteID int, day domain.Date) error
	FinishedImport(ctx context.Context, siteID int) error
	ErroredImport(ctx context.Context, siteID int, message string) error
	RateLimitReached(ctx context.Context, siteID int) error
	GetImportStatus(ctx context.Context, siteID int) (*domain.ImportStatus, error)
	GetAllImportStatuses(ctx context.Context) ([]*domain.ImportStatusView, error)
	ListActiveStatuses(ctx context.Context) ([]*domain.ImportStatus, error)
	DeleteStatus(ctx context.Context, siteID int) error
	GetImportedDateRange(ctx context.Context, siteID int) ([2]string, error)
	Enrich(ctx context.Context, status *domain.ImportStatus) *domain.ImportStatusView
}

type Service struct {
	store      repository.OptionStore
	sites      repository.SiteRepository
	translator translation.Translator
	notifier   Notifier
	logDir     string
	hostname   string
	now        func() time.Time
}

var _ StatusService = (*Service)(nil)

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogDir define onde ficam os logs de importação removidos junto com o status
func WithLogDir(dir, hostname string) Option {
	return func(s *Service) {
		s.logDir = dir
		s.hostname = hostname
	}
}

func NewStatusService(
	store repository.OptionStore,
	sites repository.SiteRepository,
	translator translation.Translator,
	opts ...Option,
) *Service {
	s := &Service{
		store:      store,
		sites:      sites,
		translator: translator,
		logDir:     os.TempDir(),
		hostname:   log.Hostname(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func statusOptionName(siteID int) string {
	return StatusOptionPrefix + strconv.Itoa(siteID)
}

func importedRangeOptionName(siteID int) string {
	return ImportedRangeOptionPrefix + strconv.Itoa(siteID)
}

// StartingImport cria um status novo. Falha se já existir um status que não
// esteja finalizado para o site.
func (s *Service) StartingImport(ctx context.Context, propertyID, accountID, viewID string, siteID int, extraCustomDimensions []domain.CustomDimension) (*domain.ImportStatus, error) {
	name := statusOptionName(siteID)
	if extraCustomDimensions == nil {
		extraCustomDimensions = []domain.CustomDimension{}
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		raw, existing, err := s.load(ctx, siteID)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.Status != domain.ImportStateFinished {
			return nil, NewImportError(ErrImportAlreadyRunning, apiErrors.ErrImportAlreadyRunning, siteID,
				s.translator.Translate("GoogleAnalyticsImporter_CancelExistingImportFirst", siteID))
		}

		now := s.now().Unix()
		rateLimitDays := 0
		status := &domain.ImportStatus{
			Version:                    domain.ImportStatusVersion,
			Status:                     domain.ImportStateStarted,
			IDSite:                     siteID,
			GA:                         domain.GAInfo{Property: propertyID, Account: accountID, View: viewID},
			ImportStartTime:            now,
			LastJobStartTime:           now,
			DaysFinishedSinceRateLimit: &rateLimitDays,
			ExtraCustomDimensions:      extraCustomDimensions,
		}

		ok, err := s.swap(ctx, name, raw, status)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		var previous domain.ImportState
		if existing != nil {
			previous = existing.Status
		}
		s.notify(ctx, domain.ImportStatusEvent{SiteID: siteID, Status: status.Status, PreviousStatus: previous})

		return status, nil
	}

	return nil, NewImportError(ErrConcurrentUpdate, apiErrors.ErrConcurrentUpdate, siteID, "")
}

// DayImportFinished marca o dia como importado. last_date_imported nunca retrocede.
func (s *Service) DayImportFinished(ctx context.Context, siteID int, day domain.Date) error {
	advanced := false

	_, err := s.update(ctx, siteID, func(status *domain.ImportStatus) error {
		status.Status = domain.ImportStateOngoing

		advanced = false
		if status.LastDateImported == nil || !status.LastDateImported.After(day.Time) {
			d := day
			status.LastDateImported = &d
			advanced = true
		}

		if status.DaysFinishedSinceRateLimit != nil {
			*status.DaysFinishedSinceRateLimit++
		}
		return nil
	})
	if err != nil {
		return err
	}

	if advanced {
		return s.setImportedDateRange(ctx, siteID, nil, &day)
	}
	return nil
}

// SetImportDateRange grava os limites da importação; nil representa limite aberto
func (s *Service) SetImportDateRange(ctx context.Context, siteID int, start, end *domain.Date) error {
	if start != nil && end != nil && start.After(end.Time) {
		return NewImportError(ErrInvalidDateRange, apiErrors.ErrInvalidDateRange, siteID,
			s.translator.Translate("GoogleAnalyticsImporter_InvalidDateRange"))
	}

	_, err := s.update(ctx, siteID, func(status *domain.ImportStatus) error {
		status.ImportRangeStart = start
		status.ImportRangeEnd = end
		return nil
	})
	if err != nil {
		return err
	}

	return s.setImportedDateRange(ctx, siteID, start, nil)
}

func (s *Service) SetIsVerboseLoggingEnabled(ctx context.Context, siteID int, enabled bool) error {
	_, err := s.update(ctx, siteID, func(status *domain.ImportStatus) error {
		status.IsVerboseLoggingEnabled = &enabled
		return nil
	})
	return err
}

func (s *Service) ResumeImport(ctx context.Context, siteID int) error {
	_, err := s.update(ctx, siteID, func(status *domain.ImportStatus) error {
		zero := 0
		status.Status = domain.ImportStateOngoing
		status.LastJobStartTime = s.now().Unix()
		status.DaysFinishedSinceRateLimit = &zero
		return nil
	})
	return err
}

func (s *Service) ImportArchiveFinished(ctx context.Context, siteID int, day domain.Date) error {
	_, err := s.update(ctx, siteID, func(status *domain.ImportStatus) error {
		d := day
		status.LastDayArchived = &d
		return nil
	})
	return err
}

func (s *Service) FinishedImport(ctx context.Context, siteID int) error {
	_, err := s.update(ctx, siteID, func(status *domain.ImportStatus) error {
		now := s.now().Unix()
		status.Status = domain.ImportStateFinished
		status.ImportEndTime = &now
		return nil
	})
	return err
}

func (s *Service) ErroredImport(ctx context.Context, siteID int, message string) error {
	_, err := s.update(ctx, siteID, func(status *domain.ImportStatus) error {
		status.Status = domain.ImportStateErrored
		status.Error = message
		return nil
	})
	return err
}

func (s *Service) RateLimitReached(ctx context.Context, siteID int) error {
	_, err := s.update(ctx, siteID, func(status *domain.ImportStatus) error {
		status.Status = domain.ImportStateRateLimited
		return nil
	})
	return err
}

// GetImportStatus falha com ErrImportCancelled quando não há status para o site
func (s *Service) GetImportStatus(ctx context.Context, siteID int) (*domain.ImportStatus, error) {
	_, status, err := s.load(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, s.cancelledError(siteID)
	}
	return status, nil
}

// GetAllImportStatuses lista os status de todos os sites, enriquecidos para exibição
func (s *Service) GetAllImportStatuses(ctx context.Context) ([]*domain.ImportStatusView, error) {
	statuses, err := s.listStatuses(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*domain.ImportStatusView, 0, len(statuses))
	for _, status := range statuses {
		views = append(views, s.Enrich(ctx, status))
	}
	return views, nil
}

// ListActiveStatuses retorna os status que o agendador ainda deve processar
func (s *Service) ListActiveStatuses(ctx context.Context) ([]*domain.ImportStatus, error) {
	statuses, err := s.listStatuses(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]*domain.ImportStatus, 0, len(statuses))
	for _, status := range statuses {
		if status.Status.IsActive() {
			active = append(active, status)
		}
	}
	return active, nil
}

// DeleteStatus cancela a importação. Os arquivos de log são removidos sem
// verificar erros.
func (s *Service) DeleteStatus(ctx context.Context, siteID int) error {
	if err := s.store.Delete(ctx, statusOptionName(siteID)); err != nil {
		return NewImportError(fmt.Errorf("%w: %v", ErrStatusStore, err), apiErrors.ErrDatabaseOperation, siteID, "")
	}

	_ = os.Remove(log.ImportLogFile(s.logDir, siteID, s.hostname))

	s.notify(ctx, domain.ImportStatusEvent{SiteID: siteID, Deleted: true})
	return nil
}

// GetImportedDateRange retorna o intervalo contínuo já importado; "" para limite desconhecido
func (s *Service) GetImportedDateRange(ctx context.Context, siteID int) ([2]string, error) {
	dates := [2]string{"", ""}

	raw, err := s.store.Get(ctx, importedRangeOptionName(siteID))
	if err != nil {
		return dates, NewImportError(fmt.Errorf("%w: %v", ErrStatusStore, err), apiErrors.ErrDatabaseOperation, siteID, "")
	}
	if raw == nil || *raw == "" {
		return dates, nil
	}

	parts := strings.SplitN(*raw, ",", 2)
	dates[0] = parts[0]
	if len(parts) > 1 {
		dates[1] = parts[1]
	}
	return dates, nil
}

// Enrich monta a visão de exibição do status. Falhas na busca do site ou na
// estimativa não interrompem a listagem.
func (s *Service) Enrich(ctx context.Context, status *domain.ImportStatus) *domain.ImportStatusView {
	view := &domain.ImportStatusView{
		Status:                     status.Status,
		IDSite:                     status.IDSite,
		GA:                         status.GA,
		GAInfoPretty:               status.GA.Pretty(),
		LastDateImported:           domain.DateString(status.LastDateImported),
		ImportStartTime:            domain.FormatTimestamp(status.ImportStartTime),
		LastJobStartTime:           domain.FormatTimestamp(status.LastJobStartTime),
		LastDayArchived:            domain.DateString(status.LastDayArchived),
		ImportRangeStart:           domain.DateString(status.ImportRangeStart),
		ImportRangeEnd:             domain.DateString(status.ImportRangeEnd),
		DaysFinishedSinceRateLimit: status.DaysFinishedSinceRateLimit,
		ExtraCustomDimensions:      status.ExtraCustomDimensions,
		IsVerboseLoggingEnabled:    status.VerboseLogging(),
		Error:                      status.Error,
	}
	if status.ImportEndTime != nil {
		view.ImportEndTime = domain.FormatTimestamp(*status.ImportEndTime)
	}

	site, err := s.sites.GetSite(ctx, status.IDSite)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"site_id": status.IDSite,
			"error":   err.Error(),
		}).Warn("importing: erro ao buscar site do status")
		site = nil
	}
	view.Site = site

	if status.ImportRangeEnd != nil {
		var fallback *domain.Date
		if site != nil {
			created := domain.DateOf(site.CreatedAt)
			fallback = &created
		}

		if days, ok := EstimatedDaysLeftToFinish(status, fallback, s.now()); ok {
			view.EstimatedDaysLeftToFinish = days
		} else {
			view.EstimatedDaysLeftToFinish = translation.LowerFirst(s.translator.Translate("General_Unknown"))
		}
	}

	return view
}

// update aplica mutate sobre o status atual com compare-and-swap, repetindo
// quando outro processo alterou o documento entre a leitura e a escrita.
func (s *Service) update(ctx context.Context, siteID int, mutate func(*domain.ImportStatus) error) (*domain.ImportStatus, error) {
	name := statusOptionName(siteID)

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		raw, status, err := s.load(ctx, siteID)
		if err != nil {
			return nil, err
		}
		if status == nil {
			return nil, s.cancelledError(siteID)
		}

		previous := status.Status
		if err := mutate(status); err != nil {
			return nil, err
		}

		ok, err := s.swap(ctx, name, raw, status)
		if err != nil {
			return nil, err
		}
		if !ok {
			logrus.WithFields(logrus.Fields{
				"site_id": siteID,
				"attempt": attempt + 1,
			}).Debug("importing: status alterado concorrentemente, tentando novamente")
			continue
		}

		if previous != status.Status {
			s.notify(ctx, domain.ImportStatusEvent{
				SiteID:         siteID,
				Status:         status.Status,
				PreviousStatus: previous,
				Error:          status.Error,
			})
		}
		return status, nil
	}

	return nil, NewImportError(ErrConcurrentUpdate, apiErrors.ErrConcurrentUpdate, siteID, "")
}

// load retorna o documento bruto (para o compare-and-swap) e o status migrado
func (s *Service) load(ctx context.Context, siteID int) (*string, *domain.ImportStatus, error) {
	raw, err := s.store.Get(ctx, statusOptionName(siteID))
	if err != nil {
		return nil, nil, NewImportError(fmt.Errorf("%w: %v", ErrStatusStore, err), apiErrors.ErrDatabaseOperation, siteID, "")
	}
	if raw == nil || *raw == "" {
		return raw, nil, nil
	}

	status, err := decodeStatus(*raw)
	if err != nil {
		return nil, nil, NewImportError(err, apiErrors.ErrInternalServer, siteID, "")
	}
	return raw, status, nil
}

func (s *Service) swap(ctx context.Context, name string, old *string, status *domain.ImportStatus) (bool, error) {
	encoded, err := json.Marshal(status)
	if err != nil {
		return false, NewImportError(fmt.Errorf("%w: %v", ErrInvalidStatus, err), apiErrors.ErrInternalServer, status.IDSite, "")
	}

	ok, err := s.store.CompareAndSwap(ctx, name, old, string(encoded))
	if err != nil {
		return false, NewImportError(fmt.Errorf("%w: %v", ErrStatusStore, err), apiErrors.ErrDatabaseOperation, status.IDSite, "")
	}
	return ok, nil
}

func (s *Service) listStatuses(ctx context.Context) ([]*domain.ImportStatus, error) {
	options, err := s.store.GetLike(ctx, StatusOptionPrefix)
	if err != nil {
		return nil, NewImportError(fmt.Errorf("%w: %v", ErrStatusStore, err), apiErrors.ErrDatabaseOperation, 0, "")
	}

	statuses := make([]*domain.ImportStatus, 0, len(options))
	for name, raw := range options {
		status, err := decodeStatus(raw)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"option": name,
				"error":  err.Error(),
			}).Warn("importing: status ilegível ignorado")
			continue
		}
		statuses = append(statuses, status)
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].IDSite < statuses[j].IDSite
	})
	return statuses, nil
}

func (s *Service) setImportedDateRange(ctx context.Context, siteID int, start, end *domain.Date) error {
	dates, err := s.GetImportedDateRange(ctx, siteID)
	if err != nil {
		return err
	}

	if start != nil {
		dates[0] = start.String()
	}
	if end != nil {
		dates[1] = end.String()
	}

	if err := s.store.Set(ctx, importedRangeOptionName(siteID), dates[0]+","+dates[1]); err != nil {
		return NewImportError(fmt.Errorf("%w: %v", ErrStatusStore, err), apiErrors.ErrDatabaseOperation, siteID, "")
	}
	return nil
}

func (s *Service) cancelledError(siteID int) error {
	return NewImportError(ErrImportCancelled, apiErrors.ErrImportNotFound, siteID,
		s.translator.Translate("GoogleAnalyticsImporter_ImportCancelled"))
}

func (s *Service) notify(ctx context.Context, event domain.ImportStatusEvent) {
	if s.notifier == nil {
		return
	}

	event.OccurredAt = s.now().UTC()
	if err := s.notifier.Notify(ctx, event); err != nil {
		logrus.WithFields(logrus.Fields{
			"site_id": event.SiteID,
			"status":  event.Status,
			"error":   err.Error(),
		}).Warn("importing: falha ao publicar evento de status")
	}
}

func decodeStatus(raw string) (*domain.ImportStatus, error) {
	status := &domain.ImportStatus{}
	if err := json.Unmarshal([]byte(raw), status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}
	status.Migrate()
	return status, nil
}
