package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ga-importer/infrastructure/integrator/google/gaclient"
	"github.com/vfg2006/ga-importer/infrastructure/repository"
	"github.com/vfg2006/ga-importer/internal/config"
	"github.com/vfg2006/ga-importer/internal/domain"
	"github.com/vfg2006/ga-importer/internal/usecases/importing"
	"github.com/vfg2006/ga-importer/pkg/distlock"
	"github.com/vfg2006/ga-importer/pkg/log"
	"github.com/vfg2006/ga-importer/pkg/metrics"
	"github.com/vfg2006/ga-importer/pkg/utils"
)

// DayImporter importa e arquiva um único dia de um site
type DayImporter interface {
	ImportDay(ctx context.Context, status *domain.ImportStatus, day domain.Date, logger logrus.FieldLogger) error
}

// ImportLoggerFactory abre o log de importação do site
type ImportLoggerFactory func(siteID int, verbose bool) (logrus.FieldLogger, io.Closer, error)

// ImportSyncConfig representa a configuração do agendador de importações
type ImportSyncConfig struct {
	CronSchedule        string
	MaxDaysPerRun       int
	MaxConcurrentJobs   int
	RequestDelaySeconds int
	RateLimitCooldown   time.Duration
	LockTTL             time.Duration
	SyncEnabled         bool
}

// ImportSyncService executa periodicamente as importações ativas, alguns
// dias por site a cada execução.
type ImportSyncService struct {
	scheduler   *gocron.Scheduler
	config      ImportSyncConfig
	statuses    importing.StatusService
	sites       repository.SiteRepository
	dayImporter DayImporter
	newLock     distlock.Factory
	newLogger   ImportLoggerFactory
	metrics     metrics.Collector
	now         func() time.Time

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRunID           string

	rateLimitMutex sync.Mutex
	rateLimitedAt  map[int]time.Time
}

func NewImportSyncService(
	statuses importing.StatusService,
	sites repository.SiteRepository,
	dayImporter DayImporter,
	newLock distlock.Factory,
	collector metrics.Collector,
	appConfig *config.Config,
) *ImportSyncService {
	syncConfig := ImportSyncConfig{
		CronSchedule:        appConfig.ImportSync.CronSchedule,
		MaxDaysPerRun:       appConfig.ImportSync.MaxDaysPerRun,
		MaxConcurrentJobs:   appConfig.ImportSync.MaxConcurrentJobs,
		RequestDelaySeconds: appConfig.ImportSync.RequestDelaySeconds,
		RateLimitCooldown:   appConfig.ImportSync.RateLimitCooldown,
		LockTTL:             appConfig.ImportSync.LockTTL,
		SyncEnabled:         appConfig.ImportSync.Enabled,
	}
	if syncConfig.MaxConcurrentJobs < 1 {
		syncConfig.MaxConcurrentJobs = 1
	}
	if syncConfig.MaxDaysPerRun < 1 {
		syncConfig.MaxDaysPerRun = 1
	}
	if collector == nil {
		collector = metrics.NoopCollector{}
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"max_days_per_run":      syncConfig.MaxDaysPerRun,
		"max_concurrent_jobs":   syncConfig.MaxConcurrentJobs,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"rate_limit_cooldown":   syncConfig.RateLimitCooldown.String(),
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de importações carregada")

	logDir := appConfig.App.LogDir
	return &ImportSyncService{
		scheduler:   gocron.NewScheduler(time.Local),
		config:      syncConfig,
		statuses:    statuses,
		sites:       sites,
		dayImporter: dayImporter,
		newLock:     newLock,
		newLogger: func(siteID int, verbose bool) (logrus.FieldLogger, io.Closer, error) {
			return log.NewImportLogger(logDir, siteID, verbose)
		},
		metrics:       collector,
		now:           time.Now,
		rateLimitedAt: map[int]time.Time{},
	}
}

// Start inicia o agendador
func (s *ImportSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de importações desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de importações")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.RunImports(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar importações: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de importações")
		s.scheduler.Stop()
	}()

	return nil
}

// RunImports processa todas as importações ativas. Execuções sobrepostas são ignoradas.
func (s *ImportSyncService) RunImports(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Importação já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := s.now()
	s.lastSyncStartedAt = startTime
	runID, err := utils.GenerateID()
	if err != nil {
		runID = strconv.FormatInt(startTime.UnixNano(), 36)
	}
	s.lastRunID = runID
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = s.now()
		s.syncMutex.Unlock()
	}()

	runLogger := logrus.WithField("run_id", runID)

	statuses, err := s.statuses.ListActiveStatuses(ctx)
	if err != nil {
		runLogger.WithError(err).Error("Erro ao buscar importações ativas")
		return
	}
	s.metrics.SetActiveImports(len(statuses))

	if len(statuses) == 0 {
		runLogger.Info("Nenhuma importação ativa encontrada")
		return
	}

	runLogger.WithField("imports", len(statuses)).Info("Iniciando execução das importações ativas")

	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

	for _, status := range statuses {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(st *domain.ImportStatus) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			s.processSite(ctx, st.IDSite, runLogger)
		}(status)
	}

	wg.Wait()

	runLogger.WithFields(logrus.Fields{
		"duration": s.now().Sub(startTime).String(),
		"imports":  len(statuses),
	}).Info("Execução das importações concluída")
}

// processSite importa os próximos dias de um site enquanto mantém o lock do site
func (s *ImportSyncService) processSite(ctx context.Context, siteID int, runLogger logrus.FieldLogger) {
	logger := runLogger.WithField("site_id", siteID)

	lock := s.newLock("import:" + strconv.Itoa(siteID))
	acquired, err := lock.Acquire(ctx)
	if err != nil {
		logger.WithError(err).Error("Erro ao obter lock da importação")
		return
	}
	if !acquired {
		logger.Info("Importação do site em execução em outro processo, ignorando")
		return
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			logger.WithError(err).Warn("Erro ao liberar lock da importação")
		}
	}()

	// o status pode ter mudado desde a listagem
	status, err := s.statuses.GetImportStatus(ctx, siteID)
	if err != nil {
		if errors.Is(err, importing.ErrImportCancelled) {
			logger.Info("Importação cancelada antes do início")
			return
		}
		logger.WithError(err).Error("Erro ao buscar status da importação")
		return
	}
	if !status.Status.IsActive() {
		return
	}

	if status.Status == domain.ImportStateRateLimited {
		if !s.cooldownElapsed(siteID) {
			logger.Debug("Aguardando fim do intervalo de rate limit")
			return
		}
		if err := s.statuses.ResumeImport(ctx, siteID); err != nil {
			logger.WithError(err).Error("Erro ao retomar importação")
			return
		}
		logger.Info("Importação retomada após rate limit")
	}

	importLogger, closer, err := s.newLogger(siteID, status.VerboseLogging())
	if err != nil {
		logger.WithError(err).Warn("Erro ao abrir log da importação, usando log padrão")
		importLogger = logger
	} else {
		defer closer.Close()
	}

	s.importDays(ctx, status, lock, importLogger)
}

func (s *ImportSyncService) importDays(ctx context.Context, status *domain.ImportStatus, lock distlock.DistLock, logger logrus.FieldLogger) {
	siteID := status.IDSite

	first, last, err := s.dayRange(ctx, status)
	if err != nil {
		logger.WithError(err).Error("Erro ao calcular período da importação")
		s.fail(ctx, siteID, err.Error(), logger)
		return
	}

	if first.After(last.Time) {
		s.finish(ctx, siteID, logger)
		return
	}

	logger.WithFields(logrus.Fields{
		"first_day": first.String(),
		"last_day":  last.String(),
	}).Info("Importando dias pendentes")

	day := first
	for i := 0; i < s.config.MaxDaysPerRun && !day.After(last.Time); i++ {
		if ctx.Err() != nil {
			return
		}

		if err := s.dayImporter.ImportDay(ctx, status, day, logger); err != nil {
			s.handleDayError(ctx, siteID, day, err, logger)
			return
		}

		if err := s.statuses.DayImportFinished(ctx, siteID, day); err != nil {
			if errors.Is(err, importing.ErrImportCancelled) {
				logger.Info("Importação cancelada durante a execução")
				return
			}
			logger.WithError(err).Error("Erro ao registrar dia importado")
			return
		}
		if err := s.statuses.ImportArchiveFinished(ctx, siteID, day); err != nil {
			logger.WithError(err).Warn("Erro ao registrar dia arquivado")
		}

		if !s.extendLock(ctx, lock, logger) {
			return
		}

		day = day.AddDays(1)
		if !s.wait(ctx) {
			return
		}
	}

	if day.After(last.Time) {
		s.finish(ctx, siteID, logger)
	}
}

// extendLock renova o lock do site a cada dia importado. Sem o lock a execução
// para, pois outro processo pode ter assumido o site.
func (s *ImportSyncService) extendLock(ctx context.Context, lock distlock.DistLock, logger logrus.FieldLogger) bool {
	held, err := distlock.Extend(ctx, lock, s.config.LockTTL)
	if err != nil {
		logger.WithError(err).Error("Erro ao renovar lock da importação, interrompendo")
		return false
	}
	if !held {
		logger.Warn("Lock da importação perdido, interrompendo")
		return false
	}
	return true
}

// dayRange calcula o primeiro e o último dia pendentes. Sem data final o
// limite é ontem.
func (s *ImportSyncService) dayRange(ctx context.Context, status *domain.ImportStatus) (domain.Date, domain.Date, error) {
	last := domain.DateOf(s.now()).AddDays(-1)
	if status.ImportRangeEnd != nil && status.ImportRangeEnd.Before(last.Time) {
		last = *status.ImportRangeEnd
	}

	switch {
	case status.LastDateImported != nil:
		return status.LastDateImported.AddDays(1), last, nil
	case status.ImportRangeStart != nil:
		return *status.ImportRangeStart, last, nil
	}

	site, err := s.sites.GetSite(ctx, status.IDSite)
	if err != nil {
		return domain.Date{}, domain.Date{}, err
	}
	if site == nil {
		return domain.Date{}, domain.Date{}, fmt.Errorf("site %d não encontrado", status.IDSite)
	}
	return domain.DateOf(site.CreatedAt), last, nil
}

func (s *ImportSyncService) handleDayError(ctx context.Context, siteID int, day domain.Date, err error, logger logrus.FieldLogger) {
	logger = logger.WithFields(logrus.Fields{
		"day":   day.String(),
		"error": err.Error(),
	})

	switch {
	case errors.Is(err, gaclient.ErrRateLimited):
		s.metrics.RecordDayFailed("rate_limited")
		s.rateLimitMutex.Lock()
		s.rateLimitedAt[siteID] = s.now()
		s.rateLimitMutex.Unlock()

		logger.Warn("Rate limit do GA atingido, importação pausada")
		if err := s.statuses.RateLimitReached(ctx, siteID); err != nil {
			logger.WithError(err).Error("Erro ao registrar rate limit")
		}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logger.Info("Importação interrompida")
	default:
		s.metrics.RecordDayFailed("error")
		logger.Error("Erro ao importar dia")
		s.fail(ctx, siteID, err.Error(), logger)
	}
}

func (s *ImportSyncService) fail(ctx context.Context, siteID int, message string, logger logrus.FieldLogger) {
	if err := s.statuses.ErroredImport(ctx, siteID, message); err != nil {
		logger.WithError(err).Error("Erro ao registrar falha da importação")
	}
}

func (s *ImportSyncService) finish(ctx context.Context, siteID int, logger logrus.FieldLogger) {
	if err := s.statuses.FinishedImport(ctx, siteID); err != nil {
		logger.WithError(err).Error("Erro ao finalizar importação")
		return
	}
	logger.Info("Importação finalizada")
}

// cooldownElapsed considera encerrado o intervalo de sites sem registro local,
// como após um restart do processo.
func (s *ImportSyncService) cooldownElapsed(siteID int) bool {
	s.rateLimitMutex.Lock()
	defer s.rateLimitMutex.Unlock()

	at, ok := s.rateLimitedAt[siteID]
	if !ok || s.now().Sub(at) >= s.config.RateLimitCooldown {
		delete(s.rateLimitedAt, siteID)
		return true
	}
	return false
}

func (s *ImportSyncService) wait(ctx context.Context) bool {
	if s.config.RequestDelaySeconds <= 0 {
		return true
	}

	select {
	case <-ctx.Done():
		return false
	case <-time.After(time.Duration(s.config.RequestDelaySeconds) * time.Second):
		return true
	}
}

// TriggerManualSync inicia manualmente uma execução das importações
func (s *ImportSyncService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Importação já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando execução manual das importações")
	go s.RunImports(context.WithoutCancel(ctx))
	return true
}

// GetStatus retorna o status atual do agendador
func (s *ImportSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"sync_max_days_per_run":  s.config.MaxDaysPerRun,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"rate_limit_cooldown":    s.config.RateLimitCooldown.String(),
		"last_run_id":            s.lastRunID,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
