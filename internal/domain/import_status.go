package domain

import (
	"fmt"
	"time"
)

// ImportStatusVersion é a versão atual do documento de status persistido
const ImportStatusVersion = 2

type ImportState string

const (
	ImportStateStarted     ImportState = "started"
	ImportStateOngoing     ImportState = "ongoing"
	ImportStateFinished    ImportState = "finished"
	ImportStateErrored     ImportState = "errored"
	ImportStateRateLimited ImportState = "rate_limited"
)

// IsActive indica se o job ainda deve ser processado pelo agendador
func (s ImportState) IsActive() bool {
	return s == ImportStateStarted || s == ImportStateOngoing || s == ImportStateRateLimited
}

// GAInfo identifica a origem dos dados no Google Analytics
type GAInfo struct {
	Property string `json:"property"`
	Account  string `json:"account"`
	View     string `json:"view"`
}

// Pretty formata as informações do GA para exibição
func (g GAInfo) Pretty() string {
	return fmt.Sprintf("Property: %s\nAccount: %s\nView: %s", g.Property, g.Account, g.View)
}

type CustomDimension struct {
	GADimension    string `json:"gaDimension"`
	DimensionScope string `json:"dimensionScope"`
}

// ImportStatus é o documento persistido por site que controla a importação
type ImportStatus struct {
	Version                    int               `json:"version"`
	Status                     ImportState       `json:"status"`
	IDSite                     int               `json:"idSite"`
	GA                         GAInfo            `json:"ga"`
	LastDateImported           *Date             `json:"last_date_imported"`
	ImportStartTime            int64             `json:"import_start_time"`
	ImportEndTime              *int64            `json:"import_end_time"`
	LastJobStartTime           int64             `json:"last_job_start_time"`
	LastDayArchived            *Date             `json:"last_day_archived"`
	ImportRangeStart           *Date             `json:"import_range_start"`
	ImportRangeEnd             *Date             `json:"import_range_end"`
	DaysFinishedSinceRateLimit *int              `json:"days_finished_since_rate_limit"`
	ExtraCustomDimensions      []CustomDimension `json:"extra_custom_dimensions"`
	IsVerboseLoggingEnabled    *bool             `json:"is_verbose_logging_enabled,omitempty"`
	Error                      string            `json:"error,omitempty"`
}

// VerboseLogging retorna o valor do flag tratando documentos antigos sem o campo
func (s *ImportStatus) VerboseLogging() bool {
	return s.IsVerboseLoggingEnabled != nil && *s.IsVerboseLoggingEnabled
}

// Migrate atualiza documentos de versões anteriores para a versão corrente.
// v0 não tinha versão nem contador de dias desde o rate limit; v1 gravava
// extra_custom_dimensions como null.
func (s *ImportStatus) Migrate() {
	if s.Version < 2 && s.ExtraCustomDimensions == nil {
		s.ExtraCustomDimensions = []CustomDimension{}
	}
	// datas gravadas como "" representam limite aberto
	for _, d := range []**Date{&s.LastDateImported, &s.LastDayArchived, &s.ImportRangeStart, &s.ImportRangeEnd} {
		if *d != nil && (*d).IsZero() {
			*d = nil
		}
	}
	s.Version = ImportStatusVersion
}

// ImportStatusView é o status enriquecido retornado pela listagem
type ImportStatusView struct {
	Status                     ImportState       `json:"status"`
	IDSite                     int               `json:"idSite"`
	Site                       *Site             `json:"site"`
	GA                         GAInfo            `json:"ga"`
	GAInfoPretty               string            `json:"gaInfoPretty"`
	LastDateImported           string            `json:"last_date_imported,omitempty"`
	ImportStartTime            string            `json:"import_start_time,omitempty"`
	ImportEndTime              string            `json:"import_end_time,omitempty"`
	LastJobStartTime           string            `json:"last_job_start_time,omitempty"`
	LastDayArchived            string            `json:"last_day_archived,omitempty"`
	ImportRangeStart           string            `json:"import_range_start,omitempty"`
	ImportRangeEnd             string            `json:"import_range_end,omitempty"`
	EstimatedDaysLeftToFinish  any               `json:"estimated_days_left_to_finish,omitempty"`
	DaysFinishedSinceRateLimit *int              `json:"days_finished_since_rate_limit,omitempty"`
	ExtraCustomDimensions      []CustomDimension `json:"extra_custom_dimensions"`
	IsVerboseLoggingEnabled    bool              `json:"is_verbose_logging_enabled"`
	Error                      string            `json:"error,omitempty"`
}

// FormatTimestamp formata um unix timestamp no formato usado nas respostas
func FormatTimestamp(ts int64) string {
	if ts == 0 {
		return ""
	}
	return time.Unix(ts, 0).UTC().Format(time.DateTime)
}
