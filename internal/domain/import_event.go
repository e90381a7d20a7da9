package domain

import "time"

// ImportStatusEvent é publicado a cada mudança de estado de uma importação
type ImportStatusEvent struct {
	SiteID         int         `json:"idSite"`
	Status         ImportState `json:"status"`
	PreviousStatus ImportState `json:"previous_status,omitempty"`
	Deleted        bool        `json:"deleted,omitempty"`
	Error          string      `json:"error,omitempty"`
	OccurredAt     time.Time   `json:"occurred_at"`
}
