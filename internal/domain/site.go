package domain

import "time"

type Site struct {
	ID        int       `json:"idsite"`
	Name      string    `json:"name"`
	MainURL   string    `json:"main_url"`
	CreatedAt time.Time `json:"ts_created"`
}
