package model

import "time"

type EventStatus string

const (
	EventStatusApproved EventStatus = "approved"
)

type Event struct {
	ID                  int64       `json:"id"`
	ClubID              int64       `json:"club_id"`
	Title               string      `json:"title"`
	Description         string      `json:"description"`
	EventType           string      `json:"event_type"`
	Venue               string      `json:"venue"`
	StartDate           time.Time   `json:"start_date"`
	EndDate             time.Time   `json:"end_date"`
	MaxParticipants     int         `json:"max_participants"`
	CurrentParticipants int         `json:"current_participants"`
	Status              EventStatus `json:"status"`

	Club *ClubSummary `json:"club,omitempty"`
}

type ClubSummary struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	LogoURL *string `json:"logo_url,omitempty"`
}
