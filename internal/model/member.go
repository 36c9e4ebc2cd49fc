package model

import "time"

type ActivityType string

const (
	ActivityProject   ActivityType = "project"
	ActivityMedia     ActivityType = "media"
	ActivityMeeting   ActivityType = "meeting"
	ActivityCommunity ActivityType = "community"
	ActivityEvent     ActivityType = "event"
	ActivityOther     ActivityType = "other"
)

type ActivityStatus string

const (
	ActivityPending  ActivityStatus = "pending"
	ActivityVerified ActivityStatus = "verified"
	ActivityRejected ActivityStatus = "rejected"
)

type Activity struct {
	ID          string         `json:"id"`
	MemberID    string         `json:"memberId"`
	Type        ActivityType   `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Date        time.Time      `json:"date"`
	Status      ActivityStatus `json:"status"`
	Points      int            `json:"points"`
}

type Member struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Position   string     `json:"position"`
	Committee  string     `json:"committee"`
	Efficiency int        `json:"efficiency"`
	Login      string     `json:"login"`
	Password   string     `json:"-"`
	Activities []Activity `json:"activities"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
