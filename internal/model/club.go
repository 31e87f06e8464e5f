package model

import "time"

type MemberRole string

const (
	MemberRoleMember MemberRole = "member"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

type Membership struct {
	ID       int64      `json:"id"`
	ClubID   int64      `json:"club_id"`
	UserID   int64      `json:"user_id"`
	Role     MemberRole `json:"role_in_club"`
	JoinedAt time.Time  `json:"joined_at"`
}

type Application struct {
	ID          int64             `json:"id"`
	ClubID      int64             `json:"club_id"`
	UserID      int64             `json:"user_id"`
	Position    string            `json:"position"`
	Text        string            `json:"application_text"`
	Status      ApplicationStatus `json:"status"`
	AppliedDate time.Time         `json:"applied_date"`
}

// ApplicationForm is what an applicant submits.
type ApplicationForm struct {
	Name string `json:"name" validate:"required"`
	Why  string `json:"why" validate:"required"`
}

type Club struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	Category       string  `json:"category"`
	Description    string  `json:"description"`
	Email          string  `json:"email"`
	FacultyAdvisor string  `json:"faculty_advisor"`
	LogoURL        *string `json:"logo_url,omitempty"`
	IsActive       bool    `json:"is_active"`
	MemberCount    int     `json:"member_count"`
	Rating         float64 `json:"rating"`
	TotalEvents    int     `json:"total_events"`
}

type MembershipStatus string

const (
	MembershipMember  MembershipStatus = "member"
	MembershipNone    MembershipStatus = "not_member"
	MembershipUnknown MembershipStatus = "unknown"
)

type MembershipCheck struct {
	ClubID int64            `json:"club_id"`
	UserID int64            `json:"user_id"`
	Status MembershipStatus `json:"status"`
}
