package membership

import "time"

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// Membership ties a user to a league.
type Membership struct {
	LeagueID  string
	UserID    string
	Role      Role
	JoinedAt  time.Time
	UpdatedAt time.Time
}

func (m Membership) IsLeagueAdmin() bool {
	return m.Role == RoleAdmin
}

// JoinRequest is a pending application to a league that requires approval.
type JoinRequest struct {
	LeagueID  string
	UserID    string
	Status    RequestStatus
	DecidedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
