package models

import "gorm.io/plugin/soft_delete"

// Workspace status lifecycle values.
const (
	WorkspaceActive   = "ACTIVE"
	WorkspaceInactive = "INACTIVE"
)

// Subscription status values mirrored from the payments provider.
const (
	SubscriptionActive   = "ACTIVE"
	SubscriptionPastDue  = "PAST_DUE"
	SubscriptionCanceled = "CANCELED"
)

// Plan tiers.
const (
	PlanFree = "FREE"
	PlanPro  = "PRO"
	PlanTeam = "TEAM"
)

// WorkspaceModel is the tenant boundary. Slug is globally unique among
// live workspaces: the unique index spans deleted_at, and deleted_at is
// a non-null integer, so a deleted workspace frees its slug while two
// live workspaces can never share one.
type WorkspaceModel struct {
	Base
	Name      string                `json:"name"       gorm:"not null"`
	Slug      string                `json:"slug"       gorm:"size:191;not null;uniqueIndex:idx_workspace_slug,priority:1"`
	DeletedAt soft_delete.DeletedAt `json:"-"          gorm:"uniqueIndex:idx_workspace_slug,priority:2"`
	Status    string                `json:"status"     gorm:"size:32;default:ACTIVE"`
	CreatorID string                `json:"creator_id" gorm:"type:char(36);index;not null"`

	// Billing linkage, owned by the payments provider.
	StripeCustomerID     string `json:"-"                   gorm:"size:191;index"`
	StripeSubscriptionID string `json:"-"                   gorm:"size:191"`
	Plan                 string `json:"plan"                gorm:"size:32;default:FREE"`
	SubscriptionStatus   string `json:"subscription_status" gorm:"size:32"`
}

func (WorkspaceModel) TableName() string { return "workspaces" }

// Membership roles.
const (
	RoleOwner  = "OWNER"
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
	RoleViewer = "VIEWER"
)

// Membership status values.
const (
	MembershipActive   = "ACTIVE"
	MembershipInactive = "INACTIVE"
)

// MembershipModel joins a user to a workspace. Access is granted iff
// the user created the workspace or holds an ACTIVE, non-deleted row.
type MembershipModel struct {
	Base
	UserID      string                `json:"user_id"      gorm:"type:char(36);index:idx_membership_user_ws;not null"`
	WorkspaceID string                `json:"workspace_id" gorm:"type:char(36);index:idx_membership_user_ws;not null"`
	Role        string                `json:"role"         gorm:"size:32;default:MEMBER"`
	Status      string                `json:"status"       gorm:"size:32;default:ACTIVE"`
	DeletedAt   soft_delete.DeletedAt `json:"-"            gorm:"index"`
}

func (MembershipModel) TableName() string { return "workspace_memberships" }
