package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleDoctor  Role = "DOCTOR"
	RolePatient Role = "PATIENT"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Username     string `gorm:"column:username;type:varchar(100);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`
	Email        string `gorm:"column:email;type:varchar(255)"`
	Role         Role   `gorm:"column:role;type:varchar(20);not null;index"`
	Enabled      bool   `gorm:"column:enabled;default:true"`
}

func (User) TableName() string {
	return "auth.users"
}

type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionRead   AuditAction = "read"
	ActionUpdate AuditAction = "update"
	ActionDelete AuditAction = "delete"
	ActionLogin  AuditAction = "login"
)

type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccurredAt time.Time `gorm:"autoCreateTime;index"`

	Username  string `gorm:"column:username;type:varchar(100);index"`
	UserRole  Role   `gorm:"column:user_role;type:varchar(20)"`
	IPAddress string `gorm:"column:ip_address;type:varchar(45)"`

	Action       AuditAction `gorm:"column:action;type:varchar(20);not null;index"`
	ResourceType string      `gorm:"column:resource_type;type:varchar(50);not null;index"`
	ResourceID   string      `gorm:"column:resource_id;type:varchar(50);index"`
}

func (AuditLog) TableName() string {
	return "audit.logs"
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"` // Always "Bearer"
}

type Claims struct {
	UserID   uuid.UUID `json:"sub"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
}
