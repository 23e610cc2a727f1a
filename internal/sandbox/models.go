package sandbox

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/productbazar/bazaaradmin/internal/api"
	"github.com/productbazar/bazaaradmin/internal/roles"
	"gorm.io/gorm"
)

// RoleList is a role slice stored as a JSON text column.
type RoleList []roles.Role

func (l RoleList) Value() (driver.Value, error) {
	if l == nil {
		l = RoleList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *RoleList) Scan(value interface{}) error {
	return scanJSON(value, l, func() { *l = RoleList{} })
}

func (RoleList) GormDataType() string {
	return "text"
}

// Capabilities is a flag map stored as a JSON text column.
type Capabilities map[string]bool

func (c Capabilities) Value() (driver.Value, error) {
	if c == nil {
		c = Capabilities{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *Capabilities) Scan(value interface{}) error {
	return scanJSON(value, c, func() { *c = Capabilities{} })
}

func (Capabilities) GormDataType() string {
	return "text"
}

func scanJSON(value interface{}, dst interface{}, empty func()) error {
	switch v := value.(type) {
	case nil:
		empty()
		return nil
	case []byte:
		if len(v) == 0 {
			empty()
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			empty()
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}

type User struct {
	ID                 string       `gorm:"type:varchar(36);primaryKey"`
	FirstName          string       `gorm:"type:varchar(100)"`
	LastName           string       `gorm:"type:varchar(100)"`
	Email              string       `gorm:"type:varchar(255);index"`
	Phone              string       `gorm:"type:varchar(32)"`
	IsEmailVerified    bool         `gorm:"not null;default:false"`
	IsPhoneVerified    bool         `gorm:"not null;default:false"`
	ProfilePictureURL  string       `gorm:"type:text"`
	Role               roles.Role   `gorm:"type:varchar(20);not null;default:'user';index"`
	SecondaryRoles     RoleList     `gorm:"type:text"`
	RoleCapabilities   Capabilities `gorm:"type:text"`
	CompanyName        string       `gorm:"type:varchar(255)"`
	City               string       `gorm:"type:varchar(100)"`
	Country            string       `gorm:"type:varchar(100)"`
	IsProfileCompleted bool         `gorm:"not null;default:false"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = roles.User
	}
	u.RoleCapabilities = capabilitiesFor(u.Role, u.SecondaryRoles)
	return nil
}

// ToAPI converts the row into the wire shape the admin endpoints return.
func (u User) ToAPI() api.User {
	out := api.User{
		ID:                 u.ID,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Email:              u.Email,
		Phone:              u.Phone,
		IsEmailVerified:    u.IsEmailVerified,
		IsPhoneVerified:    u.IsPhoneVerified,
		ProfilePictureURL:  u.ProfilePictureURL,
		Role:               u.Role,
		SecondaryRoles:     append([]roles.Role{}, u.SecondaryRoles...),
		RoleCapabilities:   map[string]bool{},
		CompanyName:        u.CompanyName,
		IsProfileCompleted: u.IsProfileCompleted,
	}
	for k, v := range u.RoleCapabilities {
		out.RoleCapabilities[k] = v
	}
	if u.City != "" || u.Country != "" {
		out.Address = &api.Address{City: u.City, Country: u.Country}
	}
	if !u.CreatedAt.IsZero() {
		created := u.CreatedAt
		out.CreatedAt = &created
	}
	return out
}

func (u User) IsAdmin() bool {
	return roles.HasAdmin(u.Role, u.SecondaryRoles)
}

var roleCapabilities = map[roles.Role][]string{
	roles.StartupOwner: {"canCreateProducts", "canManageTeam"},
	roles.Investor:     {"canInvest", "canViewPitchDecks"},
	roles.Agency:       {"canOfferServices", "canManageClients"},
	roles.Freelancer:   {"canOfferServices", "canApplyToJobs"},
	roles.Jobseeker:    {"canApplyToJobs"},
	roles.Maker:        {"canCreateProducts"},
	roles.Admin:        {"canManageUsers", "canModerateContent"},
}

// capabilitiesFor derives the capability flags granted by a role set.
func capabilitiesFor(primary roles.Role, secondary []roles.Role) Capabilities {
	caps := Capabilities{"canComment": true, "canUpvote": true}
	for _, r := range append([]roles.Role{primary}, secondary...) {
		for _, c := range roleCapabilities[r] {
			caps[c] = true
		}
	}
	return caps
}
