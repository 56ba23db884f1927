package directory

import (
	"fmt"
	"strings"
)

// Role is an actor's position in the organisation. It drives visibility.
type Role string

const (
	RoleChefEntity Role = "ChefEntity"
	RoleTeamLeader Role = "TeamLeader"
	RoleTeamMember Role = "TeamMember"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleChefEntity, RoleTeamLeader, RoleTeamMember:
		return true
	}
	return false
}

func (r Role) IsChefEntity() bool {
	return r == RoleChefEntity
}

func (r Role) IsTeamLeader() bool {
	return r == RoleTeamLeader
}

// ParseRole accepts the canonical names and their upper-case spellings
// (TEAMMEMBER, CHEFENTITY...) found in older rows.
func ParseRole(s string) (Role, error) {
	for _, r := range []Role{RoleChefEntity, RoleTeamLeader, RoleTeamMember} {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid role: %s", s)
}

type UserType string

const (
	UserTypeProd    UserType = "PROD"
	UserTypeSupport UserType = "SUPPORT"
)

func (u UserType) String() string {
	return string(u)
}

func (u UserType) IsValid() bool {
	return u == UserTypeProd || u == UserTypeSupport
}

func (u UserType) IsSupport() bool {
	return u == UserTypeSupport
}

// Activity is the presence state shown next to an actor.
type Activity string

const (
	ActivityOnline  Activity = "ONLINE"
	ActivityOffline Activity = "OFFLINE"
	ActivityAway    Activity = "AWAY"
)

func (a Activity) String() string {
	return string(a)
}

func (a Activity) IsValid() bool {
	switch a {
	case ActivityOnline, ActivityOffline, ActivityAway:
		return true
	}
	return false
}
