// Package permission names the route-level permissions checked before a
// request reaches its use case. Item visibility is decided elsewhere.
package permission

// Resources guarded at the route.
const (
	ResourceTicketAdmin     = "ticket.admin"
	ResourceHolidayDecision = "holiday.decision"
	ResourceDaysoff         = "daysoff"
	ResourceSponsor         = "sponsor"
	ResourceTool            = "tool"
	ResourceShift           = "shift"
)

// Actions.
const (
	ActionRead  = "read"
	ActionWrite = "write"
)

// PermissionEnforcer answers whether subject, a role name, may perform
// action on resource.
type PermissionEnforcer interface {
	Enforce(subject string, resource string, action string) (bool, error)
}
