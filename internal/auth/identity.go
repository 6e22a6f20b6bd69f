package auth

import (
	"github.com/google/uuid"
)

type Permission string

const (
	PermAppointmentsRead   Permission = "appointments.read"
	PermAppointmentsCreate Permission = "appointments.create"
	PermAppointmentsUpdate Permission = "appointments.update"
	PermPaymentsRead       Permission = "payments.read"
	PermPaymentsCreate     Permission = "payments.create"
	PermPaymentsUpdate     Permission = "payments.update"
	PermClientsRead        Permission = "clients.read"
	PermClientsCreate      Permission = "clients.create"
	PermClientsUpdate      Permission = "clients.update"
	PermStaffRead          Permission = "staff.read"
	PermStaffCreate        Permission = "staff.create"
	PermStaffUpdate        Permission = "staff.update"
	PermAuditRead          Permission = "audit.read"
	PermReportsRead        Permission = "reports.read"
)

var AllPermissions = []Permission{
	PermAppointmentsRead,
	PermAppointmentsCreate,
	PermAppointmentsUpdate,
	PermPaymentsRead,
	PermPaymentsCreate,
	PermPaymentsUpdate,
	PermClientsRead,
	PermClientsCreate,
	PermClientsUpdate,
	PermStaffRead,
	PermStaffCreate,
	PermStaffUpdate,
	PermAuditRead,
	PermReportsRead,
}

// Identity is the authenticated caller as carried by the access token.
type Identity struct {
	UserID      uuid.UUID
	Role        string
	Permissions map[Permission]struct{}
}

func NewIdentity(userID uuid.UUID, role string, perms []string) Identity {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[Permission(p)] = struct{}{}
	}
	return Identity{UserID: userID, Role: role, Permissions: set}
}

func (i Identity) Can(p Permission) bool {
	_, ok := i.Permissions[p]
	return ok
}
