package access

import (
	users_enums "clienttrack/internal/features/users/enums"
)

type Action string

const (
	ActionViewClient   Action = "view client"
	ActionCreateClient Action = "create client"
	ActionEditClient   Action = "edit client"
	ActionDeleteClient Action = "delete client"

	ActionViewLog   Action = "view log"
	ActionCreateLog Action = "create log"
	ActionEditLog   Action = "edit log"
	ActionDeleteLog Action = "delete log"

	ActionViewUser   Action = "view user"
	ActionCreateUser Action = "create user"
	ActionEditUser   Action = "edit user"
	ActionDeleteUser Action = "delete user"
)

// rolePermissions is the fixed role capability table, evaluated before any
// row is touched. Row-level visibility is a separate membership check: a
// capability here never grants access to rows outside the user's
// memberships.
var rolePermissions = map[users_enums.UserRole]map[Action]bool{
	users_enums.UserRoleAdmin: {
		ActionViewClient: true, ActionCreateClient: true, ActionEditClient: true, ActionDeleteClient: true,
		ActionViewLog: true, ActionCreateLog: true, ActionEditLog: true, ActionDeleteLog: true,
		ActionViewUser: true, ActionCreateUser: true, ActionEditUser: true, ActionDeleteUser: true,
	},
	users_enums.UserRoleClientAdmin: {
		ActionViewClient: true, ActionCreateClient: true, ActionEditClient: true, ActionDeleteClient: true,
		ActionViewLog: true, ActionCreateLog: true, ActionEditLog: true, ActionDeleteLog: true,
		ActionViewUser: true, ActionCreateUser: true, ActionEditUser: true,
	},
	users_enums.UserRoleClientUser: {
		ActionViewClient: true,
		ActionViewLog:    true, ActionCreateLog: true, ActionEditLog: true,
		ActionViewUser: true,
	},
}

// Can reports whether a role holds the capability for an action.
func Can(role users_enums.UserRole, action Action) bool {
	return rolePermissions[role][action]
}

// CanAssignRole reports whether an actor holding actorRole may assign
// targetRole to another user. Assigning ADMIN or CLIENT_ADMIN requires the
// actor to already hold ADMIN; CLIENT_USER may be assigned by any actor
// allowed to create users.
func CanAssignRole(actorRole, targetRole users_enums.UserRole) bool {
	if !targetRole.IsValid() {
		return false
	}

	if targetRole == users_enums.UserRoleClientUser {
		return Can(actorRole, ActionCreateUser)
	}

	return actorRole == users_enums.UserRoleAdmin
}
