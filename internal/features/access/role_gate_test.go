package access

import (
	"testing"

	users_enums "clienttrack/internal/features/users/enums"

	"github.com/stretchr/testify/assert"
)

func Test_Can_WhenAdmin_AllowsEveryAction(t *testing.T) {
	actions := []Action{
		ActionViewClient, ActionCreateClient, ActionEditClient, ActionDeleteClient,
		ActionViewLog, ActionCreateLog, ActionEditLog, ActionDeleteLog,
		ActionViewUser, ActionCreateUser, ActionEditUser, ActionDeleteUser,
	}

	for _, action := range actions {
		assert.True(t, Can(users_enums.UserRoleAdmin, action), "admin denied %s", action)
	}
}

func Test_Can_WhenClientAdmin_DeniesUserDeletion(t *testing.T) {
	assert.True(t, Can(users_enums.UserRoleClientAdmin, ActionDeleteClient))
	assert.True(t, Can(users_enums.UserRoleClientAdmin, ActionCreateUser))
	assert.False(t, Can(users_enums.UserRoleClientAdmin, ActionDeleteUser))
}

func Test_Can_WhenClientUser_AllowsOnlyViewingAndLogWriting(t *testing.T) {
	assert.True(t, Can(users_enums.UserRoleClientUser, ActionViewClient))
	assert.True(t, Can(users_enums.UserRoleClientUser, ActionViewLog))
	assert.True(t, Can(users_enums.UserRoleClientUser, ActionCreateLog))
	assert.True(t, Can(users_enums.UserRoleClientUser, ActionEditLog))

	assert.False(t, Can(users_enums.UserRoleClientUser, ActionCreateClient))
	assert.False(t, Can(users_enums.UserRoleClientUser, ActionEditClient))
	assert.False(t, Can(users_enums.UserRoleClientUser, ActionDeleteClient))
	assert.False(t, Can(users_enums.UserRoleClientUser, ActionDeleteLog))
	assert.False(t, Can(users_enums.UserRoleClientUser, ActionCreateUser))
}

func Test_Can_WithUnknownRole_DeniesEverything(t *testing.T) {
	assert.False(t, Can(users_enums.UserRole("SUPERUSER"), ActionViewClient))
}

func Test_CanAssignRole_AssigningAdmin_RequiresAdminActor(t *testing.T) {
	assert.True(t, CanAssignRole(users_enums.UserRoleAdmin, users_enums.UserRoleAdmin))
	assert.True(t, CanAssignRole(users_enums.UserRoleAdmin, users_enums.UserRoleClientAdmin))

	assert.False(t, CanAssignRole(users_enums.UserRoleClientAdmin, users_enums.UserRoleAdmin))
	assert.False(t, CanAssignRole(users_enums.UserRoleClientAdmin, users_enums.UserRoleClientAdmin))
	assert.False(t, CanAssignRole(users_enums.UserRoleClientUser, users_enums.UserRoleAdmin))
	assert.False(t, CanAssignRole(users_enums.UserRoleClientUser, users_enums.UserRoleClientAdmin))
}

func Test_CanAssignRole_AssigningClientUser_RequiresCreateUserCapability(t *testing.T) {
	assert.True(t, CanAssignRole(users_enums.UserRoleAdmin, users_enums.UserRoleClientUser))
	assert.True(t, CanAssignRole(users_enums.UserRoleClientAdmin, users_enums.UserRoleClientUser))
	assert.False(t, CanAssignRole(users_enums.UserRoleClientUser, users_enums.UserRoleClientUser))
}

func Test_CanAssignRole_WithInvalidTargetRole_Denies(t *testing.T) {
	assert.False(t, CanAssignRole(users_enums.UserRoleAdmin, users_enums.UserRole("owner")))
}
