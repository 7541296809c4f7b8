package core

import (
	"embed"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/session"
	"github.com/stroyhub/backoffice/modules/core/infrastructure/persistence"
	"github.com/stroyhub/backoffice/modules/core/presentation/controllers"
	"github.com/stroyhub/backoffice/modules/core/services"
	"github.com/stroyhub/backoffice/pkg/application"
	"github.com/stroyhub/backoffice/pkg/querycache"
)

//go:embed infrastructure/persistence/schema/core-schema.sql
var MigrationFiles embed.FS

type Module struct {
	sessions session.Store
}

// NewModule wires users, roles, groups, portal objects and the session
// layer. The session store is injected because it lives in Redis, not
// in the shared pool the Application carries.
func NewModule(sessions session.Store) *Module {
	return &Module{sessions: sessions}
}

func (m *Module) Name() string { return "core" }

func (m *Module) Register(app application.Application) error {
	userRepo := persistence.NewUserRepository()
	roleRepo := persistence.NewRoleRepository()
	groupRepo := persistence.NewGroupRepository()
	objectRepo := persistence.NewPortalObjectRepository()
	permissionRepo := persistence.NewPermissionRepository()
	kanbanRepo := persistence.NewKanbanRepository()
	storageRepo := persistence.NewStorageSettingsRepository()

	authService := services.NewAuthService(userRepo, permissionRepo, m.sessions)
	userService := services.NewUserService(userRepo)
	roleService := services.NewRoleService(roleRepo, app.EventBus())
	groupService := services.NewGroupService(groupRepo)
	objectService := services.NewPortalObjectService(objectRepo, querycache.New())
	kanbanService := services.NewKanbanService(kanbanRepo)
	storageService := services.NewStorageSettingsService(storageRepo)

	app.RegisterServices(
		authService,
		userService,
		roleService,
		groupService,
		objectService,
		kanbanService,
		storageService,
	)

	app.RegisterControllers(
		controllers.NewAuthController(authService),
		controllers.NewUsersController(userService),
		controllers.NewRolesController(roleService),
		controllers.NewGroupsController(groupService),
		controllers.NewPortalObjectsController(objectService),
		controllers.NewKanbanController(kanbanService),
		controllers.NewSettingsController(storageService),
	)
	return nil
}
