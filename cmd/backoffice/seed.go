package main

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/stroyhub/backoffice/modules/core/domain/aggregates/role"
	"github.com/stroyhub/backoffice/modules/core/domain/aggregates/user"
	"github.com/stroyhub/backoffice/modules/core/domain/entities/permission"
	"github.com/stroyhub/backoffice/modules/core/domain/entities/portalobject"
	"github.com/stroyhub/backoffice/modules/core/infrastructure/persistence"
	"github.com/stroyhub/backoffice/pkg/composables"
)

var seedObjects = []portalobject.PortalObject{
	{Name: "Users", Code: "admin.users", ObjectType: portalobject.TypePage, SortOrder: 1, IsVisible: true, IsSystem: true},
	{Name: "Roles", Code: "admin.roles", ObjectType: portalobject.TypePage, SortOrder: 2, IsVisible: true, IsSystem: true},
	{Name: "Groups", Code: "admin.groups", ObjectType: portalobject.TypePage, SortOrder: 3, IsVisible: true, IsSystem: true},
	{Name: "Portal objects", Code: "admin.portal_objects", ObjectType: portalobject.TypePage, SortOrder: 4, IsVisible: true, IsSystem: true},
	{Name: "Settings", Code: "admin.settings", ObjectType: portalobject.TypePage, SortOrder: 5, IsVisible: true, IsSystem: true},
	{Name: "Chessboard", Code: "documents.chessboard", ObjectType: portalobject.TypePage, SortOrder: 10, IsVisible: true, IsSystem: true},
	{Name: "References", Code: "references.dictionaries", ObjectType: portalobject.TypePage, SortOrder: 20, IsVisible: true, IsSystem: true},
}

func seedCmd() *cobra.Command {
	var (
		adminEmail    string
		adminPassword string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the baseline role, portal objects and admin account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPool(cmd.Context(), func(ctx context.Context, _ *pgxpool.Pool) error {
				return runSeed(ctx, adminEmail, adminPassword)
			})
		},
	}
	cmd.Flags().StringVar(&adminEmail, "admin-email", "admin@localhost", "email of the administrator account")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "password of the administrator account")
	_ = cmd.MarkFlagRequired("admin-password")
	return cmd
}

func runSeed(ctx context.Context, adminEmail, adminPassword string) error {
	roleRepo := persistence.NewRoleRepository()
	userRepo := persistence.NewUserRepository()
	objectRepo := persistence.NewPortalObjectRepository()
	permissionRepo := persistence.NewPermissionRepository()

	return composables.InTx(ctx, func(txCtx context.Context) error {
		admin, err := roleRepo.Create(txCtx, role.New("Administrator", "admin", 100, "#d32f2f"))
		if err != nil {
			return errors.Wrap(err, "failed to create admin role")
		}

		for _, obj := range seedObjects {
			created, err := objectRepo.Create(txCtx, obj)
			if err != nil {
				return errors.Wrap(err, fmt.Sprintf("failed to create portal object %s", obj.Code))
			}
			err = permissionRepo.Upsert(txCtx, admin.ID(), created.ID, permission.ObjectPermission{
				CanView: true, CanCreate: true, CanEdit: true, CanDelete: true,
			})
			if err != nil {
				return errors.Wrap(err, fmt.Sprintf("failed to grant %s", obj.Code))
			}
		}

		account, err := user.New(adminEmail, "Admin", "").SetPassword(adminPassword)
		if err != nil {
			return err
		}
		created, err := userRepo.Create(txCtx, account)
		if err != nil {
			return errors.Wrap(err, "failed to create admin user")
		}
		if err := roleRepo.AssignToUser(txCtx, created.ID(), admin.ID(), created.ID()); err != nil {
			return errors.Wrap(err, "failed to assign admin role")
		}

		fmt.Printf("seeded role %q, %d portal objects, admin %s\n", admin.Code(), len(seedObjects), created.Email())
		return nil
	})
}
