package finishing

import (
	"embed"

	"github.com/stroyhub/backoffice/modules/finishing/infrastructure/persistence"
	"github.com/stroyhub/backoffice/modules/finishing/services"
	"github.com/stroyhub/backoffice/pkg/application"
)

//go:embed infrastructure/persistence/schema/finishing-schema.sql
var MigrationFiles embed.FS

type Module struct{}

func NewModule() *Module { return &Module{} }

func (m *Module) Name() string { return "finishing" }

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewFinishingService(persistence.NewFinishingRepository()),
	)
	return nil
}
