package estimate

import (
	"embed"

	"github.com/stroyhub/backoffice/modules/estimate/infrastructure/persistence"
	"github.com/stroyhub/backoffice/modules/estimate/presentation/controllers"
	"github.com/stroyhub/backoffice/modules/estimate/services"
	finishingservices "github.com/stroyhub/backoffice/modules/finishing/services"
	"github.com/stroyhub/backoffice/pkg/application"
	"github.com/stroyhub/backoffice/pkg/querycache"
)

//go:embed infrastructure/persistence/schema/estimate-schema.sql
var MigrationFiles embed.FS

type Module struct{}

func NewModule() *Module { return &Module{} }

func (m *Module) Name() string { return "estimate" }

// Register wires the chessboard, references and import pipeline. The
// finishing module must be loaded first: the importer reads through
// its service.
func (m *Module) Register(app application.Application) error {
	chessboardRepo := persistence.NewChessboardRepository()
	referenceRepo := persistence.NewReferenceRepository()
	costingRepo := persistence.NewCostingRepository()
	cache := querycache.New()

	finishingSvc := app.Service(&finishingservices.FinishingService{}).(*finishingservices.FinishingService)

	chessboardSvc := services.NewChessboardService(chessboardRepo, cache)
	importSvc := services.NewImportService(finishingSvc, chessboardRepo, cache)
	exportSvc := services.NewExportService(chessboardSvc)
	referenceSvc := services.NewReferenceService(referenceRepo)
	resolver := services.NewCascadeResolver(costingRepo, cache)

	app.RegisterServices(chessboardSvc, importSvc, exportSvc, referenceSvc, resolver)

	app.RegisterControllers(
		controllers.NewChessboardController(chessboardSvc, importSvc, exportSvc),
		controllers.NewCascadeController(resolver),
		controllers.NewReferencesController(referenceSvc),
	)
	return nil
}
