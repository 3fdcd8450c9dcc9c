package factory

import (
	"context"

	"github.com/voxscribe/voxscribe-server/pkg/config"
	"github.com/voxscribe/voxscribe-server/pkg/controllers"
	"github.com/voxscribe/voxscribe-server/pkg/models"
	dbservice "github.com/voxscribe/voxscribe-server/pkg/services/db"
	redisservice "github.com/voxscribe/voxscribe-server/pkg/services/redis"
)

// ApplicationControllers holds all the controllers.
type ApplicationControllers struct {
	TranscriptionController *controllers.TranscriptionController
	HealthCheckController   *controllers.HealthCheckController
}

// Application is the root struct holding all dependencies.
type Application struct {
	Controllers *ApplicationControllers
	AppConfig   *config.AppConfig
	Ctx         context.Context
}

func NewAppFactory(ctx context.Context, appCnf *config.AppConfig) (*Application, error) {
	logger := appCnf.Logger

	ds := dbservice.New(appCnf.DB, logger)
	rs := redisservice.New(appCnf.RDS, logger)

	transcriptionModel := models.NewTranscriptionModel(appCnf, ds, rs, logger)

	app := &Application{
		AppConfig: appCnf,
		Ctx:       ctx,
		Controllers: &ApplicationControllers{
			TranscriptionController: controllers.NewTranscriptionController(appCnf, transcriptionModel, logger),
			HealthCheckController:   controllers.NewHealthCheckController(appCnf, rs, logger),
		},
	}

	return app, nil
}
