package api

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"

	"github.com/oncycle-org/adherence/alerts"
	"github.com/oncycle-org/adherence/analytics"
	"github.com/oncycle-org/adherence/config"
	"github.com/oncycle-org/adherence/dosages"
	"github.com/oncycle-org/adherence/logger"
	"github.com/oncycle-org/adherence/patients"
	"github.com/oncycle-org/adherence/reports"
	"github.com/oncycle-org/adherence/schedule"
	"github.com/oncycle-org/adherence/store"
	"github.com/oncycle-org/adherence/symptoms"
)

func Start(e *echo.Echo, cfg *config.Config, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(fmt.Sprintf(":%d", cfg.HttpPort)); err != nil {
					fmt.Println(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}

func SetReady(healthCheck *HealthCheck, db *mongo.Database, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.Client().Ping(ctx, nil); err != nil {
				return err
			}

			// It's important this is set after mongo is initialized, which is ensured
			// by taking a dependency on mongo in the constructor, because lifecycle hooks
			// are executed in topological order
			healthCheck.SetReady(true)
			return nil
		},
		OnStop: nil,
	})
}

// Dependencies is the full object graph of the engine. The admin CLI reuses
// it without the HTTP server.
func Dependencies() []fx.Option {
	return []fx.Option{
		fx.Provide(
			config.NewConfig,
			logger.NewProductionLogger,
			logger.Sugar,
			store.NewConfig,
			store.GetConnectionString,
			store.NewClient,
			store.NewDatabase,
			patients.NewRepository,
			patients.NewService,
			schedule.NewRepository,
			schedule.NewService,
			dosages.NewRepository,
			dosages.NewService,
			reports.NewRepository,
			reports.NewService,
			symptoms.NewRepository,
			symptoms.NewService,
			alerts.NewRepository,
			alerts.NewService,
			analytics.NewService,
		),
	}
}

func MainLoop() {
	opts := append(Dependencies(),
		fx.Provide(
			NewHealthCheck,
			NewHandler,
			NewServer,
		),
		fx.Invoke(SetReady),
		fx.Invoke(Start),
	)
	fx.New(opts...).Run()
}
