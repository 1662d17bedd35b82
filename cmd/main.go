package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/veranda-pm/billing-service/internal/app"
	"github.com/veranda-pm/billing-service/internal/config"
	"github.com/veranda-pm/billing-service/internal/constants"
	"github.com/veranda-pm/billing-service/internal/controllers"
	"github.com/veranda-pm/billing-service/internal/middleware"
	"github.com/veranda-pm/billing-service/internal/repositories"
	"github.com/veranda-pm/billing-service/internal/routes"
	"github.com/veranda-pm/billing-service/internal/services"
	"github.com/veranda-pm/billing-service/internal/utils"
)

func main() {
	utils.InitLogger(constants.AppName)
	cfg := config.LoadConfig()
	utils.SetLogLevel(cfg.LogLevel)

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize billing-service:", err)
	}
	defer application.Close()

	buildingRepo := repositories.NewBuildingRepository(application.DB)
	unitRepo := repositories.NewUnitRepository(application.DB)
	personRepo := repositories.NewPersonRepository(application.DB)
	roleRepo := repositories.NewUnitRoleRepository(application.DB)
	configRepo := repositories.NewPaymentConfigRepository(application.DB)
	chargeRepo := repositories.NewChargeRepository(application.DB)
	paymentRepo := repositories.NewPaymentRepository(application.DB)
	genLogRepo := repositories.NewGenerationLogRepository(application.DB)

	clock := utils.SystemClock()

	buildingService := services.NewBuildingService(buildingRepo, unitRepo)
	unitService := services.NewUnitService(unitRepo, buildingRepo)
	personService := services.NewPersonService(personRepo)
	roleService := services.NewRoleService(roleRepo, unitRepo, personRepo, clock)
	configService := services.NewPaymentConfigService(configRepo, unitRepo, personRepo, clock)
	chargeService := services.NewChargeService(chargeRepo, genLogRepo, configRepo, clock)
	paymentService := services.NewPaymentService(paymentRepo, chargeRepo, personRepo, clock, cfg.StrictBalanceCheck)
	snapshotService := services.NewSnapshotService(buildingRepo, unitRepo, chargeRepo, roleRepo, configRepo, clock)
	onboardingService := services.NewOnboardingService(application.DB, buildingRepo, personRepo, clock)

	healthController := controllers.NewHealthController(application)
	buildingsController := controllers.NewBuildingsController(buildingService)
	unitsController := controllers.NewUnitsController(unitService)
	peopleController := controllers.NewPeopleController(personService)
	rolesController := controllers.NewRolesController(roleService)
	configsController := controllers.NewPaymentConfigsController(configService)
	chargesController := controllers.NewChargesController(chargeService)
	paymentsController := controllers.NewPaymentsController(paymentService)
	snapshotController := controllers.NewSnapshotController(snapshotService)
	onboardingController := controllers.NewOnboardingController(onboardingService)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.Auth(cfg.RSAPublicKey))

	secured.HandleFunc(routes.Buildings, buildingsController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Buildings, buildingsController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Building, buildingsController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Building, buildingsController.UpdateHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.Building, buildingsController.DeleteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.BuildingUnits, unitsController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.BuildingUnits, unitsController.ListByBuildingHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.BuildingOnboard, onboardingController.OnboardHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.Units, unitsController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Unit, unitsController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Unit, unitsController.UpdateHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.UnitRoles, rolesController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.UnitRoles, rolesController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.UnitRole, rolesController.UpdateHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.UnitPaymentConfig, configsController.GetActiveHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.UnitPaymentConfig, configsController.SetHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.UnitPaymentConfigHistory, configsController.HistoryHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.People, peopleController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.People, peopleController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Person, peopleController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Person, peopleController.UpdateHandler).Methods(http.MethodPatch)

	secured.HandleFunc(routes.ChargesGenerate, chargesController.GenerateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.ChargeGenerationLogs, chargesController.GenerationLogsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Charges, chargesController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ChargePayments, paymentsController.RecordHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.ChargePayments, paymentsController.ListByChargeHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Payment, paymentsController.UpdateHandler).Methods(http.MethodPut)

	secured.HandleFunc(routes.BillingSnapshot, snapshotController.GetHandler).Methods(http.MethodGet)

	if cfg.EnableScheduledGeneration {
		c := cron.New()
		_, cronErr := c.AddFunc(constants.MonthlyGenerationCronSpec, func() {
			chargeService.GenerateForAllTenants(context.Background())
		})
		if cronErr != nil {
			utils.Logger.WithError(cronErr).Fatal("Failed to schedule monthly charge generation cron")
		}
		c.Start()
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("billing-service failed to start:", err)
	}
}
