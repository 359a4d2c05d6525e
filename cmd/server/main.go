package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/cgibeparking/parking-api/auth"
	"github.com/cgibeparking/parking-api/mailer/sesmailer"
	"github.com/cgibeparking/parking-api/middleware/rolegate"
	"github.com/cgibeparking/parking-api/middleware/tokenauth"
	"github.com/cgibeparking/parking-api/parkings"
	"github.com/cgibeparking/parking-api/reservations"
	"github.com/cgibeparking/parking-api/store/dynamostore"
	"github.com/cgibeparking/parking-api/store/memstore"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		newLogger(false).log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.Offline)
	ctx := context.Background()

	deps, err := buildDependencies(ctx, cfg, logger)
	if err != nil {
		logger.log.Fatalf("startup: %v", err)
	}

	app := buildApp(cfg, logger, deps)

	logger.Info("listening on %s (offline=%v)", cfg.HTTPAddr, cfg.Offline)
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		logger.log.Fatalf("server: %v", err)
	}
}

// dependencies groups the swappable collaborators: durable stores and the
// mailer in production, in-memory equivalents offline.
type dependencies struct {
	users        auth.UserStore
	pending      auth.RegistrationStore
	mailer       auth.Mailer
	parkingStore parkings.Store
	reservStore  reservations.Store
}

func buildDependencies(ctx context.Context, cfg *Config, logger *logrusLogger) (*dependencies, error) {
	if cfg.Offline {
		logger.Info("offline mode: using in-memory stores and a logging mailer")
		return &dependencies{
			users:        memstore.NewUsers(),
			pending:      memstore.NewRegistrations(),
			mailer:       &logMailer{logger: logger},
			parkingStore: memstore.NewParkings(),
			reservStore:  memstore.NewReservations(),
		}, nil
	}

	db, err := dynamostore.NewClient(ctx, dynamostore.Config{
		Region:    cfg.AWSRegion,
		Endpoint:  cfg.DynamoEndpoint,
		AccessKey: cfg.AWSAccessKey,
		SecretKey: cfg.AWSSecretKey,
	})
	if err != nil {
		return nil, err
	}

	mail, err := sesmailer.New(ctx, sesmailer.Config{
		Region:    cfg.AWSRegion,
		Endpoint:  cfg.SESEndpoint,
		AccessKey: cfg.AWSAccessKey,
		SecretKey: cfg.AWSSecretKey,
		Source:    cfg.MailSource,
		CC:        cfg.MailCC,
	})
	if err != nil {
		return nil, err
	}

	return &dependencies{
		users:        dynamostore.NewUsers(db, cfg.UsersTable),
		pending:      dynamostore.NewRegistrations(db, cfg.RegistrationTable),
		mailer:       mail,
		parkingStore: dynamostore.NewParkings(db, cfg.ParkingsTable),
		reservStore:  dynamostore.NewReservations(db, cfg.ReservationsTable),
	}, nil
}

func buildApp(cfg *Config, logger *logrusLogger, deps *dependencies) *fiber.App {
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret)).WithLogger(logger)

	registrar := auth.NewRegistrar(deps.users, deps.pending, deps.mailer, tokens, cfg.DeployURL).
		WithLogger(logger)
	authenticator := auth.NewAuthenticator(deps.users, tokens).WithLogger(logger)
	authorizer := auth.NewAuthorizer(tokens).WithLogger(logger)

	parkingSvc := parkings.NewService(deps.parkingStore).WithLogger(logger)
	reservationSvc := reservations.NewService(deps.reservStore, deps.parkingStore).WithLogger(logger)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, X-Requested-With, Content-Type, Accept, Authorization",
	}))

	gateway := tokenauth.New(tokenauth.Config{Authorizer: authorizer})
	adminGate := rolegate.New(rolegate.Config{Required: auth.RoleAdmin})

	auth.RegisterRoutes(app, auth.NewController(registrar, authenticator).WithLogger(logger))
	parkings.RegisterRoutes(app, parkings.NewController(parkingSvc).WithLogger(logger), gateway)
	reservations.RegisterRoutes(app, reservations.NewController(reservationSvc).WithLogger(logger), gateway, adminGate)

	return app
}

// logMailer stands in for SES offline: the activation link only shows up
// in the process log.
type logMailer struct {
	logger *logrusLogger
}

func (m *logMailer) SendActivation(_ context.Context, mail auth.ActivationMail) error {
	m.logger.Info("activation mail for %s <%s>: %s", mail.UserID, mail.To, mail.Link)
	return nil
}
