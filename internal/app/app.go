package app

import (
	"context"
	"net/http"
	"sync"

	"offerdesk/config"
	"offerdesk/internal/assets"
	"offerdesk/internal/composer"
	"offerdesk/internal/contact"
	"offerdesk/internal/database"
	"offerdesk/internal/forms"
	"offerdesk/internal/handlers/middleware"
	"offerdesk/internal/layout"
	"offerdesk/internal/logger"
	"offerdesk/internal/services"
	"offerdesk/internal/views"
	"offerdesk/internal/websockets"

	contactController "offerdesk/internal/controllers/contact"
	letterController "offerdesk/internal/controllers/letter"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	Views      *views.Registry
	Config     config.Config

	// Services
	Forms    *forms.Store
	Guard    services.InFlightGuard
	Composer *composer.Composer
	Contact  contact.Submitter

	// Controllers
	LetterController  *letterController.LetterController
	ContactController *contactController.ContactController

	stopSweeper context.CancelFunc
	sweeperDone chan struct{}
	closeOnce   sync.Once
}

// Option overrides a collaborator, used by tests to stub the network.
type Option func(*options)

type options struct {
	submitter  contact.Submitter
	httpClient *http.Client
}

func WithSubmitter(s contact.Submitter) Option {
	return func(o *options) { o.submitter = s }
}

func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

func New(opts ...Option) (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	return NewWithConfig(config, opts...)
}

func NewWithConfig(config config.Config, opts ...Option) (*App, error) {
	log := logger.New("app").Function("NewWithConfig")

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	table, err := layout.Load(config.LayoutPath, composer.Placeholders())
	if err != nil {
		return &App{}, log.Err("failed to load layout table", err, "path", config.LayoutPath)
	}

	submitter := o.submitter
	if submitter == nil {
		client, err := contact.NewClient(contact.Config{
			EndpointURL: config.ContactEndpointURL,
			Timeout:     config.ContactTimeout,
			HTTPClient:  o.httpClient,
		})
		if err != nil {
			return &App{}, log.Err("failed to create contact client", err)
		}
		submitter = client
	}

	registry, err := views.New()
	if err != nil {
		return &App{}, log.Err("failed to create view registry", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	// Initialize services
	var guard services.InFlightGuard = services.NewMemoryGuard()
	if db.HasCache() {
		guard = services.NewCacheGuard(db.Cache.Guard, config.GuardTTL)
	}
	store := forms.NewStore(config.FormIdleTTL)
	docComposer := composer.New(table, assets.NewFileTemplate(config.TemplateImagePath))
	websocket := websockets.New()

	// Initialize controllers with services
	middleware := middleware.New(store)
	letterController := letterController.New(docComposer, guard, store, websocket)
	contactController := contactController.New(submitter, guard, store, websocket)

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Database:          db,
		Config:            config,
		Middleware:        middleware,
		Websocket:         websocket,
		Views:             registry,
		Forms:             store,
		Guard:             guard,
		Composer:          docComposer,
		Contact:           submitter,
		LetterController:  letterController,
		ContactController: contactController,
		stopSweeper:       cancel,
		sweeperDone:       make(chan struct{}),
	}

	if err := app.validate(); err != nil {
		cancel()
		_ = db.Close()
		return &App{}, log.Err("failed to validate app", err)
	}

	go func() {
		defer close(app.sweeperDone)
		store.RunSweeper(ctx, config.FormSweepInterval)
	}()

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.Views,
		a.Forms,
		a.Guard,
		a.Composer,
		a.Contact,
		a.LetterController,
		a.ContactController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

// Close stops the sweeper, drops every socket and releases the cache
// client. It is safe to call more than once.
func (a *App) Close() (err error) {
	a.closeOnce.Do(func() {
		if a.stopSweeper != nil {
			a.stopSweeper()
			<-a.sweeperDone
		}

		if a.Websocket != nil {
			if closeErr := a.Websocket.Close(); closeErr != nil {
				err = closeErr
			}
		}

		if dbErr := a.Database.Close(); dbErr != nil {
			err = dbErr
		}
	})

	return err
}
