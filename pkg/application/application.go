package application

import (
	"reflect"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/stroyhub/backoffice/pkg/eventbus"
)

// Controller registers a set of routes on the router.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module wires its repositories, services and controllers into the app.
type Module interface {
	Name() string
	Register(app Application) error
}

// Application is the process-wide registry the modules populate at
// startup. Services are looked up by their concrete type.
type Application interface {
	Pool() *pgxpool.Pool
	EventBus() eventbus.EventBus
	Logger() *logrus.Logger
	RegisterServices(services ...any)
	Service(service any) any
	RegisterControllers(controllers ...Controller)
	Controllers() []Controller
}

type ApplicationOptions struct {
	Pool     *pgxpool.Pool
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
}

func New(opts *ApplicationOptions) Application {
	return &application{
		pool:     opts.Pool,
		eventBus: opts.EventBus,
		logger:   opts.Logger,
		services: make(map[reflect.Type]any),
	}
}

type application struct {
	pool        *pgxpool.Pool
	eventBus    eventbus.EventBus
	logger      *logrus.Logger
	services    map[reflect.Type]any
	controllers []Controller
}

func (a *application) Pool() *pgxpool.Pool         { return a.pool }
func (a *application) EventBus() eventbus.EventBus { return a.eventBus }
func (a *application) Logger() *logrus.Logger      { return a.logger }
func (a *application) Controllers() []Controller   { return a.controllers }

func (a *application) RegisterServices(services ...any) {
	for _, s := range services {
		a.services[reflect.TypeOf(s)] = s
	}
}

// Service returns the registered instance whose type matches the given
// prototype. Panics when the service was never registered, which is a
// wiring bug, not a runtime condition.
func (a *application) Service(service any) any {
	t := reflect.TypeOf(service)
	if t.Kind() != reflect.Ptr {
		t = reflect.PointerTo(t)
	}
	svc, ok := a.services[t]
	if !ok {
		panic("service not registered: " + t.String())
	}
	return svc
}

func (a *application) RegisterControllers(controllers ...Controller) {
	a.controllers = append(a.controllers, controllers...)
}

// Load registers every module in order.
func Load(app Application, modules ...Module) error {
	for _, m := range modules {
		if err := m.Register(app); err != nil {
			return err
		}
	}
	return nil
}
