package internal

import (
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Dispatcher resolves "Controller.method" action names to controller actions.
// Controllers are registered by name with a factory; each controller is
// created once, on first use, and shared by all requests of the App.
//
// Factories run without the cache lock held, so a factory may resolve other
// controllers through the Dispatcher. It must not resolve its own name.
type Dispatcher struct {
	app       *App
	factories map[string]ControllerFactory
	instances map[string]*controllerEntry
	creating  singleflight.Group
	mu        sync.RWMutex
}

type controllerEntry struct {
	controller Controller
	actions    map[string]HandlerFunc
}

func newDispatcher(app *App, factories map[string]ControllerFactory) *Dispatcher {
	return &Dispatcher{
		app:       app,
		factories: factories,
		instances: make(map[string]*controllerEntry),
	}
}

// ParseAction splits an action name into its controller and method parts.
func ParseAction(fullName string) (controller, method string, err error) {
	parts := strings.Split(fullName, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", dispatchError(ErrInvalidAction, "%q", fullName)
	}
	return parts[0], parts[1], nil
}

// Controller returns the instance registered under name, creating it on
// first use.
func (d *Dispatcher) Controller(name string) (Controller, error) {
	entry, err := d.entry(name)
	if err != nil {
		return nil, err
	}
	return entry.controller, nil
}

// Resolve returns the action addressed by fullName.
func (d *Dispatcher) Resolve(fullName string) (HandlerFunc, error) {
	controller, method, err := ParseAction(fullName)
	if err != nil {
		return nil, err
	}
	entry, err := d.entry(controller)
	if err != nil {
		return nil, err
	}
	action, ok := entry.actions[method]
	if !ok || action == nil {
		return nil, dispatchError(ErrActionNotFound, "%q", fullName)
	}
	return action, nil
}

// CallAction resolves fullName and invokes the action with c.
// The App, request and attached exception travel on c.
func (d *Dispatcher) CallAction(c Context, fullName string) error {
	action, err := d.Resolve(fullName)
	if err != nil {
		return err
	}
	return action(c)
}

func (d *Dispatcher) entry(name string) (*controllerEntry, error) {
	if entry, ok := d.cached(name); ok {
		return entry, nil
	}
	factory, ok := d.factories[name]
	if !ok {
		return nil, dispatchError(ErrControllerNotFound, "%q", name)
	}

	v, err, _ := d.creating.Do(name, func() (any, error) {
		if entry, ok := d.cached(name); ok {
			return entry, nil
		}
		controller := factory(d.app)
		if controller == nil {
			return nil, dispatchError(ErrControllerNotFound, "%q: factory returned nil", name)
		}
		entry := &controllerEntry{controller: controller, actions: controller.Actions()}

		d.mu.Lock()
		d.instances[name] = entry
		d.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*controllerEntry), nil
}

func (d *Dispatcher) cached(name string) (*controllerEntry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	entry, ok := d.instances[name]
	return entry, ok
}
