package leantpl

import (
	"context"
	"sort"
	"sync"
)

// Loader is the interface for pluggable template sources.
// Implementations must be safe for concurrent use.
//
// Names are slash-separated relative paths; the interpreter resolves
// include and extends targets relative to the requesting template's
// directory before calling Load.
type Loader interface {
	// Load returns the raw source of a template by name.
	// Returns a not-found LoaderError if the template doesn't exist.
	Load(ctx context.Context, name string) (string, error)

	// Close releases any resources held by the loader.
	// After Close, the loader should not be used.
	Close() error
}

// LoaderDriver is a factory for creating loader instances.
// Drivers register themselves during init().
type LoaderDriver interface {
	// Open creates a new loader with the given connection string.
	// The format of the connection string is driver-specific.
	Open(connectionString string) (Loader, error)
}

// Loader driver registry
var (
	loaderDriversMu sync.RWMutex
	loaderDrivers   = make(map[string]LoaderDriver)
)

// RegisterLoaderDriver registers a loader driver by name.
// This is typically called from a driver's init() function.
// Panics if a driver with the same name is already registered.
func RegisterLoaderDriver(name string, driver LoaderDriver) {
	loaderDriversMu.Lock()
	defer loaderDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilLoaderDriver)
	}
	if _, exists := loaderDrivers[name]; exists {
		panic(ErrMsgDriverAlreadyRegistered + ": " + name)
	}
	loaderDrivers[name] = driver
}

// OpenLoader opens a template source using the named driver.
// The connection string format is driver-specific.
//
// Example:
//
//	loader, err := leantpl.OpenLoader("filesystem", "/srv/templates")
//	loader, err := leantpl.OpenLoader("postgres", "postgres://localhost/app")
func OpenLoader(driverName, connectionString string) (Loader, error) {
	loaderDriversMu.RLock()
	driver, ok := loaderDrivers[driverName]
	loaderDriversMu.RUnlock()

	if !ok {
		return nil, NewLoaderDriverNotFoundError(driverName)
	}

	return driver.Open(connectionString)
}

// ListLoaderDrivers returns the names of all registered loader drivers.
func ListLoaderDrivers() []string {
	loaderDriversMu.RLock()
	defer loaderDriversMu.RUnlock()

	names := make([]string, 0, len(loaderDrivers))
	for name := range loaderDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MapLoader serves templates from an in-memory map. It is the natural
// loader for embedded template sets and for tests.
type MapLoader struct {
	mu        sync.RWMutex
	templates map[string]string
	closed    bool
}

// MapLoaderDriver is the driver for creating MapLoader instances.
// The connection string is ignored; the loader starts empty.
type MapLoaderDriver struct{}

func init() {
	RegisterLoaderDriver(LoaderDriverNameMap, &MapLoaderDriver{})
}

// Open creates an empty MapLoader.
func (d *MapLoaderDriver) Open(connectionString string) (Loader, error) {
	return NewMapLoader(nil), nil
}

// NewMapLoader creates a map-backed loader seeded with the given
// templates. The map is copied; later mutation of the argument does not
// affect the loader.
func NewMapLoader(templates map[string]string) *MapLoader {
	copied := make(map[string]string, len(templates))
	for name, source := range templates {
		copied[name] = source
	}
	return &MapLoader{templates: copied}
}

// Load returns a template's source by name.
func (l *MapLoader) Load(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return "", NewLoaderClosedError()
	}
	source, ok := l.templates[name]
	if !ok {
		return "", NewLoaderTemplateNotFoundError(name)
	}
	return source, nil
}

// Set adds or replaces a template.
func (l *MapLoader) Set(name, source string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.templates[name] = source
}

// Delete removes a template. Returns true if it existed.
func (l *MapLoader) Delete(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.templates[name]; ok {
		delete(l.templates, name)
		return true
	}
	return false
}

// Names returns all template names in sorted order.
func (l *MapLoader) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.templates))
	for name := range l.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close marks the loader closed.
func (l *MapLoader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	l.templates = nil
	return nil
}
