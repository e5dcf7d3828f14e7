// Package factory lets each backend register itself under a name so that
// objectstore.Open can select one by URL scheme without importing every
// driver package directly.
package factory

import (
	"context"
	"fmt"

	storagedriver "github.com/batchvault/batchvault/store/driver"
)

var driverFactories = make(map[string]StorageDriverFactory)

// StorageDriverFactory constructs a driver.StorageDriver from a parameter
// map. Backend packages call Register from an init() function to make
// themselves available by name.
type StorageDriverFactory interface {
	Create(parameters map[string]interface{}) (storagedriver.StorageDriver, error)
}

// Register makes a storage driver available under the given name. It
// panics if name is already registered or factory is nil, since both
// indicate a programming error at init time.
func Register(name string, factory StorageDriverFactory) {
	if factory == nil {
		panic("factory: must not register a nil StorageDriverFactory")
	}
	if _, registered := driverFactories[name]; registered {
		panic(fmt.Sprintf("factory: driver named %q already registered", name))
	}
	driverFactories[name] = factory
}

// Create constructs a new driver.StorageDriver for the named, previously
// registered backend.
func Create(ctx context.Context, name string, parameters map[string]interface{}) (storagedriver.StorageDriver, error) {
	f, ok := driverFactories[name]
	if !ok {
		return nil, InvalidStorageDriverError{Name: name}
	}
	return f.Create(parameters)
}

// InvalidStorageDriverError records an attempt to construct an
// unregistered storage driver.
type InvalidStorageDriverError struct {
	Name string
}

func (err InvalidStorageDriverError) Error() string {
	return fmt.Sprintf("factory: storage driver not registered: %s", err.Name)
}
