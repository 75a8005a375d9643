package sqlinst

import (
	"github.com/google/uuid"
)

// DefaultInstanceName is the conventional name of the automatic per-user
// instance.
const DefaultInstanceName = "DefaultUserInstance"

// InstanceExists reports whether a named instance has been created. Built on
// GetInstanceInfo, which returns a record with Exists false rather than an
// error for unknown names.
func (a *API) InstanceExists(name string) (bool, error) {
	info, err := a.InstanceInfo(name)
	if err != nil {
		return false, err
	}
	return info.Exists, nil
}

// EnsureInstance creates the named instance if it does not already exist.
func (a *API) EnsureInstance(version, name string) error {
	exists, err := a.InstanceExists(name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return a.CreateInstance(version, name)
}

// TemporaryInstance is an instance created under a random name, meant to be
// deleted when the caller is done with it.
type TemporaryInstance struct {
	api  *API
	name string
}

// CreateTemporaryInstance creates an instance of the given version under a
// fresh random name.
func (a *API) CreateTemporaryInstance(version string) (*TemporaryInstance, error) {
	name := "tmp-" + uuid.NewString()
	if err := a.CreateInstance(version, name); err != nil {
		return nil, err
	}
	return &TemporaryInstance{api: a, name: name}, nil
}

// Name returns the generated instance name.
func (t *TemporaryInstance) Name() string { return t.name }

// Start starts the temporary instance and returns its connection endpoint.
func (t *TemporaryInstance) Start() (string, error) {
	return t.api.StartInstance(t.name)
}

// Delete removes the temporary instance. Running instances are stopped
// first, without waiting for a clean shutdown.
func (t *TemporaryInstance) Delete() error {
	info, err := t.api.InstanceInfo(t.name)
	if err != nil {
		return err
	}
	if info.Running {
		if err := t.api.StopInstance(t.name, StopOptions{NoWait: true}); err != nil {
			return err
		}
	}
	return t.api.DeleteInstance(t.name)
}
