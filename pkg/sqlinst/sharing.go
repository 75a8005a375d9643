package sqlinst

import "github.com/sqlinst/sqlinst-go/internal/native"

// ShareInstance shares a private instance under a public name. ownerSID
// identifies the owning user; empty means the current user (a NULL owner on
// the native side).
func (a *API) ShareInstance(ownerSID, name, sharedName string) error {
	var owner *uint16
	if ownerSID != "" {
		w := native.Wide(ownerSID)
		owner = &w[0]
	}
	wn := native.Wide(name)
	ws := native.Wide(sharedName)
	return status(a, "ShareInstance", func(fn shareInstanceFn) native.Status {
		return fn(owner, &wn[0], &ws[0], 0)
	})
}

// UnshareInstance removes the shared name of a shared instance. name is the
// private instance name.
func (a *API) UnshareInstance(name string) error {
	wn := native.Wide(name)
	return status(a, "UnshareInstance", func(fn unshareInstanceFn) native.Status {
		return fn(&wn[0], 0)
	})
}
