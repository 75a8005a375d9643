package sqlinst

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/sqlinst/sqlinst-go/internal/native"
)

// instanceInfoRecord is the fixed-width wire layout of GetInstanceInfo.
// String fields are NUL-padded UTF-16; it has a statically known size and
// never goes through buffer negotiation.
type instanceInfoRecord struct {
	Size                   uint32
	Name                   [native.MaxInstanceNameChars]uint16
	Exists                 int32
	ConfigurationCorrupted int32
	Running                int32
	Major                  uint32
	Minor                  uint32
	Build                  uint32
	Revision               uint32
	LastStart              int64 // 100ns ticks since 1601-01-01 UTC, 0 = never
	Connection             [native.ConnectionStringChars]uint16
	Shared                 int32
	SharedName             [native.MaxInstanceNameChars]uint16
	OwnerSID               [native.MaxSIDChars]uint16
	Automatic              int32
}

// versionInfoRecord is the fixed-width wire layout of GetVersionInfo.
type versionInfoRecord struct {
	Size     uint32
	Version  [native.MaxVersionChars]uint16
	Exists   int32
	Major    uint32
	Minor    uint32
	Build    uint32
	Revision uint32
}

// InstanceInfo describes a named instance.
type InstanceInfo struct {
	Name                   string
	Exists                 bool
	ConfigurationCorrupted bool
	Running                bool
	Version                string
	LastStart              time.Time
	Connection             string
	Shared                 bool
	SharedName             string
	OwnerSID               string
	Automatic              bool
}

// VersionInfo describes an installed native API version.
type VersionInfo struct {
	Version  string
	Exists   bool
	Major    uint32
	Minor    uint32
	Build    uint32
	Revision uint32
}

// InstanceInfo fetches the info record for a named instance. The record is
// returned with Exists false (rather than an error) when no such instance
// has been created.
func (a *API) InstanceInfo(name string) (InstanceInfo, error) {
	var rec instanceInfoRecord
	rec.Size = uint32(unsafe.Sizeof(rec))

	wn := native.Wide(name)
	err := status(a, "GetInstanceInfo", func(fn instanceInfoFn) native.Status {
		return fn(&wn[0], &rec, rec.Size)
	})
	if err != nil {
		return InstanceInfo{}, err
	}

	return InstanceInfo{
		Name:                   native.TrimWide(rec.Name[:]),
		Exists:                 rec.Exists != 0,
		ConfigurationCorrupted: rec.ConfigurationCorrupted != 0,
		Running:                rec.Running != 0,
		Version:                fmt.Sprintf("%d.%d.%d.%d", rec.Major, rec.Minor, rec.Build, rec.Revision),
		LastStart:              filetimeToTime(rec.LastStart),
		Connection:             native.TrimWide(rec.Connection[:]),
		Shared:                 rec.Shared != 0,
		SharedName:             native.TrimWide(rec.SharedName[:]),
		OwnerSID:               native.TrimWide(rec.OwnerSID[:]),
		Automatic:              rec.Automatic != 0,
	}, nil
}

// VersionInfo fetches the info record for an installed version string.
func (a *API) VersionInfo(version string) (VersionInfo, error) {
	var rec versionInfoRecord
	rec.Size = uint32(unsafe.Sizeof(rec))

	wv := native.Wide(version)
	err := status(a, "GetVersionInfo", func(fn versionInfoFn) native.Status {
		return fn(&wv[0], &rec, rec.Size)
	})
	if err != nil {
		return VersionInfo{}, err
	}

	return VersionInfo{
		Version:  native.TrimWide(rec.Version[:]),
		Exists:   rec.Exists != 0,
		Major:    rec.Major,
		Minor:    rec.Minor,
		Build:    rec.Build,
		Revision: rec.Revision,
	}, nil
}

// windowsEpochDelta is the 100ns tick count between 1601-01-01 and
// 1970-01-01.
const windowsEpochDelta = 116444736000000000

func filetimeToTime(ticks int64) time.Time {
	if ticks == 0 {
		return time.Time{}
	}
	return time.Unix(0, (ticks-windowsEpochDelta)*100).UTC()
}
