// Package env provides facts about the machine the daemons run on.
package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

const appID = "moab"

// MachineID retrieves an ID identifying the machine. The raw machine ID
// is hashed with the application name so it is not exposed. The host name
// is used if the machine has no ID.
func MachineID() string {
	id, err := machineid.ProtectedID(appID)
	if err == nil {
		return id[:16]
	}
	glog.Warningf("machine id: %v", err)
	if host, err := os.Hostname(); err == nil {
		return host
	}
	return appID
}
