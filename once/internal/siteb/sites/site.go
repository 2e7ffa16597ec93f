// Package sites holds a call site used to check that identically named
// files in different packages get distinct once identifiers.
package sites

import "github.com/simplelogging/simplelog/once"

// ID returns the identifier of the call site inside this file.
func ID() string {
	return once.CallSiteID(0)
}
