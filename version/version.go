// Package version holds the module's build version, intended to be
// overridden at link time with -ldflags.
package version

// mainpkg is the overall, canonical project import path under which
// the package was built.
var mainpkg = "github.com/batchvault/batchvault"

// version indicates which version of the binary is running. Replaced
// at build time by the actual release tag.
var version = "v0.0.0+unknown"

// revision is filled with the VCS revision being used to build the
// program at linking time.
var revision = ""
