// Package version reports the build version of speechkit binaries.
//
// Values are set at link time and fall back to the module's VCS stamp:
//
//	go build -ldflags "-X github.com/kbukum/speechkit/version.Version=1.4.0" ./cmd/speechkit
package version
