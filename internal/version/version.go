// internal/version/version.go
package version

// Version is overridden at build time with -ldflags "-X inprot/internal/version.Version=...".
var Version = "v0.3.0-dev"
