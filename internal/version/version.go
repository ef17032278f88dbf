package version

// Set via -ldflags at build time.
var (
	AppName = "Gorou"
	Version = "dev"
)
