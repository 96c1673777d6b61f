package version

// Filled by -ldflags at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
)
