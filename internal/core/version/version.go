package version

// Version is overridden at build time via -ldflags "-X .../version.Version=x.y.z"
var Version = "0.3.0"
