package version

// Version is the reported service version; overridden at build time with
// -ldflags "-X martylabs/internal/version.Version=...".
var Version = "1.2.0"
