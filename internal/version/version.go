package version

// Version is the current pgr release.
var Version = "0.1.0"
