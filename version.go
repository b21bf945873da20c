package notepad

// Version is the library version. Overridden at build time via -ldflags.
var Version = "0.1.0"
