package version

// Version is the semantic version of the fsbench suite.
const Version = "0.1.0"
