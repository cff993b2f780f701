package main

// Exit codes used across bibxml commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (not a repository, bad config)
	ExitDataError   = 3 // Data error (malformed dataset input)
	ExitNotFound    = 4 // Reference or representation not found
	ExitAmbiguous   = 5 // Lookup matched more than one reference
)
