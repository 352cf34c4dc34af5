package config

import "os"

// Development reports whether the DEVELOPMENT env variable is set to anything
// but "0".
func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

// Path returns the config file named by MINES_CONFIG, or "" if unset.
func Path() string {
	return os.Getenv("MINES_CONFIG")
}
