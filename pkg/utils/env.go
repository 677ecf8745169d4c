package utils

import (
	"os"
	"time"
)

// Getenv retrieves the value of the environment variable named by the key.
// If the variable is not present or its value is empty, Getenv returns the
// fallback string.
func Getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

// GetenvLocation loads the IANA time zone named by the environment variable,
// falling back to the given zone name, then to UTC if neither loads.
func GetenvLocation(key, fallback string) *time.Location {
	name := Getenv(key, fallback)
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
