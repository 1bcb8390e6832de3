package database

import (
	"fmt"
	"strings"
)

type Driver string

const (
	DriverMongo    Driver = "mongodb"
	DriverPostgres Driver = "postgres"
)

// DriverFor picks the message store backend from the connection string scheme.
func DriverFor(url string) (Driver, error) {
	scheme, _, ok := strings.Cut(strings.TrimSpace(url), "://")
	if !ok {
		return "", fmt.Errorf("connection string %q has no scheme", url)
	}

	switch strings.ToLower(scheme) {
	case "mongodb", "mongodb+srv":
		return DriverMongo, nil
	case "postgres", "postgresql":
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("unsupported connection scheme %q", scheme)
	}
}
