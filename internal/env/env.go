// Package env resolves the runtime environment and typed configuration values.
package env

import (
	"os"
	"strconv"
	"strings"
)

type Environment string

const (
	Local      Environment = "local"
	Production Environment = "production"

	Key string = "ENV"
)

func (e Environment) Valid() bool {
	switch e {
	case Local, Production:
		return true
	}
	return false
}

var Current Environment = Local

func init() {
	Current = Parse(os.Getenv(Key))
}

// Parse falls back to Local for unknown values.
func Parse(v string) Environment {
	e := Environment(strings.ToLower(strings.TrimSpace(v)))
	if !e.Valid() {
		return Local
	}
	return e
}

func String(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

// Int reads an integer variable. ok is false when the variable is set but
// does not parse.
func Int(key string, fallback int) (v int, ok bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, false
	}
	return n, true
}

// List splits a comma-separated variable, dropping blanks.
func List(key string, fallback []string) []string {
	raw := os.Getenv(key)
	var out []string
	for part := range strings.SplitSeq(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
