package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Match   bool
	Matches bool
	Build   bool
	Patch   bool
	Patches bool
	Parse   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Match = boolEnv("XR_DEBUG_MATCH")
	d.Matches = boolEnv("XR_DEBUG_MATCHES")
	d.Build = boolEnv("XR_DEBUG_BUILD")
	d.Patch = boolEnv("XR_DEBUG_PATCH")
	d.Patches = boolEnv("XR_DEBUG_PATCHES")
	d.Parse = boolEnv("XR_DEBUG_PARSE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Match reports whether matcher phases are logged.
func Match() bool {
	return d.Match
}

// Matches reports whether every individual node pairing is logged.
func Matches() bool {
	return d.Matches
}
func Build() bool {
	return d.Build
}
func Patch() bool {
	return d.Patch
}

// Patches reports whether the working tree is dumped after each applied
// operation.
func Patches() bool {
	return d.Patches
}
func Parse() bool {
	return d.Parse
}
