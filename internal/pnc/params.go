package pnc

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// RebuildMode controls how aggressively a build re-checks its dependencies
type RebuildMode string

const (
	RebuildForce                   RebuildMode = "FORCE"
	RebuildImplicitDependencyCheck RebuildMode = "IMPLICIT_DEPENDENCY_CHECK"
	RebuildExplicitDependencyCheck RebuildMode = "EXPLICIT_DEPENDENCY_CHECK"
)

// DefaultRebuildMode is what the service applies when no mode is given
const DefaultRebuildMode = RebuildImplicitDependencyCheck

var rebuildModes = []RebuildMode{
	RebuildForce,
	RebuildImplicitDependencyCheck,
	RebuildExplicitDependencyCheck,
}

var ErrInvalidRebuildMode = errors.New("invalid rebuild mode")

// ParseRebuildMode maps s onto one of the known modes. The match is
// case-insensitive and accepts '-' in place of '_'. An empty string yields
// DefaultRebuildMode.
func ParseRebuildMode(s string) (RebuildMode, error) {
	if s == "" {
		return DefaultRebuildMode, nil
	}
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for _, m := range rebuildModes {
		if string(m) == norm {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w %q (expected one of %s)", ErrInvalidRebuildMode, s, joinModes())
}

func joinModes() string {
	names := make([]string, len(rebuildModes))
	for i, m := range rebuildModes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// BuildParameters are the inputs of a start-build action
type BuildParameters struct {
	RebuildMode        RebuildMode
	KeepPodOnFailure   bool
	TimestampAlignment bool
	TemporaryBuild     bool
}

// ParseBuildParameters validates the raw option values of a start-build action.
// Boolean values accept what strconv.ParseBool accepts; empty means false.
func ParseBuildParameters(rebuildMode, keepPodOnFailure, timestampAlignment, temporaryBuild string) (BuildParameters, error) {
	var p BuildParameters
	var err error

	if p.RebuildMode, err = ParseRebuildMode(rebuildMode); err != nil {
		return BuildParameters{}, err
	}
	if p.KeepPodOnFailure, err = parseFlag("keep-pod-on-failure", keepPodOnFailure); err != nil {
		return BuildParameters{}, err
	}
	if p.TimestampAlignment, err = parseFlag("timestamp-alignment", timestampAlignment); err != nil {
		return BuildParameters{}, err
	}
	if p.TemporaryBuild, err = parseFlag("temporary-build", temporaryBuild); err != nil {
		return BuildParameters{}, err
	}
	return p, nil
}

func parseFlag(name, value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid value %q for %s: expected true or false", value, name)
	}
	return b, nil
}

func (p BuildParameters) query() url.Values {
	q := url.Values{}
	mode := p.RebuildMode
	if mode == "" {
		mode = DefaultRebuildMode
	}
	q.Set("rebuildMode", string(mode))
	q.Set("keepPodOnFailure", strconv.FormatBool(p.KeepPodOnFailure))
	q.Set("timestampAlignment", strconv.FormatBool(p.TimestampAlignment))
	q.Set("temporaryBuild", strconv.FormatBool(p.TemporaryBuild))
	return q
}
