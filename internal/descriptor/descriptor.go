// Package descriptor models the metadata record of a wrapper package: a
// distribution unit that carries no code of its own and exists only to pin
// one external analysis tool at an exact version.
package descriptor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Dependency is one (name, exact version) pin.
type Dependency struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// String renders the pin in requirement form, e.g. "semgrep==1.12.0".
func (d Dependency) String() string {
	return d.Name + "==" + d.Version
}

// Record is the package metadata record a build tool reads from a
// descriptor file. It is constructed once at load time and never mutated;
// Bump returns a fresh record.
type Record struct {
	Name     string       `json:"name" yaml:"name"`
	Version  string       `json:"version" yaml:"version"`
	Requires []Dependency `json:"requires" yaml:"requires"`
	Packages []string     `json:"packages" yaml:"packages"`
}

// exactVersion matches plain release versions like "1.12.0" or
// "2024.1.0rc1". Anything carrying a range operator or wildcard fails.
var exactVersion = regexp.MustCompile(`^[0-9A-Za-z][0-9A-Za-z._+-]*$`)

// IsExactVersion reports whether v is a plain exact version string.
func IsExactVersion(v string) bool {
	return exactVersion.MatchString(v)
}

// Load reads and parses a descriptor file.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor file: %w", err)
	}
	rec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rec, nil
}

// Parse decodes descriptor YAML. Unknown fields are rejected so a typo in
// a field name fails loudly instead of silently dropping the value.
func Parse(data []byte) (*Record, error) {
	var rec Record
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decoding descriptor: %w", err)
	}
	if rec.Name == "" {
		return nil, fmt.Errorf("descriptor is missing a name")
	}
	if rec.Version == "" {
		return nil, fmt.Errorf("descriptor is missing a version")
	}
	return &rec, nil
}

// Pin returns the single dependency a wrapper record pins.
func (r *Record) Pin() (Dependency, error) {
	if len(r.Requires) == 0 {
		return Dependency{}, fmt.Errorf("descriptor %s pins no dependency", r.Name)
	}
	if len(r.Requires) > 1 {
		return Dependency{}, fmt.Errorf("descriptor %s pins %d dependencies, expected exactly one",
			r.Name, len(r.Requires))
	}
	return r.Requires[0], nil
}

// Verify enforces the record invariants a build must not proceed without:
// a single exact pin whose version the record's own version tracks in
// lockstep.
func (r *Record) Verify() error {
	pin, err := r.Pin()
	if err != nil {
		return err
	}
	if pin.Name == "" || pin.Version == "" {
		return fmt.Errorf("descriptor %s has an incomplete dependency pin", r.Name)
	}
	if !IsExactVersion(pin.Version) {
		return fmt.Errorf("dependency %s is not pinned to an exact version: %s", pin.Name, pin.Version)
	}
	if r.Version != pin.Version {
		return fmt.Errorf("package version %s does not match pinned %s version %s; both must be updated together",
			r.Version, pin.Name, pin.Version)
	}
	return nil
}

// Describe returns the canonical encoding of the record: compact JSON with
// fixed field order and nil slices normalized to empty ones. Repeated calls
// on the same record yield byte-identical output.
func (r *Record) Describe() []byte {
	canon := *r
	if canon.Requires == nil {
		canon.Requires = []Dependency{}
	}
	if canon.Packages == nil {
		canon.Packages = []string{}
	}
	// Marshal of a flat struct with no maps cannot fail.
	data, _ := json.Marshal(&canon)
	return append(data, '\n')
}

// Bump returns a copy of the record with the package version and the pin
// moved to newVersion together, preserving the lockstep invariant by
// construction.
func (r *Record) Bump(newVersion string) (*Record, error) {
	if !IsExactVersion(newVersion) {
		return nil, fmt.Errorf("not an exact version: %s", newVersion)
	}
	pin, err := r.Pin()
	if err != nil {
		return nil, err
	}
	bumped := *r
	bumped.Version = newVersion
	bumped.Requires = []Dependency{{Name: pin.Name, Version: newVersion}}
	bumped.Packages = append([]string(nil), r.Packages...)
	return &bumped, nil
}

// Save writes the record back out as descriptor YAML.
func (r *Record) Save(path string) error {
	out := *r
	if out.Requires == nil {
		out.Requires = []Dependency{}
	}
	if out.Packages == nil {
		out.Packages = []string{}
	}
	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("encoding descriptor: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing descriptor file: %w", err)
	}
	return nil
}
