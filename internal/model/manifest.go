// Package model defines the data structures for manifest scrambling.
package model

import (
	"encoding/json"
	"fmt"
)

// Path represents a file system path.
type Path string

// DependencyType identifies one of the four dependency categories a
// manifest may carry.
type DependencyType string

const (
	// Dependencies is the regular runtime dependency category.
	Dependencies DependencyType = "dependencies"
	// DevDependencies is the development-only dependency category.
	DevDependencies DependencyType = "devDependencies"
	// PeerDependencies is the peer dependency category.
	PeerDependencies DependencyType = "peerDependencies"
	// OptionalDependencies is the optional dependency category.
	OptionalDependencies DependencyType = "optionalDependencies"
)

// AllDependencyTypes lists every category in manifest order.
var AllDependencyTypes = []DependencyType{
	Dependencies,
	DevDependencies,
	PeerDependencies,
	OptionalDependencies,
}

// ParseDependencyType converts a string into a DependencyType.
func ParseDependencyType(s string) (DependencyType, error) {
	for _, t := range AllDependencyTypes {
		if s == string(t) {
			return t, nil
		}
	}

	return "", fmt.Errorf("unknown dependency type: %q", s)
}

// Manifest is a dependency-declaration document (a package.json). Fields
// this tool does not touch (scripts, engines, ...) are preserved verbatim
// and re-emitted on save.
type Manifest struct {
	Name                 string
	Version              string
	Dependencies         map[string]string
	DevDependencies      map[string]string
	PeerDependencies     map[string]string
	OptionalDependencies map[string]string

	rest map[string]json.RawMessage
}

// Category returns the map backing the given dependency category. The
// returned map is nil when the manifest does not declare the category;
// writes through a non-nil map are visible in the manifest.
func (mf *Manifest) Category(t DependencyType) map[string]string {
	switch t {
	case Dependencies:
		return mf.Dependencies
	case DevDependencies:
		return mf.DevDependencies
	case PeerDependencies:
		return mf.PeerDependencies
	case OptionalDependencies:
		return mf.OptionalDependencies
	}

	return nil
}

// Clone returns a deep copy of the manifest, including preserved raw
// fields. Mutating the copy never affects the receiver.
func (mf *Manifest) Clone() *Manifest {
	clone := &Manifest{
		Name:                 mf.Name,
		Version:              mf.Version,
		Dependencies:         cloneDeps(mf.Dependencies),
		DevDependencies:      cloneDeps(mf.DevDependencies),
		PeerDependencies:     cloneDeps(mf.PeerDependencies),
		OptionalDependencies: cloneDeps(mf.OptionalDependencies),
	}

	if mf.rest != nil {
		clone.rest = make(map[string]json.RawMessage, len(mf.rest))
		for k, v := range mf.rest {
			raw := make(json.RawMessage, len(v))
			copy(raw, v)
			clone.rest[k] = raw
		}
	}

	return clone
}

func cloneDeps(deps map[string]string) map[string]string {
	if deps == nil {
		return nil
	}

	clone := make(map[string]string, len(deps))
	for name, spec := range deps {
		clone[name] = spec
	}

	return clone
}

// UnmarshalJSON decodes a manifest document, lifting out the fields this
// tool understands and retaining everything else untouched.
func (mf *Manifest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields["name"]; ok {
		if err := json.Unmarshal(raw, &mf.Name); err != nil {
			return fmt.Errorf("manifest name: %w", err)
		}

		delete(fields, "name")
	}

	if raw, ok := fields["version"]; ok {
		if err := json.Unmarshal(raw, &mf.Version); err != nil {
			return fmt.Errorf("manifest version: %w", err)
		}

		delete(fields, "version")
	}

	for _, t := range AllDependencyTypes {
		raw, ok := fields[string(t)]
		if !ok {
			continue
		}

		deps := make(map[string]string)
		if err := json.Unmarshal(raw, &deps); err != nil {
			return fmt.Errorf("manifest %s: %w", t, err)
		}

		mf.setCategory(t, deps)
		delete(fields, string(t))
	}

	if len(fields) > 0 {
		mf.rest = fields
	}

	return nil
}

// MarshalJSON re-assembles the full document, preserved fields included.
func (mf *Manifest) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(mf.rest)+6)

	for k, v := range mf.rest {
		fields[k] = v
	}

	if err := marshalInto(fields, "name", mf.Name, mf.Name != ""); err != nil {
		return nil, err
	}

	if err := marshalInto(fields, "version", mf.Version, mf.Version != ""); err != nil {
		return nil, err
	}

	for _, t := range AllDependencyTypes {
		deps := mf.Category(t)
		if err := marshalInto(fields, string(t), deps, deps != nil); err != nil {
			return nil, err
		}
	}

	return json.Marshal(fields)
}

func marshalInto(fields map[string]json.RawMessage, key string, value any, present bool) error {
	if !present {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("manifest %s: %w", key, err)
	}

	fields[key] = raw

	return nil
}

func (mf *Manifest) setCategory(t DependencyType, deps map[string]string) {
	switch t {
	case Dependencies:
		mf.Dependencies = deps
	case DevDependencies:
		mf.DevDependencies = deps
	case PeerDependencies:
		mf.PeerDependencies = deps
	case OptionalDependencies:
		mf.OptionalDependencies = deps
	}
}
