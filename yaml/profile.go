// Package yaml loads site profiles from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/staffdir"
	"gopkg.in/yaml.v3"
)

// LoadProfile reads the profile at path. Fields missing from the file
// keep their staffdir.DefaultProfile values.
func LoadProfile(path string) (*staffdir.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, staffdir.Errorf(staffdir.ENOTFOUND, "profile %s not found", path)
		}
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile decodes a YAML profile over the defaults and validates it.
// Unknown keys are rejected.
func ParseProfile(data []byte) (*staffdir.Profile, error) {
	profile := staffdir.DefaultProfile()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(profile); err != nil && !errors.Is(err, io.EOF) {
		return nil, staffdir.Errorf(staffdir.EINVALID, "parsing profile: %v", err)
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}
