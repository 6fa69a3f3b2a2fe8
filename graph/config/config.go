// Copyright 2026 The Depgraph Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads named resolver profiles from YAML, the ambient
// configuration layer spec.md itself does not specify but a complete repo
// needs: a way to name and persist common CargoOptions combinations ("host
// build, with dev deps" vs "target x86_64-unknown-linux-gnu, no dev
// deps"), read the way the teacher's own tools read named YAML
// configuration via gopkg.in/yaml.v3.
package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/cratedeps/depgraph/graph/cargo"
	"github.com/cratedeps/depgraph/platform"
)

// rawProfile is the YAML wire shape for one named profile. Platform triples
// are resolved against the platforms database at load time so that a
// malformed profile fails fast, at load, rather than at resolve time.
type rawProfile struct {
	IncludeDev      bool   `yaml:"include_dev"`
	TargetPlatform  string `yaml:"target_platform"`
	HostPlatform    string `yaml:"host_platform"`
	ResolverVersion string `yaml:"resolver_version"`
}

// LoadProfiles parses a YAML document of named profiles into CargoOptions
// values, e.g.:
//
//	default:
//	  include_dev: true
//	  target_platform: x86_64-unknown-linux-gnu
//	  host_platform: x86_64-unknown-linux-gnu
//	  resolver_version: v1
//	release:
//	  include_dev: false
//	  target_platform: x86_64-pc-windows-msvc
//	  host_platform: x86_64-unknown-linux-gnu
func LoadProfiles(r io.Reader) (map[string]cargo.CargoOptions, error) {
	var raw map[string]rawProfile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("config: decoding profiles: %w", err)
	}

	out := make(map[string]cargo.CargoOptions, len(raw))
	for name, rp := range raw {
		opts, err := rp.resolve()
		if err != nil {
			return nil, fmt.Errorf("config: profile %q: %w", name, err)
		}
		out[name] = opts
	}
	return out, nil
}

func (rp rawProfile) resolve() (cargo.CargoOptions, error) {
	opts := cargo.CargoOptions{
		IncludeDev:      rp.IncludeDev,
		ResolverVersion: cargo.ResolverVersion(rp.ResolverVersion),
	}
	if opts.ResolverVersion == "" {
		opts.ResolverVersion = cargo.ResolverV1
	}

	if rp.TargetPlatform != "" {
		p, err := platform.NewPlatform(rp.TargetPlatform, platform.AllTargetFeatures())
		if err != nil {
			return opts, fmt.Errorf("target_platform: %w", err)
		}
		opts.TargetPlatform = p
	}
	if rp.HostPlatform != "" {
		p, err := platform.NewPlatform(rp.HostPlatform, platform.AllTargetFeatures())
		if err != nil {
			return opts, fmt.Errorf("host_platform: %w", err)
		}
		opts.HostPlatform = p
	}
	return opts, nil
}
