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

package config

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/cratedeps/depgraph/graph/cargo"
)

func TestLoadProfiles(t *testing.T) {
	doc := `
default:
  include_dev: true
  target_platform: x86_64-unknown-linux-gnu
  host_platform: x86_64-unknown-linux-gnu
  resolver_version: v1
release:
  include_dev: false
  target_platform: x86_64-pc-windows-msvc
  host_platform: x86_64-unknown-linux-gnu
`
	profiles, err := LoadProfiles(strings.NewReader(doc))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(profiles, 2))

	def := profiles["default"]
	qt.Assert(t, qt.IsTrue(def.IncludeDev))
	qt.Assert(t, qt.Equals(def.ResolverVersion, cargo.ResolverV1))
	qt.Assert(t, qt.IsNotNil(def.TargetPlatform))
	qt.Assert(t, qt.IsNotNil(def.HostPlatform))

	rel := profiles["release"]
	qt.Assert(t, qt.IsFalse(rel.IncludeDev))
	qt.Assert(t, qt.Equals(rel.ResolverVersion, cargo.ResolverV1))
}

func TestLoadProfilesUnknownField(t *testing.T) {
	doc := `
default:
  include_dev: true
  bogus_field: oops
`
	_, err := LoadProfiles(strings.NewReader(doc))
	qt.Assert(t, qt.IsNotNil(err))
}

func TestLoadProfilesBadTriple(t *testing.T) {
	doc := `
default:
  target_platform: not-a-real-triple
`
	_, err := LoadProfiles(strings.NewReader(doc))
	qt.Assert(t, qt.IsNotNil(err))
}
