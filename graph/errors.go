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

package graph

import "fmt"

// UnknownPackageIDError is returned when a query names a package id absent
// from the graph.
type UnknownPackageIDError struct {
	ID PackageID
}

func (e *UnknownPackageIDError) Error() string {
	return fmt.Sprintf("unknown package id: %s", e.ID)
}

// UnknownFeatureIDError is returned when a query names a feature node
// absent from the graph.
type UnknownFeatureIDError struct {
	ID      PackageID
	Feature string // empty means the base feature slot
}

func (e *UnknownFeatureIDError) Error() string {
	if e.Feature == "" {
		return fmt.Sprintf("unknown feature id: %s (base)", e.ID)
	}
	return fmt.Sprintf("unknown feature id: %s/%s", e.ID, e.Feature)
}

// UnknownCurrentPlatformError is returned when the host triple could not be
// located in the platforms database at construction time.
type UnknownCurrentPlatformError struct {
	Triple string
}

func (e *UnknownCurrentPlatformError) Error() string {
	return fmt.Sprintf("current platform triple not found: %s", e.Triple)
}

// TargetEvalError wraps a failure evaluating a target spec on a platform.
type TargetEvalError struct {
	Platform string
	Err      error
}

func (e *TargetEvalError) Error() string {
	return fmt.Sprintf("evaluating target spec on platform %s: %v", e.Platform, e.Err)
}

func (e *TargetEvalError) Unwrap() error { return e.Err }

// ConstructError reports a structural inconsistency found while building a
// PackageGraph from metadata: an edge to an unknown id, a duplicate id, or
// a malformed field.
type ConstructError struct {
	Msg string
}

func (e *ConstructError) Error() string {
	return fmt.Sprintf("package graph construction error: %s", e.Msg)
}

// InternalError reports an invariant violated after a graph was
// successfully constructed: a cycle in the non-dev subgraph, a
// node/package count mismatch, or a version that does not satisfy its own
// requirement.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("package graph internal error: %s", e.Msg)
}

// MetadataParseError reports malformed input JSON.
type MetadataParseError struct {
	Err error
}

func (e *MetadataParseError) Error() string {
	return fmt.Sprintf("metadata parse error: %v", e.Err)
}

func (e *MetadataParseError) Unwrap() error { return e.Err }
