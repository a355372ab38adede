// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package catalog discovers the resources the admin backend exposes and remembers
// them for the rest of the process.
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "restadmin/cli/internal/errors"
)

// DefaultDiscoveryPath is where the backend lists its resources.
const DefaultDiscoveryPath = "/admin/resources"

// Descriptor names a resource and points at its list endpoint.
type Descriptor struct {
	Name     string `json:"name"`
	Endpoint string `json:"url"` // e.g., "/admin/resource/users"
}

// parseDescriptors decodes the discovery payload: a JSON array of {name, url}.
// Names must be present and unique.
func parseDescriptors(body []byte) ([]Descriptor, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.Wrap(apperrors.Parse, "discovery payload is not a JSON array", err)
	}
	if raw == nil {
		return nil, apperrors.New(apperrors.Parse, "discovery payload is null")
	}

	out := make([]Descriptor, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, item := range raw {
		var d Descriptor
		if err := json.Unmarshal(item, &d); err != nil {
			return nil, apperrors.Wrap(apperrors.Parse, fmt.Sprintf("resource #%d is not an object", i), err)
		}
		d.Name = strings.TrimSpace(d.Name)
		if d.Name == "" {
			return nil, apperrors.New(apperrors.Parse, fmt.Sprintf("resource #%d has no name", i))
		}
		if d.Endpoint == "" {
			return nil, apperrors.New(apperrors.Parse, fmt.Sprintf("resource %q has no url", d.Name))
		}
		if _, dup := seen[d.Name]; dup {
			return nil, apperrors.New(apperrors.Parse, fmt.Sprintf("resource %q is listed twice", d.Name))
		}
		seen[d.Name] = struct{}{}
		out = append(out, d)
	}
	return out, nil
}
