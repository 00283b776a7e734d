// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

type yamlRenderer struct{}

func (yamlRenderer) Extension() string { return "yaml" }

func (yamlRenderer) Render(w io.Writer, rep Report) error {
	rep.Title = rep.heading()
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&rep); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

type jsonRenderer struct{}

func (jsonRenderer) Extension() string { return "json" }

func (jsonRenderer) Render(w io.Writer, rep Report) error {
	rep.Title = rep.heading()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
