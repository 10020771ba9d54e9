package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"guicheck/pkg/geometry"
)

// readYAML decodes a YAML (or JSON) file into v.
func readYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// loadBoxes reads a list of boxes, either a bare list or under "boxes".
func loadBoxes(path string) ([]geometry.Box, error) {
	var list []geometry.Box
	if err := readYAML(path, &list); err == nil {
		return list, nil
	}
	var doc struct {
		Boxes []geometry.Box `yaml:"boxes"`
	}
	if err := readYAML(path, &doc); err != nil {
		return nil, err
	}
	return doc.Boxes, nil
}

// layoutElement pairs a box with the expectations it must meet.
type layoutElement struct {
	Box      geometry.Box             `yaml:"box"`
	Position *geometry.PositionExpect `yaml:"position,omitempty"`
	Size     *geometry.SizeExpect     `yaml:"size,omitempty"`
}

type layoutFile struct {
	Elements []layoutElement `yaml:"elements"`
}
