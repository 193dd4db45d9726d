package script

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the top-level rebuild document.
type Document struct {
	// Name optionally labels the tree, e.g. for storage.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Operation is the root of the tree.
	Operation OpNode `yaml:"operation" json:"operation"`
}

// OpNode describes one operation.
type OpNode struct {
	// Intrinsic is the fully qualified op name, e.g. "base.add".
	Intrinsic string `yaml:"intrinsic" json:"intrinsic"`

	// Operands, when present, replaces the operand list wholesale after
	// the regions are rebuilt (entry-block arguments mint operands as a
	// side effect; an explicit list overrides the accumulated one).
	// When absent, the minted operands stand.
	Operands []int64 `yaml:"operands,omitempty" json:"operands,omitempty"`

	// Attributes maps attribute keys to plain payloads (string, int,
	// bool, list, map). Floats and null are rejected.
	Attributes map[string]any `yaml:"attributes,omitempty" json:"attributes,omitempty"`

	// Regions are the nested scopes, in order.
	Regions []RegionNode `yaml:"regions,omitempty" json:"regions,omitempty"`

	// Successors are explicit control-flow edges, in order.
	Successors []BlockNode `yaml:"successors,omitempty" json:"successors,omitempty"`
}

// RegionNode describes one region.
type RegionNode struct {
	Blocks []BlockNode `yaml:"blocks,omitempty" json:"blocks,omitempty"`
}

// BlockNode describes one basic block.
type BlockNode struct {
	// Arguments is the number of block arguments to mint.
	Arguments int `yaml:"arguments,omitempty" json:"arguments,omitempty"`

	// Operations are the block's operations in program order.
	Operations []OpNode `yaml:"operations,omitempty" json:"operations,omitempty"`
}

// Load reads and parses a script document. Files ending in .json are
// parsed as JSON; everything else is parsed as strict YAML, rejecting
// unknown fields so typos surface as errors.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}

	var doc Document
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save writes the document as YAML.
func Save(path string, doc *Document) error {
	if err := doc.validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal script: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write script file: %w", err)
	}
	return nil
}

// validate checks structural requirements that the decoder cannot.
func (d *Document) validate() error {
	return d.Operation.validate("operation")
}

func (n *OpNode) validate(path string) error {
	if n.Intrinsic == "" {
		return fmt.Errorf("%s: intrinsic is required", path)
	}
	for i, r := range n.Regions {
		for j, blk := range r.Blocks {
			if blk.Arguments < 0 {
				return fmt.Errorf("%s.regions[%d].blocks[%d]: arguments must be non-negative", path, i, j)
			}
			for k := range blk.Operations {
				child := &r.Blocks[j].Operations[k]
				if err := child.validate(fmt.Sprintf("%s.regions[%d].blocks[%d].operations[%d]", path, i, j, k)); err != nil {
					return err
				}
			}
		}
	}
	for i, blk := range n.Successors {
		for k := range blk.Operations {
			child := &n.Successors[i].Operations[k]
			if err := child.validate(fmt.Sprintf("%s.successors[%d].operations[%d]", path, i, k)); err != nil {
				return err
			}
		}
	}
	return nil
}
