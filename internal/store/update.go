package store

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Whitelisted update paths. Only these leaves may be touched by the engine;
// everything else in a record file belongs to the human who wrote it.
var updatablePaths = []string{
	"status",
	"outcome",
	"last_touched",
	"fit.score",
	"fit.dimensions",
	"timeline",
}

func pathUpdatable(path string) bool {
	for _, allowed := range updatablePaths {
		if path == allowed || strings.HasPrefix(path, allowed+".") {
			return true
		}
	}
	return false
}

// Update applies a partial-field update to the record file. Keys are dotted
// paths ("status", "timeline.submitted", "fit.dimensions.mission_alignment");
// values are encoded with yaml defaults. The rest of the document — comments,
// key order, fields this engine does not own — is preserved byte-for-byte by
// editing the parsed node tree in place.
func (s *Store) Update(id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	for path := range fields {
		if !pathUpdatable(path) {
			return fmt.Errorf("record %s: field %q is not updatable", id, path)
		}
	}

	p, err := s.find(id)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("record %s: %w", id, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("record %s: %w", id, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return fmt.Errorf("record %s: not a yaml document", id)
	}

	root := doc.Content[0]
	for path, value := range fields {
		if err := setPath(root, strings.Split(path, "."), value); err != nil {
			return fmt.Errorf("record %s: %w", id, err)
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("record %s: %w", id, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("record %s: %w", id, err)
	}

	return writeAtomic(p, buf.Bytes())
}

// setPath walks the mapping tree to the leaf named by path, creating mapping
// nodes for missing intermediate keys, and replaces the leaf's value.
func setPath(node *yaml.Node, path []string, value interface{}) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("cannot descend into %s: not a mapping", path[0])
	}

	key := path[0]
	for i := 0; i < len(node.Content)-1; i += 2 {
		if node.Content[i].Value != key {
			continue
		}
		target := node.Content[i+1]
		if len(path) == 1 {
			return encodeInto(target, value)
		}
		if target.Kind == yaml.ScalarNode && target.Tag == "!!null" {
			// The key exists but holds an explicit null; turn it into a map.
			target.Kind = yaml.MappingNode
			target.Tag = "!!map"
			target.Value = ""
		}
		return setPath(target, path[1:], value)
	}

	// Key not present: append it.
	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	valueNode := &yaml.Node{}
	if len(path) == 1 {
		if err := encodeInto(valueNode, value); err != nil {
			return err
		}
	} else {
		valueNode.Kind = yaml.MappingNode
		valueNode.Tag = "!!map"
		if err := setPath(valueNode, path[1:], value); err != nil {
			return err
		}
	}
	node.Content = append(node.Content, keyNode, valueNode)
	return nil
}

// encodeInto re-encodes value into the node while keeping any comments
// attached to it.
func encodeInto(node *yaml.Node, value interface{}) error {
	head, line, foot := node.HeadComment, node.LineComment, node.FootComment
	if err := node.Encode(value); err != nil {
		return err
	}
	node.HeadComment, node.LineComment, node.FootComment = head, line, foot
	return nil
}
