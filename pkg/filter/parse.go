package filter

import (
	"fmt"

	"github.com/arthur-debert/pathsfilter/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Parse deserializes YAML rule configuration and compiles it. Groups keep
// their document order and anchors may be reused across groups.
func Parse(data []byte, opts Options) (*Filter, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "invalid filter: malformed YAML")
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind == yaml.AliasNode && root.Alias != nil {
		root = root.Alias
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.Newf(errors.ErrConfigInvalid,
			"invalid filter: expected a mapping of group names to patterns, got %s", describeNode(root))
	}

	names := make([]string, 0, len(root.Content)/2)
	defs := make(map[string]any, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, errors.Newf(errors.ErrConfigInvalid,
				"invalid filter: group name at line %d must be a string", key.Line)
		}
		name := key.Value
		if _, dup := defs[name]; dup {
			return nil, errors.Newf(errors.ErrConfigInvalid,
				"invalid filter: duplicate group %q at line %d", name, key.Line).
				WithDetail("group", name)
		}

		var def any
		if err := value.Decode(&def); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "invalid filter: group %q", name).
				WithDetail("group", name)
		}
		names = append(names, name)
		defs[name] = def
	}

	return compileOrdered(names, defs, opts)
}

func describeNode(n *yaml.Node) string {
	switch n.Kind {
	case 0:
		return "an empty document"
	case yaml.ScalarNode:
		return fmt.Sprintf("scalar %q", n.Value)
	case yaml.SequenceNode:
		return "a sequence"
	default:
		return fmt.Sprintf("node kind %d", n.Kind)
	}
}
