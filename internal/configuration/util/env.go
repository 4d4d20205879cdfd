package util

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

var envVarPattern = regexp.MustCompile(`\${([^}]+)}`)

// ExpandEnvStrict expands ${VAR} references and fails if any of them is unset.
func ExpandEnvStrict(s string) (string, error) {
	matches := envVarPattern.FindAllStringSubmatch(s, -1)
	for _, m := range matches {
		name := m[1]
		if _, ok := os.LookupEnv(name); !ok {
			return "", fmt.Errorf("environment variable %s is not set", name)
		}
	}

	return os.ExpandEnv(s), nil
}

// OverridesNode turns PREFIX_SECTION__KEY=value variables into a YAML mapping
// {section: {key: value}}. Double underscores separate levels, single underscores
// become dashes and names are lower-cased. Returns nil when nothing matched.
func OverridesNode(prefix string, environ []string) *yaml.Node {
	prefix = strings.ToUpper(prefix) + "_"

	environ = slices.Sorted(slices.Values(environ))

	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}

		path := strings.Split(strings.TrimPrefix(name, prefix), "__")
		if len(path) < 2 || hasEmpty(path) {
			continue
		}

		node := root
		for _, p := range path[:len(path)-1] {
			node = childMapping(node, yamlKey(p))
		}
		setScalar(node, yamlKey(path[len(path)-1]), value)
	}

	if len(root.Content) == 0 {
		return nil
	}
	return root
}

func yamlKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "_", "-")
}

func hasEmpty(parts []string) bool {
	for _, p := range parts {
		if p == "" {
			return true
		}
	}
	return false
}

func childMapping(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key && m.Content[i+1].Kind == yaml.MappingNode {
			return m.Content[i+1]
		}
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, child)
	return child
}

func setScalar(m *yaml.Node, key, value string) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = &yaml.Node{Kind: yaml.ScalarNode, Value: value}
			return
		}
	}
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value},
	)
}
