package dump

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"martianoff/gast/internal/ast"

	"gopkg.in/yaml.v3"
)

// Formats accepted by Write.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Write renders m to w in the named format.
func Write(w io.Writer, format string, m *ast.ModuleNode, opts Options) error {
	switch format {
	case FormatText, "":
		return Text(w, m, opts)
	case FormatYAML:
		return YAML(w, m, opts)
	}
	return fmt.Errorf("unknown dump format %q", format)
}

// Text writes m as an indented tree, two spaces per level, after a header
// naming the unit and its defines.
func Text(w io.Writer, m *ast.ModuleNode, opts Options) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# unit %s\n", m.Description)
	for _, name := range sortedKeys(opts.Defines) {
		fmt.Fprintf(bw, "# define %s=%s\n", name, opts.Defines[name])
	}
	writeNode(bw, Tree(m, opts), 0)
	return bw.Flush()
}

func writeNode(w *bufio.Writer, n *Node, depth int) {
	w.WriteString(strings.Repeat("  ", depth))
	w.WriteString(n.Kind)
	if n.Label != "" {
		w.WriteString(" " + n.Label)
	}
	if n.Span != "" {
		w.WriteString(" [" + n.Span + "]")
	}
	w.WriteByte('\n')
	for _, c := range n.Children {
		writeNode(w, c, depth+1)
	}
}

type document struct {
	Unit    string            `yaml:"unit"`
	Defines map[string]string `yaml:"defines,omitempty"`
	Module  *Node             `yaml:"module"`
}

// YAML writes m as a single YAML document.
func YAML(w io.Writer, m *ast.ModuleNode, opts Options) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	doc := document{Unit: m.Description, Defines: opts.Defines, Module: Tree(m, opts)}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding %s: %w", m.Description, err)
	}
	return enc.Close()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
