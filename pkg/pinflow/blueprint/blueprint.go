package blueprint

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gzp-crey/pinflow/pkg/pinflow"
	"github.com/gzp-crey/pinflow/pkg/pinflow/config"
)

// Doc is the YAML shape of a blueprint.
//
//	name: thermostat
//	inputs:
//	  - name: temp
//	    type: float
//	nodes:
//	  - name: smooth
//	    kind: avg
//	  - name: display
//	    kind: inspect-float
//	connections:
//	  - from: temp
//	    to: smooth.a
//	  - from: smooth.out
//	    to: display.in
type Doc struct {
	Name        string      `yaml:"name"`
	Inputs      []InputDecl `yaml:"inputs"`
	Nodes       []NodeDecl  `yaml:"nodes"`
	Connections []ConnDecl  `yaml:"connections"`
}

// InputDecl declares one system input pin.
type InputDecl struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// NodeDecl declares one node built by a registered factory.
type NodeDecl struct {
	Name   string         `yaml:"name"`
	Kind   string         `yaml:"kind"`
	Config map[string]any `yaml:"config"`
}

// ConnDecl declares one connection. From is either a system input name
// or a "node.pin" path; To is always a "node.pin" path.
type ConnDecl struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Graph is an assembled blueprint: the live system plus the handles and
// pin layouts needed to drive and extend it.
type Graph struct {
	System *pinflow.System
	Inputs map[string]pinflow.OutHandle
	Nodes  map[string]pinflow.Pins
}

// Build assembles a system from YAML using the default registry.
func Build(data []byte, opts ...pinflow.Option) (*Graph, error) {
	return Default.Build(data, opts...)
}

// BuildFile assembles a system from a YAML file using the default registry.
func BuildFile(path string, opts ...pinflow.Option) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read blueprint: %w", err)
	}
	return Default.Build(data, opts...)
}

// Build assembles a system from YAML. Inputs are created first, then
// nodes, then connections in declaration order; the first invalid
// declaration aborts the build.
func (r *Registry) Build(data []byte, opts ...pinflow.Option) (*Graph, error) {
	var doc Doc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse blueprint: %w", err)
	}

	if doc.Name != "" {
		opts = append(opts, pinflow.WithName(doc.Name))
	}
	g := &Graph{
		System: pinflow.NewSystem(opts...),
		Inputs: make(map[string]pinflow.OutHandle),
		Nodes:  make(map[string]pinflow.Pins),
	}

	for _, in := range doc.Inputs {
		if in.Name == "" {
			return nil, fmt.Errorf("input declaration missing name")
		}
		if _, exists := g.Inputs[in.Name]; exists {
			return nil, fmt.Errorf("duplicate input %q", in.Name)
		}
		handle, err := createInput(g.System, in.Type)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", in.Name, err)
		}
		g.Inputs[in.Name] = handle
	}

	for _, decl := range doc.Nodes {
		if decl.Name == "" {
			return nil, fmt.Errorf("node declaration missing name")
		}
		if _, exists := g.Nodes[decl.Name]; exists {
			return nil, fmt.Errorf("duplicate node %q", decl.Name)
		}
		factory, ok := r.Lookup(decl.Kind)
		if !ok {
			return nil, fmt.Errorf("node %q: unknown kind %q", decl.Name, decl.Kind)
		}
		behavior, err := factory(config.New(decl.Config))
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", decl.Name, err)
		}
		pins, err := g.System.AddNode(behavior, pinflow.WithNodeName(decl.Name))
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", decl.Name, err)
		}
		g.Nodes[decl.Name] = pins
	}

	for _, conn := range doc.Connections {
		out, err := g.resolveOut(conn.From)
		if err != nil {
			return nil, fmt.Errorf("connection %q -> %q: %w", conn.From, conn.To, err)
		}
		in, err := g.resolveIn(conn.To)
		if err != nil {
			return nil, fmt.Errorf("connection %q -> %q: %w", conn.From, conn.To, err)
		}
		if err := g.System.ConnectAny(out, in); err != nil {
			return nil, fmt.Errorf("connection %q -> %q: %w", conn.From, conn.To, err)
		}
	}

	return g, nil
}

// createInput maps a declared type name to a typed system input.
func createInput(sys *pinflow.System, typeName string) (pinflow.OutHandle, error) {
	switch typeName {
	case "string":
		return pinflow.CreateInput[string](sys).Handle(), nil
	case "int":
		return pinflow.CreateInput[int](sys).Handle(), nil
	case "float", "float64":
		return pinflow.CreateInput[float64](sys).Handle(), nil
	case "bool":
		return pinflow.CreateInput[bool](sys).Handle(), nil
	default:
		return pinflow.OutHandle{}, fmt.Errorf("unsupported input type %q", typeName)
	}
}

// resolveOut resolves a connection source: a bare system input name or
// a "node.pin" path.
func (g *Graph) resolveOut(path string) (pinflow.OutHandle, error) {
	node, pin, isPath := strings.Cut(path, ".")
	if !isPath {
		handle, ok := g.Inputs[path]
		if !ok {
			return pinflow.OutHandle{}, fmt.Errorf("unknown input %q", path)
		}
		return handle, nil
	}
	pins, ok := g.Nodes[node]
	if !ok {
		return pinflow.OutHandle{}, fmt.Errorf("unknown node %q", node)
	}
	handle, ok := pins.Out(pin)
	if !ok {
		return pinflow.OutHandle{}, fmt.Errorf("node %q has no output pin %q", node, pin)
	}
	return handle, nil
}

// resolveIn resolves a connection target "node.pin" path.
func (g *Graph) resolveIn(path string) (pinflow.InHandle, error) {
	node, pin, isPath := strings.Cut(path, ".")
	if !isPath {
		return pinflow.InHandle{}, fmt.Errorf("target %q is not a node.pin path", path)
	}
	pins, ok := g.Nodes[node]
	if !ok {
		return pinflow.InHandle{}, fmt.Errorf("unknown node %q", node)
	}
	handle, ok := pins.In(pin)
	if !ok {
		return pinflow.InHandle{}, fmt.Errorf("node %q has no input pin %q", node, pin)
	}
	return handle, nil
}
