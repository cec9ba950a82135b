package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Field is one key of a Tree
type Field struct {
	Key   string
	Value any
}

// Tree is an ordered key/value rendering of a node, used for dumps.
// Keys keep their insertion order in both YAML and JSON output.
type Tree []Field

// MarshalYAML encodes the tree as an ordered YAML mapping
func (t Tree) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range t {
		var value yaml.Node
		if err := value.Encode(f.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key},
			&value,
		)
	}
	return node, nil
}

// MarshalJSON encodes the tree as an ordered JSON object
func (t Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ToTree converts a node into its dump form
func ToTree(node Node) Tree {
	t := Tree{{"kind", kindOf(node)}, {"pos", node.Loc().String()}}
	add := func(key string, value any) { t = append(t, Field{key, value}) }

	switch n := node.(type) {
	case *AssignStmt:
		add("name", n.Name.Name)
		add("value", ToTree(n.Value))
	case *ProduceStmt:
		add("value", ToTree(n.Value))
	case *TakeStmt:
		add("name", n.Name.Name)
	case *IncaseStmt:
		add("cond", ToTree(n.Cond))
		add("then", blockTrees(n.Then))
		add("else", blockTrees(n.Else))
	case *WhileStmt:
		add("cond", ToTree(n.Cond))
		add("body", blockTrees(n.Body))
	case *FuncDecl:
		add("name", n.Name.Name)
		add("params", n.ParamNames())
		add("body", blockTrees(n.Body))
	case *ReturnStmt:
		add("value", ToTree(n.Result))
	case *NumberLit:
		add("value", n.Value)
	case *StringLit:
		add("value", n.Value)
	case *IdentifierExpr:
		add("name", n.Name)
	case *ArrayLit:
		add("elements", exprTrees(n.Elts))
	case *IndexExpr:
		add("array", ToTree(n.X))
		add("index", ToTree(n.Index))
	case *BinaryExpr:
		add("op", string(n.Op.Kind))
		add("left", ToTree(n.X))
		add("right", ToTree(n.Y))
	case *UnaryExpr:
		add("op", string(n.Op.Kind))
		add("operand", ToTree(n.X))
	case *CallExpr:
		add("callee", ToTree(n.Fun))
		add("args", exprTrees(n.Args))
	case *Block:
		add("body", blockTrees(n))
	}
	return t
}

func kindOf(node Node) string {
	switch node.(type) {
	case *AssignStmt:
		return "Assignment"
	case *ProduceStmt:
		return "Produce"
	case *TakeStmt:
		return "Take"
	case *IncaseStmt:
		return "Incase"
	case *WhileStmt:
		return "While"
	case *FuncDecl:
		return "FunctionDecl"
	case *ReturnStmt:
		return "Return"
	case *NumberLit:
		return "Number"
	case *StringLit:
		return "String"
	case *IdentifierExpr:
		return "Variable"
	case *ArrayLit:
		return "Array"
	case *IndexExpr:
		return "Index"
	case *BinaryExpr:
		return "Binary"
	case *UnaryExpr:
		return "Unary"
	case *CallExpr:
		return "Call"
	case *Block:
		return "Block"
	default:
		return fmt.Sprintf("%T", node)
	}
}

func blockTrees(b *Block) []Tree {
	if b == nil {
		return []Tree{}
	}
	return stmtTrees(b.Nodes)
}

func stmtTrees(stmts []Statement) []Tree {
	out := make([]Tree, len(stmts))
	for i, s := range stmts {
		out[i] = ToTree(s)
	}
	return out
}

func exprTrees(exprs []Expression) []Tree {
	out := make([]Tree, len(exprs))
	for i, e := range exprs {
		out[i] = ToTree(e)
	}
	return out
}

// SaveAST writes the module's statements to w as "yaml" or "json"
func (m *Module) SaveAST(w io.Writer, format string) error {
	trees := stmtTrees(m.Nodes)

	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(trees); err != nil {
			return fmt.Errorf("encoding AST as yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(trees); err != nil {
			return fmt.Errorf("encoding AST as json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown AST format %q (want yaml or json)", format)
	}
}
