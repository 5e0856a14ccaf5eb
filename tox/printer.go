package tox

import (
	"fmt"
	"strings"
)

// AstString renders a node in parenthesized prefix form. The REPL's :ast
// command and parser diagnostics use it; tools outside the package get the
// same view of the tree the interpreter walks.
func AstString(node Node) string {
	switch n := node.(type) {
	case *Program:
		parts := make([]string, len(n.Statements))
		for i, stmt := range n.Statements {
			parts[i] = AstString(stmt)
		}
		return strings.Join(parts, "\n")

	case *LiteralExpr:
		return n.Value.String()
	case *GroupingExpr:
		return "(group " + AstString(n.Expr) + ")"
	case *UnaryExpr:
		return "(" + string(n.Operator) + " " + AstString(n.Right) + ")"
	case *BinaryExpr:
		return "(" + string(n.Operator) + " " + AstString(n.Left) + " " + AstString(n.Right) + ")"
	case *LogicalExpr:
		op := "and"
		if n.Operator == tokenOr {
			op = "or"
		}
		return "(" + op + " " + AstString(n.Left) + " " + AstString(n.Right) + ")"
	case *VariableExpr:
		return n.Name
	case *AssignExpr:
		return "(= " + n.Name + " " + AstString(n.Value) + ")"
	case *CallExpr:
		var b strings.Builder
		b.WriteString("(call ")
		b.WriteString(AstString(n.Callee))
		for _, arg := range n.Args {
			b.WriteString(" ")
			b.WriteString(AstString(arg))
		}
		b.WriteString(")")
		return b.String()
	case *FunctionLiteral:
		return "(func (" + strings.Join(n.Params, " ") + ")" + bodyString(n.Body) + ")"

	case *ExprStmt:
		return AstString(n.Expr)
	case *PrintStmt:
		return "(print " + AstString(n.Expr) + ")"
	case *VarStmt:
		return "(var " + n.Name + " " + AstString(n.Initializer) + ")"
	case *BlockStmt:
		return "(block" + bodyString(n.Statements) + ")"
	case *IfStmt:
		if n.Else != nil {
			return "(if " + AstString(n.Condition) + " " + AstString(n.Then) + " " + AstString(n.Else) + ")"
		}
		return "(if " + AstString(n.Condition) + " " + AstString(n.Then) + ")"
	case *WhileStmt:
		return "(while " + AstString(n.Condition) + " " + AstString(n.Body) + ")"
	case *FunctionStmt:
		return "(func " + n.Name + " (" + strings.Join(n.Params, " ") + ")" + bodyString(n.Body) + ")"
	case *ReturnStmt:
		if n.Value != nil {
			return "(return " + AstString(n.Value) + ")"
		}
		return "(return)"

	default:
		return fmt.Sprintf("<%T>", node)
	}
}

func bodyString(stmts []Statement) string {
	var b strings.Builder
	for _, stmt := range stmts {
		b.WriteString(" ")
		b.WriteString(AstString(stmt))
	}
	return b.String()
}
