package compiler

import (
	"fmt"

	"github.com/leapstack-labs/leapview/pkg/ast"
	"github.com/leapstack-labs/leapview/pkg/scenario"
	"github.com/leapstack-labs/leapview/pkg/token"
)

// serializeHandler converts an inline event-handler function into the
// restricted instruction set of scenario.SerializedHandler.
//
// Serialization is all-or-nothing: the first AST node outside the
// allow-list aborts the whole handler with a ConversionError naming the
// construct. A partially serialized handler would silently misbehave on
// the target runtime, which is strictly worse than failing the build.
func serializeHandler(fn *ast.ArrowFn) (*scenario.SerializedHandler, error) {
	handler := &scenario.SerializedHandler{Params: []string{}}
	for _, p := range fn.Params {
		if p.Destructured() {
			return nil, handlerError("destructured handler parameters are not supported", fn.Pos())
		}
		handler.Params = append(handler.Params, p.Name)
	}

	body := &scenario.HandlerStmt{Kind: scenario.HStmtBlock}
	switch {
	case fn.BlockBody != nil:
		for _, stmt := range fn.BlockBody.Stmts {
			s, err := serializeStmt(stmt)
			if err != nil {
				return nil, err
			}
			body.Body = append(body.Body, s)
		}
	case fn.ExprBody != nil:
		expr, err := serializeExpr(fn.ExprBody)
		if err != nil {
			return nil, err
		}
		body.Body = []*scenario.HandlerStmt{{Kind: scenario.HStmtExpr, Expr: expr}}
	}

	handler.Body = body
	return handler, nil
}

// serializeStmt serializes one statement. The switch is exhaustive over
// the statement kinds the parser can produce; everything outside the
// allow-list is rejected by name.
func serializeStmt(stmt ast.Stmt) (*scenario.HandlerStmt, error) {
	switch node := stmt.(type) {
	case *ast.ExprStmt:
		expr, err := serializeExpr(node.Expr)
		if err != nil {
			return nil, err
		}
		return &scenario.HandlerStmt{Kind: scenario.HStmtExpr, Expr: expr}, nil

	case *ast.ReturnStmt:
		out := &scenario.HandlerStmt{Kind: scenario.HStmtReturn}
		if node.Result != nil {
			expr, err := serializeExpr(node.Result)
			if err != nil {
				return nil, err
			}
			out.Expr = expr
		}
		return out, nil

	case *ast.IfStmt:
		cond, err := serializeExpr(node.Cond)
		if err != nil {
			return nil, err
		}
		body, err := serializeBlock(node.Body)
		if err != nil {
			return nil, err
		}
		out := &scenario.HandlerStmt{Kind: scenario.HStmtIf, Cond: cond, Body: body}
		switch alt := node.Else.(type) {
		case nil:
		case *ast.BlockStmt:
			out.Else, err = serializeBlock(alt)
			if err != nil {
				return nil, err
			}
		case *ast.IfStmt:
			elseIf, err := serializeStmt(alt)
			if err != nil {
				return nil, err
			}
			out.Else = []*scenario.HandlerStmt{elseIf}
		default:
			return nil, handlerError(fmt.Sprintf("unsupported else clause %s", alt.Kind()), alt.Pos())
		}
		return out, nil

	case *ast.WhileStmt:
		cond, err := serializeExpr(node.Cond)
		if err != nil {
			return nil, err
		}
		body, err := serializeBlock(node.Body)
		if err != nil {
			return nil, err
		}
		return &scenario.HandlerStmt{Kind: scenario.HStmtWhile, Cond: cond, Body: body}, nil

	case *ast.ForStmt:
		out := &scenario.HandlerStmt{Kind: scenario.HStmtFor}
		if node.Init != nil {
			init, err := serializeStmt(node.Init)
			if err != nil {
				return nil, err
			}
			out.Init = init
		}
		if node.Cond != nil {
			cond, err := serializeExpr(node.Cond)
			if err != nil {
				return nil, err
			}
			out.Cond = cond
		}
		if node.Post != nil {
			post, err := serializeExpr(node.Post)
			if err != nil {
				return nil, err
			}
			out.Post = post
		}
		body, err := serializeBlock(node.Body)
		if err != nil {
			return nil, err
		}
		out.Body = body
		return out, nil

	case *ast.BlockStmt:
		body, err := serializeBlock(node)
		if err != nil {
			return nil, err
		}
		return &scenario.HandlerStmt{Kind: scenario.HStmtBlock, Body: body}, nil

	case *ast.VarDecl:
		out := &scenario.HandlerStmt{Kind: scenario.HStmtVarDecl, Name: node.Name}
		if node.Init != nil {
			value, err := serializeExpr(node.Init)
			if err != nil {
				return nil, err
			}
			out.Val = value
		}
		return out, nil

	case *ast.BreakStmt:
		return &scenario.HandlerStmt{Kind: scenario.HStmtBreak}, nil

	case *ast.ContinueStmt:
		return &scenario.HandlerStmt{Kind: scenario.HStmtContinue}, nil

	case *ast.TryStmt:
		return nil, handlerError("try/catch is not supported in handlers", node.Pos())

	default:
		return nil, handlerError(fmt.Sprintf("unsupported statement %s in handler", stmt.Kind()), stmt.Pos())
	}
}

// serializeBlock serializes a block's statements.
func serializeBlock(block *ast.BlockStmt) ([]*scenario.HandlerStmt, error) {
	out := make([]*scenario.HandlerStmt, 0, len(block.Stmts))
	for _, stmt := range block.Stmts {
		s, err := serializeStmt(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// serializeExpr serializes one expression against the closed allow-list.
func serializeExpr(expr ast.Expr) (*scenario.HandlerExpr, error) {
	switch node := expr.(type) {
	case *ast.Ident:
		return &scenario.HandlerExpr{Kind: scenario.HExprIdentifier, Name: node.Name}, nil

	case *ast.StringLit, *ast.NumberLit, *ast.BoolLit, *ast.NullLit:
		return &scenario.HandlerExpr{Kind: scenario.HExprLiteral, Value: literalValue(node)}, nil

	case *ast.UnaryExpr:
		arg, err := serializeExpr(node.Arg)
		if err != nil {
			return nil, err
		}
		return &scenario.HandlerExpr{Kind: scenario.HExprUnary, Op: node.Op.String(), Arg: arg}, nil

	case *ast.BinaryExpr:
		left, err := serializeExpr(node.Left)
		if err != nil {
			return nil, err
		}
		right, err := serializeExpr(node.Right)
		if err != nil {
			return nil, err
		}
		return &scenario.HandlerExpr{Kind: scenario.HExprBinary, Op: node.Op.String(), Left: left, Right: right}, nil

	case *ast.LogicalExpr:
		left, err := serializeExpr(node.Left)
		if err != nil {
			return nil, err
		}
		right, err := serializeExpr(node.Right)
		if err != nil {
			return nil, err
		}
		return &scenario.HandlerExpr{Kind: scenario.HExprLogical, Op: node.Op.String(), Left: left, Right: right}, nil

	case *ast.ConditionalExpr:
		test, err := serializeExpr(node.Test)
		if err != nil {
			return nil, err
		}
		consequent, err := serializeExpr(node.Consequent)
		if err != nil {
			return nil, err
		}
		alternate, err := serializeExpr(node.Alternate)
		if err != nil {
			return nil, err
		}
		return &scenario.HandlerExpr{
			Kind: scenario.HExprConditional,
			Test: test, Consequent: consequent, Alternate: alternate,
		}, nil

	case *ast.AssignExpr:
		target, err := serializeExpr(node.Target)
		if err != nil {
			return nil, err
		}
		value, err := serializeExpr(node.Value)
		if err != nil {
			return nil, err
		}
		return &scenario.HandlerExpr{Kind: scenario.HExprAssign, Op: node.Op.String(), Left: target, Right: value}, nil

	case *ast.UpdateExpr:
		target, err := serializeExpr(node.Target)
		if err != nil {
			return nil, err
		}
		op := "++"
		if node.Op == token.DEC {
			op = "--"
		}
		return &scenario.HandlerExpr{Kind: scenario.HExprUpdate, Op: op, Arg: target}, nil

	case *ast.CallExpr:
		callee, err := serializeExpr(node.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]*scenario.HandlerExpr, 0, len(node.Args))
		for _, a := range node.Args {
			arg, err := serializeExpr(a)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return &scenario.HandlerExpr{Kind: scenario.HExprCall, Callee: callee, Args: args}, nil

	case *ast.MemberExpr:
		object, err := serializeExpr(node.Object)
		if err != nil {
			return nil, err
		}
		out := &scenario.HandlerExpr{Kind: scenario.HExprMember, Object: object}
		if node.Computed {
			index, err := serializeExpr(node.Index)
			if err != nil {
				return nil, err
			}
			out.Index = index
		} else {
			out.Property = node.Property
		}
		return out, nil

	case *ast.ArrayLit:
		elements := make([]*scenario.HandlerExpr, 0, len(node.Elements))
		for _, el := range node.Elements {
			e, err := serializeExpr(el)
			if err != nil {
				return nil, err
			}
			elements = append(elements, e)
		}
		return &scenario.HandlerExpr{Kind: scenario.HExprArray, Elements: elements}, nil

	case *ast.ObjectLit:
		fields := make(map[string]*scenario.HandlerExpr, len(node.Fields))
		for _, f := range node.Fields {
			v, err := serializeExpr(f.Value)
			if err != nil {
				return nil, err
			}
			fields[f.Key] = v
		}
		return &scenario.HandlerExpr{Kind: scenario.HExprObject, Fields: fields}, nil

	case *ast.TemplateLit:
		return nil, handlerError("template literals are not supported in handlers", node.Pos())
	case *ast.Spread:
		return nil, handlerError("spread elements are not supported in handlers", node.Pos())
	case *ast.ArrowFn:
		return nil, handlerError("nested functions are not supported in handlers", node.Pos())
	case *ast.Element:
		return nil, handlerError("markup elements are not supported in handlers", node.Pos())

	default:
		return nil, handlerError(fmt.Sprintf("unsupported expression %s in handler", expr.Kind()), expr.Pos())
	}
}

// handlerError builds the ConversionError for an unserializable handler.
func handlerError(msg string, pos token.Position) *scenario.Error {
	return scenario.NewConversionError(msg, map[string]any{
		"line":   pos.Line,
		"column": pos.Column,
	})
}
