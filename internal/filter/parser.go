package filter

import (
	"errors"
	"slices"
	"strings"
)

var (
	errUnterminatedQuote = errors.New("unterminated quoted string")
	errUnbalanced        = errors.New("unbalanced parentheses")
	errMissingOperand    = errors.New("missing operand")
	errDanglingResult    = errors.New("expression does not evaluate to a single boolean")
)

// ExpressionParser converts an infix expression to reverse polish
// notation and evaluates it.
//
// The parser handles the boolean operators not, and, or itself. The
// binary operators given to NewExpressionParser are returned by Evaluate
// together with their operands, the caller computes them and pushes the
// result with PushBool. Operators listed first bind stronger.
type ExpressionParser struct {
	operators []string
	rpn       []string

	pos  int
	vars []string
	err  error
}

// NewExpressionParser returns a parser for the given operators.
func NewExpressionParser(operators ...string) *ExpressionParser {
	ops := append(slices.Clone(operators), "not", "and", "or")
	return &ExpressionParser{operators: ops}
}

func (p *ExpressionParser) isOperator(token string) bool {
	return slices.Contains(p.operators, token)
}

// lessPriority reports whether op1 does not bind stronger than op2.
func (p *ExpressionParser) lessPriority(op1, op2 string) bool {
	if op1 == "(" {
		return true
	}
	i1 := slices.Index(p.operators, op1)
	i2 := slices.Index(p.operators, op2)
	return i1 >= 0 && i2 >= 0 && i1 >= i2
}

// TokenizeRPN parses expr. Words are separated by spaces, quoted strings
// may contain spaces and \" for a quote.
func (p *ExpressionParser) TokenizeRPN(expr string) error {
	p.rpn = nil
	p.ClearEvaluation()

	var ops []string
	depth := 0
	n := len(expr)
	for begin := 0; begin < n; {
		for begin < n && expr[begin] == ' ' {
			begin++
		}
		if begin >= n {
			break
		}

		switch expr[begin] {
		case '(':
			ops = append(ops, "(")
			depth++
			begin++
			continue
		case ')':
			if depth == 0 {
				p.err = errUnbalanced
				return p.err
			}
			depth--
			for len(ops) > 0 {
				last := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if last == "(" {
					break
				}
				p.rpn = append(p.rpn, last)
			}
			begin++
			continue
		}

		var token string
		if expr[begin] == '"' {
			end := begin + 1
			for end < n && !(expr[end] == '"' && expr[end-1] != '\\') {
				end++
			}
			if end >= n {
				p.err = errUnterminatedQuote
				return p.err
			}
			token = strings.ReplaceAll(expr[begin+1:end], `\"`, `"`)
			begin = end + 1
		} else {
			end := begin
			for end < n && expr[end] != ' ' && expr[end] != ')' {
				end++
			}
			token = expr[begin:end]
			begin = end
		}
		if p.isOperator(token) {
			for len(ops) > 0 && p.lessPriority(token, ops[len(ops)-1]) {
				p.rpn = append(p.rpn, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, token)
		} else {
			p.rpn = append(p.rpn, token)
		}
	}
	if depth != 0 {
		p.err = errUnbalanced
		return p.err
	}
	for i := len(ops) - 1; i >= 0; i-- {
		p.rpn = append(p.rpn, ops[i])
	}
	return nil
}

// RPN returns the tokens in reverse polish notation.
func (p *ExpressionParser) RPN() []string {
	return slices.Clone(p.rpn)
}

// ClearEvaluation restarts the evaluation.
func (p *ExpressionParser) ClearEvaluation() {
	p.pos = 0
	p.vars = p.vars[:0]
	p.err = nil
}

// Err returns the error which stopped tokenizing or evaluation.
func (p *ExpressionParser) Err() error { return p.err }

// HasError reports whether an error occurred.
func (p *ExpressionParser) HasError() bool { return p.err != nil }

// Evaluate runs until the next caller-handled operator and returns it
// with its operands. var1 is the right hand operand. ok is false at the
// end of the expression or on an error.
func (p *ExpressionParser) Evaluate() (op, var1, var2 string, ok bool) {
	if p.err != nil {
		return "", "", "", false
	}
	for p.pos < len(p.rpn) {
		token := p.rpn[p.pos]
		p.pos++
		switch token {
		case "and", "or":
			b1, ok1 := p.PopBool()
			b2, ok2 := p.PopBool()
			if !ok1 || !ok2 {
				p.err = errMissingOperand
				return "", "", "", false
			}
			if token == "and" {
				p.PushBool(b1 && b2)
			} else {
				p.PushBool(b1 || b2)
			}
		case "not":
			b, ok := p.PopBool()
			if !ok {
				p.err = errMissingOperand
				return "", "", "", false
			}
			p.PushBool(!b)
		default:
			if !p.isOperator(token) {
				p.vars = append(p.vars, token)
				continue
			}
			if len(p.vars) < 2 {
				p.err = errMissingOperand
				return "", "", "", false
			}
			var1 = p.vars[len(p.vars)-1]
			var2 = p.vars[len(p.vars)-2]
			p.vars = p.vars[:len(p.vars)-2]
			return token, var1, var2, true
		}
	}
	return "", "", "", false
}

// Result pops the final value. It fails unless exactly one boolean is
// left.
func (p *ExpressionParser) Result() (bool, error) {
	if p.err != nil {
		return false, p.err
	}
	b, ok := p.PopBool()
	if !ok || len(p.vars) != 0 {
		p.err = errDanglingResult
		return false, p.err
	}
	return b, nil
}

// PushBool pushes a boolean as "1" or "0".
func (p *ExpressionParser) PushBool(b bool) {
	if b {
		p.vars = append(p.vars, "1")
	} else {
		p.vars = append(p.vars, "0")
	}
}

// PopBool pops a boolean. The top value stays if it is not a boolean.
func (p *ExpressionParser) PopBool() (value, ok bool) {
	if len(p.vars) == 0 {
		return false, false
	}
	value, ok = stringToBool(p.vars[len(p.vars)-1])
	if ok {
		p.vars = p.vars[:len(p.vars)-1]
	}
	return value, ok
}

// clone returns a parser sharing the tokens with a fresh evaluation
// state.
func (p *ExpressionParser) clone() *ExpressionParser {
	return &ExpressionParser{operators: p.operators, rpn: p.rpn, err: p.err}
}

func stringToBool(s string) (value, ok bool) {
	switch s {
	case "1", "true", "on", "yes":
		return true, true
	case "0", "false", "off", "no":
		return false, true
	}
	return false, false
}
