// Package query implements the C4 query parser: a hand-written recursive-
// descent reader for the pipe-separated condition grammar (see spec §4.4),
// in the style of llmd's internal/sed.ParseExpr delimiter scanning rather
// than a parser-combinator dependency (see SPEC_FULL.md §B.1).
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/igr/internal/condition"
	"github.com/jpl-au/igr/internal/ierr"
	"github.com/jpl-au/igr/internal/value"
)

// Parse splits query on top-level "|" (pipe inside single quotes is
// literal text, not a separator) and parses each piece independently. A
// failing condition is reported in errs without aborting the rest of the
// parse, per spec error kind 1.
func Parse(query string) (conds []condition.Condition, errs []error) {
	for _, piece := range splitTopLevel(query) {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		c, err := parseCondition(piece)
		if err != nil {
			errs = append(errs, fmt.Errorf("%q: %w: %w", piece, ierr.ErrQueryParse, err))
			continue
		}
		conds = append(conds, c)
	}
	return conds, errs
}

// splitTopLevel splits on '|' outside of single-quoted spans.
func splitTopLevel(s string) []string {
	var out []string
	var cur strings.Builder
	inQuote := false
	for _, r := range s {
		switch {
		case r == '\'':
			inQuote = !inQuote
			cur.WriteRune(r)
		case r == '|' && !inQuote:
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	out = append(out, cur.String())
	return out
}

func parseCondition(s string) (condition.Condition, error) {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return condition.Condition{Kind: condition.KindExact, Arg: s[1 : len(s)-1]}, nil
	}

	open := strings.IndexByte(s, '(')
	if open < 0 {
		return condition.Condition{Kind: condition.KindExact, Arg: s}, nil
	}
	ident := s[:open]
	if !validIdent(ident) {
		return condition.Condition{Kind: condition.KindExact, Arg: s}, nil
	}
	closeIdx := strings.IndexByte(s[open:], ')')
	if closeIdx < 0 {
		return condition.Condition{}, fmt.Errorf("unterminated argument list in %q", s)
	}
	closeIdx += open
	args := s[open+1 : closeIdx]
	tail := strings.TrimSpace(s[closeIdx+1:])

	switch ident {
	case "number":
		return withCompareTail(condition.Condition{Kind: condition.KindNumber}, tail)
	case "line.length":
		return withCompareTail(condition.Condition{Kind: condition.KindLineLength}, tail)
	case "line.bytelength":
		return withCompareTail(condition.Condition{Kind: condition.KindLineByteLength}, tail)

	case "contains":
		return condition.Condition{Kind: condition.KindContains, Arg: args}, nil
	case "starts_with":
		return condition.Condition{Kind: condition.KindStartsWith, Arg: args}, nil
	case "ends_with":
		return condition.Condition{Kind: condition.KindEndsWith, Arg: args}, nil
	case "invert_match":
		return condition.Condition{Kind: condition.KindInvertMatch, Arg: args}, nil
	case "invert_match_regex":
		return condition.Condition{Kind: condition.KindInvertMatchRegex, Arg: args}, nil
	case "ignore_case":
		return condition.Condition{Kind: condition.KindIgnoreCase, Arg: args}, nil
	case "whole_word":
		return condition.Condition{Kind: condition.KindWholeWord, Arg: args}, nil
	case "regex":
		return condition.Condition{Kind: condition.KindRegex, Arg: args}, nil

	case "line.contains":
		return condition.Condition{Kind: condition.KindLineContains, Arg: args}, nil
	case "line.regex":
		return condition.Condition{Kind: condition.KindLineRegex, Arg: args}, nil
	case "line.starts_with":
		return condition.Condition{Kind: condition.KindLineStartsWith, Arg: args}, nil
	case "line.ends_with":
		return condition.Condition{Kind: condition.KindLineEndsWith, Arg: args}, nil
	case "line.invert_match":
		return condition.Condition{Kind: condition.KindLineInvertMatch, Arg: args}, nil
	case "line.invert_match_regex":
		return condition.Condition{Kind: condition.KindLineInvertMatchRegex, Arg: args}, nil

	case "replace":
		from, to := splitTwo(args)
		return condition.Condition{Kind: condition.KindReplace, From: from, To: to}, nil
	case "insert":
		idx, val, err := splitIndexValue(args)
		if err != nil {
			return condition.Condition{}, err
		}
		return condition.Condition{Kind: condition.KindInsert, Index: idx, Value: val}, nil
	case "delete":
		start, end, err := splitTwoInts(args)
		if err != nil {
			return condition.Condition{}, err
		}
		return condition.Condition{Kind: condition.KindDelete, Start: start, End: end}, nil
	case "update":
		return condition.Condition{Kind: condition.KindUpdate, Value: args}, nil

	case "trim_end", "te":
		return condition.Condition{Kind: condition.KindTrimEnd}, nil
	case "trim_start", "ts":
		return condition.Condition{Kind: condition.KindTrimStart}, nil
	case "trim":
		return condition.Condition{Kind: condition.KindTrim}, nil
	case "camel_case":
		return condition.Condition{Kind: condition.KindCamelCase}, nil
	case "kebab_case":
		return condition.Condition{Kind: condition.KindKebabCase}, nil
	case "snake_case":
		return condition.Condition{Kind: condition.KindSnakeCase}, nil
	case "lower_case":
		return condition.Condition{Kind: condition.KindLowerCase}, nil
	case "upper_case":
		return condition.Condition{Kind: condition.KindUpperCase}, nil
	case "upper_camel_case":
		return condition.Condition{Kind: condition.KindUpperCamelCase}, nil
	case "upper_kebab_case":
		return condition.Condition{Kind: condition.KindUpperKebabCase}, nil
	case "upper_snake_case":
		return condition.Condition{Kind: condition.KindUpperSnakeCase}, nil
	case "constant":
		return condition.Condition{Kind: condition.KindConstant}, nil
	}

	// Unrecognized identifier: the whole original text becomes a literal
	// Exact match, per the grammar's bare-condition fallback.
	return condition.Condition{Kind: condition.KindExact, Arg: s}, nil
}

func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '.' || r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

// splitTwo comma-splits a (from, to) argument pair. A payload that does
// not split into exactly two parts falls back to (whole payload, "").
func splitTwo(args string) (string, string) {
	parts := strings.SplitN(args, ",", 2)
	if len(parts) != 2 {
		return strings.TrimSpace(args), ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

func splitIndexValue(args string) (int, string, error) {
	parts := strings.SplitN(args, ",", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("insert() requires (index, value), got %q", args)
	}
	idx, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, "", fmt.Errorf("insert() index %q: %w", parts[0], err)
	}
	return idx, strings.TrimSpace(parts[1]), nil
}

func splitTwoInts(args string) (int, int, error) {
	parts := strings.SplitN(args, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("delete() requires (start, end), got %q", args)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("delete() start %q: %w", parts[0], err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("delete() end %q: %w", parts[1], err)
	}
	return start, end, nil
}

var tailOps = []struct {
	sym string
	op  value.OpKind
}{
	{"==", value.OpEq},
	{"!=", value.OpNe},
	{">=", value.OpGte},
	{"<=", value.OpLte},
	{">", value.OpGt},
	{"<", value.OpLt},
}

// withCompareTail parses an optional comparison tail ("> 10", "== env.N",
// ...) onto a zero-arg Condition. An empty tail is a valid structural
// placeholder (spec §4.4): the Condition is returned with HasOp=false.
func withCompareTail(c condition.Condition, tail string) (condition.Condition, error) {
	if tail == "" {
		return c, nil
	}
	for _, o := range tailOps {
		if strings.HasPrefix(tail, o.sym) {
			valStr := strings.TrimSpace(tail[len(o.sym):])
			v, err := parseValue(valStr)
			if err != nil {
				return condition.Condition{}, err
			}
			c.HasOp = true
			c.Op = value.Op{Kind: o.op, Value: v}
			return c, nil
		}
	}
	return condition.Condition{}, fmt.Errorf("unrecognized comparison operator in %q", tail)
}

func parseValue(s string) (value.Value, error) {
	if s == "" {
		return value.Value{}, fmt.Errorf("empty comparison value")
	}
	if strings.HasPrefix(s, "env.") {
		return value.Env(strings.TrimPrefix(s, "env.")), nil
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return value.Number(n), nil
	}
	return value.String(s), nil
}
