// Package constraintlang reads the small line-oriented constraint notation
// described in SPEC_FULL.md §5. It is not a surface grammar for a generics
// language; it exists so the CLI has something to load from a file, the way
// the teacher's cmd package loads an .ile source file and hands it to the
// frontend.
package constraintlang

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/traitkb/kb/rewrite"
	"github.com/traitkb/kb/util"
)

// Document is the parsed result of a constraint-notation source: the
// constraints in file order, plus the trait-refinement map built from its
// "trait" declarations.
type Document struct {
	Constraints []rewrite.Constraint
	Properties  *rewrite.TypeProperties
}

// ParseError reports the source line a malformed declaration was found on.
type ParseError struct {
	Line int
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("constraintlang: line %d: %s: %q", e.Line, e.Msg, e.Text)
}

func newParseError(line int, text, msg string) error {
	return errors.WithStack(&ParseError{Line: line, Text: text, Msg: msg})
}

// Parse reads one declaration per line from r. Blank lines and lines whose
// first non-space character is '#' are ignored.
func Parse(r io.Reader) (*Document, error) {
	doc := &Document{Properties: rewrite.NewTypeProperties()}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := stripComment(scanner.Text())
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		keyword := fields[0]
		rest := strings.TrimSpace(strings.TrimPrefix(line, keyword))

		switch keyword {
		case "bound":
			lhsText, rhsText, err := splitOnce(rest, ":", lineNo, line)
			if err != nil {
				return nil, err
			}
			lhs, err := parseType(lhsText, false)
			if err != nil {
				return nil, newParseError(lineNo, line, err.Error())
			}
			rhs, err := parseType(rhsText, true)
			if err != nil {
				return nil, newParseError(lineNo, line, err.Error())
			}
			doc.Constraints = append(doc.Constraints, rewrite.BoundConstraint(lhs, rhs))

		case "eq":
			lhsText, rhsText, err := splitOnce(rest, "=", lineNo, line)
			if err != nil {
				return nil, err
			}
			lhs, err := parseType(lhsText, false)
			if err != nil {
				return nil, newParseError(lineNo, line, err.Error())
			}
			rhs, err := parseType(rhsText, false)
			if err != nil {
				return nil, newParseError(lineNo, line, err.Error())
			}
			doc.Constraints = append(doc.Constraints, rewrite.EqualityConstraint(lhs, rhs))

		case "trait":
			nameText, basesText, err := splitOnce(rest, ":", lineNo, line)
			if err != nil {
				return nil, err
			}
			name := strings.TrimSpace(nameText)
			for _, base := range strings.Split(basesText, ",") {
				base = strings.TrimSpace(base)
				if base == "" {
					continue
				}
				doc.Properties.AddBase(name, base)
			}

		default:
			return nil, newParseError(lineNo, line, "unrecognized keyword "+keyword)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "constraintlang: reading source")
	}
	return doc, nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

// splitOnce splits s on the first occurrence of sep, a single-rune
// separator ("bound" uses ":", "eq" uses "="). util.StringTakeUntil can't
// itself distinguish "sep not found" from "sep found with an empty tail",
// so presence is checked separately before taking the split.
func splitOnce(s, sep string, lineNo int, fullLine string) (before, after string, err error) {
	sepRune := []rune(sep)[0]
	if !strings.ContainsRune(s, sepRune) {
		return "", "", newParseError(lineNo, fullLine, "expected separator "+sep)
	}
	head, tail := util.StringTakeUntil(s, sepRune)
	return strings.TrimSpace(head), strings.TrimSpace(tail), nil
}
