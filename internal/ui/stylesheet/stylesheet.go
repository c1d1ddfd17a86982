// Package stylesheet parses the small CSS subset the UI understands: rules with
// .class or #id selectors (comma lists allowed) and "key: value" declarations.
package stylesheet

import (
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Rule is a single CSS rule: one selector and a set of property values (raw strings).
type Rule struct {
	Selector string            // e.g. ".panel" or "#menu"
	Props    map[string]string // e.g. "background" -> "#333"
}

// Stylesheet is a list of rules (order matters: later overrides earlier).
type Stylesheet struct {
	Rules []Rule
}

// Parse parses content. Rules with unsupported selectors (elements, combinators,
// pseudo-classes) and everything inside at-rules are skipped. Malformed
// declarations are dropped and the first syntax error is returned together with
// every rule that did parse.
func Parse(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	p := css.NewParser(parse.NewInputString(content), false)

	var firstErr error
	var open []Rule
	atDepth := 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			err := p.Err()
			if err == io.EOF {
				return sheet, firstErr
			}
			if firstErr == nil {
				firstErr = err
			}
		case css.BeginAtRuleGrammar:
			atDepth++
		case css.EndAtRuleGrammar:
			atDepth--
		case css.BeginRulesetGrammar:
			open = open[:0]
			if atDepth > 0 {
				continue
			}
			for _, sel := range selectors(p.Values()) {
				open = append(open, Rule{Selector: sel, Props: make(map[string]string)})
			}
		case css.DeclarationGrammar:
			key := strings.TrimSpace(string(data))
			value := joinValues(p.Values())
			for _, r := range open {
				r.Props[key] = value
			}
		case css.EndRulesetGrammar:
			sheet.Rules = append(sheet.Rules, open...)
			open = open[:0]
		}
	}
}

// Match returns merged properties for an element with the given class and id
// (class and id rules matched; last wins).
func (s *Stylesheet) Match(class, id string) map[string]string {
	merged := make(map[string]string)
	if s == nil {
		return merged
	}
	for _, rule := range s.Rules {
		sel := rule.Selector
		matches := (sel[0] == '.' && class != "" && sel[1:] == class) ||
			(sel[0] == '#' && id != "" && sel[1:] == id)
		if matches {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

// selectors splits a selector list and keeps the simple .class and #id entries.
func selectors(tokens []css.Token) []string {
	var out []string
	for _, part := range strings.Split(joinValues(tokens), ",") {
		sel := strings.TrimSpace(part)
		if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') {
			continue
		}
		if strings.ContainsAny(sel[1:], " .#:[>+~*") {
			continue
		}
		out = append(out, sel)
	}
	return out
}

func joinValues(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return strings.TrimSpace(b.String())
}
