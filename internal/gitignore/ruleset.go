package gitignore

// RuleSet holds the compiled rules of one ignore-file snapshot, in file
// order. It has no mutation API: build it, query it, discard it. A
// RuleSet is safe for concurrent use by any number of goroutines.
type RuleSet struct {
	rules   []Rule
	negated bool
}

// NewRuleSet builds a RuleSet from rules in encounter order.
func NewRuleSet(rules []Rule) *RuleSet {
	rs := &RuleSet{rules: rules}
	for i := range rules {
		if rules[i].Negation {
			rs.negated = true
			break
		}
	}
	return rs
}

// Ignores reports whether path is ignored by this rule set.
//
// Without negation rules the answer is a plain OR over all rules. With at
// least one negation rule present, rules are walked in reverse file order
// and the first match decides: ignored for a plain rule, not ignored for
// a negation. Last matching rule wins.
func (rs *RuleSet) Ignores(path string) bool {
	if !rs.negated {
		for i := range rs.rules {
			if rs.rules[i].Matches(path) {
				return true
			}
		}
		return false
	}

	for i := len(rs.rules) - 1; i >= 0; i-- {
		if rs.rules[i].Matches(path) {
			return !rs.rules[i].Negation
		}
	}
	return false
}

// Rules returns the compiled rules in file order. The returned slice is a
// copy; the set itself stays immutable.
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Len returns the number of compiled rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}
