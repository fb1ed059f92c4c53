package config

import "fmt"

// FormatRuleID renders a rule identifier for output. A rule without a name is
// always shown by ID and one without an ID (synthetic diagnostics) by name;
// an unrecognised format shows the name.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	switch {
	case ruleID == "":
		return ruleName
	case ruleName == "", format == RuleFormatID:
		return ruleID
	case format == RuleFormatCombined:
		return ruleID + "/" + ruleName
	default:
		return ruleName
	}
}

// ParseRuleFormat validates a rule identifier format.
func ParseRuleFormat(value string) (RuleFormat, error) {
	switch format := RuleFormat(value); format {
	case RuleFormatName, RuleFormatID, RuleFormatCombined:
		return format, nil
	default:
		return "", fmt.Errorf("unknown rule format %q; valid formats: name, id, combined", value)
	}
}
