package validation

import "github.com/goliatone/go-formkit/pkg/markup"

// HTMLAttributes maps rules onto their HTML5 constraint attributes so
// browsers can validate before submission.
func HTMLAttributes(rules []Rule) markup.Attributes {
	attrs := markup.Attributes{}
	for _, rule := range rules {
		switch rule.Kind {
		case RuleRequired:
			attrs["required"] = true
		case RuleMinLength:
			if value := rule.Param("value"); value != "" {
				attrs["minlength"] = value
			}
		case RuleMaxLength:
			if value := rule.Param("value"); value != "" {
				attrs["maxlength"] = value
			}
		case RuleMin:
			if value := rule.Param("value"); value != "" {
				attrs["min"] = value
			}
		case RuleMax:
			if value := rule.Param("value"); value != "" {
				attrs["max"] = value
			}
		case RulePattern:
			if rule.Param("not") == "true" {
				continue
			}
			if pattern := rule.Param("pattern"); pattern != "" {
				attrs["pattern"] = pattern
			}
		}
	}
	return attrs
}

// HasRule reports whether rules contains kind.
func HasRule(rules []Rule, kind string) bool {
	for _, rule := range rules {
		if rule.Kind == kind {
			return true
		}
	}
	return false
}
