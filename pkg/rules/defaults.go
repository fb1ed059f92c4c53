package rules

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed rules/javascript.yaml
var defaultRulesYAML []byte

//go:embed rules/transforms.yaml
var defaultTransformsYAML []byte

// Default returns the built-in rule set.
func Default() (*RuleSet, error) {
	ruleList, err := ParseRules(defaultRulesYAML)
	if err != nil {
		return nil, fmt.Errorf("built-in rules: %w", err)
	}
	transforms, err := ParseTransforms(defaultTransformsYAML)
	if err != nil {
		return nil, fmt.Errorf("built-in transforms: %w", err)
	}
	return &RuleSet{Rules: ruleList, Transforms: transforms}, nil
}

// FileLoader loads rules and transforms from the given files. An empty path
// selects the corresponding built-in definitions.
func FileLoader(rulesPath, transformsPath string) Loader {
	return func(_ context.Context) (*RuleSet, error) {
		defaults, err := Default()
		if err != nil {
			return nil, err
		}

		set := &RuleSet{Rules: defaults.Rules, Transforms: defaults.Transforms}

		if rulesPath != "" {
			if set.Rules, err = LoadRulesFile(rulesPath); err != nil {
				return nil, err
			}
		}
		if transformsPath != "" {
			if set.Transforms, err = LoadTransformsFile(transformsPath); err != nil {
				return nil, err
			}
		}

		return set, nil
	}
}
