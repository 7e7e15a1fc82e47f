// Package policy evaluates review rules over a finished conversion's mapping
// decisions and reports findings that deserve human attention: silently
// dropped flags with no documented reason, unrecognized flags passed through,
// approximate command rewrites, rules with no recipe.
//
// Findings are diagnostics only. They go to the user alongside the converted
// output and never alter it.
package policy

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"

	"github.com/amigazen/gen/internal/mapping"
)

//go:embed review.rego
var reviewModule string

// Input is the conversion report handed to the rules.
type Input struct {
	Decisions  []mapping.Decision `json:"decisions"`
	EmptyRules []string           `json:"empty_rules"`
}

// Finding is one review note produced by the rules.
type Finding struct {
	Check    string `json:"check"`
	Severity string `json:"severity"`
	Token    string `json:"token"`
	Message  string `json:"message"`
}

// Summary aggregates findings by severity.
type Summary struct {
	Total    int `json:"total"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
}

// Result holds one evaluation's findings.
type Result struct {
	Findings []Finding
	Summary  Summary
}

// Engine evaluates the embedded review rules.
type Engine struct {
	findings rego.PreparedEvalQuery
	summary  rego.PreparedEvalQuery
}

// New prepares the review queries from the embedded module.
func New() (*Engine, error) {
	ctx := context.Background()

	findings, err := rego.New(
		rego.Module("review.rego", reviewModule),
		rego.Query("data.genmaki.review.all_findings"),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("preparing findings query: %w", err)
	}

	summary, err := rego.New(
		rego.Module("review.rego", reviewModule),
		rego.Query("data.genmaki.review.summary"),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("preparing summary query: %w", err)
	}

	return &Engine{findings: findings, summary: summary}, nil
}

// Evaluate runs the rules against one conversion report.
func (e *Engine) Evaluate(ctx context.Context, in Input) (*Result, error) {
	inputMap, err := toMap(in)
	if err != nil {
		return nil, fmt.Errorf("converting input: %w", err)
	}

	result := &Result{}

	rs, err := e.findings.Eval(ctx, rego.EvalInput(inputMap))
	if err != nil {
		return nil, fmt.Errorf("evaluating findings: %w", err)
	}
	if len(rs) > 0 && len(rs[0].Expressions) > 0 {
		if err := reencode(rs[0].Expressions[0].Value, &result.Findings); err != nil {
			return nil, fmt.Errorf("decoding findings: %w", err)
		}
	}

	rs, err = e.summary.Eval(ctx, rego.EvalInput(inputMap))
	if err != nil {
		return nil, fmt.Errorf("evaluating summary: %w", err)
	}
	if len(rs) > 0 && len(rs[0].Expressions) > 0 {
		if err := reencode(rs[0].Expressions[0].Value, &result.Summary); err != nil {
			return nil, fmt.Errorf("decoding summary: %w", err)
		}
	}

	return result, nil
}

func toMap(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// reencode converts an OPA result value into a typed Go value via JSON.
func reencode(value interface{}, out interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
