// Package expr evaluates CEL expressions against loaded input, letting the
// CLI reshape a value before it is rendered. The loaded data is bound to the
// variable "_", so "_.items.filter(x, x.count > 3)" selects a subset.
package expr

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"
)

// Evaluator compiles and evaluates CEL expressions.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates an evaluator with the standard extension libraries
// enabled.
func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("_", cel.DynType),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// Evaluate compiles expr and runs it with data bound to "_", converting the
// result back to native Go types.
func (e *Evaluator) Evaluate(expr string, data interface{}) (interface{}, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	result, _, err := prg.Eval(map[string]interface{}{"_": data})
	if err != nil {
		return nil, fmt.Errorf("eval error: %w", err)
	}
	converted := ToGo(result)
	if refVal, ok := converted.(ref.Val); ok {
		if valFunc, ok := refVal.(interface{ Value() interface{} }); ok {
			converted = valFunc.Value()
		}
	}
	return converted, nil
}

// ToGo converts CEL values to Go native types recursively, covering both
// primitives and collection types.
func ToGo(val ref.Val) interface{} {
	if val == nil {
		return nil
	}

	switch v := val.(type) {
	case types.Bool:
		return bool(v)
	case types.Int:
		return int64(v)
	case types.Uint:
		return uint64(v)
	case types.Double:
		return float64(v)
	case types.String:
		return string(v)
	case types.Bytes:
		return []byte(v)
	case types.Null:
		return nil
	}

	valuer, ok := val.(interface{ Value() interface{} })
	if !ok {
		return val
	}
	inner := valuer.Value()

	switch t := inner.(type) {
	case []ref.Val:
		out := make([]interface{}, len(t))
		for i, elem := range t {
			out[i] = ToGo(elem)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, elem := range t {
			out[i] = convertAny(elem)
		}
		return out
	case map[string]interface{}:
		return convertMapValues(t)
	case map[ref.Val]ref.Val:
		out := make(map[string]interface{}, len(t))
		for k, v := range t {
			out[fmt.Sprintf("%v", convertAny(k))] = ToGo(v)
		}
		return out
	}
	return inner
}

func convertAny(v interface{}) interface{} {
	if refVal, ok := v.(ref.Val); ok {
		return ToGo(refVal)
	}
	switch t := v.(type) {
	case map[string]interface{}:
		return convertMapValues(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, elem := range t {
			out[i] = convertAny(elem)
		}
		return out
	}
	return v
}

func convertMapValues(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = convertAny(v)
	}
	return out
}
