package hcl

import (
	"context"
	"fmt"
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/ocastrof/descuentos/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Converter evaluates HCL expressions and binds the resulting cty values to
// Go values.
type Converter struct{}

// NewConverter creates a converter. Settings expressions are evaluated
// without variables or functions, so only literals and operators on
// literals are accepted.
func NewConverter() *Converter {
	return &Converter{}
}

// Evaluate returns the value of expr. A nil expression evaluates to null.
func (c *Converter) Evaluate(expr hcl.Expression) (cty.Value, error) {
	if expr == nil {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	return val, nil
}

// Decode converts val to the cty type implied by goVal and stores it there.
// goVal must be a non-nil pointer.
func (c *Converter) Decode(ctx context.Context, val cty.Value, goVal any) error {
	logger := ctxlog.FromContext(ctx)

	valPtr := reflect.ValueOf(goVal)
	if valPtr.Kind() != reflect.Ptr || valPtr.IsNil() {
		return fmt.Errorf("target for decoding must be a non-nil pointer, got %T", goVal)
	}

	impliedType, err := gocty.ImpliedType(valPtr.Elem().Interface())
	if err != nil {
		return fmt.Errorf("unsupported target type %s: %w", valPtr.Elem().Type(), err)
	}

	converted, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}
	if !val.Type().Equals(converted.Type()) {
		logger.Debug("Implicitly converted value type.",
			"from", val.Type().FriendlyName(),
			"to", converted.Type().FriendlyName(),
		)
	}

	return gocty.FromCtyValue(converted, goVal)
}

// decodeOptional evaluates expr and decodes it into a new T. A null value
// means the attribute was not set and yields a nil pointer.
func decodeOptional[T any](ctx context.Context, c *Converter, expr hcl.Expression, name string) (*T, error) {
	val, err := c.Evaluate(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate %q: %w", name, err)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("attribute %q must be a known value", name)
	}

	out := new(T)
	if err := c.Decode(ctx, val, out); err != nil {
		return nil, fmt.Errorf("invalid value for %q: %w", name, err)
	}
	return out, nil
}
