package engine

import (
	stdjson "encoding/json"
	"fmt"
	"math"
	"math/big"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Swagger 2.0 data type formats. Only the integer formats are checked; the
// rest are annotations.
var swaggerFormats = []*jsonschema.Format{
	{Name: "int32", Validate: intRange(math.MinInt32, math.MaxInt32)},
	{Name: "int64", Validate: intRange(math.MinInt64, math.MaxInt64)},
	{Name: "float", Validate: accept},
	{Name: "double", Validate: accept},
	{Name: "byte", Validate: accept},
	{Name: "binary", Validate: accept},
	{Name: "password", Validate: accept},
}

func registerFormats(c *jsonschema.Compiler) {
	for _, f := range swaggerFormats {
		c.RegisterFormat(f)
	}
}

func accept(any) error {
	return nil
}

// intRange accepts integral numbers within [lo, hi]. Non-numbers and
// fractions are left to the type keyword.
func intRange(lo, hi int64) func(any) error {
	lower, upper := big.NewInt(lo), big.NewInt(hi)
	return func(v any) error {
		n, ok := v.(stdjson.Number)
		if !ok {
			return nil
		}
		i, ok := new(big.Int).SetString(n.String(), 10)
		if !ok {
			return nil
		}
		if i.Cmp(lower) < 0 || i.Cmp(upper) > 0 {
			return fmt.Errorf("%s is out of range [%d, %d]", n, lo, hi)
		}
		return nil
	}
}
