package engine

import (
	"database/sql/driver"
	"fmt"
	"sync"

	"github.com/viant/lexvec/metric"
	"github.com/viant/lexvec/store"
	sqlite "modernc.org/sqlite"
)

var registerOnce sync.Once

// RegisterDistanceFunctions registers the distance scalar functions with the
// driver so they are available on connections opened after this call:
//
//	vec_distance(metric, a, b)  distance under any supported metric name
//	vec_cosine(a, b)            cosine distance
//	vec_l2(a, b)                euclidean distance
//
// Existing open connections will not see the functions. Calling it more than
// once is a no-op.
func RegisterDistanceFunctions() error {
	var err error
	registerOnce.Do(func() {
		if err = sqlite.RegisterDeterministicScalarFunction("vec_distance", 3, vecDistanceImpl); err != nil {
			return
		}
		if err = sqlite.RegisterDeterministicScalarFunction("vec_cosine", 2, fixedMetric(metric.Cosine)); err != nil {
			return
		}
		err = sqlite.RegisterDeterministicScalarFunction("vec_l2", 2, fixedMetric(metric.Euclidean))
	})
	return err
}

func asVector(arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return store.DecodeVector(v)
	default:
		return nil, fmt.Errorf("engine: unsupported argument type %T for vector; want BLOB", arg)
	}
}

func vecDistanceImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("vec_distance: expected 3 arguments, got %d", len(args))
	}
	name, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("vec_distance: metric must be TEXT, got %T", args[0])
	}
	m, err := metric.Parse(name)
	if err != nil {
		return nil, err
	}
	return distance(m, args[1], args[2])
}

func fixedMetric(m metric.Name) func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error) {
	return func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("vec_%s: expected 2 arguments, got %d", m, len(args))
		}
		return distance(m, args[0], args[1])
	}
}

func distance(m metric.Name, x, y driver.Value) (driver.Value, error) {
	a, err := asVector(x)
	if err != nil {
		return nil, err
	}
	b, err := asVector(y)
	if err != nil {
		return nil, err
	}
	if a == nil || b == nil {
		return nil, nil
	}
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d", metric.ErrDimensionMismatch, len(a), len(b))
	}
	return m.Function()(a, b), nil
}
