package jit

import "fmt"

// ParamUint32 reads a bound integer parameter as a uint32 (the common case
// for widths/depths). The bound value is the caller's own Go value
// (Specialize does not normalise it before the builder runs), so only an
// int64 is accepted; int, uint and *big.Int values are rejected.
func (c *Context) ParamUint32(name string) (uint32, error) {
	v, ok := c.Params[name]
	if !ok {
		return 0, fmt.Errorf("jit: no parameter named %q bound in this context", name)
	}

	i, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("jit: parameter %q is not an integer", name)
	}

	if i < 0 {
		return 0, fmt.Errorf("jit: parameter %q must be non-negative", name)
	}

	return uint32(i), nil
}

// ParamBool reads a bound boolean parameter.
func (c *Context) ParamBool(name string) (bool, error) {
	v, ok := c.Params[name]
	if !ok {
		return false, fmt.Errorf("jit: no parameter named %q bound in this context", name)
	}

	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("jit: parameter %q is not a bool", name)
	}

	return b, nil
}

// ParamString reads a bound string parameter.
func (c *Context) ParamString(name string) (string, error) {
	v, ok := c.Params[name]
	if !ok {
		return "", fmt.Errorf("jit: no parameter named %q bound in this context", name)
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("jit: parameter %q is not a string", name)
	}

	return s, nil
}
