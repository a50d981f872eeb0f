package evaluator

import (
	"encoding/json"
	"fmt"
)

// ValueToJSON marshals a Value to JSON bytes.
// Numbers are written as JSON integers, text as JSON strings.
func ValueToJSON(v Value) ([]byte, error) {
	switch val := v.(type) {
	case Number:
		return json.Marshal(val.Value)
	case Text:
		return json.Marshal(val.Value)
	case nil:
		return []byte("null"), nil
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}

// EnvToJSON marshals the bindings of an environment as a JSON object with
// keys in sorted order.
func EnvToJSON(env *Env) ([]byte, error) {
	if env == nil {
		return []byte("{}"), nil
	}
	buf := []byte{'{'}
	for i, name := range env.Names() {
		if i > 0 {
			buf = append(buf, ',')
		}
		keyBytes, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf = append(buf, keyBytes...)
		buf = append(buf, ':')

		valBytes, err := ValueToJSON(env.vars[name])
		if err != nil {
			return nil, err
		}
		buf = append(buf, valBytes...)
	}
	buf = append(buf, '}')
	return buf, nil
}
