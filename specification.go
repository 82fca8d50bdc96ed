package combspec

import "encoding/json"

// Specification is a rooted, grounded set of rules: every parent appears
// exactly once and every leaf is a zero-children (atom) rule (§6).
type Specification[C any, S Strategy[C]] struct {
	Rules []Rule[C, S]
	Root  C
}

// classObject renders c as the class-object schema §6 describes: a
// ClassDescriber's own mapping if it implements one, else whatever
// encoding/json's default struct marshaling produces round-tripped
// through a generic map so both paths serialize identically.
func classObject(c any) (map[string]any, error) {
	if cd, ok := c.(ClassDescriber); ok {
		return cd.DescribeClass(), nil
	}
	return toMap(c)
}

// strategyObject renders s as the strategy-descriptor schema §6
// describes: a StrategyDescriber's own mapping, tagged with class_module
// and strategy_class if it omitted them, else a best-effort fallback
// built from the strategy's own type name.
func strategyObject(s any) (map[string]any, error) {
	if sd, ok := s.(StrategyDescriber); ok {
		m := sd.DescribeStrategy()
		if _, ok := m["strategy_class"]; !ok {
			m["strategy_class"] = typeName(s)
		}
		if _, ok := m["class_module"]; !ok {
			m["class_module"] = packagePath(s)
		}
		return m, nil
	}
	m, err := toMap(s)
	if err != nil {
		return nil, err
	}
	m["strategy_class"] = typeName(s)
	m["class_module"] = packagePath(s)
	return m, nil
}

func toMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	m := make(map[string]any)
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// MarshalJSON renders the specification as the stream-of-objects schema
// §6 specifies: the root class object, followed by one (parent class
// object, strategy descriptor object, child class objects) group per
// rule — all folded into a single JSON object here so that a
// Specification value itself marshals predictably; cmd/combspec streams
// the same pieces to stdout one object at a time instead of calling this.
func (s *Specification[C, S]) MarshalJSON() ([]byte, error) {
	root, err := classObject(s.Root)
	if err != nil {
		return nil, err
	}

	type wireRule struct {
		Parent   map[string]any   `json:"parent"`
		Strategy map[string]any   `json:"strategy"`
		Children []map[string]any `json:"children"`
	}

	wireRules := make([]wireRule, 0, len(s.Rules))
	for _, r := range s.Rules {
		parent, err := classObject(r.Parent)
		if err != nil {
			return nil, err
		}
		strategy, err := strategyObject(r.Strategy)
		if err != nil {
			return nil, err
		}
		children := make([]map[string]any, 0, len(r.Children))
		for _, c := range r.Children {
			co, err := classObject(c)
			if err != nil {
				return nil, err
			}
			children = append(children, co)
		}
		wireRules = append(wireRules, wireRule{Parent: parent, Strategy: strategy, Children: children})
	}

	return json.Marshal(struct {
		Root  map[string]any `json:"root"`
		Rules []wireRule     `json:"rules"`
	}{Root: root, Rules: wireRules})
}
