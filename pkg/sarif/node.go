package sarif

// node is a generic JSON object used for defensive field extraction. All
// accessors are safe on a nil node so lookups compose without intermediate
// checks.
type node map[string]any

func asNode(v any) (node, bool) {
	m, ok := v.(map[string]any)
	return node(m), ok
}

// object returns the child object at key, or nil when absent or not an
// object.
func (n node) object(key string) node {
	child, _ := asNode(n[key])
	return child
}

// list returns the array at key; ok is false when absent or not an array.
func (n node) list(key string) ([]any, bool) {
	a, ok := n[key].([]any)
	return a, ok
}

// text returns the string at key; ok is false when absent or not a string.
func (n node) text(key string) (string, bool) {
	s, ok := n[key].(string)
	return s, ok
}

// textOr returns the string at key, or fallback when absent or not a string.
func (n node) textOr(key string, fallback string) string {
	if s, ok := n.text(key); ok {
		return s
	}
	return fallback
}

// number returns the integer at key; ok is false when absent or not a JSON
// number.
func (n node) number(key string) (int, bool) {
	f, ok := n[key].(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}
