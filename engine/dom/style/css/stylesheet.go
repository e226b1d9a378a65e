package css

// StyleSheet is an interface to abstract away a stylesheet implementation.
// In order to de-couple implementations of CSS stylesheets from the
// cascade, clients provide a concrete implementation of this interface
// (e.g., see package douceuradapter).
//
// See interface Rule.
type StyleSheet interface {
	AppendRules(StyleSheet) // append rules from another stylesheet
	Empty() bool            // does this stylesheet contain any rules?
	Rules() []Rule          // all the rules of a stylesheet, in source order
}

// Rule is the type stylesheets consist of. Only style rules are of interest
// for the cascade; at-rules are not represented.
//
// See interface StyleSheet.
type Rule interface {
	Selectors() []string         // the individual selectors of the prelude
	Declarations() []Declaration // the declaration block in source order
}
