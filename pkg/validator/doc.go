// Package validator is a declarative, rule-string validation engine.
//
// Fields are declared with a pipe-delimited rule string, the same mini
// language used by Laravel-style validators:
//
//	rules := validator.Rules{}.
//	    Add("email", "required|email").
//	    Add("age", "required|integer|between:18,65").
//	    Add("skills[]", "required|min:2")
//
//	res := validator.Validate(ctx, src, rules)
//	if !res.Valid() {
//	    errs := validator.GetErrors(res.Errors(), true) // field -> first message
//	}
//
// # Values
//
// A Source reports each field as a Field: a tagged Value (absent, scalar,
// multi or files) plus the declared Kind of the input. The engine never
// inspects Go types at run time; shape is decided once by the source. See
// package source for map, HTTP form and JSON implementations.
//
// # Rules
//
// Rule strings are parsed into RuleChain values, evaluated left to right and
// short-circuited on the first failure, so every field records at most one
// message per run. Empty values pass every rule except required,
// required_if, required_with, required_unless and accepted. Unknown rule
// names pass. A validator that panics produces a failing outcome for its field
// without affecting the rest of the run.
//
// Rules come from a Registry. NewRegistry returns one holding the full
// catalogue; custom rules are added with Register or RegisterImplicit:
//
//	reg := validator.NewRegistry()
//	reg.RegisterFunc("even", func(c *validator.Context, _ []string) validator.Outcome {
//	    n, _ := c.Value.Number()
//	    if int(n)%2 == 0 {
//	        return validator.Pass()
//	    }
//	    return validator.FailWith("even", "The :label must be even.")
//	})
//
// # Messages
//
// A failing rule's message is the first of: the caller's override in
// Messages, the template returned by the rule, the Catalog entry for the run
// language, the built-in English template. Templates use :label, :field,
// :value, :min, :max, :param[n] and rule specific placeholders.
//
// # Pending rules
//
// The dimensions rule decodes images in the background. A run containing it
// reports Pending() until Result.Wait has collected every outcome; Valid is
// false in the meantime.
//
// # Concurrency
//
// Registries and their caches are safe for concurrent use. Each call to
// Validate owns its ErrorStore, so runs never share error state.
package validator
