// Package ruleset loads field rules and message overrides from YAML, JSON or
// TOML files.
//
// A rule file looks like:
//
//	language: en
//	order: [email, age]
//	rules:
//	  email: required|email
//	  age: required|integer|between:18,65
//	  "skills[]": required|min:2
//	messages:
//	  age:
//	    label: Your age
//	    rules:
//	      between: You must be between :min_value and :max_value.
//
// Fields listed in order are validated first, the remaining ones in name
// order.
package ruleset
