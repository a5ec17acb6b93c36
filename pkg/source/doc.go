// Package source provides validator.Source implementations.
//
// Map is an in-memory source that the other constructors fill:
//
//	src := source.NewMap().
//	    SetText("email", "jane@example.com").
//	    Set("age", validator.Number(42), validator.KindNumber).
//	    SetElements("skills", validator.KindCheckbox,
//	        validator.String("go"), validator.String("sql"))
//
// FromValues converts url.Values, FromRequest parses urlencoded and
// multipart request bodies (uploaded files become validator.File values that
// can be reopened by the dimensions rule), and FromJSON reads a JSON object
// with valyala/fastjson. Keys ending in "[]" and JSON arrays become repeated
// elements for "name[]" rule declarations.
package source
