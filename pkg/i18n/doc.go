// Package i18n provides localized validation message catalogs.
//
// Translations are nested key trees per language, loaded from YAML, JSON or
// TOML files through an Adapter. Validation templates live under the
// "validation" key and use the same :placeholder syntax as the built-in
// English messages:
//
//	de:
//	  validation:
//	    required: "Das Feld :label ist erforderlich."
//
// A Translator implements validator.Catalog:
//
//	tr, err := i18n.NewTranslator(ctx, i18n.Combine(i18n.Builtin(), i18n.NewDirectoryAdapter("locales")))
//	if err != nil {
//		return err
//	}
//	res := validator.Validate(ctx, src, rules,
//		validator.WithCatalog(tr),
//		validator.WithLanguage(tr.Negotiate(r.Header.Get("Accept-Language"))),
//	)
//
// Lookups fall back from the requested language to its base language and then
// to the default language. When none has the key, the validator uses its own
// English table.
//
// T offers general purpose lookups with %{name} substitution:
//
//	tr.T("de", "greeting", "name", "Jana")
package i18n
