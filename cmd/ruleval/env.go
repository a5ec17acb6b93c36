package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dmitrymomot/ruleval/pkg/config"
	"github.com/dmitrymomot/ruleval/pkg/i18n"
	"github.com/dmitrymomot/ruleval/pkg/logger"
	"github.com/dmitrymomot/ruleval/pkg/ruleset"
	"github.com/dmitrymomot/ruleval/pkg/validator"
)

var (
	errNoRules      = errors.New("no rule set given: use -rules or RULEVAL_RULES")
	errEmptyRuleDir = errors.New("no rule set files found")
	errUnknownSet   = errors.New("unknown rule set")
)

// environment is what every command shares: configuration, logger, registry
// and message catalog.
type environment struct {
	cfg      config.Config
	log      *slog.Logger
	registry *validator.Registry
	stderr   io.Writer
}

func loadEnv(stderr io.Writer) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return &environment{
		cfg:      cfg,
		log:      cfg.Logger(stderr, logger.WithContextExtractors(requestIDExtractor)),
		registry: cfg.Registry(),
		stderr:   stderr,
	}, nil
}

// translator loads the built-in catalogs plus an optional directory whose
// files override them.
func (e *environment) translator(ctx context.Context, dir string) (*i18n.Translator, error) {
	adapters := []i18n.Adapter{i18n.Builtin()}
	if dir != "" {
		adapters = append(adapters, i18n.NewDirectoryAdapter(dir))
	}
	return i18n.NewTranslator(ctx, i18n.Combine(adapters...),
		i18n.WithDefaultLanguage(e.cfg.Language),
		i18n.WithLogger(e.log.With(logger.Component("i18n"))),
	)
}

// options returns validator options for a run: config defaults, then the
// rule set's own, then a negotiated language if any.
func (e *environment) options(set *ruleset.Set, tr *i18n.Translator, lang string) []validator.Option {
	opts := e.cfg.Options(e.log)
	opts = append(opts, validator.WithRegistry(e.registry))
	if tr != nil {
		opts = append(opts, validator.WithCatalog(tr))
	}
	if set != nil {
		opts = append(opts, set.Options()...)
	}
	if lang != "" {
		opts = append(opts, validator.WithLanguage(lang))
	}
	return opts
}

// loadSets reads one rule set file, or every rule set file in a directory.
// Sets are keyed by file name without extension.
func loadSets(ctx context.Context, path string) (map[string]*ruleset.Set, error) {
	if path == "" {
		return nil, errNoRules
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var files []string
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if _, ok := ruleset.FormatFromPath(entry.Name()); ok && !entry.IsDir() {
				files = append(files, filepath.Join(path, entry.Name()))
			}
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("%w: %s", errEmptyRuleDir, path)
		}
	} else {
		files = []string{path}
	}

	sets := make(map[string]*ruleset.Set, len(files))
	for _, file := range files {
		set, err := ruleset.Load(ctx, file)
		if err != nil {
			return nil, err
		}
		sets[setName(file)] = set
	}
	return sets, nil
}

func setName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func sortedNames(sets map[string]*ruleset.Set) []string {
	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// pick returns the named set, or the only set when name is empty.
func pick(sets map[string]*ruleset.Set, name string) (*ruleset.Set, error) {
	if name == "" && len(sets) == 1 {
		for _, set := range sets {
			return set, nil
		}
	}
	set, ok := sets[name]
	if !ok {
		return nil, fmt.Errorf("%w %q: have %s", errUnknownSet, name, strings.Join(sortedNames(sets), ", "))
	}
	return set, nil
}
