package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dmitrymomot/ruleval/pkg/logger"
	"github.com/dmitrymomot/ruleval/pkg/ruleset"
	"github.com/dmitrymomot/ruleval/pkg/source"
	"github.com/dmitrymomot/ruleval/pkg/validator"
)

// report is the JSON shape of a validation outcome.
type report struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
	RunID  string            `json:"run_id,omitempty"`
}

// evaluate runs set against src and waits for pending rules.
func evaluate(ctx context.Context, set *ruleset.Set, src validator.Source, opts []validator.Option) (report, error) {
	res := validator.Validate(ctx, src, set.ValidatorRules(), opts...)
	if res.Pending() {
		if err := res.Wait(ctx); err != nil {
			return report{RunID: res.RunID()}, err
		}
	}
	rep := report{Valid: res.Valid(), RunID: res.RunID()}
	if !rep.Valid {
		rep.Errors = res.Flatten()
	}
	return rep, nil
}

func runCheck(ctx context.Context, env *environment, args []string, stdin io.Reader, stdout io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	rulesPath := fs.String("rules", env.cfg.Rules, "rule set file or directory")
	setFlag := fs.String("set", "", "rule set name when -rules is a directory")
	input := fs.String("input", "-", "JSON document to validate, - for stdin")
	lang := fs.String("lang", "", "message language (default from the rule set or RULEVAL_LANGUAGE)")
	translations := fs.String("translations", env.cfg.Translations, "directory of extra message catalogs")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	sets, err := loadSets(ctx, *rulesPath)
	if err != nil {
		env.log.ErrorContext(ctx, "loading rule sets failed", logger.Error(err))
		return exitUsage
	}
	set, err := pick(sets, *setFlag)
	if err != nil {
		env.log.ErrorContext(ctx, "selecting rule set failed", logger.Error(err))
		return exitUsage
	}

	data, err := readInput(*input, stdin)
	if err != nil {
		env.log.ErrorContext(ctx, "reading input failed", logger.Error(err))
		return exitUsage
	}
	src, err := source.FromJSON(data)
	if err != nil {
		env.log.ErrorContext(ctx, "parsing input failed", logger.Error(err))
		return exitUsage
	}

	tr, err := env.translator(ctx, *translations)
	if err != nil {
		env.log.ErrorContext(ctx, "loading translations failed", logger.Error(err))
		return exitUsage
	}

	rep, err := evaluate(ctx, set, src, env.options(set, tr, *lang))
	if err != nil {
		env.log.ErrorContext(ctx, "validation aborted", logger.Error(err))
		return exitRuntime
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return exitRuntime
	}
	if !rep.Valid {
		return exitInvalid
	}
	return exitOK
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func runLint(ctx context.Context, env *environment, args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	rulesPath := fs.String("rules", env.cfg.Rules, "rule set file or directory")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	sets, err := loadSets(ctx, *rulesPath)
	if err != nil {
		env.log.ErrorContext(ctx, "loading rule sets failed", logger.Error(err))
		return exitUsage
	}

	code := exitOK
	for _, name := range sortedNames(sets) {
		for _, rule := range sets[name].UnknownRules(env.registry) {
			fmt.Fprintf(stdout, "%s: unknown rule %q\n", name, rule)
			code = exitInvalid
		}
	}
	return code
}
