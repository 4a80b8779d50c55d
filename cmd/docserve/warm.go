package main

import (
	"fmt"

	"github.com/fwojciec/docserve"
)

// Run executes the warm command. Documents that could only be served from
// the built-in copy are not cached, so the disk tier is checked afterwards.
func (c *WarmCmd) Run(deps *Dependencies) error {
	if err := deps.Warmer.Warm(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docserve.ErrorMessage(err))
		return err
	}

	cached := 0
	for _, kind := range docserve.Kinds {
		if _, err := deps.Cache.Load(deps.Ctx, kind); err == nil {
			cached++
		} else {
			fmt.Fprintf(deps.Stderr, "warning: %s not cached, serving the built-in copy\n", kind)
		}
	}
	fmt.Fprintf(deps.Stdout, "Cached %d of %d documents\n", cached, len(docserve.Kinds))
	return nil
}

// Run executes the clear-cache command.
func (c *ClearCacheCmd) Run(deps *Dependencies) error {
	kinds := docserve.Kinds
	if c.Type != "" {
		kind, err := docserve.ParseKind(c.Type)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docserve.ErrorMessage(err))
			return err
		}
		kinds = []docserve.Kind{kind}
	}

	for _, kind := range kinds {
		if err := deps.Cache.Delete(deps.Ctx, kind); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docserve.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Cleared %s\n", kind)
	}
	return nil
}
