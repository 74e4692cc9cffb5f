// saved.go - Listing saved games
package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/Spyabo/CLI-Chess/internal/store"
)

// list prints the saved games matching -search, newest first.
func (a *app) list(ctx context.Context) error {
	st, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.List(ctx)
	if err != nil {
		return err
	}
	entries = store.Search(entries, *search)
	if len(entries) == 0 {
		fmt.Fprintln(a.stdout, "No saved games.")
		return nil
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SAVED\tWHITE\tBLACK\tRESULT\tID")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.Saved.Format("2006-01-02 15:04"), e.White, e.Black, e.Result, e.ID)
	}
	return tw.Flush()
}
