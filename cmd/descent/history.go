package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/born-ml/descent/internal/history"
)

// showHistory lists the runs in the database at path, or prints the
// progress of the single run named by args.
func showHistory(ctx context.Context, w io.Writer, path string, args []string) error {
	if path == "" {
		return errors.New("needs -history")
	}
	if len(args) > 1 {
		return fmt.Errorf("expected at most one run id, got %d", len(args))
	}
	store, err := history.Open(ctx, path)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		runs, err := store.Runs(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "RUN\tKIND\tSTATUS\tITERS\tSTARTED")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
				r.ID, r.Kind, r.Status, r.Iterations, r.StartedAt.UTC().Format(time.RFC3339))
		}
		return tw.Flush()
	}

	run, err := store.Find(ctx, args[0])
	if err != nil {
		return err
	}
	progress, err := store.Progress(ctx, run.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "run %s (%s, %s, %d iterations)\n", run.ID, run.Kind, run.Status, run.Iterations)
	for _, p := range progress {
		fmt.Fprintln(w, p.String())
	}
	return nil
}
