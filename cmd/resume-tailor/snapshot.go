package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/snapshot"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage saved application records",
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current session as an application record",
	Long: "Freeze the Tailored Profile, job description, and cover letter into an " +
		"immutable record. Later session edits never touch saved records. Requires " +
		"a job company or title.",
	RunE: runSnapshotSave,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved application records, most recent first",
	RunE:  runSnapshotList,
}

var snapshotLoadCmd = &cobra.Command{
	Use:   "load <id>",
	Short: "Restore a saved application record into the session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotLoad,
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved application record",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotDelete,
}

var snapshotLoadYes bool

func init() {
	snapshotLoadCmd.Flags().BoolVarP(&snapshotLoadYes, "yes", "y", false, "Confirm overwriting the current session")

	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotLoadCmd)
	snapshotCmd.AddCommand(snapshotDeleteCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshotSave(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	snapshots, err := a.snapshots.Save(ctx, a.store.Tailored(), a.store.Job(), a.store.CoverLetter())
	if err != nil {
		if errors.Is(err, snapshot.ErrMissingJobIdentity) {
			return fmt.Errorf("saving requires a job company or title (resume-tailor job --company ...)")
		}
		return err
	}

	fmt.Printf("Saved. %d application(s) on record; latest id: %s\n", len(snapshots), snapshots[0].ID)
	return nil
}

func runSnapshotList(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	snapshots, err := a.snapshots.List(ctx)
	if err != nil {
		return err
	}
	a.printer.PrintSnapshots(snapshots)
	return nil
}

func runSnapshotLoad(_ *cobra.Command, args []string) error {
	if !snapshotLoadYes {
		return fmt.Errorf("loading overwrites the current tailored profile, job, and cover letter; re-run with --yes")
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	snap, err := a.snapshots.Load(ctx, args[0])
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			return fmt.Errorf("no application record with id %s", args[0])
		}
		return err
	}

	if err := a.store.LoadSnapshot(snap, true); err != nil {
		return err
	}
	if err := a.saveSession(ctx); err != nil {
		return err
	}

	fmt.Printf("Restored application for %s — %s\n", snap.Company, snap.JobTitle)
	return nil
}

func runSnapshotDelete(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.snapshots.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}
