package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/session"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize <bullet-id>",
	Short: "Propose an AI rewrite for one bullet",
	Long: "Request a rewrite of the bullet against the active job description. The " +
		"candidate is held as a pending proposal; the bullet's committed text is " +
		"untouched until you accept.",
	Args: cobra.ExactArgs(1),
	RunE: runOptimize,
}

var acceptCmd = &cobra.Command{
	Use:   "accept <bullet-id>",
	Short: "Accept the pending rewrite for a bullet",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccept,
}

var discardCmd = &cobra.Command{
	Use:   "discard <bullet-id>",
	Short: "Discard the pending rewrite for a bullet",
	Args:  cobra.ExactArgs(1),
	RunE:  runDiscard,
}

var editCmd = &cobra.Command{
	Use:   "edit <bullet-id> <content...>",
	Short: "Manually edit a bullet's text",
	Long: "Replace a bullet's text in the Tailored Profile. A manual edit clears the " +
		"bullet's relevance score and any pending rewrite proposal.",
	Args: cobra.MinimumNArgs(2),
	RunE: runEdit,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <bullet-id>",
	Short: "Toggle a bullet's visibility or lock",
	RunE:  runToggle,
}

var (
	toggleHide bool
	toggleLock bool
)

func init() {
	toggleCmd.Flags().BoolVar(&toggleHide, "hide", false, "Flip inclusion in the final output")
	toggleCmd.Flags().BoolVar(&toggleLock, "lock", false, "Flip exemption from auto-optimization")

	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(acceptCmd)
	rootCmd.AddCommand(discardCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(toggleCmd)
}

func runOptimize(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	bulletID := args[0]
	if err := a.proposals.Optimize(ctx, bulletID); err != nil {
		return err
	}
	if err := a.saveSession(ctx); err != nil {
		return err
	}

	if proposal, ok := a.proposals.Proposal(bulletID); ok {
		content, _, _ := a.store.BulletSnapshot(bulletID)
		fmt.Printf("Current:  %s\nProposed: %s\n\nRun 'resume-tailor accept %s' or 'resume-tailor discard %s'.\n",
			content, proposal, bulletID, bulletID)
	} else {
		fmt.Println("No stronger rewrite found; the bullet is unchanged.")
	}
	return nil
}

func runAccept(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.proposals.Accept(ctx, args[0]); err != nil {
		if errors.Is(err, session.ErrNoProposal) {
			return fmt.Errorf("no pending rewrite for bullet %s", args[0])
		}
		return err
	}
	if err := a.saveSession(ctx); err != nil {
		return err
	}

	content, _, _ := a.store.BulletSnapshot(args[0])
	fmt.Printf("Accepted: %s\n", content)
	return nil
}

func runDiscard(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.proposals.Discard(args[0]); err != nil {
		return err
	}
	if err := a.saveSession(ctx); err != nil {
		return err
	}
	fmt.Println("Proposal discarded.")
	return nil
}

func runEdit(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	content := strings.Join(args[1:], " ")
	if err := a.proposals.ManualEdit(args[0], content); err != nil {
		return err
	}
	if err := a.saveSession(ctx); err != nil {
		return err
	}
	fmt.Println("Bullet updated. It will need a fresh ranking.")
	return nil
}

func runToggle(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one bullet id")
	}
	if !toggleHide && !toggleLock {
		return fmt.Errorf("specify --hide and/or --lock")
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if toggleHide {
		if err := a.store.ToggleVisibility(args[0]); err != nil {
			return err
		}
	}
	if toggleLock {
		if err := a.store.ToggleLock(args[0]); err != nil {
			return err
		}
	}
	return a.saveSession(ctx)
}
