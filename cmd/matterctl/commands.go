package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ashureev/matter/internal/domain"
	"github.com/ashureev/matter/internal/journal"
	"github.com/ashureev/matter/internal/progress"
)

var (
	cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

func printSnapshot(w io.Writer, snap journal.Snapshot) {
	fmt.Fprintf(w, "\n%s\n", cyan("=== "+snap.CurrentLandscape.Name+" ==="))
	fmt.Fprintf(w, "  %s\n", gray(snap.CurrentLandscape.Description))
	fmt.Fprintf(w, "  Streak: %s days\n\n", green(strconv.Itoa(snap.State.Streak)))

	fmt.Fprintf(w, "%s %s\n", yellow("Today ("+snap.Today+"):"), gray(fmt.Sprintf("%d slots left", snap.RemainingSlots)))
	if len(snap.TodaysIntentions) == 0 {
		fmt.Fprintf(w, "  %s\n", gray("No intentions yet"))
	}
	for i, g := range snap.TodaysIntentions {
		mark := "○"
		text := g.Text
		if g.Completed {
			mark = green("●")
			text = gray(g.Text)
		}
		fmt.Fprintf(w, "  %d. %s %s %s\n", i+1, mark, text, gray("["+string(g.Category)+"]"))
		if g.ReflectionResponse != "" {
			fmt.Fprintf(w, "       %s\n", gray(g.ReflectionResponse))
		}
	}
	fmt.Fprintln(w)
}

func rejected(reason progress.Reason) error {
	return fmt.Errorf("%s (%s)", reason.Message(), reason)
}

func newTodayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's intentions, streak and landscape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printSnapshot(cmd.OutOrStdout(), a.svc.State(cmd.Context(), a.user(), a.loc))
			return nil
		},
	}
}

func newRolloverCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rollover",
		Short: "Start a session: apply the daily streak check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.svc.StartSession(cmd.Context(), a.user(), a.loc)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch res.Rollover.Transition {
			case progress.TransitionNone:
				fmt.Fprintf(out, "%s\n", gray("Already checked in today"))
			case progress.TransitionBroken:
				fmt.Fprintf(out, "%s\n", yellow(fmt.Sprintf("Streak reset after %d days away", res.Rollover.DiffDays)))
			default:
				fmt.Fprintf(out, "%s\n", green(fmt.Sprintf("Streak: %d", res.Rollover.Streak)))
			}
			if l := res.Rollover.Unlocked; l != nil {
				fmt.Fprintf(out, "%s You've unlocked %s!\n", cyan("New Landscape Discovered:"), l.Name)
			}
			printSnapshot(out, res.Snapshot)
			return nil
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add an intention for today",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.svc.AddIntention(cmd.Context(), a.user(), strings.Join(args, " "), category, a.loc)
			if err != nil {
				return err
			}
			if !res.Accepted {
				return rejected(res.Reason)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", green("✓"), res.Goal.Text, gray(res.Goal.ID))
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", string(domain.CategoryFocus), "one of: "+categoryList())
	return cmd
}

func categoryList() string {
	names := make([]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

// resolveGoalID reads arg as an intention id, or as a position in today's list
// when no stored intention carries that id.
func resolveGoalID(snap journal.Snapshot, arg string) string {
	for _, g := range snap.State.Goals {
		if g.ID == arg {
			return arg
		}
	}
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(snap.TodaysIntentions) {
		return snap.TodaysIntentions[n-1].ID
	}
	return arg
}

func newCompleteCmd(a *app) *cobra.Command {
	var reflection string
	cmd := &cobra.Command{
		Use:   "complete [id or number]",
		Short: "Complete an intention with a reflection",
		Long: `Completes an intention. The argument is either the intention id or its
position in today's list as shown by "matterctl today". An id that matches a
stored intention wins over a position.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			goalID := resolveGoalID(a.svc.State(ctx, a.user(), a.loc), args[0])

			res, err := a.svc.CompleteIntention(ctx, a.user(), goalID, reflection, a.loc)
			if err != nil {
				return err
			}
			if !res.Accepted {
				return rejected(res.Reason)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", green("●"), res.Goal.Text)
			fmt.Fprintf(out, "  %s\n", cyan(res.Goal.ReflectionResponse))
			if res.Gift != nil {
				fmt.Fprintf(out, "%s You found a %s %s\n", yellow("A Gift from the Forest:"), res.Gift.Name, res.Gift.Icon)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&reflection, "reflection", "r", "", "how it went")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	var (
		scope string
		year  int
		month int
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completed intentions per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := a.svc.Now(a.loc)
			if year == 0 {
				year = now.Year()
			}
			if month == 0 {
				month = int(now.Month())
			}
			view, err := a.svc.Stats(cmd.Context(), a.user(), journal.Scope(scope), year, time.Month(month), a.loc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			title := strconv.Itoa(view.Year)
			if view.Scope == journal.ScopeMonth {
				title = fmt.Sprintf("%d-%02d", view.Year, view.Month)
			}
			fmt.Fprintf(out, "\n%s\n", cyan("=== Balance "+title+" ==="))
			if view.Distribution.Total == 0 {
				fmt.Fprintf(out, "  %s\n\n", gray("Nothing completed yet"))
				return nil
			}
			for _, c := range view.Distribution.Data {
				bar := strings.Repeat("█", c.Count*20/view.Distribution.Total)
				fmt.Fprintf(out, "  %-12s %3d %s\n", c.Category, c.Count, green(bar))
			}
			fmt.Fprintf(out, "  %-12s %3d\n\n", "Total", view.Distribution.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&scope, "scope", string(journal.ScopeMonth), "month or year")
	cmd.Flags().IntVar(&year, "year", 0, "year (defaults to current)")
	cmd.Flags().IntVar(&month, "month", 0, "month 1-12 (defaults to current)")
	return cmd
}

func newCalendarCmd(a *app) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "List completed intentions of a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := a.svc.Now(a.loc)
			if month != "" {
				var err error
				if t, err = time.Parse("2006-01", month); err != nil {
					return fmt.Errorf("month must be YYYY-MM: %w", err)
				}
			}
			view, err := a.svc.Calendar(cmd.Context(), a.user(), t.Year(), t.Month(), a.loc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%s\n", cyan(fmt.Sprintf("=== %s %d ===", t.Month(), t.Year())))
			dates := make([]string, 0, len(view.Days))
			for d := range view.Days {
				dates = append(dates, d)
			}
			sort.Strings(dates)
			if len(dates) == 0 {
				fmt.Fprintf(out, "  %s\n", gray("No completed intentions"))
			}
			for _, d := range dates {
				fmt.Fprintf(out, "  %s\n", yellow(d))
				for _, g := range view.Days[d] {
					fmt.Fprintf(out, "    %s %s %s\n", green("●"), g.Text, gray("["+string(g.Category)+"]"))
				}
			}
			fmt.Fprintln(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "YYYY-MM (defaults to current)")
	return cmd
}

func newGiftsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "gifts",
		Short: "Show collected gifts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := a.svc.State(cmd.Context(), a.user(), a.loc).State
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%s %s\n", cyan("=== Collection ==="), gray(fmt.Sprintf("%d/%d", len(state.Inventory), len(domain.GiftCatalog))))
			if len(state.Inventory) == 0 {
				fmt.Fprintf(out, "  %s\n", gray("Complete intentions to find gifts"))
			}
			for _, g := range state.Inventory {
				fmt.Fprintf(out, "  %s %s %s\n", g.Icon, g.Name, gray(g.AcquiredAt.In(a.loc).Format("Jan 2")))
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

func newLandscapesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "landscapes",
		Short: "List or switch landscapes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List landscapes and which are unlocked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := a.svc.State(cmd.Context(), a.user(), a.loc).State
			out := cmd.OutOrStdout()
			for _, l := range domain.Landscapes {
				switch {
				case l.ID == state.CurrentLandscapeID:
					fmt.Fprintf(out, "  %s %-10s %s\n", green("▶"), l.ID, l.Name)
				case state.IsUnlocked(l.ID):
					fmt.Fprintf(out, "  %s %-10s %s\n", "○", l.ID, l.Name)
				default:
					fmt.Fprintf(out, "  %s %-10s %s\n", red("✗"), gray(l.ID), gray(l.Name))
				}
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "use [id]",
		Short: "Switch to an unlocked landscape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.svc.SelectLandscape(cmd.Context(), a.user(), args[0], a.loc)
			if err != nil {
				return err
			}
			if !res.Accepted {
				return rejected(res.Reason)
			}
			l, _ := domain.LandscapeByID(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", green("✓"), l.Name)
			return nil
		},
	})
	return cmd
}
