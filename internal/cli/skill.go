package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/skilltrack/internal/core/skill"
	"github.com/example/skilltrack/internal/ports/primary"
	"github.com/example/skilltrack/internal/wire"
)

// SkillCmds returns the top-level skill commands.
func SkillCmds() []*cobra.Command {
	return []*cobra.Command{
		addCmd(),
		listCmd(),
		showCmd(),
		editCmd(),
		statusCmd(),
		deleteCmd(),
		statsCmd(),
		milestonesCmd(),
		resetCmd(),
	}
}

func addCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a new skill to track",
		Long: `Add a new learning goal. The skill starts as "planned" with 0% progress.

Categories: programming, design, language, business, other

Examples:
  skilltrack add "Rust"
  skilltrack add "Spanish" -c language`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.SkillAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Add(context.Background(), args[0], category)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(skill.CategoryProgramming), "Skill category")

	return cmd
}

func listCmd() *cobra.Command {
	var status, category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked skills",
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.SkillAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.List(context.Background(), primary.SkillFilters{
				Status:   status,
				Category: category,
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (planned, in-progress, completed)")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")

	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show skill details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			adapter, err := wire.SkillAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.Show(context.Background(), id)
			return err
		},
	}
}

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a skill's name, category, progress or status",
		Long: `Apply a partial update to a skill. Only the flags you pass are changed.

Progress outside 0-100 is clamped unless strict_progress is enabled.

Examples:
  skilltrack edit 1700000000000 --progress 60
  skilltrack edit 1700000000000 --name "Go" --status in-progress`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			req := primary.UpdateSkillRequest{ID: id}
			flags := cmd.Flags()
			if flags.Changed("name") {
				name, _ := flags.GetString("name")
				req.Name = &name
			}
			if flags.Changed("category") {
				category, _ := flags.GetString("category")
				req.Category = &category
			}
			if flags.Changed("progress") {
				progress, _ := flags.GetInt("progress")
				req.Progress = &progress
			}
			if flags.Changed("status") {
				status, _ := flags.GetString("status")
				req.Status = &status
			}

			adapter, err := wire.SkillAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Edit(context.Background(), req)
		},
	}

	cmd.Flags().String("name", "", "New skill name")
	cmd.Flags().StringP("category", "c", "", "New category")
	cmd.Flags().IntP("progress", "p", 0, "Progress percentage (0-100)")
	cmd.Flags().String("status", "", "New status")

	return cmd
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [id] [planned|in-progress|completed]",
		Short: "Change a skill's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			adapter, err := wire.SkillAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.SetStatus(context.Background(), id, args[1])
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			adapter, err := wire.SkillAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Delete(context.Background(), id)
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals and completion rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.SkillAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Stats(context.Background())
		},
	}
}

func milestonesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "milestones",
		Short: "Show the most recently added completed skills",
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.SkillAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Milestones(context.Background(), limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum entries (default from config)")

	return cmd
}

func resetCmd() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace all skills with the sample set",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !skipConfirm && !confirmPrompt(cmd.InOrStdin(), cmd.OutOrStdout(), "This discards every tracked skill. Continue?") {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}
			adapter, err := wire.SkillAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Reset(context.Background())
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")

	return cmd
}

// parseID accepts the numeric ids shown by list.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid skill id %q", arg)
	}
	return id, nil
}

func confirmPrompt(in io.Reader, out io.Writer, msg string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", msg)
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
