package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/BuzzLyutic/taskify/internal/app"
	"github.com/BuzzLyutic/taskify/internal/model"
)

func addCmd(opts *options) *cobra.Command {
	var in model.TaskInput
	var priority string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Priority = model.Priority(priority)
			return opts.withApp(cmd, func(a *app.App) error {
				task, err := a.Store.AddTask(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q\n", task.ID, task.Title)
				return checkPersisted(a)
			})
		},
	}

	cmd.Flags().StringVarP(&in.Title, "title", "t", "", "Title (required)")
	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "Description (required)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "low", "Priority: low, medium, high")

	return cmd
}

func listCmd(opts *options) *cobra.Command {
	var section string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sec, err := model.ParseSection(section)
			if err != nil {
				return err
			}
			return opts.withApp(cmd, func(a *app.App) error {
				tasks := a.Store.List(sec)
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), tasks)
				}
				return writeTable(cmd.OutOrStdout(), tasks)
			})
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "all", "Section: all, completed, incomplete")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}

func showCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App) error {
				task, ok := a.Store.TaskByID(args[0])
				if !ok {
					return fmt.Errorf("task %s: not found", args[0])
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), task)
				}
				writeTask(cmd.OutOrStdout(), task)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}

func editCmd(opts *options) *cobra.Command {
	var title, description, priority string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit title, description or priority of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var edit model.TaskEdit
			if cmd.Flags().Changed("title") {
				edit.Title = &title
			}
			if cmd.Flags().Changed("description") {
				edit.Description = &description
			}
			if cmd.Flags().Changed("priority") {
				p := model.Priority(priority)
				edit.Priority = &p
			}
			if edit.Empty() {
				return fmt.Errorf("nothing to edit: pass --title, --description or --priority")
			}

			return opts.withApp(cmd, func(a *app.App) error {
				id := args[0]
				if err := a.Store.ValidateEdit(id, edit); err != nil {
					return err
				}
				task, err := a.Store.EditTask(cmd.Context(), id, edit)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %q\n", task.ID, task.Title)
				return checkPersisted(a)
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "New priority: low, medium, high")

	return cmd
}

func toggleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task completed or not completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App) error {
				task, err := a.Store.ToggleTaskStatus(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %q is now %s\n", task.ID, task.Title, status(task))
				return checkPersisted(a)
			})
		},
	}
}

func rmCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App) error {
				if err := a.Store.DeleteTask(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return checkPersisted(a)
			})
		},
	}
}

func moveCmd(opts *options) *cobra.Command {
	var completed bool

	cmd := &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a task within its section",
		Long:  "Move the task at position <from> to position <to>. Positions are zero-based\nand counted inside one section: incomplete by default, completed with --completed.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q: %w", args[0], err)
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q: %w", args[1], err)
			}

			return opts.withApp(cmd, func(a *app.App) error {
				if err := a.Store.ReorderTasks(cmd.Context(), from, to, completed); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved %d -> %d\n", from, to)
				return checkPersisted(a)
			})
		},
	}

	cmd.Flags().BoolVar(&completed, "completed", false, "Reorder the completed section")

	return cmd
}

func statsCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App) error {
				stats := a.Store.Stats()
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), stats)
				}
				writeStats(cmd.OutOrStdout(), stats)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}
