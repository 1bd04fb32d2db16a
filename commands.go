package main

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dsnks-19/Task-management-system/auth"
	"github.com/Dsnks-19/Task-management-system/boards"
	"github.com/Dsnks-19/Task-management-system/domain"
	"github.com/Dsnks-19/Task-management-system/storage"
	"github.com/Dsnks-19/Task-management-system/tasks"
)

func rootCmd() *cobra.Command {
	var serverURL, identityConfig string

	root := &cobra.Command{
		Use:           "taskboard",
		Short:         "Headless client for the task-board server",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "", "application server base URL")
	root.PersistentFlags().StringVar(&identityConfig, "identity-config", "", "path to the identity provider config JSON")

	root.AddCommand(
		loginCmd(&serverURL, &identityConfig),
		registerCmd(&serverURL, &identityConfig),
		logoutCmd(&serverURL, &identityConfig),
		boardsCmd(),
		taskCmd(&serverURL, &identityConfig),
	)
	return root
}

func boardsCmd() *cobra.Command {
	var labels []string
	var search, sortBy, view string
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Filter, sort, and summarize rendered board rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl := boards.New(boards.ItemsFromLabels(labels), storage.NewMemory())
			if view != "" {
				if err := ctl.SetView(cmd.Context(), domain.ViewMode(view)); err != nil {
					return err
				}
			}
			if sortBy != "" {
				ctl.Sort(sortBy)
			}
			ctl.Search(search)
			for _, item := range ctl.Visible() {
				fmt.Fprintln(cmd.OutOrStdout(), item.Label())
			}
			stats := ctl.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "%d shown of %d boards (%s view)\n",
				len(ctl.Visible()), stats.Total, ctl.View())
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&labels, "label", nil, "rendered board row label (repeatable)")
	cmd.Flags().StringVar(&search, "search", "", "live-search query")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort key: name or date")
	cmd.Flags().StringVar(&view, "view", "", "view mode: list or grid")
	return cmd
}

func loginCmd(serverURL, identityConfig *string) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and establish the session cookie",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*serverURL, *identityConfig)
			if err != nil {
				return err
			}
			redirect, err := a.auth.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("%s", auth.UserMessage(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in, continue at %s\n", redirect)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func registerCmd(serverURL, identityConfig *string) *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and its server profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*serverURL, *identityConfig)
			if err != nil {
				return err
			}
			redirect, err := a.auth.Register(cmd.Context(), email, password, name)
			if err != nil {
				return fmt.Errorf("%s", auth.UserMessage(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered, continue at %s\n", redirect)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the email local part)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd(serverURL, identityConfig *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the session cookie",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*serverURL, *identityConfig)
			if err != nil {
				return err
			}
			redirect, err := a.auth.Logout(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed out, continue at %s\n", redirect)
			return nil
		},
	}
}

func taskCmd(serverURL, identityConfig *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Mutate tasks on a board",
	}
	cmd.AddCommand(
		taskAddCmd(),
		taskEditCmd(serverURL, identityConfig),
		taskDeleteCmd(serverURL, identityConfig),
		taskToggleCmd(serverURL, identityConfig),
	)
	return cmd
}

func taskAddCmd() *cobra.Command {
	var boardID, title, due string
	var existing []string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Check a new task against the add-form rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			var dueDate time.Time
			if due != "" {
				parsed, err := time.ParseInLocation("2006-01-02T15:04", due, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --due (want 2006-01-02T15:04): %w", err)
				}
				dueDate = parsed
			}
			items := make([]domain.TaskItem, 0, len(existing))
			for _, t := range existing {
				items = append(items, domain.TaskItem{Title: t})
			}
			ctl := tasks.New(tasks.Config{BoardID: boardID}, items, nil, nil)
			if !ctl.SubmitAdd(title, dueDate) {
				for _, b := range ctl.Banners() {
					fmt.Fprintln(cmd.ErrOrStderr(), b.Message)
				}
				return fmt.Errorf("task rejected")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "task accepted, submit the form")
			return nil
		},
	}
	cmd.Flags().StringVar(&boardID, "board", "", "board id")
	cmd.Flags().StringVar(&title, "title", "", "task title")
	cmd.Flags().StringVar(&due, "due", "", "due date, 2006-01-02T15:04")
	cmd.Flags().StringArrayVar(&existing, "existing", nil, "existing task title (repeatable)")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func taskEditCmd(serverURL, identityConfig *string) *cobra.Command {
	var boardID, taskID, title, description, due string
	var assignees []string
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*serverURL, *identityConfig)
			if err != nil {
				return err
			}
			dueDate, err := time.ParseInLocation("2006-01-02T15:04", due, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --due (want 2006-01-02T15:04): %w", err)
			}
			ctl := tasks.New(tasks.Config{BoardID: boardID}, nil, a.api, nil)
			f := ctl.Edit()
			f.TaskID = taskID
			f.Title = title
			f.Description = description
			f.DueDate = dueDate
			f.Assignees = assignees
			if err := ctl.SubmitEdit(cmd.Context()); err != nil {
				return fmt.Errorf("%s", f.ErrorText)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "task updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&boardID, "board", "", "board id")
	cmd.Flags().StringVar(&taskID, "id", "", "task id")
	cmd.Flags().StringVar(&title, "title", "", "task title")
	cmd.Flags().StringVar(&description, "description", "", "task description")
	cmd.Flags().StringVar(&due, "due", "", "due date, 2006-01-02T15:04")
	cmd.Flags().StringArrayVar(&assignees, "assignee", nil, "assigned user id (repeatable)")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("due")
	return cmd
}

func taskDeleteCmd(serverURL, identityConfig *string) *cobra.Command {
	var boardID, taskID string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*serverURL, *identityConfig)
			if err != nil {
				return err
			}
			ctl := tasks.New(tasks.Config{BoardID: boardID}, nil, a.api, nil)
			ctl.OpenDelete(taskID, "")
			if err := ctl.SubmitDelete(cmd.Context()); err != nil {
				return fmt.Errorf("%s", ctl.Delete().ErrorText)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "task deleted")
			return nil
		},
	}
	cmd.Flags().StringVar(&boardID, "board", "", "board id")
	cmd.Flags().StringVar(&taskID, "id", "", "task id")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func taskToggleCmd(serverURL, identityConfig *string) *cobra.Command {
	var boardID, taskID string
	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Toggle a task's completion state",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*serverURL, *identityConfig)
			if err != nil {
				return err
			}
			ctl := tasks.New(tasks.Config{BoardID: boardID}, nil, a.api, nil)
			action := fmt.Sprintf("/boards/%s/tasks/%s/toggle-complete", boardID, taskID)
			if err := ctl.Toggle(cmd.Context(), action, url.Values{}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "task status updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&boardID, "board", "", "board id")
	cmd.Flags().StringVar(&taskID, "id", "", "task id")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
