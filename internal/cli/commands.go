package cli

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"inventoryTracker/internal/db"
	"inventoryTracker/internal/form"
)

// NewRootCmd builds the command tree bound to app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "inventory",
		Short:         "Personal inventory tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.open()
		},
	}
	root.PersistentFlags().StringVar(&app.Config.Database.Path, "db", app.Config.Database.Path, "SQLite database file")

	root.AddCommand(
		registerCmd(app),
		loginCmd(app),
		logoutCmd(app),
		whoamiCmd(app),
		listCmd(app),
		addCmd(app),
		updateCmd(app),
		deleteCmd(app),
		summaryCmd(app),
		migrateCmd(app),
	)
	if !app.interactive {
		root.AddCommand(shellCmd(app))
	}
	return root
}

// askIfEmpty prompts for a value that was not given as a flag.
func askIfEmpty(app *App, v *string, prompt string) error {
	if *v != "" {
		return nil
	}
	s, err := app.prompter().Secret(prompt)
	if err != nil {
		return fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.ToLower(prompt), ": "), err)
	}
	*v = s
	return nil
}

func registerCmd(app *App) *cobra.Command {
	var password, confirm string
	cmd := &cobra.Command{
		Use:   "register USERNAME",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := askIfEmpty(app, &password, "Password: "); err != nil {
				return err
			}
			if err := askIfEmpty(app, &confirm, "Confirm Password: "); err != nil {
				return err
			}
			username, err := form.ValidateRegistration(form.Credentials{Username: args[0], Password: password, Confirm: confirm})
			if err != nil {
				return err
			}
			ok, err := app.service.Register(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if !ok {
				return errUsernameTaken
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account created successfully! Please login.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&confirm, "confirm", "", "password confirmation (prompted when omitted)")
	return cmd
}

func loginCmd(app *App) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login USERNAME",
		Short: "Log in and remember the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := askIfEmpty(app, &password, "Password: "); err != nil {
				return err
			}
			username, err := form.ValidateLogin(form.Credentials{Username: args[0], Password: password})
			if err != nil {
				return err
			}
			sess, err := app.service.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if err := app.startSession(sess); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", sess.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func logoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.endSession(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func whoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.currentSession(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sess.Username)
			return nil
		},
	}
}

func listCmd(app *App) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List products, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.currentSession(cmd.Context())
			if err != nil {
				return err
			}
			products, err := app.service.List(cmd.Context(), sess)
			if err != nil {
				return err
			}
			if asJSON {
				b, err := json.MarshalIndent(products, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			renderProducts(cmd.OutOrStdout(), products)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func addCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME QUANTITY PRICE",
		Short: "Add a product",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := form.ParseProduct(form.Product{Name: args[0], Quantity: args[1], Price: args[2]})
			if err != nil {
				return err
			}
			sess, err := app.currentSession(cmd.Context())
			if err != nil {
				return err
			}
			p, err := app.service.Add(cmd.Context(), sess, in.Name, in.Quantity, in.Price)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Product added successfully! (No. %d)\n", p.Number)
			return nil
		},
	}
}

func updateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "update NUMBER NAME QUANTITY PRICE",
		Short: "Update a product",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := form.ParseNumber(args[0])
			if err != nil {
				return err
			}
			in, err := form.ParseProduct(form.Product{Name: args[1], Quantity: args[2], Price: args[3]})
			if err != nil {
				return err
			}
			sess, err := app.currentSession(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.service.Update(cmd.Context(), sess, number, in.Name, in.Quantity, in.Price); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Product updated successfully!")
			return nil
		},
	}
}

func deleteCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete NUMBER",
		Aliases: []string{"rm"},
		Short:   "Delete a product",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := form.ParseNumber(args[0])
			if err != nil {
				return err
			}
			sess, err := app.currentSession(cmd.Context())
			if err != nil {
				return err
			}
			p, err := app.service.Get(cmd.Context(), sess, number)
			if err != nil {
				return err
			}
			if !yes {
				answer, err := app.prompter().Line(fmt.Sprintf("Are you sure you want to delete '%s'? [y/N] ", p.Name))
				if err != nil || !isYes(answer) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := app.service.Delete(cmd.Context(), sess, number); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Product deleted successfully!")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}

func summaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show inventory totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.currentSession(cmd.Context())
			if err != nil {
				return err
			}
			s, err := app.service.Summary(cmd.Context(), sess)
			if err != nil {
				return err
			}
			renderSummary(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func migrateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Inspect or roll back schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			versions, err := db.AppliedVersions(app.db)
			if err != nil {
				return err
			}
			for _, v := range versions {
				fmt.Fprintf(cmd.OutOrStdout(), "%04d\n", v)
			}
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "rollback",
		Short: "Revert the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := db.RollbackLast(app.db)
			if err != nil {
				return err
			}
			if v == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to roll back.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rolled back %04d. It is re-applied the next time the database is opened.\n", v)
			return nil
		},
	})
	return cmd
}
