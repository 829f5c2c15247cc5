package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/baechuer/helpdesk/internal/application/user"
	"github.com/baechuer/helpdesk/internal/infrastructure/security"
)

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now().UTC() }

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	var (
		in   user.RegisterCmd
		cost int
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an account, typically the first agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDB(cmd, func(ctx context.Context, db *sql.DB) error {
				svc := user.NewService(a.users(db), security.NewBcryptHasher(cost), nil, wallClock{})
				u, err := svc.Register(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s %s (%s)\n", u.Role, u.Email, u.ID)
				return nil
			})
		},
	}
	create.Flags().StringVar(&in.Name, "name", "", "display name")
	create.Flags().StringVar(&in.Email, "email", "", "login email")
	create.Flags().StringVar(&in.Password, "password", "", "initial password")
	create.Flags().StringVar(&in.Role, "role", "agent", "client or agent")
	create.Flags().IntVar(&cost, "bcrypt-cost", 12, "bcrypt cost factor")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}
