package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/fivetwenty-io/avatax-client/internal/constants"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
	"github.com/spf13/cobra"
)

// NewIAMDSCommand creates the identity and access management command group.
func NewIAMDSCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "iamds",
		Aliases: []string{"iam"},
		Short:   "Manage identities",
		Long:    "Manage users and groups in the Avalara identity and access management service",
	}

	cmd.AddCommand(newIAMDSUsersCommand())
	cmd.AddCommand(newIAMDSGroupsCommand())

	return cmd
}

func addListFlags(cmd *cobra.Command, opts *avatax.ListOptions) {
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter expression, e.g. \"displayName eq 'Ops'\"")
	cmd.Flags().IntVar(&opts.Top, "top", 0, "maximum number of items to return")
	cmd.Flags().IntVar(&opts.Skip, "skip", 0, "number of items to skip")
	cmd.Flags().StringVar(&opts.OrderBy, "order-by", "", "sort expression, e.g. \"displayName desc\"")
	cmd.Flags().BoolVar(&opts.Count, "count", false, "include the total item count")
	cmd.Flags().StringSliceVar(&opts.Tags, "tag", nil, "only items with this tag (repeatable)")
}

func withIAMDS(run func(ctx context.Context, iamds avatax.IAMDSClient) error) error {
	ctx := context.Background()

	client, err := CreateClient(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	return run(ctx, client.IAMDS())
}

func newIAMDSUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users",
		Long:    "List, get, create and delete IAMDS users",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersGetCommand())
	cmd.AddCommand(newUsersCreateCommand())
	cmd.AddCommand(newUsersDeleteCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	var opts avatax.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Long:  "List IAMDS users, optionally filtered and paged",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withIAMDS(func(ctx context.Context, iamds avatax.IAMDSClient) error {
				users, err := iamds.Users().List(ctx, &opts)
				if err != nil {
					return fmt.Errorf("failed to list users: %w", err)
				}

				return outputResult(users, func() error {
					return displayUsersTable(users)
				})
			})
		},
	}

	addListFlags(cmd, &opts)

	return cmd
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USER_ID",
		Short: "Get user details",
		Long:  "Display detailed information about an IAMDS user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withIAMDS(func(ctx context.Context, iamds avatax.IAMDSClient) error {
				user, err := iamds.Users().Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get user: %w", err)
				}

				return outputResult(user, func() error {
					return displayUserDetails(user)
				})
			})
		},
	}
}

func newUsersCreateCommand() *cobra.Command {
	var (
		user                  avatax.User
		givenName, familyName string
		emails                []string
	)

	cmd := &cobra.Command{
		Use:   "create USER_NAME",
		Short: "Create a user",
		Long:  "Create an IAMDS user. The first --email becomes the primary address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return ErrUserNameRequired
			}

			user.UserName = args[0]
			user.Active = true

			if givenName != "" || familyName != "" {
				user.Name = &avatax.UserName{GivenName: givenName, FamilyName: familyName}
			}

			for i, email := range emails {
				user.Emails = append(user.Emails, avatax.Email{Value: email, Primary: i == 0})
			}

			return withIAMDS(func(ctx context.Context, iamds avatax.IAMDSClient) error {
				created, err := iamds.Users().Create(ctx, &user)
				if err != nil {
					return fmt.Errorf("failed to create user: %w", err)
				}

				return outputResult(created, func() error {
					return displayUserDetails(created)
				})
			})
		},
	}

	cmd.Flags().StringVar(&user.DisplayName, "display-name", "", "display name")
	cmd.Flags().StringVar(&givenName, "given-name", "", "given name")
	cmd.Flags().StringVar(&familyName, "family-name", "", "family name")
	cmd.Flags().StringSliceVar(&emails, "email", nil, "email address (repeatable)")
	cmd.Flags().StringSliceVar(&user.Tags, "tag", nil, "tag (repeatable)")

	return cmd
}

func newUsersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete USER_ID",
		Short: "Delete a user",
		Long:  "Delete an IAMDS user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withIAMDS(func(ctx context.Context, iamds avatax.IAMDSClient) error {
				err := iamds.Users().Delete(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to delete user: %w", err)
				}

				_, _ = fmt.Fprintf(os.Stdout, "Deleted user %s\n", args[0])

				return nil
			})
		},
	}
}

func displayUsersTable(users *avatax.UserList) error {
	rows := make([][]string, 0, len(users.Items))
	for _, user := range users.Items {
		rows = append(rows, []string{user.ID, user.UserName, orNotAvailable(user.DisplayName), formatBool(user.Active)})
	}

	err := renderRows([]string{"ID", "User Name", "Display Name", "Active"}, rows)
	if err != nil {
		return err
	}

	if users.Count > 0 {
		_, _ = fmt.Fprintf(os.Stdout, "Total: %d\n", users.Count)
	}

	return nil
}

func displayUserDetails(user *avatax.User) error {
	rows := [][]string{
		{"ID", orNotAvailable(user.ID)},
		{"User Name", user.UserName},
		{"Display Name", orNotAvailable(user.DisplayName)},
		{"Active", formatBool(user.Active)},
	}

	if user.Name != nil {
		rows = append(rows, []string{"Name", user.Name.GivenName + " " + user.Name.FamilyName})
	}

	for _, email := range user.Emails {
		label := "Email"
		if email.Primary {
			label = "Email (primary)"
		}

		rows = append(rows, []string{label, email.Value})
	}

	rows = append(rows, []string{"Tags", joinStrings(user.Tags)})

	if user.Meta != nil {
		rows = append(rows, []string{"Created", orNotAvailable(user.Meta.Created)})
	}

	return renderProperties(rows)
}

func newIAMDSGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "groups",
		Aliases: []string{"group"},
		Short:   "Manage groups",
		Long:    "List and inspect IAMDS groups and their members",
	}

	cmd.AddCommand(newGroupsListCommand())
	cmd.AddCommand(newGroupsGetCommand())
	cmd.AddCommand(newGroupsMembersCommand())

	return cmd
}

func newGroupsListCommand() *cobra.Command {
	var opts avatax.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		Long:  "List IAMDS groups, optionally filtered and paged",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withIAMDS(func(ctx context.Context, iamds avatax.IAMDSClient) error {
				groups, err := iamds.Groups().List(ctx, &opts)
				if err != nil {
					return fmt.Errorf("failed to list groups: %w", err)
				}

				return outputResult(groups, func() error {
					rows := make([][]string, 0, len(groups.Items))
					for _, group := range groups.Items {
						rows = append(rows, []string{group.ID, group.DisplayName, orNotAvailable(group.Description)})
					}

					return renderRows([]string{"ID", "Display Name", "Description"}, rows)
				})
			})
		},
	}

	addListFlags(cmd, &opts)

	return cmd
}

func newGroupsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get GROUP_ID",
		Short: "Get group details",
		Long:  "Display detailed information about an IAMDS group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withIAMDS(func(ctx context.Context, iamds avatax.IAMDSClient) error {
				group, err := iamds.Groups().Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get group: %w", err)
				}

				return outputResult(group, func() error {
					return renderProperties([][]string{
						{"ID", orNotAvailable(group.ID)},
						{"Display Name", group.DisplayName},
						{"Description", orNotAvailable(group.Description)},
						{"Tags", joinStrings(group.Tags)},
					})
				})
			})
		},
	}
}

func newGroupsMembersCommand() *cobra.Command {
	var opts avatax.ListOptions

	cmd := &cobra.Command{
		Use:   "members GROUP_ID",
		Short: "List group members",
		Long:  "List the users and clients that belong to an IAMDS group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withIAMDS(func(ctx context.Context, iamds avatax.IAMDSClient) error {
				members, err := iamds.Groups().ListMembers(ctx, args[0], &opts)
				if err != nil {
					return fmt.Errorf("failed to list group members: %w", err)
				}

				return outputResult(members, func() error {
					return renderRows([]string{"Type", "ID", "Name"}, memberRows(members.Items))
				})
			})
		},
	}

	addListFlags(cmd, &opts)

	return cmd
}

func memberRows(members []avatax.Member) [][]string {
	rows := make([][]string, 0, len(members))

	for _, member := range members {
		name := constants.NotAvailable

		switch m := member.(type) {
		case *avatax.UserMember:
			name = orNotAvailable(m.UserName)
		case *avatax.ClientMember:
			name = orNotAvailable(m.ClientName)
		}

		rows = append(rows, []string{string(member.MemberType()), member.MemberID(), name})
	}

	return rows
}
