package commands_test

import (
	"testing"

	"github.com/fivetwenty-io/avatax-client/cmd/avatax/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIAMDSCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewIAMDSCommand()
	assert.Equal(t, "iamds", cmd.Use)
	assert.Equal(t, []string{"iam"}, cmd.Aliases)
	assert.ElementsMatch(t, []string{"users", "groups"}, subcommandNames(cmd))

	users := findSubcommand(cmd, "users")
	require.NotNil(t, users)
	assert.ElementsMatch(t, []string{"list", "get", "create", "delete"}, subcommandNames(users))

	groups := findSubcommand(cmd, "groups")
	require.NotNil(t, groups)
	assert.ElementsMatch(t, []string{"list", "get", "members"}, subcommandNames(groups))
}

func TestIAMDSListFlags(t *testing.T) {
	t.Parallel()

	root := commands.NewIAMDSCommand()

	for _, path := range [][]string{{"users", "list"}, {"groups", "list"}, {"groups", "members"}} {
		cmd := findSubcommand(findSubcommand(root, path[0]), path[1])
		require.NotNil(t, cmd, path)

		for _, name := range []string{"filter", "top", "skip", "order-by", "count", "tag"} {
			assert.NotNil(t, cmd.Flags().Lookup(name), "%v --%s", path, name)
		}

		assert.Equal(t, "0", cmd.Flags().Lookup("top").DefValue)
		assert.Equal(t, "false", cmd.Flags().Lookup("count").DefValue)
	}
}

func TestIAMDSUsersCreateCommand(t *testing.T) {
	t.Parallel()

	cmd := findSubcommand(findSubcommand(commands.NewIAMDSCommand(), "users"), "create")
	require.NotNil(t, cmd)
	assert.Equal(t, "create USER_NAME", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	for _, name := range []string{"display-name", "given-name", "family-name", "email", "tag"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}

	require.Error(t, cmd.Args(cmd, nil))
}

func TestIAMDSSingleItemCommands(t *testing.T) {
	t.Parallel()

	root := commands.NewIAMDSCommand()

	tests := []struct {
		group, name, use string
	}{
		{"users", "get", "get USER_ID"},
		{"users", "delete", "delete USER_ID"},
		{"groups", "get", "get GROUP_ID"},
		{"groups", "members", "members GROUP_ID"},
	}

	for _, tt := range tests {
		cmd := findSubcommand(findSubcommand(root, tt.group), tt.name)
		require.NotNil(t, cmd)
		assert.Equal(t, tt.use, cmd.Use)
		require.NoError(t, cmd.Args(cmd, []string{"id-1"}))
		require.Error(t, cmd.Args(cmd, []string{}))
	}
}
