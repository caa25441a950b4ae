package client

import (
	"net/http"

	"github.com/fivetwenty-io/avatax-client/internal/pipeline"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
)

// listParams are the paging and filtering query parameters shared by every
// IAMDS list operation.
var listParams = []pipeline.ParamSpec{
	{Name: "$filter", In: pipeline.InQuery},
	{Name: "$top", In: pipeline.InQuery},
	{Name: "$skip", In: pipeline.InQuery},
	{Name: "$orderBy", In: pipeline.InQuery},
	{Name: "count", In: pipeline.InQuery},
	{Name: "tags[]", In: pipeline.InQuery, Collection: true},
}

var iamdsErrors = map[int]pipeline.Decode{
	http.StatusBadRequest: pipeline.JSON[avatax.IAMDSError](),
	http.StatusNotFound:   pipeline.JSON[avatax.IAMDSError](),
	http.StatusConflict:   pipeline.JSON[avatax.IAMDSError](),
}

// listQuery maps opts onto the list query parameters, leaving zero values out.
func listQuery(opts *avatax.ListOptions) map[string]any {
	query := map[string]any{}
	if opts == nil {
		return query
	}

	if opts.Filter != "" {
		query["$filter"] = opts.Filter
	}

	if opts.Top > 0 {
		query["$top"] = opts.Top
	}

	if opts.Skip > 0 {
		query["$skip"] = opts.Skip
	}

	if opts.OrderBy != "" {
		query["$orderBy"] = opts.OrderBy
	}

	if opts.Count {
		query["count"] = true
	}

	if len(opts.Tags) > 0 {
		query["tags[]"] = opts.Tags
	}

	return query
}

// IAMDSClient implements avatax.IAMDSClient.
type IAMDSClient struct {
	users  *UsersClient
	groups *GroupsClient
}

// NewIAMDSClient creates a new IAMDS client.
func NewIAMDSClient(p *pipeline.Pipeline) *IAMDSClient {
	return &IAMDSClient{
		users:  NewUsersClient(p),
		groups: NewGroupsClient(p),
	}
}

// Users implements avatax.IAMDSClient.Users.
func (c *IAMDSClient) Users() avatax.UsersClient {
	return c.users
}

// Groups implements avatax.IAMDSClient.Groups.
func (c *IAMDSClient) Groups() avatax.GroupsClient {
	return c.groups
}
