package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/avatax-client/internal/constants"
	"github.com/fivetwenty-io/avatax-client/internal/pipeline"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
)

var groupIDParam = pipeline.ParamSpec{Name: "groupId", In: pipeline.InPath, Required: true}

var (
	listGroupsOp = &pipeline.Descriptor{
		Name:      "Groups.List",
		Method:    http.MethodGet,
		Path:      "/groups",
		Params:    listParams,
		Produces:  []string{constants.ContentTypeJSON},
		Returns:   pipeline.JSON[avatax.GroupList](),
		Responses: iamdsErrors,
	}
	getGroupOp = &pipeline.Descriptor{
		Name:      "Groups.Get",
		Method:    http.MethodGet,
		Path:      "/groups/{groupId}",
		Params:    []pipeline.ParamSpec{groupIDParam},
		Produces:  []string{constants.ContentTypeJSON},
		Returns:   pipeline.JSON[avatax.Group](),
		Responses: iamdsErrors,
	}
	listGroupMembersOp = &pipeline.Descriptor{
		Name:      "Groups.ListMembers",
		Method:    http.MethodGet,
		Path:      "/groups/{groupId}/members",
		Params:    append([]pipeline.ParamSpec{groupIDParam}, listParams...),
		Produces:  []string{constants.ContentTypeJSON},
		Returns:   pipeline.JSON[avatax.MemberList](),
		Responses: iamdsErrors,
	}
)

// GroupsClient implements avatax.GroupsClient.
type GroupsClient struct {
	pipeline *pipeline.Pipeline
}

// NewGroupsClient creates a new groups client.
func NewGroupsClient(p *pipeline.Pipeline) *GroupsClient {
	return &GroupsClient{pipeline: p}
}

func membersArgs(groupID string, opts *avatax.ListOptions) pipeline.Args {
	return pipeline.Args{
		Path:  map[string]any{"groupId": groupID},
		Query: listQuery(opts),
	}
}

// List implements avatax.GroupsClient.List.
func (c *GroupsClient) List(ctx context.Context, opts *avatax.ListOptions) (*avatax.GroupList, error) {
	return pipeline.Call[avatax.GroupList](ctx, c.pipeline, listGroupsOp, pipeline.Args{Query: listQuery(opts)})
}

// ListAsync implements avatax.GroupsClient.ListAsync.
func (c *GroupsClient) ListAsync(ctx context.Context, opts *avatax.ListOptions) *avatax.Future[*avatax.GroupList] {
	return pipeline.CallAsync[avatax.GroupList](ctx, c.pipeline, listGroupsOp, pipeline.Args{Query: listQuery(opts)})
}

// Get implements avatax.GroupsClient.Get.
func (c *GroupsClient) Get(ctx context.Context, groupID string) (*avatax.Group, error) {
	args := pipeline.Args{Path: map[string]any{"groupId": groupID}}

	return pipeline.Call[avatax.Group](ctx, c.pipeline, getGroupOp, args)
}

// GetAsync implements avatax.GroupsClient.GetAsync.
func (c *GroupsClient) GetAsync(ctx context.Context, groupID string) *avatax.Future[*avatax.Group] {
	args := pipeline.Args{Path: map[string]any{"groupId": groupID}}

	return pipeline.CallAsync[avatax.Group](ctx, c.pipeline, getGroupOp, args)
}

// ListMembers implements avatax.GroupsClient.ListMembers.
func (c *GroupsClient) ListMembers(ctx context.Context, groupID string, opts *avatax.ListOptions) (*avatax.MemberList, error) {
	return pipeline.Call[avatax.MemberList](ctx, c.pipeline, listGroupMembersOp, membersArgs(groupID, opts))
}

// ListMembersAsync implements avatax.GroupsClient.ListMembersAsync.
func (c *GroupsClient) ListMembersAsync(ctx context.Context, groupID string, opts *avatax.ListOptions) *avatax.Future[*avatax.MemberList] {
	return pipeline.CallAsync[avatax.MemberList](ctx, c.pipeline, listGroupMembersOp, membersArgs(groupID, opts))
}
