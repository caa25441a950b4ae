package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/avatax-client/internal/constants"
	"github.com/fivetwenty-io/avatax-client/internal/pipeline"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
)

var userIDParam = pipeline.ParamSpec{Name: "userId", In: pipeline.InPath, Required: true}

var (
	listUsersOp = &pipeline.Descriptor{
		Name:      "Users.List",
		Method:    http.MethodGet,
		Path:      "/users",
		Params:    listParams,
		Produces:  []string{constants.ContentTypeJSON},
		Returns:   pipeline.JSON[avatax.UserList](),
		Responses: iamdsErrors,
	}
	getUserOp = &pipeline.Descriptor{
		Name:      "Users.Get",
		Method:    http.MethodGet,
		Path:      "/users/{userId}",
		Params:    []pipeline.ParamSpec{userIDParam},
		Produces:  []string{constants.ContentTypeJSON},
		Returns:   pipeline.JSON[avatax.User](),
		Responses: iamdsErrors,
	}
	createUserOp = &pipeline.Descriptor{
		Name:      "Users.Create",
		Method:    http.MethodPost,
		Path:      "/users",
		Params:    []pipeline.ParamSpec{{Name: "user", In: pipeline.InBody, Required: true}},
		Consumes:  []string{constants.ContentTypeJSON},
		Produces:  []string{constants.ContentTypeJSON},
		Returns:   pipeline.JSON[avatax.User](),
		Responses: iamdsErrors,
	}
	deleteUserOp = &pipeline.Descriptor{
		Name:      "Users.Delete",
		Method:    http.MethodDelete,
		Path:      "/users/{userId}",
		Params:    []pipeline.ParamSpec{userIDParam},
		Produces:  []string{constants.ContentTypeJSON},
		Returns:   pipeline.Empty(),
		Responses: iamdsErrors,
	}
)

// UsersClient implements avatax.UsersClient.
type UsersClient struct {
	pipeline *pipeline.Pipeline
}

// NewUsersClient creates a new users client.
func NewUsersClient(p *pipeline.Pipeline) *UsersClient {
	return &UsersClient{pipeline: p}
}

func userPath(userID string) pipeline.Args {
	return pipeline.Args{Path: map[string]any{"userId": userID}}
}

// List implements avatax.UsersClient.List.
func (c *UsersClient) List(ctx context.Context, opts *avatax.ListOptions) (*avatax.UserList, error) {
	return pipeline.Call[avatax.UserList](ctx, c.pipeline, listUsersOp, pipeline.Args{Query: listQuery(opts)})
}

// ListAsync implements avatax.UsersClient.ListAsync.
func (c *UsersClient) ListAsync(ctx context.Context, opts *avatax.ListOptions) *avatax.Future[*avatax.UserList] {
	return pipeline.CallAsync[avatax.UserList](ctx, c.pipeline, listUsersOp, pipeline.Args{Query: listQuery(opts)})
}

// Get implements avatax.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, userID string) (*avatax.User, error) {
	return pipeline.Call[avatax.User](ctx, c.pipeline, getUserOp, userPath(userID))
}

// GetAsync implements avatax.UsersClient.GetAsync.
func (c *UsersClient) GetAsync(ctx context.Context, userID string) *avatax.Future[*avatax.User] {
	return pipeline.CallAsync[avatax.User](ctx, c.pipeline, getUserOp, userPath(userID))
}

// Create implements avatax.UsersClient.Create.
func (c *UsersClient) Create(ctx context.Context, user *avatax.User) (*avatax.User, error) {
	return pipeline.Call[avatax.User](ctx, c.pipeline, createUserOp, pipeline.Args{Body: user})
}

// CreateAsync implements avatax.UsersClient.CreateAsync.
func (c *UsersClient) CreateAsync(ctx context.Context, user *avatax.User) *avatax.Future[*avatax.User] {
	return pipeline.CallAsync[avatax.User](ctx, c.pipeline, createUserOp, pipeline.Args{Body: user})
}

// Delete implements avatax.UsersClient.Delete.
func (c *UsersClient) Delete(ctx context.Context, userID string) error {
	return pipeline.Exec(ctx, c.pipeline, deleteUserOp, userPath(userID))
}

// DeleteAsync implements avatax.UsersClient.DeleteAsync.
func (c *UsersClient) DeleteAsync(ctx context.Context, userID string) *avatax.Future[avatax.Empty] {
	return pipeline.ExecAsync(ctx, c.pipeline, deleteUserOp, userPath(userID))
}
