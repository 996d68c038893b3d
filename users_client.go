package crewdesk

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/solasystems/crewdesk/api"
)

// ProfileUpdate is the payload for a self-service profile edit.
type ProfileUpdate struct {
	Fullname string `json:"fullname"`
	Gender   string `json:"gender"`
}

// CreateUserRequest is the payload for an admin creating a user directly.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	Password string `json:"password"`
	Gender   string `json:"gender"`
	Role     Role   `json:"role"`
}

// UpdateUserRequest is the payload for an admin editing a user. Password is
// optional; when empty it is omitted and the user's password is unchanged.
type UpdateUserRequest struct {
	Fullname string `json:"fullname"`
	Gender   string `json:"gender"`
	Role     Role   `json:"role"`
	Password string `json:"password,omitempty"`
}

// UsersSelector narrows a directory listing.
type UsersSelector struct {
	Search string
	Role   Role
}

// ListOptions selects one page of a listing. Zero values defer to server
// defaults.
type ListOptions struct {
	Page  int
	Limit int
}

type UsersClient interface {
	// Profile fetches the authenticated user's own profile.
	Profile(ctx context.Context) (User, error)
	// UpdateProfile edits the authenticated user's own profile.
	UpdateProfile(ctx context.Context, update ProfileUpdate) (User, error)
	// List pages through the user directory. Requires the EMPLOYEE or ADMIN
	// role; the server enforces this.
	List(
		ctx context.Context,
		selector UsersSelector,
		opts ListOptions,
	) (UserList, error)
	// Get fetches a single user by ID.
	Get(ctx context.Context, id string) (User, error)
	// Create creates a user. Requires the ADMIN role.
	Create(ctx context.Context, create CreateUserRequest) (User, error)
	// Update edits a user. Requires the ADMIN role.
	Update(
		ctx context.Context,
		id string,
		update UpdateUserRequest,
	) (User, error)
}

type usersClient struct {
	gateway *api.Gateway
}

func NewUsersClient(gateway *api.Gateway) UsersClient {
	return &usersClient{
		gateway: gateway,
	}
}

func (u *usersClient) Profile(ctx context.Context) (User, error) {
	respObj := struct {
		Data User `json:"data"`
	}{}
	return respObj.Data, u.gateway.ExecuteRequest(
		ctx,
		api.Request{
			Method:      http.MethodGet,
			Path:        "users/profile",
			SuccessCode: http.StatusOK,
			RespObj:     &respObj,
		},
	)
}

func (u *usersClient) UpdateProfile(
	ctx context.Context,
	update ProfileUpdate,
) (User, error) {
	respObj := struct {
		Data User `json:"data"`
	}{}
	return respObj.Data, u.gateway.ExecuteRequest(
		ctx,
		api.Request{
			Method:      http.MethodPut,
			Path:        "users/profile",
			ReqBodyObj:  update,
			SuccessCode: http.StatusOK,
			RespObj:     &respObj,
		},
	)
}

func (u *usersClient) List(
	ctx context.Context,
	selector UsersSelector,
	opts ListOptions,
) (UserList, error) {
	queryParams := map[string]string{}
	if opts.Page > 0 {
		queryParams["page"] = strconv.Itoa(opts.Page)
	}
	if opts.Limit > 0 {
		queryParams["limit"] = strconv.Itoa(opts.Limit)
	}
	if selector.Search != "" {
		queryParams["search"] = selector.Search
	}
	if selector.Role != "" {
		queryParams["role"] = string(selector.Role)
	}
	userList := UserList{}
	return userList, u.gateway.ExecuteRequest(
		ctx,
		api.Request{
			Method:      http.MethodGet,
			Path:        "users",
			QueryParams: queryParams,
			SuccessCode: http.StatusOK,
			RespObj:     &userList,
		},
	)
}

func (u *usersClient) Get(ctx context.Context, id string) (User, error) {
	respObj := struct {
		Data User `json:"data"`
	}{}
	return respObj.Data, u.gateway.ExecuteRequest(
		ctx,
		api.Request{
			Method:      http.MethodGet,
			Path:        fmt.Sprintf("users/%s", id),
			SuccessCode: http.StatusOK,
			RespObj:     &respObj,
		},
	)
}

func (u *usersClient) Create(
	ctx context.Context,
	create CreateUserRequest,
) (User, error) {
	respObj := struct {
		Data User `json:"data"`
	}{}
	return respObj.Data, u.gateway.ExecuteRequest(
		ctx,
		api.Request{
			Method:      http.MethodPost,
			Path:        "users",
			ReqBodyObj:  create,
			SuccessCode: http.StatusCreated,
			RespObj:     &respObj,
		},
	)
}

func (u *usersClient) Update(
	ctx context.Context,
	id string,
	update UpdateUserRequest,
) (User, error) {
	respObj := struct {
		Data User `json:"data"`
	}{}
	return respObj.Data, u.gateway.ExecuteRequest(
		ctx,
		api.Request{
			Method:      http.MethodPut,
			Path:        fmt.Sprintf("users/%s", id),
			ReqBodyObj:  update,
			SuccessCode: http.StatusOK,
			RespObj:     &respObj,
		},
	)
}
