package crewdesk

import (
	"context"
	"net/http"

	"github.com/solasystems/crewdesk/api"
)

// SignupRequest is the payload for registering a new account.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
	Gender   string `json:"gender"`
}

type AuthClient interface {
	// Login exchanges credentials for a token pair. It does not persist
	// anything; that is the caller's concern.
	Login(ctx context.Context, email, password string) (TokenPair, error)
	// Signup registers a new account. It does NOT authenticate the new
	// account; an explicit login must follow.
	Signup(ctx context.Context, signup SignupRequest) (User, error)
	// Refresh exchanges a refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	// Logout asks the server to revoke the given refresh token.
	Logout(ctx context.Context, refreshToken string) error
}

type authClient struct {
	gateway *api.Gateway
}

func NewAuthClient(gateway *api.Gateway) AuthClient {
	return &authClient{
		gateway: gateway,
	}
}

func (a *authClient) Login(
	ctx context.Context,
	email string,
	password string,
) (TokenPair, error) {
	tokens := TokenPair{}
	return tokens, a.gateway.ExecuteRequest(
		ctx,
		api.Request{
			Method: http.MethodPost,
			Path:   "auth/login",
			ReqBodyObj: struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}{
				Email:    email,
				Password: password,
			},
			SuccessCode:     http.StatusOK,
			RespObj:         &tokens,
			Unauthenticated: true,
		},
	)
}

func (a *authClient) Signup(
	ctx context.Context,
	signup SignupRequest,
) (User, error) {
	respObj := struct {
		Data User `json:"data"`
	}{}
	return respObj.Data, a.gateway.ExecuteRequest(
		ctx,
		api.Request{
			Method:          http.MethodPost,
			Path:            "auth/signup",
			ReqBodyObj:      signup,
			SuccessCode:     http.StatusCreated,
			RespObj:         &respObj,
			Unauthenticated: true,
		},
	)
}

func (a *authClient) Refresh(
	ctx context.Context,
	refreshToken string,
) (TokenPair, error) {
	tokens := TokenPair{}
	return tokens, a.gateway.ExecuteRequest(
		ctx,
		api.Request{
			Method: http.MethodPost,
			Path:   "auth/refresh-token",
			ReqBodyObj: struct {
				RefreshToken string `json:"refreshToken"`
			}{
				RefreshToken: refreshToken,
			},
			SuccessCode:     http.StatusOK,
			RespObj:         &tokens,
			Unauthenticated: true,
		},
	)
}

func (a *authClient) Logout(ctx context.Context, refreshToken string) error {
	return a.gateway.ExecuteRequest(
		ctx,
		api.Request{
			Method: http.MethodPost,
			Path:   "auth/logout",
			ReqBodyObj: struct {
				RefreshToken string `json:"refreshToken"`
			}{
				RefreshToken: refreshToken,
			},
			SuccessCode: http.StatusOK,
		},
	)
}
