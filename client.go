package crewdesk

import (
	"crypto/tls"
	"net/http"

	"github.com/solasystems/crewdesk/api"
)

type Client interface {
	Auth() AuthClient
	Users() UsersClient
}

type client struct {
	authClient  AuthClient
	usersClient UsersClient
}

// NewClient returns a client for the given API server. All authenticated
// calls read their bearer credential from the given token store; an expired
// access token is transparently refreshed before a call proceeds.
func NewClient(
	apiAddress string,
	tokens api.TokenStore,
	allowInsecure bool,
) Client {
	gateway := &api.Gateway{
		APIAddress: apiAddress,
		Tokens:     tokens,
		HTTPClient: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: allowInsecure,
				},
			},
		},
	}
	return &client{
		authClient:  NewAuthClient(gateway),
		usersClient: NewUsersClient(gateway),
	}
}

func (c *client) Auth() AuthClient {
	return c.authClient
}

func (c *client) Users() UsersClient {
	return c.usersClient
}
