package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/solasystems/crewdesk/claims"
	"github.com/solasystems/crewdesk/meta"
)

// TokenStore is the persisted-credential capability the gateway depends on.
// *storage.SessionStore satisfies it.
type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	StoreTokens(accessToken, refreshToken string) error
	DropTokens() error
	ClearAll() error
}

// Gateway executes API requests, transparently attaching bearer credentials
// and refreshing an expired access token before a call proceeds. An
// unauthorized response purges all persisted session state since that path
// assumes the session is unrecoverable.
type Gateway struct {
	APIAddress string
	HTTPClient *http.Client
	Tokens     TokenStore

	// Concurrent callers that find the access token expired coalesce onto a
	// single refresh call rather than racing duplicate refreshes.
	refreshGroup singleflight.Group
}

func (g *Gateway) ExecuteRequest(ctx context.Context, apiReq Request) error {
	resp, err := g.SubmitRequest(ctx, apiReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if apiReq.RespObj != nil {
		respBodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return errors.Wrap(err, "error reading response body")
		}
		if err := json.Unmarshal(respBodyBytes, apiReq.RespObj); err != nil {
			return errors.Wrap(err, "error unmarshaling response body")
		}
	}
	return nil
}

func (g *Gateway) SubmitRequest(
	ctx context.Context,
	apiReq Request,
) (*http.Response, error) {
	var reqBodyReader io.Reader
	if apiReq.ReqBodyObj != nil {
		switch rb := apiReq.ReqBodyObj.(type) {
		case []byte:
			reqBodyReader = bytes.NewBuffer(rb)
		default:
			reqBodyBytes, err := json.Marshal(apiReq.ReqBodyObj)
			if err != nil {
				return nil, errors.Wrap(err, "error marshaling request body")
			}
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequestWithContext(
		ctx,
		apiReq.Method,
		fmt.Sprintf("%s/%s", g.APIAddress, apiReq.Path),
		reqBodyReader,
	)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error creating request %s %s",
			apiReq.Method,
			apiReq.Path,
		)
	}
	if len(apiReq.QueryParams) > 0 {
		q := req.URL.Query()
		for k, v := range apiReq.QueryParams {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	for k, v := range apiReq.Headers {
		req.Header.Add(k, v)
	}
	if !apiReq.Unauthenticated {
		if token := g.bearerToken(ctx); token != "" {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		}
	}

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "error invoking API")
	}

	if (apiReq.SuccessCode == 0 && resp.StatusCode != http.StatusOK) ||
		(apiReq.SuccessCode != 0 && resp.StatusCode != apiReq.SuccessCode) {
		defer resp.Body.Close()
		if resp.StatusCode == http.StatusUnauthorized {
			// The session is unrecoverable. Purge every persisted artifact,
			// the biometric flag included.
			if err := g.Tokens.ClearAll(); err != nil {
				glog.Warningf("error purging session state: %s", err)
			}
		}
		// HTTP response code hints at what sort of error might be in the body
		// of the response
		var apiErr error
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			apiErr = &meta.ErrAuthentication{}
		case http.StatusForbidden:
			apiErr = &meta.ErrAuthorization{}
		case http.StatusBadRequest:
			apiErr = &meta.ErrBadRequest{}
		case http.StatusNotFound:
			apiErr = &meta.ErrNotFound{}
		case http.StatusConflict:
			apiErr = &meta.ErrConflict{}
		case http.StatusInternalServerError:
			apiErr = &meta.ErrInternalServer{}
		default:
			apiErr = &meta.ErrUnexpectedResponse{StatusCode: resp.StatusCode}
		}
		if bodyBytes, err := io.ReadAll(resp.Body); err == nil &&
			len(bodyBytes) > 0 {
			// A body that isn't the expected {"message": ...} shape leaves
			// the error's fallback text in place.
			json.Unmarshal(bodyBytes, apiErr) // nolint: errcheck
		}
		return nil, apiErr
	}
	return resp, nil
}

// bearerToken returns a credential to attach to an authenticated request,
// or an empty string if no usable credential can be obtained. In that case
// the call proceeds uncredentialed and fails naturally.
//
// Refresh is attempted at most once per call. There is no refresh-retry
// loop.
func (g *Gateway) bearerToken(ctx context.Context) string {
	accessToken := g.Tokens.AccessToken()
	if accessToken != "" && !claims.IsExpired(accessToken) {
		return accessToken
	}
	refreshToken := g.Tokens.RefreshToken()
	if refreshToken == "" {
		return ""
	}
	newToken, err, _ := g.refreshGroup.Do("refresh", func() (interface{}, error) {
		return g.refreshTokens(ctx, refreshToken)
	})
	if err != nil {
		glog.Warningf("error refreshing expired access token: %s", err)
		if err := g.Tokens.DropTokens(); err != nil {
			glog.Warningf("error removing unusable tokens: %s", err)
		}
		return ""
	}
	return newToken.(string)
}

// refreshTokens exchanges the refresh token for a new pair, persists it, and
// returns the new access token.
func (g *Gateway) refreshTokens(
	ctx context.Context,
	refreshToken string,
) (string, error) {
	tokens := struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}{}
	if err := g.ExecuteRequest(
		ctx,
		Request{
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
	); err != nil {
		return "", err
	}
	if err := g.Tokens.StoreTokens(
		tokens.AccessToken,
		tokens.RefreshToken,
	); err != nil {
		return "", err
	}
	return tokens.AccessToken, nil
}
