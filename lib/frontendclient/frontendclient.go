package frontendclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/usecakework/monolog-viewer/lib/auth"
	cwHttp "github.com/usecakework/monolog-viewer/lib/http"
	"github.com/usecakework/monolog-viewer/lib/types"
)

var ErrUnauthorized = errors.New("not authorized to read logs; run monolog login with an admin token")

// Client talks to the viewer's JSON API.
type Client struct {
	Url                 string
	CredentialsProvider auth.CredentialsProvider
}

func New(url string, credentialsProvider auth.CredentialsProvider) *Client {
	return &Client{
		Url:                 strings.TrimRight(url, "/"),
		CredentialsProvider: credentialsProvider,
	}
}

// GetLogs fetches one page. A viewer whose log store is down answers 503 with a
// view model marked unavailable, which is returned without an error.
func (client *Client) GetLogs(ctx context.Context, req types.GetLogsRequest) (*types.TableViewModel, error) {
	query := url.Values{}
	if req.OrderBy != "" {
		query.Set("orderby", req.OrderBy)
	}
	if req.Order != "" {
		query.Set("order", req.Order)
	}
	if req.Page > 0 {
		query.Set("page", strconv.Itoa(req.Page))
	}
	if req.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(req.PerPage))
	}

	endpoint := client.Url + "/api/logs"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	res, err := cwHttp.GetV2(ctx, endpoint, client.CredentialsProvider)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK, http.StatusServiceUnavailable:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		return nil, errors.New("Failed to get logs from the viewer. " + res.Status)
	}

	var vm types.TableViewModel
	if err := json.NewDecoder(res.Body).Decode(&vm); err != nil {
		return nil, fmt.Errorf("could not decode logs response: %w", err)
	}
	return &vm, nil
}
