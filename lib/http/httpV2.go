package http

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/usecakework/monolog-viewer/lib/auth"
)

// GetV2 issues an authenticated GET.
func GetV2(ctx context.Context, url string, provider auth.CredentialsProvider) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Add("Accept", "application/json")

	return CallHttpAuthedV2(req, provider)
}

// takes *http.Request, does perform auth
func CallHttpAuthedV2(req *http.Request, provider auth.CredentialsProvider) (*http.Response, error) {
	creds, err := provider.GetCredentials()
	if err != nil {
		return nil, err
	}

	if creds.Type == auth.TypeBearer {
		log.Debug("Adding bearer token to header")
		req.Header.Add("Authorization", "Bearer "+creds.AccessToken)
	} else {
		log.Debug("No credentials configured; request will not be authed")
	}

	return CallHttpV2(req)
}

// takes *http.Request, does not perform auth
// remember to close the body when you use this
func CallHttpV2(req *http.Request) (*http.Response, error) {
	log.Debug(PrettyPrintRequest(req))
	client := http.Client{
		Timeout: time.Second * 60,
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	log.Debug(PrettyPrintResponse(res))
	return res, nil
}
