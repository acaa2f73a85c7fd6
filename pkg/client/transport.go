package client

import (
	"context"
	"net/http"

	"github.com/kittiBank/order-manage-web/pkg/client/tokenstore"
)

// retriedHeader marks a request that already went through one
// refresh-and-retry cycle.
const retriedHeader = "X-Auth-Retried"

// refresher renews the access token. Implemented by session.Manager.
type refresher interface {
	Refresh(ctx context.Context) error
}

// authTransport injects the bearer token and self-heals on token
// staleness: an expired token is refreshed before sending, and a 401
// answer earns exactly one refresh-and-retry. When refresh is
// impossible the stored session is cleared and onAuthLost fires.
type authTransport struct {
	base       http.RoundTripper
	store      *tokenstore.Store
	refresher  refresher
	onAuthLost func()
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.store.IsTokenExpired() && t.store.RefreshToken() != "" {
		if err := t.refresher.Refresh(req.Context()); err != nil {
			t.authLost()

			return nil, err
		}
	}

	authed := cloneRequest(req)
	if token := t.store.AccessToken(); token != "" {
		authed.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(authed)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized || req.Header.Get(retriedHeader) != "" {
		return resp, nil
	}

	if t.store.RefreshToken() == "" {
		t.authLost()

		return resp, nil
	}

	if err := t.refresher.Refresh(req.Context()); err != nil {
		t.authLost()

		return resp, nil
	}

	retry, err := replayableRequest(req)
	if err != nil {
		return resp, nil
	}
	resp.Body.Close()

	retry.Header.Set(retriedHeader, "1")
	retry.Header.Set("Authorization", "Bearer "+t.store.AccessToken())

	return t.base.RoundTrip(retry)
}

func (t *authTransport) authLost() {
	t.store.ClearAll()
	if t.onAuthLost != nil {
		t.onAuthLost()
	}
}

// cloneRequest shallow-copies a request with its own header map, as
// RoundTrip must not modify the caller's request.
func cloneRequest(req *http.Request) *http.Request {
	clone := req.Clone(req.Context())

	return clone
}

// replayableRequest rebuilds a request whose body can be sent again.
func replayableRequest(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.Body == nil || req.GetBody == nil {
		return clone, nil
	}

	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	clone.Body = body

	return clone, nil
}
