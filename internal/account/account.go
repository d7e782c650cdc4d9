// Package account pairs an API client with the session it is bound to. The
// web server opens one per request over cookie storage; the terminal client
// opens one per invocation over a file.
package account

import (
	"log/slog"
	"net/http"

	"github.com/nfrund/healthtrack/internal/apiclient"
	"github.com/nfrund/healthtrack/internal/pubsub"
	"github.com/nfrund/healthtrack/internal/session"
)

// Account is a bound client and session.
type Account struct {
	API     *apiclient.Client
	Session *session.Manager
}

// Factory holds what every Account shares.
type Factory struct {
	BaseURL   string
	HTTP      *http.Client
	Observer  apiclient.Observer
	Publisher pubsub.Publisher
}

// Open builds an Account over storage. The session is not resolved yet.
func (f *Factory) Open(storage session.Storage, logger *slog.Logger, opts ...session.Option) *Account {
	if logger == nil {
		logger = slog.Default()
	}
	clientOpts := []apiclient.Option{apiclient.WithLogger(logger)}
	if f.HTTP != nil {
		clientOpts = append(clientOpts, apiclient.WithHTTPClient(f.HTTP))
	}
	if f.Observer != nil {
		clientOpts = append(clientOpts, apiclient.WithObserver(f.Observer))
	}
	api := apiclient.New(f.BaseURL, clientOpts...)

	sessOpts := []session.Option{session.WithLogger(logger)}
	if f.Publisher != nil {
		sessOpts = append(sessOpts, session.WithPublisher(f.Publisher))
	}
	mgr := session.NewManager(api, storage, append(sessOpts, opts...)...)
	api.Bind(mgr)
	return &Account{API: api, Session: mgr}
}
