// MIT License
//
// Copyright 2018 Canonical Ledgers, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package srv

import (
	"context"
	"net/http"
	"time"

	jrpc "github.com/AdamSLevy/jsonrpc2/v14"
	"github.com/rs/cors"

	"github.com/Factom-Asset-Tokens/fiod/api"
	"github.com/Factom-Asset-Tokens/fiod/internal/flag"
	_log "github.com/Factom-Asset-Tokens/fiod/log"
	"github.com/Factom-Asset-Tokens/fiod/sdk"
)

var log _log.Log

// Start the server in its own goroutine. If ctx is canceled, the server is
// shut down and done is closed. If done is closed before ctx is canceled, an
// error occurred. Start returns nil if the server could not be started.
func Start(ctx context.Context) (done <-chan struct{}) {
	log = _log.New("srv")

	s, err := newSDK(ctx)
	if err != nil {
		runIfNotDone(ctx, func() { log.Error(err) })
		return nil
	}
	log.Infof("Signing as %v (%v)", s.Actor(), s.PublicKey())

	var m *Metrics
	if flag.Metrics {
		m = NewMetrics()
	}
	srv := http.Server{
		Addr:         flag.APIAddress,
		Handler:      NewHandler(s, m),
		WriteTimeout: flag.APITimeout + time.Second,
	}

	_done := make(chan struct{})
	go func() {
		defer close(_done)
		var err error
		if flag.HasTLS {
			err = srv.ListenAndServeTLS(flag.TLSCertFile, flag.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != http.ErrServerClosed {
			log.Errorf("srv.ListenAndServe(): %v", err)
		}
	}()
	go func() {
		select {
		case <-ctx.Done():
		case <-_done:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("srv.Shutdown(): %v", err)
		}
	}()
	return _done
}

// newSDK builds the facade from the daemon settings and, if -chainid was
// given, verifies that the node serves that chain.
func newSDK(ctx context.Context) (*sdk.SDK, error) {
	if flag.HasChainID() {
		info, err := flag.FIOClient.GetInfo(ctx)
		if err != nil {
			return nil, err
		}
		if info.ChainID != flag.ChainID {
			return nil, &chainIDError{Expected: flag.ChainID,
				Actual: info.ChainID}
		}
	}
	return sdk.New(flag.Key, flag.Key.PublicKey(),
		sdk.WithNetwork(flag.FIOClient),
		sdk.WithTPID(flag.TPID),
		sdk.WithLifetime(flag.TrxLifetime))
}

// NewHandler returns the fiod API handler for s. Metrics are served at
// /metrics unless m is nil.
func NewHandler(s *sdk.SDK, m *Metrics) http.Handler {
	jrpcHandler := jrpc.HTTPRequestHandler(methods(s, m), _log.New("jsonrpc2"))
	var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
		if flag.HasAuth {
			user, pass, ok := r.BasicAuth()
			if !ok || user != flag.Username || pass != flag.Password {
				w.Header().Set("WWW-Authenticate", `Basic realm="fiod"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
		}
		w.Header().Add(http.CanonicalHeaderKey("Fiod-Version"), flag.Revision)
		w.Header().Add(http.CanonicalHeaderKey("Fiod-Api-Version"), api.APIVersion)
		jrpcHandler(w, r)
	}

	srvMux := http.NewServeMux()
	srvMux.Handle("/", handler)
	srvMux.Handle("/v1", handler)
	if m != nil {
		srvMux.Handle("/metrics", m.Handler())
	}

	cors := cors.New(cors.Options{AllowedOrigins: []string{"*"}})
	return cors.Handler(srvMux)
}

func runIfNotDone(ctx context.Context, f func()) {
	select {
	case <-ctx.Done():
	default:
		f()
	}
}
