package session

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
)

// CallbackPath is the fixed path the backend redirects to after the
// provider flow completes.
const CallbackPath = "/auth/callback"

// WaitForCallback runs a loopback HTTP listener on addr until the backend
// redirects the browser to CallbackPath, then returns the parsed one-shot
// signal. Duplicate requests (browser refresh, prefetch) are answered but
// only the first one is delivered. The listener is torn down before
// returning so nothing leaks across attempts.
func WaitForCallback(ctx context.Context, addr string) (CallbackResult, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return CallbackResult{}, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return waitOnListener(ctx, listener)
}

func waitOnListener(ctx context.Context, listener net.Listener) (CallbackResult, error) {
	var once sync.Once
	results := make(chan CallbackResult, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(CallbackPath, func(w http.ResponseWriter, r *http.Request) {
		result := ParseCallback(r.URL.Query())

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if result.Success {
			fmt.Fprint(w, callbackSuccessPage)
		} else {
			fmt.Fprintf(w, callbackErrorPage, MessageForCode(result.ErrorCode))
		}

		once.Do(func() {
			results <- result
		})
	})

	server := &http.Server{Handler: mux}
	go func() {
		_ = server.Serve(listener)
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	select {
	case result := <-results:
		return result, nil
	case <-ctx.Done():
		return CallbackResult{}, ctx.Err()
	}
}

const callbackSuccessPage = `<!DOCTYPE html>
<html><head><title>42 Projects</title></head>
<body><h2>Authentication successful</h2>
<p>You can close this tab and return to the terminal.</p></body></html>
`

const callbackErrorPage = `<!DOCTYPE html>
<html><head><title>42 Projects</title></head>
<body><h2>Authentication error</h2>
<p>%s</p>
<p>Return to the terminal and try again.</p></body></html>
`
