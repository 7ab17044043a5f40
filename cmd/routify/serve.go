package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/mercmobily/routify/pkg/bridge"
	"github.com/mercmobily/routify/pkg/metrics"
)

func serveCmd() *cobra.Command {
	var (
		addr     string
		logLevel string
		logJSON  bool
		origins  []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo application",
		Long: `Serve the demo application: an HTML shell with the thin client
at /, the WebSocket bridge at /ws, and Prometheus metrics at
/metrics.

Examples:
  routify serve
  routify serve --addr=:3000 --log-level=debug
  routify serve --origin=https://app.example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, logLevel, logJSON, origins)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Address to listen on")
	cmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Log in JSON format")
	cmd.Flags().StringSliceVar(&origins, "origin", nil, "Allowed handshake origin (repeatable; default allows all)")

	return cmd
}

func runServe(addr, logLevel string, logJSON bool, origins []string) error {
	logger, err := buildLogger(logLevel, logJSON)
	if err != nil {
		return err
	}

	obs := metrics.New()

	config := bridge.DefaultConfig()
	config.AllowedOrigins = origins
	ws := bridge.NewServer(demoFactory(logger, obs),
		bridge.WithConfig(config),
		bridge.WithLogger(logger))

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Recoverer)
	mux.Handle("/ws", ws)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, demoHTML)
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	printBanner()
	fmt.Println()
	success("Listening on %s", addr)
	info("demo     http://localhost%s/main", addr)
	info("bridge   ws://localhost%s/ws", addr)
	info("metrics  http://localhost%s/metrics", addr)
	fmt.Println()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
	}

	fmt.Println("\n  Shutting down...")
	ws.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func buildLogger(level string, logJSON bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if logJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
}

// demoHTML is the demo shell: page sections keyed by route ID and a minimal
// thin client speaking the binary frame protocol.
const demoHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Routify demo</title>
<style>
  body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; }
  nav a { margin-right: 1rem; }
  [data-route] { display: none; padding: 1rem; border: 1px solid #ccc; margin-top: 1rem; }
  [data-route].active { display: block; }
</style>
</head>
<body>
<nav>
  <a href="/main">Main</a>
  <a href="/page-one/10">Page one</a>
  <a href="/page-about">About</a>
  <a href="/nowhere">Broken link</a>
  <a href="https://example.com/elsewhere">External</a>
</nav>
<div data-route="main"><h2>Main</h2></div>
<div data-route="page-one"><h2>Page one</h2></div>
<div data-route="page-about"><h2>About</h2></div>
<div data-route="not-found"><h2>Not found</h2></div>
<script>
(function () {
  var enc = new TextEncoder();
  var dec = new TextDecoder();

  function uvarint(n) {
    var out = [];
    while (n >= 0x80) { out.push((n & 0x7f) | 0x80); n >>>= 7; }
    out.push(n);
    return out;
  }

  function str(s) {
    var b = enc.encode(s);
    return uvarint(b.length).concat(Array.from(b));
  }

  function frame(type, payload) {
    var head = [type, 0, (payload.length >> 8) & 0xff, payload.length & 0xff];
    return new Uint8Array(head.concat(payload));
  }

  function readStr(buf, off) {
    var len = 0, shift = 0;
    for (;;) {
      var b = buf[off++];
      len |= (b & 0x7f) << shift;
      if ((b & 0x80) === 0) break;
      shift += 7;
    }
    return { value: dec.decode(buf.subarray(off, off + len)), next: off + len };
  }

  var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
  var ws = new WebSocket(proto + location.host + '/ws');
  ws.binaryType = 'arraybuffer';

  ws.onopen = function () {
    var hash = location.hash ? location.hash.slice(1) : '';
    ws.send(frame(0x00, str(location.origin).concat(str(location.pathname), str(hash))));
  };

  ws.onmessage = function (ev) {
    var buf = new Uint8Array(ev.data);
    if (buf[0] === 0x02) { // patch
      var p = buf.subarray(4);
      if (p[0] === 0x01) { // push
        var path = readStr(p, 1);
        var hash = readStr(p, path.next);
        history.pushState(null, '', path.value + (hash.value ? '#' + hash.value : ''));
      } else if (p[0] === 0x02) { // active
        var id = readStr(p, 2).value;
        document.querySelectorAll('[data-route]').forEach(function (el) {
          el.classList.toggle('active', el.dataset.route === id);
        });
      }
    } else if (buf[0] === 0x03) { // error
      var code = readStr(buf.subarray(4), 0);
      console.error('routify: server error', code.value);
    }
  };

  document.addEventListener('click', function (e) {
    var a = e.target.closest('a');
    var flags = a ? 0x01 : 0;
    if (a && a.download) flags |= 0x02;
    if (a && a.rel === 'external') flags |= 0x04;
    if (e.defaultPrevented) flags |= 0x08;
    var mods = (e.ctrlKey ? 1 : 0) | (e.shiftKey ? 2 : 0) | (e.altKey ? 4 : 0) | (e.metaKey ? 8 : 0);
    var payload = [0x01, e.button, mods, flags];
    if (a) payload = payload.concat(str(a.href), str(a.target || ''));
    ws.send(frame(0x01, payload));
    // The server decides; suppress in-page links optimistically.
    if (a && a.origin === location.origin && !a.target && !a.download) e.preventDefault();
  });

  window.addEventListener('popstate', function () {
    var hash = location.hash ? location.hash.slice(1) : '';
    ws.send(frame(0x01, [0x02].concat(str(location.pathname), str(hash))));
  });
})();
</script>
</body>
</html>
`
