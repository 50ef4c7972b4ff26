// Command backdrop-serve serves the wasm bundle and a demo page for local previews.
//
//	GOOS=js GOARCH=wasm go build -o cmd/backdrop-wasm/backdrop.wasm ./cmd/backdrop-wasm
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" cmd/backdrop-wasm/
//	go run ./cmd/backdrop-serve
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dir := flag.String("dir", filepath.Join("cmd", "backdrop-wasm"), "directory holding index.html, backdrop.wasm and wasm_exec.js")
	flag.Parse()

	// Older mime tables lack wasm, and streaming compilation requires it.
	_ = mime.AddExtensionType(".wasm", "application/wasm")

	mux := http.NewServeMux()
	files := http.FileServer(http.Dir(*dir))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.ServeFile(w, r, filepath.Join(*dir, "index.html"))
			return
		}
		w.Header().Set("Cache-Control", "no-cache")
		files.ServeHTTP(w, r)
	})

	srv := &http.Server{Addr: *addr, Handler: logRequests(mux), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Printf("serving %s on http://localhost%s", *dir, *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("server stopped")
}

func logRequests(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL.Path)
		h.ServeHTTP(w, r)
	})
}
