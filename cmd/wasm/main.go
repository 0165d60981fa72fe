//go:build js && wasm

// Command wasm is the browser half of the portfolio. It reads the page data
// the server embedded, mounts the page state onto the document and runs
// until the page is hidden.
package main

import (
	"log"

	"github.com/Zachkp/devfolio/internal/dom"
	"github.com/Zachkp/devfolio/internal/page"
)

func main() {
	p, err := dom.ReadPortfolio("portfolio-data")
	if err != nil {
		log.Printf("[wasm] %v, falling back to plain anchors", err)
		return
	}
	registry, err := page.NewRegistry(p.Sections)
	if err != nil {
		log.Printf("[wasm] %v", err)
		return
	}
	host, err := dom.New("[data-scroll-container]")
	if err != nil {
		log.Printf("[wasm] %v", err)
		return
	}

	view := page.Mount(host, registry)
	unbind := dom.Bind(host, view, p)
	log.Printf("[wasm] mounted %d sections", registry.Len())

	done := make(chan struct{})
	host.OnPageHide(func() {
		unbind()
		view.Unmount()
		close(done)
	})
	<-done
}
