//go:build js && wasm

// Command packview-wasm is the browser renderer. It fetches the hierarchy
// from the data provider, packs it into the window and drives the zoom
// controller from DOM events.
package main

import (
	"fmt"
	"net/http"
	"syscall/js"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/packview/pkg/hierarchy"
	"github.com/matzehuels/packview/pkg/pack"
)

const defaultEndpoint = "/data"

func main() {
	logger := log.NewWithOptions(consoleWriter{}, log.Options{Prefix: "packview"})

	doc := js.Global().Get("document")
	svg := doc.Call("getElementById", "chart")
	if svg.IsNull() {
		logger.Error("no #chart element")
		return
	}

	endpoint := defaultEndpoint
	if attr := svg.Call("getAttribute", "data-endpoint"); !attr.IsNull() && attr.String() != "" {
		endpoint = attr.String()
	}
	url := js.Global().Get("location").Get("origin").String() + endpoint

	win := js.Global().Get("window")
	width, height := win.Get("innerWidth").Float(), win.Get("innerHeight").Float()

	tree, layout, err := load(url, width, height)
	if err != nil {
		logger.Error("Error loading data", "url", url, "err", err)
		return
	}
	logger.Debug("packed", "nodes", tree.Len(), "width", width, "height", height)

	newChart(doc, svg, tree, layout).mount()

	// Callbacks run on this goroutine's event loop; keep the program alive.
	select {}
}

// load fetches the hierarchy and packs it. It runs before any callback is
// registered, so blocking on the fetch is safe.
func load(url string, width, height float64) (*hierarchy.Tree, *pack.Layout, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	root, err := hierarchy.ReadJSON(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	tree, err := hierarchy.New(root)
	if err != nil {
		return nil, nil, err
	}
	layout, err := pack.Compute(tree, pack.Options{Width: width, Height: height, Padding: pack.DefaultPadding})
	if err != nil {
		return nil, nil, err
	}
	return tree, layout, nil
}

// consoleWriter sends log lines to the browser console.
type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	js.Global().Get("console").Call("log", string(p))
	return len(p), nil
}
