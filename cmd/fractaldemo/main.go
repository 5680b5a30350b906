// Command fractaldemo renders a Sierpinski triangle over a gradient
// background and saves it as a PNG.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/render"
)

func main() {
	var (
		depth       = flag.Int("depth", fractal.DefaultMaxDepth, "subdivision depth")
		width       = flag.Int("width", 800, "image width")
		height      = flag.Int("height", 800, "image height")
		supersample = flag.Int("supersample", 1, "supersampling factor (1 = off)")
		output      = flag.String("output", "fractal.png", "output file")
		verbose     = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		fractal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	scene := fractal.NewScene(*depth)
	fractal.Logger().Debug("scene built",
		"depth", *depth,
		"vertices", scene.VertexCount())

	var renderer render.Renderer
	if *supersample > 1 {
		renderer = render.NewSupersampledRenderer(*supersample)
	} else {
		renderer = render.NewSoftwareRenderer()
	}

	target := render.NewPixmapTarget(*width, *height)
	if err := renderer.Render(target, scene); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if err := target.Pixmap().SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Fractal saved to %s (%dx%d, depth %d)\n", *output, *width, *height, *depth)
}
