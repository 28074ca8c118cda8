// Command skymap renders an all-sky chart to a PNG file.
package main

import (
	"flag"
	"image/png"
	"log"
	"math"
	"math/rand"
	"os"

	"github.com/golang/geo/s1"
	"golang.org/x/image/math/f64"

	"github.com/astroviz/skypaint"
	"github.com/astroviz/skypaint/healpix"
	"github.com/astroviz/skypaint/proj"
	"github.com/astroviz/skypaint/softrender"
)

func main() {
	var (
		width  = flag.Int("width", 800, "image width")
		height = flag.Int("height", 600, "image height")
		fov    = flag.Float64("fov", 100, "vertical field of view in degrees")
		az     = flag.Float64("az", 0, "view azimuth in degrees")
		alt    = flag.Float64("alt", 30, "view altitude in degrees")
		order  = flag.Int("order", 1, "healpix order of the tile grid")
		stars  = flag.Int("stars", 2000, "number of random stars")
		seed   = flag.Int64("seed", 1, "star field seed")
		output = flag.String("output", "skymap.png", "output file")
	)
	flag.Parse()

	rend := softrender.New(*width, *height)

	obs := skypaint.NewMatrixObserver()
	obs.LookAtView(s1.Angle(*az)*s1.Degree, s1.Angle(*alt)*s1.Degree)

	p := skypaint.NewPainter(
		skypaint.WithRenderer(rend),
		skypaint.WithObserver(obs),
		skypaint.WithProjection(proj.NewStereographic(s1.Angle(*fov)*s1.Degree, float64(*width), float64(*height))),
	)
	p.PreparePaint()
	p.RefreshClipInfo()

	drawTileGrid(p, *order)
	drawEquator(p)
	drawStars(p, *stars, *seed)
	p.FinishPaint()

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, rend.Image()); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Sky map saved to %s (%dx%d)\n", *output, *width, *height)
}

// drawTileGrid outlines every visible healpix tile at the given order.
func drawTileGrid(p *skypaint.Painter, order int) {
	grid := *p
	grid.Color = skypaint.RGBA{R: 0.3, G: 0.4, B: 0.5, A: 1}
	for pix := range healpix.NPix(order) {
		if grid.IsHealpixClipped(skypaint.FrameICRF, order, pix, true) {
			continue
		}
		if err := grid.PaintTileContour(skypaint.FrameICRF, order, pix, 4); err != nil {
			log.Fatalf("Failed to paint tile %d: %v", pix, err)
		}
	}
}

// drawEquator paints the celestial equator as a great circle polyline.
func drawEquator(p *skypaint.Painter) {
	eq := *p
	eq.Color = skypaint.RGBA{R: 0.8, G: 0.4, B: 0.2, A: 1}
	eq.Flags |= skypaint.SkipDiscontinuous

	const segs = 24
	lines := make([]f64.Vec4, 0, segs*2)
	for i := range segs {
		a := 2 * math.Pi * float64(i) / segs
		b := 2 * math.Pi * float64(i+1) / segs
		lines = append(lines,
			f64.Vec4{math.Cos(a), math.Sin(a), 0, 0},
			f64.Vec4{math.Cos(b), math.Sin(b), 0, 0},
		)
	}
	if err := eq.PaintLines(skypaint.FrameICRF, lines, nil, 4); err != nil {
		log.Fatalf("Failed to paint equator: %v", err)
	}
}

// drawStars scatters a reproducible random star field and paints the
// visible ones as sized points.
func drawStars(p *skypaint.Painter, count int, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	pts := make([]skypaint.Point2D, 0, count)
	for range count {
		z := 2*rng.Float64() - 1
		phi := 2 * math.Pi * rng.Float64()
		r := math.Sqrt(1 - z*z)
		dir := f64.Vec4{r * math.Cos(phi), r * math.Sin(phi), z, 0}

		win, ok := p.ProjectPoint(skypaint.FrameICRF, dir, true)
		if !ok {
			continue
		}
		mag := rng.Float64()
		pts = append(pts, skypaint.Point2D{
			Pos:   win,
			Size:  1 + 3*mag*mag,
			Color: skypaint.White,
		})
	}
	if err := p.Paint2DPoints(pts); err != nil {
		log.Fatalf("Failed to paint stars: %v", err)
	}
	log.Printf("Painted %d of %d stars in view", len(pts), count)
}
