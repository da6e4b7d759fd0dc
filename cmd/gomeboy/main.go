// Command gomeboy is a minimal host: it loads a cartridge, runs a
// fixed number of frames, and writes the resulting framebuffer out as
// a PPM image. It exists to exercise internal/gameboy end-to-end, not
// as a replacement for a real windowing/audio/joypad front end.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/WDDnguyen/gomatcha/internal/cartridge"
	"github.com/WDDnguyen/gomatcha/internal/gameboy"
)

func main() {
	romPath := flag.String("rom", "", "the rom file to load")
	frames := flag.Int("frames", 60, "the number of frames to run before dumping the framebuffer")
	out := flag.String("out", "frame.ppm", "the PPM file to write the final framebuffer to")
	flag.Parse()

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "gomeboy: -rom is required")
		os.Exit(1)
	}

	cart, err := cartridge.Load(*romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gomeboy: %v\n", err)
		os.Exit(1)
	}

	gb := gameboy.NewFromCartridge(cart)
	fmt.Println(cart.Title())

	for i := 0; i < *frames; i++ {
		gb.RunFrame()
	}

	if err := writePPM(*out, gb.Framebuffer()); err != nil {
		fmt.Fprintf(os.Stderr, "gomeboy: %v\n", err)
		os.Exit(1)
	}
}

const (
	frameWidth  = 160
	frameHeight = 144
)

// writePPM writes rgb (160x144 RGB triplets, row-major by Y then X -
// exactly the order gameboy.GameBoy.Framebuffer already returns) as a
// binary PPM (P6) image. PPM needs nothing beyond a three-line header
// and the raw bytes, so it avoids pulling in image/png for a CLI whose
// only job is proving the core runs end to end.
func writePPM(path string, rgb []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "P6\n%d %d\n255\n", frameWidth, frameHeight)
	if _, err := w.Write(rgb); err != nil {
		return err
	}
	return w.Flush()
}
