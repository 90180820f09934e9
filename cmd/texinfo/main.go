// Command texinfo inspects texture container files. It decodes each
// argument with the codec package and prints format, dimensions, level
// layout and the GPU memory the texture would occupy once uploaded.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gogpu/tex"
	"github.com/gogpu/tex/codec"
)

func main() {
	var (
		verbose = flag.Bool("v", false, "print per-level byte sizes")
		mipmaps = flag.Bool("mipmaps", true, "assume mipmapped sampling for the VRAM estimate")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: texinfo [-v] [-mipmaps=false] file.ktx|dds|hdr|basis ...")
		os.Exit(2)
	}

	dev := tex.NewNullDevice()
	exit := 0
	for _, name := range flag.Args() {
		if err := inspect(dev, name, *verbose, *mipmaps); err != nil {
			log.Printf("%s: %v", name, err)
			exit = 1
		}
	}
	os.Exit(exit)
}

func inspect(dev tex.Device, name string, verbose, mipmaps bool) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}

	img, err := codec.DecodeNamed(name, data)
	if img == nil {
		return err
	}
	if err != nil {
		// Degraded decode: report but keep going with the placeholder.
		log.Printf("%s: decoded with placeholder: %v", name, err)
	}

	t := tex.New(dev,
		tex.WithName(name),
		tex.WithImage(img),
		tex.WithMipmaps(mipmaps),
	)
	defer t.Destroy()

	fmt.Printf("%s: %s %dx%d", name, img.Format, img.Width, img.Height)
	if img.Cubemap {
		fmt.Print(" cubemap")
	}
	fmt.Printf(" levels=%d gpu=%d bytes\n", len(img.Levels), t.GPUSize())

	if verbose {
		for mip, faces := range img.Levels {
			w := tex.MipDimension(img.Width, mip)
			h := tex.MipDimension(img.Height, mip)
			for face, payload := range faces {
				fmt.Printf("  mip %d face %d: %dx%d %d bytes\n", mip, face, w, h, len(payload))
			}
		}
	}
	return nil
}
