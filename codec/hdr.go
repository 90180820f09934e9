package codec

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/gogpu/tex"
)

// Radiance picture magic tokens. Files written by the reference tools
// start with "#?RADIANCE"; some older exporters write "#?RGBE".
const (
	hdrMagicRadiance = "#?RADIANCE"
	hdrMagicRGBE     = "#?RGBE"
)

// hdrFormatRGBE is the only pixel encoding the decoder accepts.
const hdrFormatRGBE = "32-bit_rle_rgbe"

// Adaptive RLE applies only to scanlines in this width range; anything
// else is stored flat.
const (
	hdrRLEMinWidth = 8
	hdrRLEMaxWidth = 32767
)

// hdrMaxDimension bounds the resolution line. The parsed values size the
// pixel allocation, so a hostile header must not get to pick it.
const hdrMaxDimension = 1 << 16

// DecodeHDR decodes a Radiance HDR picture into shared-exponent RGBE
// bytes. The result is a single-level RGBA8 image tagged tex.TypeRGBE;
// unpacking the exponent into linear floats is the sampler's business,
// not the decoder's.
//
// Only the standard "-Y h +X w" orientation and its "+Y" flip are
// accepted. Rotated orientations (X-major resolution strings) fail with
// ErrFormat.
//
// Scanlines are adaptively RLE-compressed when the payload opens with
// the RLE marker; otherwise the pixels are stored flat, as legacy
// writers did at any width.
func DecodeHDR(data []byte) (*tex.DecodedImage, error) {
	if !isHDR(data) {
		return nil, errors.Wrap(ErrFormat, "hdr: bad magic")
	}

	br := bytes.NewReader(data)
	r := bufio.NewReader(br)

	// Header: KEY=value lines up to the first blank line. FORMAT is the
	// only variable that matters.
	sawFormat := false
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, errors.Wrap(ErrCorrupt, "hdr: unterminated header")
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if k, v, ok := strings.Cut(line, "="); ok && strings.TrimSpace(k) == "FORMAT" {
			if strings.TrimSpace(v) != hdrFormatRGBE {
				return nil, errors.Wrapf(ErrUnsupported, "hdr: pixel format %q", strings.TrimSpace(v))
			}
			sawFormat = true
		}
	}
	if !sawFormat {
		return nil, errors.Wrap(ErrFormat, "hdr: missing FORMAT line")
	}

	resLine, err := r.ReadString('\n')
	if err != nil {
		return nil, errors.Wrap(ErrCorrupt, "hdr: missing resolution line")
	}
	width, height, flipY, err := parseHDRResolution(strings.TrimRight(resLine, "\r\n"))
	if err != nil {
		return nil, err
	}

	// Check the payload size against the header before allocating,
	// otherwise the header alone could force an enormous allocation.
	remaining := r.Buffered() + br.Len()
	pixelBytes := width * height * 4
	rle := hdrScanlinesAreRLE(r, width)
	if rle {
		// A run op covers at most 127 pixels in 2 bytes, so a scanline
		// can never compress below marker plus 4 such channel streams.
		minScanline := 4 + 8*((width+126)/127)
		if remaining < height*minScanline {
			return nil, errors.Wrap(ErrCorrupt, "hdr: truncated scanline data")
		}
	} else if remaining != pixelBytes {
		return nil, errors.Wrapf(ErrCorrupt, "hdr: flat payload is %d bytes, want %d", remaining, pixelBytes)
	}

	pixels := make([]byte, pixelBytes)
	if rle {
		err = readHDRScanlines(r, pixels, width, height)
	} else {
		err = readHDRFlat(r, pixels)
	}
	if err != nil {
		return nil, err
	}

	if flipY {
		flipScanlines(pixels, width, height)
	}

	return &tex.DecodedImage{
		Format: tex.FormatRGBA8,
		Width:  width,
		Height: height,
		Type:   tex.TypeRGBE,
		Levels: [][][]byte{{pixels}},
	}, nil
}

// parseHDRResolution reads "-Y h +X w". A "+Y" prefix means the file is
// stored bottom-up and must be flipped into top-down order.
func parseHDRResolution(line string) (width, height int, flipY bool, err error) {
	var ySign, xSign string
	n, scanErr := fmt.Sscanf(line, "%1sY %d %1sX %d", &ySign, &height, &xSign, &width)
	if scanErr != nil || n != 4 || xSign != "+" || (ySign != "-" && ySign != "+") {
		return 0, 0, false, errors.Wrapf(ErrFormat, "hdr: unsupported resolution line %q", line)
	}
	if width <= 0 || height <= 0 || width > hdrMaxDimension || height > hdrMaxDimension {
		return 0, 0, false, errors.Wrapf(ErrFormat, "hdr: invalid dimensions %dx%d", width, height)
	}
	return width, height, ySign == "+", nil
}

// hdrScanlinesAreRLE reports whether the payload opens with the adaptive
// RLE marker (2, 2, width-hi, width-lo). Legacy writers stored raw RGBE
// quadruplets even at RLE-capable widths, so the width range alone does
// not decide the layout.
func hdrScanlinesAreRLE(r *bufio.Reader, width int) bool {
	if width < hdrRLEMinWidth || width > hdrRLEMaxWidth {
		return false
	}
	head, err := r.Peek(4)
	if err != nil {
		return false
	}
	return head[0] == 2 && head[1] == 2 && head[2]&0x80 == 0
}

// readHDRFlat reads uncompressed RGBE quadruplets. The payload must be
// exactly the pixel count; trailing bytes mean a resolution mismatch.
func readHDRFlat(r *bufio.Reader, pixels []byte) error {
	if _, err := io.ReadFull(r, pixels); err != nil {
		return errors.Wrap(ErrCorrupt, "hdr: short flat pixel data")
	}
	if _, err := r.ReadByte(); err != io.EOF {
		return errors.Wrap(ErrCorrupt, "hdr: trailing bytes after flat pixel data")
	}
	return nil
}

// readHDRScanlines reads adaptively RLE-compressed scanlines. Each
// starts with the marker (2, 2, width-hi, width-lo) and stores the four
// channels planar, each a run/literal stream.
func readHDRScanlines(r *bufio.Reader, pixels []byte, width, height int) error {
	channel := make([]byte, width)
	for y := 0; y < height; y++ {
		var marker [4]byte
		if _, err := io.ReadFull(r, marker[:]); err != nil {
			return errors.Wrapf(ErrCorrupt, "hdr: scanline %d header", y)
		}
		if marker[0] != 2 || marker[1] != 2 {
			return errors.Wrapf(ErrCorrupt, "hdr: scanline %d is not adaptive RLE", y)
		}
		if int(marker[2])<<8|int(marker[3]) != width {
			return errors.Wrapf(ErrCorrupt, "hdr: scanline %d width mismatch", y)
		}

		row := pixels[y*width*4:]
		for c := 0; c < 4; c++ {
			if err := readHDRChannel(r, channel); err != nil {
				return errors.Wrapf(err, "hdr: scanline %d channel %d", y, c)
			}
			for x := 0; x < width; x++ {
				row[x*4+c] = channel[x]
			}
		}
	}
	return nil
}

// readHDRChannel decodes one planar channel of a scanline. A count byte
// above 128 repeats the next byte count-128 times; 1..128 copies that
// many literal bytes; zero is invalid.
func readHDRChannel(r *bufio.Reader, dst []byte) error {
	for x := 0; x < len(dst); {
		count, err := r.ReadByte()
		if err != nil {
			return errors.Wrap(ErrCorrupt, "truncated stream")
		}
		if count > 128 {
			n := int(count) - 128
			if x+n > len(dst) {
				return errors.Wrap(ErrCorrupt, "run overflows scanline")
			}
			v, err := r.ReadByte()
			if err != nil {
				return errors.Wrap(ErrCorrupt, "truncated run")
			}
			for ; n > 0; n-- {
				dst[x] = v
				x++
			}
		} else if count > 0 {
			n := int(count)
			if x+n > len(dst) {
				return errors.Wrap(ErrCorrupt, "literals overflow scanline")
			}
			if _, err := io.ReadFull(r, dst[x:x+n]); err != nil {
				return errors.Wrap(ErrCorrupt, "truncated literals")
			}
			x += n
		} else {
			return errors.Wrap(ErrCorrupt, "zero-length run")
		}
	}
	return nil
}

// flipScanlines reverses the vertical order of rows in place.
func flipScanlines(pixels []byte, width, height int) {
	stride := width * 4
	tmp := make([]byte, stride)
	for y := 0; y < height/2; y++ {
		top := pixels[y*stride : (y+1)*stride]
		bot := pixels[(height-1-y)*stride : (height-y)*stride]
		copy(tmp, top)
		copy(top, bot)
		copy(bot, tmp)
	}
}
