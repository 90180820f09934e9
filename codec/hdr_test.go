package codec

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/gogpu/tex"
)

// writeHDRHeader emits the magic, FORMAT variable and resolution line.
func writeHDRHeader(buf *bytes.Buffer, width, height int, ySign string) {
	fmt.Fprintf(buf, "%s\n", hdrMagicRadiance)
	fmt.Fprintf(buf, "FORMAT=%s\n", hdrFormatRGBE)
	fmt.Fprintf(buf, "\n")
	fmt.Fprintf(buf, "%sY %d +X %d\n", ySign, height, width)
}

// encodeHDRChannel writes one planar channel as runs and literals,
// mirroring what the decoder accepts.
func encodeHDRChannel(buf *bytes.Buffer, data []byte) {
	for x := 0; x < len(data); {
		// Measure the run starting at x.
		run := 1
		for x+run < len(data) && data[x+run] == data[x] && run < 127 {
			run++
		}
		if run >= 4 {
			buf.WriteByte(byte(128 + run))
			buf.WriteByte(data[x])
			x += run
			continue
		}
		// Literals up to the next run worth encoding.
		lit := run
		for x+lit < len(data) && lit < 128 {
			r := 1
			for x+lit+r < len(data) && data[x+lit+r] == data[x+lit] && r < 4 {
				r++
			}
			if r >= 4 {
				break
			}
			lit++
		}
		buf.WriteByte(byte(lit))
		buf.Write(data[x : x+lit])
		x += lit
	}
}

// encodeHDRScanline writes one RLE scanline: marker plus 4 channels.
func encodeHDRScanline(buf *bytes.Buffer, row []byte, width int) {
	buf.Write([]byte{2, 2, byte(width >> 8), byte(width & 0xFF)})
	channel := make([]byte, width)
	for c := 0; c < 4; c++ {
		for x := 0; x < width; x++ {
			channel[x] = row[x*4+c]
		}
		encodeHDRChannel(buf, channel)
	}
}

// testPattern fills a deterministic RGBE pixel grid.
func testPattern(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	for i := range pixels {
		switch {
		case i%4 == 3:
			pixels[i] = 128 // shared exponent
		case i/4%7 == 0:
			pixels[i] = 200 // inject runs
		default:
			pixels[i] = byte(i * 13)
		}
	}
	return pixels
}

func TestDecodeHDRRLE(t *testing.T) {
	const width, height = 16, 4
	want := testPattern(width, height)

	var buf bytes.Buffer
	writeHDRHeader(&buf, width, height, "-")
	for y := 0; y < height; y++ {
		encodeHDRScanline(&buf, want[y*width*4:(y+1)*width*4], width)
	}

	img, err := DecodeHDR(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeHDR: %v", err)
	}
	if img.Format != tex.FormatRGBA8 || img.Type != tex.TypeRGBE {
		t.Errorf("format/type = %v/%v, want RGBA8/RGBE", img.Format, img.Type)
	}
	if img.Width != width || img.Height != height {
		t.Errorf("dimensions = %dx%d, want %dx%d", img.Width, img.Height, width, height)
	}
	if !bytes.Equal(img.Levels[0][0], want) {
		t.Error("RLE pixels do not round-trip")
	}
}

func TestDecodeHDRFlipY(t *testing.T) {
	const width, height = 16, 4
	stored := testPattern(width, height)

	var buf bytes.Buffer
	writeHDRHeader(&buf, width, height, "+")
	for y := 0; y < height; y++ {
		encodeHDRScanline(&buf, stored[y*width*4:(y+1)*width*4], width)
	}

	img, err := DecodeHDR(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeHDR: %v", err)
	}
	stride := width * 4
	for y := 0; y < height; y++ {
		got := img.Levels[0][0][y*stride : (y+1)*stride]
		want := stored[(height-1-y)*stride : (height-y)*stride]
		if !bytes.Equal(got, want) {
			t.Errorf("row %d not flipped", y)
		}
	}
}

func TestDecodeHDRFlat(t *testing.T) {
	// Width below the RLE threshold forces the flat path.
	const width, height = 4, 4
	want := testPattern(width, height)

	var buf bytes.Buffer
	writeHDRHeader(&buf, width, height, "-")
	buf.Write(want)

	img, err := DecodeHDR(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeHDR: %v", err)
	}
	if !bytes.Equal(img.Levels[0][0], want) {
		t.Error("flat pixels do not round-trip")
	}
}

func TestDecodeHDRFlatRLEWidth(t *testing.T) {
	// Width inside the RLE range, but the payload carries no scanline
	// markers: a legacy flat file that must decode raw.
	const width, height = 16, 2
	want := testPattern(width, height)

	var buf bytes.Buffer
	writeHDRHeader(&buf, width, height, "-")
	buf.Write(want)

	img, err := DecodeHDR(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeHDR: %v", err)
	}
	if !bytes.Equal(img.Levels[0][0], want) {
		t.Error("flat pixels do not round-trip")
	}
}

func TestDecodeHDRFlatTrailingBytes(t *testing.T) {
	const width, height = 4, 4

	var buf bytes.Buffer
	writeHDRHeader(&buf, width, height, "-")
	buf.Write(testPattern(width, height))
	buf.WriteByte(0)

	if _, err := DecodeHDR(buf.Bytes()); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("err = %v, want ErrCorrupt", err)
	}
}

func TestDecodeHDRTruncatedScanlines(t *testing.T) {
	// A lone valid marker cannot carry ten scanlines of channel data.
	const width, height = 16, 10

	var buf bytes.Buffer
	writeHDRHeader(&buf, width, height, "-")
	buf.Write([]byte{2, 2, 0, width})

	if _, err := DecodeHDR(buf.Bytes()); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("err = %v, want ErrCorrupt", err)
	}
}

func TestDecodeHDRCorruptScanline(t *testing.T) {
	const width, height = 16, 10
	pattern := testPattern(width, height)

	var buf bytes.Buffer
	writeHDRHeader(&buf, width, height, "-")
	for y := 0; y < 3; y++ {
		encodeHDRScanline(&buf, pattern[y*width*4:(y+1)*width*4], width)
	}
	// Scanline 3 claims the wrong width in its marker.
	buf.Write([]byte{2, 2, 0, byte(width + 1)})

	if _, err := DecodeHDR(buf.Bytes()); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("err = %v, want ErrCorrupt", err)
	}
}

func TestDecodeHDRRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{
			name: "bad magic",
			data: "P6\n4 4\n255\n",
			want: ErrFormat,
		},
		{
			name: "missing format",
			data: "#?RADIANCE\nEXPOSURE=1.0\n\n-Y 4 +X 4\n",
			want: ErrFormat,
		},
		{
			name: "xyze format",
			data: "#?RADIANCE\nFORMAT=32-bit_rle_xyze\n\n-Y 4 +X 4\n",
			want: ErrUnsupported,
		},
		{
			name: "rotated orientation",
			data: "#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n+X 4 -Y 4\n",
			want: ErrFormat,
		},
		{
			name: "oversized dimensions",
			data: "#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y 3000000000 +X 3000000000\n",
			want: ErrFormat,
		},
		{
			name: "short flat data",
			data: "#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y 4 +X 4\nabc",
			want: ErrCorrupt,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeHDR([]byte(tt.data)); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
