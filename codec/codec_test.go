package codec

import (
	"bytes"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"

	"github.com/gogpu/tex"
)

func TestDecodeDispatch(t *testing.T) {
	rgba := bytes.Repeat([]byte{0x11}, tex.FormatRGBA8.LevelByteSize(4, 4))

	var hdr bytes.Buffer
	writeHDRHeader(&hdr, 4, 4, "-")
	hdr.Write(testPattern(4, 4))

	tests := []struct {
		name   string
		data   []byte
		format tex.PixelFormat
	}{
		{
			name:   "ktx",
			data:   buildKTX(t, 0x8058, 4, 4, 0, 0, 1, [][][]byte{{rgba}}),
			format: tex.FormatRGBA8,
		},
		{
			name:   "dds",
			data:   buildDDS(t, 4, 4, 1, 4, fourCC("DXT1"), 0, 0, bytes.Repeat([]byte{0}, 8)),
			format: tex.FormatDXT1,
		},
		{
			name:   "hdr",
			data:   hdr.Bytes(),
			format: tex.FormatRGBA8,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(tt.data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if img.Format != tt.format {
				t.Errorf("format = %v, want %v", img.Format, tt.format)
			}
		})
	}
}

func TestDecodeBasisDispatch(t *testing.T) {
	RegisterTranscoder(&fakeTranscoder{})
	defer RegisterTranscoder(nil)

	img, err := Decode(basisBlob(), WithCapabilities(tex.Capabilities{SupportsDXT: true}))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Format != tex.FormatDXT5 {
		t.Errorf("format = %v, want DXT5", img.Format)
	}
}

func TestDecodeGzipWrapped(t *testing.T) {
	rgba := bytes.Repeat([]byte{0x22}, tex.FormatRGBA8.LevelByteSize(4, 4))
	ktx := buildKTX(t, 0x8058, 4, 4, 0, 0, 1, [][][]byte{{rgba}})

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(ktx); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	img, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Format != tex.FormatRGBA8 {
		t.Errorf("format = %v, want RGBA8", img.Format)
	}
	if !bytes.Equal(img.Levels[0][0], rgba) {
		t.Error("gzip-wrapped payload does not round-trip")
	}
}

func TestDecodeUnknown(t *testing.T) {
	img, err := Decode([]byte("certainly not a texture container"))
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("err = %v, want ErrFormat", err)
	}
	if img != nil {
		t.Error("image should be nil")
	}
}

func TestDecodeNamedFallback(t *testing.T) {
	// A damaged magic word defeats sniffing; the extension must still
	// route the buffer to the DDS decoder, whose error names the format
	// instead of the generic unknown-container one.
	payload := bytes.Repeat([]byte{0}, 8)
	data := buildDDS(t, 4, 4, 1, 4, fourCC("DXT1"), 0, 0, payload)
	data[3] = 'X'

	_, err := DecodeNamed("asset.dds", data)
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("err = %v, want ErrFormat", err)
	}
	if !bytes.Contains([]byte(err.Error()), []byte("dds")) {
		t.Errorf("error %q should come from the DDS decoder", err)
	}
}

func TestDecodeNamedGzipSuffix(t *testing.T) {
	rgba := bytes.Repeat([]byte{0x33}, tex.FormatRGBA8.LevelByteSize(4, 4))
	ktx := buildKTX(t, 0x8058, 4, 4, 0, 0, 1, [][][]byte{{rgba}})

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(ktx); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	img, err := DecodeNamed("cube.ktx.gz", buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeNamed: %v", err)
	}
	if img.Format != tex.FormatRGBA8 {
		t.Errorf("format = %v, want RGBA8", img.Format)
	}
}
