package codec

import (
	"bytes"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/gogpu/tex"
)

// fakeTranscoder records the requested target and returns a fixed
// single-level image in that format.
type fakeTranscoder struct {
	target tex.PixelFormat
}

func (f *fakeTranscoder) Transcode(data []byte, target tex.PixelFormat) (*tex.DecodedImage, error) {
	f.target = target
	return &tex.DecodedImage{
		Format: target,
		Width:  4,
		Height: 4,
		Levels: [][][]byte{{bytes.Repeat([]byte{0xC3}, target.LevelByteSize(4, 4))}},
	}, nil
}

func basisBlob() []byte {
	return []byte{basisSig0, basisSig1, 0, 0, 0, 0, 0, 0}
}

func TestDecodeBasisTargetSelection(t *testing.T) {
	tests := []struct {
		name string
		caps tex.Capabilities
		want tex.PixelFormat
	}{
		{"astc", tex.Capabilities{SupportsASTC: true, SupportsDXT: true}, tex.FormatASTC4x4},
		{"dxt", tex.Capabilities{SupportsDXT: true, SupportsETC: true}, tex.FormatDXT5},
		{"etc", tex.Capabilities{SupportsETC: true, SupportsPVRTC: true}, tex.FormatETC2RGBA},
		{"pvrtc", tex.Capabilities{SupportsPVRTC: true}, tex.FormatPVRTC4RGBA},
		{"none", tex.Capabilities{}, tex.FormatRGBA8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTranscoder{}
			RegisterTranscoder(fake)
			defer RegisterTranscoder(nil)

			img, err := DecodeBasis(basisBlob(), tt.caps)
			if err != nil {
				t.Fatalf("DecodeBasis: %v", err)
			}
			if fake.target != tt.want {
				t.Errorf("target = %v, want %v", fake.target, tt.want)
			}
			if img.Format != tt.want {
				t.Errorf("format = %v, want %v", img.Format, tt.want)
			}
		})
	}
}

func TestDecodeBasisNoTranscoder(t *testing.T) {
	RegisterTranscoder(nil)
	if _, err := DecodeBasis(basisBlob(), tex.Capabilities{}); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestDecodeBasisBadSignature(t *testing.T) {
	if _, err := DecodeBasis([]byte{0, 1, 2, 3}, tex.Capabilities{}); !errors.Is(err, ErrFormat) {
		t.Fatalf("err = %v, want ErrFormat", err)
	}
}
