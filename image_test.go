package tex

import "testing"

func validImage() *DecodedImage {
	return &DecodedImage{
		Format: FormatRGBA8,
		Width:  4,
		Height: 4,
		Levels: [][][]byte{{make([]byte, 64)}},
	}
}

func TestDecodedImageValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*DecodedImage)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(*DecodedImage) {},
		},
		{
			name:    "zero width",
			mutate:  func(img *DecodedImage) { img.Width = 0 },
			wantErr: true,
		},
		{
			name:    "no levels",
			mutate:  func(img *DecodedImage) { img.Levels = nil },
			wantErr: true,
		},
		{
			name: "cubemap face count mismatch",
			mutate: func(img *DecodedImage) {
				img.Cubemap = true // levels still carry a single face
			},
			wantErr: true,
		},
		{
			name: "nil face",
			mutate: func(img *DecodedImage) {
				img.Levels[0][0] = nil
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := validImage()
			tt.mutate(img)
			if err := img.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodedImageFaces(t *testing.T) {
	img := validImage()
	if img.Faces() != 1 {
		t.Errorf("Faces() = %d, want 1", img.Faces())
	}
	img.Cubemap = true
	if img.Faces() != CubeFaceCount {
		t.Errorf("Faces() = %d, want %d", img.Faces(), CubeFaceCount)
	}
}
