// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/tex"
)

func TestNativeFormat(t *testing.T) {
	tests := []struct {
		format tex.PixelFormat
		want   gputypes.TextureFormat
		native bool
	}{
		{tex.FormatA8, gputypes.TextureFormatR8Unorm, true},
		{tex.FormatL8, gputypes.TextureFormatR8Unorm, true},
		{tex.FormatRGBA8, gputypes.TextureFormatRGBA8Unorm, true},
		{tex.FormatSRGBA8, gputypes.TextureFormatRGBA8Unorm, true},
		{tex.FormatBGRA8, gputypes.TextureFormatBGRA8Unorm, true},
		{tex.FormatDepth, gputypes.TextureFormatDepth24PlusStencil8, true},
		{tex.FormatDepthStencil, gputypes.TextureFormatDepth24PlusStencil8, true},
		{tex.FormatDXT1, gputypes.TextureFormatUndefined, false},
		{tex.FormatETC2RGBA, gputypes.TextureFormatUndefined, false},
		{tex.FormatRGBA16F, gputypes.TextureFormatUndefined, false},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			got, native := nativeFormat(tt.format)
			if got != tt.want || native != tt.native {
				t.Errorf("nativeFormat(%v) = (%v, %v), want (%v, %v)",
					tt.format, got, native, tt.want, tt.native)
			}
		})
	}
}

func TestUploadFormatFallback(t *testing.T) {
	if got := uploadFormat(tex.FormatDXT5); got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("uploadFormat(DXT5) = %v, want RGBA8Unorm", got)
	}
	if got := uploadFormat(tex.FormatBGRA8); got != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("uploadFormat(BGRA8) = %v, want BGRA8Unorm", got)
	}
}
