// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/tex"
)

// nativeFormat maps an engine pixel format to the wgpu texture format.
// The second result reports whether the mapping is native. The wgpu
// format table does not cover the block-compressed families yet; those
// formats stay logical until it does.
func nativeFormat(f tex.PixelFormat) (gputypes.TextureFormat, bool) {
	switch f {
	case tex.FormatA8, tex.FormatL8:
		return gputypes.TextureFormatR8Unorm, true
	case tex.FormatRGBA8, tex.FormatSRGBA8:
		return gputypes.TextureFormatRGBA8Unorm, true
	case tex.FormatBGRA8:
		return gputypes.TextureFormatBGRA8Unorm, true
	case tex.FormatDepth, tex.FormatDepthStencil:
		return gputypes.TextureFormatDepth24PlusStencil8, true
	}
	return gputypes.TextureFormatUndefined, false
}

// uploadFormat resolves the format used in the texture descriptor: the
// native mapping when one exists, otherwise RGBA8.
func uploadFormat(f tex.PixelFormat) gputypes.TextureFormat {
	if native, ok := nativeFormat(f); ok {
		return native
	}
	return gputypes.TextureFormatRGBA8Unorm
}
