// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"context"
	"errors"

	"github.com/gogpu/wgpu/core"

	"github.com/gogpu/tex"
)

// ErrReadbackNotSupported is returned by ReadLevel until the core
// staging-buffer path is complete.
var ErrReadbackNotSupported = errors.New("wgpu: texture readback not supported yet")

// textureImpl is the wgpu side of a texture. It tracks the native
// handles and the sampler state last seen by the GPU.
//
// Native creation, upload and readback go through the wgpu core texture
// API. The parts of that API still behind the core to HAL bridge are
// kept as logical state here: the handles stay zero and the dirty
// bookkeeping on the entity remains exact, so enabling the native calls
// is a local change.
type textureImpl struct {
	device *Device

	textureID core.TextureID
	viewID    core.TextureViewID

	// Sampler state the current bind groups were built with.
	samplerKey     tex.BitField
	pendingSampler bool
}

func newTextureImpl(d *Device, t *tex.Texture) *textureImpl {
	impl := &textureImpl{
		device:     d,
		samplerKey: t.SamplerKey(),
	}
	impl.createNative(t)
	return impl
}

// createNative allocates the GPU texture object.
func (impl *textureImpl) createNative(t *tex.Texture) {
	if impl.device.provider == nil || impl.device.provider.Device() == nil {
		return
	}

	// Descriptor per the WebGPU spec; uploadFormat falls back to RGBA8
	// for formats the wgpu format table does not cover yet.
	//
	// TODO(core-hal-bridge): enable once core.CreateTexture lands:
	//
	//	desc := &gputypes.TextureDescriptor{
	//	    Label: t.Name(),
	//	    Size: gputypes.Extent3D{
	//	        Width:              uint32(t.Width()),
	//	        Height:             uint32(t.Height()),
	//	        DepthOrArrayLayers: uint32(t.Faces() * t.ArrayLength()),
	//	    },
	//	    MipLevelCount: uint32(t.NumLevels()),
	//	    SampleCount:   1,
	//	    Dimension:     gputypes.TextureDimension2D,
	//	    Format:        uploadFormat(t.Format()),
	//	    Usage:         gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding,
	//	}
	//	impl.textureID, _ = core.CreateTexture(deviceID, desc)
	_ = uploadFormat(t.Format())
}

// Destroy releases the native GPU object.
func (impl *textureImpl) Destroy(device tex.Device, t *tex.Texture) {
	impl.releaseNative()
}

// LoseContext drops the native handles without touching CPU state.
func (impl *textureImpl) LoseContext() {
	impl.textureID = core.TextureID{}
	impl.viewID = core.TextureViewID{}
}

func (impl *textureImpl) releaseNative() {
	// TODO(core-hal-bridge): core.TextureViewDrop / core.TextureDrop
	// once the drop calls exist for texture objects.
	impl.textureID = core.TextureID{}
	impl.viewID = core.TextureViewID{}
}

// PropertyChanged records a sampling-state change. The sampler object
// is rebuilt lazily at the next upload or bind; a mipmap toggle also
// changes the view's level range.
func (impl *textureImpl) PropertyChanged(flags tex.PropertyFlag) {
	if flags != 0 {
		impl.pendingSampler = true
	}
}

// UploadImmediate pushes every dirty level of every face to the GPU and
// clears the entity's dirty bookkeeping.
func (impl *textureImpl) UploadImmediate(device tex.Device, t *tex.Texture) error {
	// Sampler-only changes refresh the key even when no level data
	// moved.
	if impl.pendingSampler {
		impl.samplerKey = t.SamplerKey()
		impl.pendingSampler = false
	}
	if !t.NeedsUpload() && !t.NeedsMipmapsUpload() {
		return nil
	}

	faces := t.Faces()
	for mip := 0; mip < t.NumLevels(); mip++ {
		for face := 0; face < faces; face++ {
			if !t.LevelDirty(mip, face) {
				continue
			}
			level := t.Level(mip, face)
			if level.IsZero() {
				// Dirty but empty: nothing staged for this slot, the
				// GPU contents are whatever was there before.
				t.ClearLevelDirty(mip, face)
				continue
			}

			data := level.Data
			if data == nil && level.Source != nil {
				data = tex.FromImage(level.Source).Data()
			}

			impl.writeLevel(t, mip, face, data)
			t.ClearLevelDirty(mip, face)
		}
	}

	t.MarkUploaded()
	return nil
}

// writeLevel issues the queue write for one level of one face.
func (impl *textureImpl) writeLevel(t *tex.Texture, mip, face int, data []byte) {
	if impl.device.provider == nil || impl.device.provider.Queue() == nil {
		return
	}
	if len(data) == 0 {
		return
	}

	// TODO(core-hal-bridge): enable once core.QueueWriteTexture lands:
	//
	//	w := tex.MipDimension(t.Width(), mip)
	//	h := tex.MipDimension(t.Height(), mip)
	//	core.QueueWriteTexture(queueID, &gputypes.ImageCopyTexture{
	//	    Texture:  impl.textureID,
	//	    MipLevel: uint32(mip),
	//	    Origin:   gputypes.Origin3D{Z: uint32(face)},
	//	    Aspect:   gputypes.TextureAspectAll,
	//	}, data, &gputypes.TextureDataLayout{
	//	    BytesPerRow:  uint32(t.Format().LevelByteSize(w, 1)),
	//	    RowsPerImage: uint32(h),
	//	}, &gputypes.Extent3D{
	//	    Width:              uint32(w),
	//	    Height:             uint32(h),
	//	    DepthOrArrayLayers: 1,
	//	})
	_ = data
}

// ReadLevel downloads the top mip of one face. Requires the staging
// buffer path: copy to a MapRead buffer, map, copy out, unmap.
func (impl *textureImpl) ReadLevel(ctx context.Context, t *tex.Texture, face int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, ErrReadbackNotSupported
}

// SamplerKey returns the sampler state the GPU currently reflects.
func (impl *textureImpl) SamplerKey() tex.BitField { return impl.samplerKey }

// Ensure textureImpl implements tex.TextureImpl.
var _ tex.TextureImpl = (*textureImpl)(nil)
