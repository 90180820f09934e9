// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"sync/atomic"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/tex"
)

// ErrNilProvider is returned by NewChecked when the device provider is
// nil.
var ErrNilProvider = errors.New("wgpu: nil DeviceProvider")

// defaultMaxTextureSize matches the WebGPU baseline limit for 2D
// textures. Used when the adapter limits cannot be queried.
const defaultMaxTextureSize = 8192

// Option configures a Device.
type Option func(*Device)

// WithVRAM shares an existing accounting structure instead of creating
// a fresh one. Hosts running several devices against one adapter use
// this to see a single memory total.
func WithVRAM(v *tex.VRAMAccounting) Option {
	return func(d *Device) { d.vram = v }
}

// WithCapabilities overrides the detected capability flags.
func WithCapabilities(caps tex.Capabilities) Option {
	return func(d *Device) { d.caps = &caps }
}

// Device implements tex.Device on a host-provided wgpu device.
//
// The device receives its GPU handles from the host application through
// gpucontext.DeviceProvider; it never creates an instance, adapter or
// device of its own.
//
// Device is not safe for concurrent use, matching the single render
// thread the rest of the stack assumes. RenderVersion is the exception;
// it may be read from any goroutine.
type Device struct {
	provider gpucontext.DeviceProvider
	vram     *tex.VRAMAccounting
	registry tex.Registry
	caps     *tex.Capabilities
	version  atomic.Uint64
}

// New creates a texture device on the host's GPU device. A nil provider
// yields a device whose textures keep full CPU state but never reach
// the GPU, mirroring tex.NullDevice.
func New(provider gpucontext.DeviceProvider, opts ...Option) *Device {
	d := &Device{provider: provider}
	for _, opt := range opts {
		opt(d)
	}
	if d.vram == nil {
		d.vram = tex.NewVRAMAccounting()
	}
	if d.caps == nil {
		caps := detectCapabilities(provider)
		d.caps = &caps
	}
	return d
}

// NewChecked is New with a nil-provider check, for hosts that treat a
// missing GPU as an error rather than a silent CPU fallback.
func NewChecked(provider gpucontext.DeviceProvider, opts ...Option) (*Device, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	return New(provider, opts...), nil
}

// detectCapabilities derives capability flags from the adapter. The
// compressed-format families follow the platform backends: BC formats
// on desktop (Vulkan, Metal, DX12), the mobile families absent.
func detectCapabilities(provider gpucontext.DeviceProvider) tex.Capabilities {
	caps := tex.Capabilities{
		MaxTextureSize: defaultMaxTextureSize,
		MaxAnisotropy:  16,
	}
	if provider == nil || provider.Adapter() == nil {
		return caps
	}
	caps.SupportsVolumeTextures = true
	caps.SupportsDXT = true
	return caps
}

// CreateTextureImpl creates the backend handle for a texture.
func (d *Device) CreateTextureImpl(t *tex.Texture) tex.TextureImpl {
	return newTextureImpl(d, t)
}

// Capabilities returns the device capability flags.
func (d *Device) Capabilities() tex.Capabilities { return *d.caps }

// VRAM returns the device's memory accounting.
func (d *Device) VRAM() *tex.VRAMAccounting { return d.vram }

// RenderVersion returns the current render version.
func (d *Device) RenderVersion() uint64 { return d.version.Load() }

// BumpRenderVersion advances the render version. The host calls this
// once per frame so sampler-state changes invalidate cached bind
// groups.
func (d *Device) BumpRenderVersion() { d.version.Add(1) }

// Textures returns the live-texture registry.
func (d *Device) Textures() *tex.Registry { return &d.registry }

// Provider returns the host's device provider.
func (d *Device) Provider() gpucontext.DeviceProvider { return d.provider }

// LoseContext drops the native handles of every live texture, then
// marks them all dirty so the next RestoreContext pass re-uploads.
// Hosts call this when the surface or device is lost.
func (d *Device) LoseContext() {
	for _, t := range d.registry.All() {
		t.LoseContext()
	}
}

// RestoreContext re-creates native state for every live texture after a
// context loss.
func (d *Device) RestoreContext() {
	for _, t := range d.registry.All() {
		t.RestoreContext()
	}
}

// Ensure Device implements tex.Device.
var _ tex.Device = (*Device)(nil)
