// Package tex provides the texture resource subsystem for the GoGPU
// ecosystem: pixel format metadata, the Texture entity that owns mip
// level data across its GPU lifecycle, and shared VRAM accounting.
//
// # Overview
//
// A Texture holds CPU-side mip level storage, a backend-specific GPU
// implementation handle, and mutable sampling state. Level data arrives
// either from a container decoder (see the codec sub-package for KTX,
// DDS, Radiance HDR and Basis), from direct pixel writes through the
// Lock/Unlock protocol, or from image-like sources via SetSource.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/tex"
//	    "github.com/gogpu/tex/codec"
//	)
//
//	img, err := codec.Decode(raw)
//	if err != nil {
//	    // texture did not load
//	}
//	t := tex.New(device, tex.WithName("hero_albedo"), tex.WithImage(img))
//	defer t.Destroy()
//
// # Backends
//
// The root package talks to the GPU only through the Device and
// TextureImpl interfaces. backend/wgpu provides an implementation over
// gogpu/wgpu; NullDevice provides a no-op device for tests and headless
// use.
//
// # Logging
//
// tex produces no log output by default. Call SetLogger to enable
// structured logging via log/slog.
package tex
