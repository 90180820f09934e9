// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu implements the texture device on gogpu/wgpu, the Pure Go
// WebGPU implementation (Vulkan, Metal and DX12 depending on platform).
//
// The device is created against a gpucontext.DeviceProvider supplied by
// the host application; this package never creates its own GPU device.
// Sharing the host's device keeps texture memory in one budget and
// avoids a second instance of the GPU stack:
//
//	dev := wgpu.New(app.GPUContextProvider())
//	t := tex.New(dev, tex.WithName("albedo"), tex.WithSize(1024, 1024))
//
// Native texture creation and the upload path follow the wgpu core API.
// Where the core to HAL bridge is not complete yet, operations keep the
// logical state exact and skip the native call, so the CPU side of every
// texture stays correct on all platforms.
package wgpu
