package tex

import (
	"fmt"
	"sync"
)

// VRAMCategory attributes texture memory to a usage bucket for
// profiling. Every texture belongs to exactly one category.
type VRAMCategory uint8

const (
	// CategoryAsset is regular asset texture memory (the default).
	CategoryAsset VRAMCategory = iota

	// CategoryShadowMap is shadow map render target memory.
	CategoryShadowMap

	// CategoryLightmap is baked lightmap memory.
	CategoryLightmap
)

// String returns the profiler name of the category.
func (c VRAMCategory) String() string {
	switch c {
	case CategoryAsset:
		return "asset"
	case CategoryShadowMap:
		return "shadowmap"
	case CategoryLightmap:
		return "lightmap"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

// VRAMStats is a snapshot of tracked GPU memory usage.
type VRAMStats struct {
	// TextureBytes is the total texture memory across all categories.
	TextureBytes int64

	// AssetBytes is memory attributed to regular asset textures.
	AssetBytes int64

	// ShadowMapBytes is memory attributed to shadow maps.
	ShadowMapBytes int64

	// LightmapBytes is memory attributed to lightmaps.
	LightmapBytes int64
}

// String returns a human-readable summary of the stats.
func (s VRAMStats) String() string {
	return fmt.Sprintf("VRAM[tex %d KB: asset %d, shadow %d, lightmap %d]",
		s.TextureBytes/1024, s.AssetBytes/1024, s.ShadowMapBytes/1024, s.LightmapBytes/1024)
}

// VRAMAccounting tracks the GPU memory footprint attributed to textures,
// split by category. It is an explicitly shared structure owned by the
// device; only the texture that owns a footprint may add or subtract it
// (at construction, resize and destruction), which keeps the counters
// free of double-counting.
//
// VRAMAccounting is safe for concurrent use.
type VRAMAccounting struct {
	mu sync.Mutex

	texture  int64
	asset    int64
	shadow   int64
	lightmap int64
}

// NewVRAMAccounting creates an empty accounting structure.
func NewVRAMAccounting() *VRAMAccounting {
	return &VRAMAccounting{}
}

// Add charges bytes to the given category.
func (v *VRAMAccounting) Add(category VRAMCategory, bytes int64) {
	v.adjust(category, bytes)
}

// Sub releases bytes from the given category.
func (v *VRAMAccounting) Sub(category VRAMCategory, bytes int64) {
	v.adjust(category, -bytes)
}

func (v *VRAMAccounting) adjust(category VRAMCategory, delta int64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.texture += delta
	switch category {
	case CategoryShadowMap:
		v.shadow += delta
	case CategoryLightmap:
		v.lightmap += delta
	default:
		v.asset += delta
	}
}

// Stats returns a snapshot of current usage.
func (v *VRAMAccounting) Stats() VRAMStats {
	v.mu.Lock()
	defer v.mu.Unlock()

	return VRAMStats{
		TextureBytes:   v.texture,
		AssetBytes:     v.asset,
		ShadowMapBytes: v.shadow,
		LightmapBytes:  v.lightmap,
	}
}
