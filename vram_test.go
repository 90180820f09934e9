package tex

import "testing"

// TestVRAMCategories tests that category sub-counters track the total.
func TestVRAMCategories(t *testing.T) {
	v := NewVRAMAccounting()

	v.Add(CategoryAsset, 100)
	v.Add(CategoryShadowMap, 200)
	v.Add(CategoryLightmap, 300)

	s := v.Stats()
	if s.TextureBytes != 600 {
		t.Errorf("TextureBytes = %d, want 600", s.TextureBytes)
	}
	if s.AssetBytes != 100 || s.ShadowMapBytes != 200 || s.LightmapBytes != 300 {
		t.Errorf("category split = %d/%d/%d, want 100/200/300",
			s.AssetBytes, s.ShadowMapBytes, s.LightmapBytes)
	}

	v.Sub(CategoryShadowMap, 200)
	v.Sub(CategoryAsset, 100)
	v.Sub(CategoryLightmap, 300)

	s = v.Stats()
	if s.TextureBytes != 0 || s.AssetBytes != 0 || s.ShadowMapBytes != 0 || s.LightmapBytes != 0 {
		t.Errorf("counters not conserved: %+v", s)
	}
}

// TestVRAMCategoryString tests profiler names.
func TestVRAMCategoryString(t *testing.T) {
	tests := []struct {
		cat  VRAMCategory
		want string
	}{
		{CategoryAsset, "asset"},
		{CategoryShadowMap, "shadowmap"},
		{CategoryLightmap, "lightmap"},
		{VRAMCategory(9), "Unknown(9)"},
	}
	for _, tt := range tests {
		if got := tt.cat.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
