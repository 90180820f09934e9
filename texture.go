package tex

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Texture errors.
var (
	// ErrNoImpl is returned when a GPU operation is requested on a
	// texture without a backend implementation.
	ErrNoImpl = errors.New("tex: texture has no GPU implementation")

	// ErrDestroyed is returned when operating on a destroyed texture.
	ErrDestroyed = errors.New("tex: texture has been destroyed")
)

// LockMode selects the access mode of a Lock call.
type LockMode uint8

const (
	// LockNone means the texture is not locked.
	LockNone LockMode = iota

	// LockRead locks level storage for reading.
	LockRead

	// LockWrite locks level storage for writing; Unlock triggers an
	// upload.
	LockWrite
)

// Level is one mip level slot of one face. A slot is empty until level
// data arrives from a decoder, a Lock allocation, or SetSource. Data and
// Source are mutually exclusive.
type Level struct {
	// Data is the raw level payload. For decoder-produced textures it
	// usually aliases the container buffer.
	Data []byte

	// Source is an externally-owned image-like source assigned through
	// SetSource.
	Source image.Image
}

// IsZero reports whether the slot holds neither data nor a source.
func (l Level) IsZero() bool { return l.Data == nil && l.Source == nil }

// nextTextureID is the process-unique id counter.
var nextTextureID atomic.Uint64

// Texture owns CPU-side mip level storage, a device-specific GPU
// implementation handle, and all mutable sampling/addressing state.
//
// A Texture is owned exclusively by whichever subsystem created it and
// is referenced, not owned, by materials and renderers. All methods are
// synchronous; operations either complete or report an error
// immediately. Within a single texture, state mutations are strictly
// ordered by call sequence. The single lock slot means concurrent lock
// attempts must be serialized by the caller.
type Texture struct {
	id     uint64
	name   string
	device Device
	impl   TextureImpl

	width       int
	height      int
	depth       int
	arrayLength int
	cubemap     bool
	volume      bool

	format       PixelFormat
	typ          Type
	category     VRAMCategory
	renderTarget bool

	state samplerState

	levels        [][]Level // [mip][face]
	levelsUpdated [][]bool  // same shape as levels
	invalidLevel  []bool    // per-mip: SetSource left this level invalid

	lockedMode  LockMode
	lockedLevel int
	lockedFace  int

	needsUpload        bool
	needsMipmapsUpload bool
	mipmapsUploaded    bool

	renderVersionDirty uint64

	accountedBytes int64
	destroyed      bool
}

// New creates a texture on the given device. The GPU-side implementation
// object is created synchronously. If initial level data is supplied
// (WithImage or WithLevels), an immediate upload is triggered; otherwise
// the texture starts as a deferred 4x4 placeholder with empty level
// slots.
func New(device Device, opts ...Option) *Texture {
	o := defaultTextureOptions()
	for _, opt := range opts {
		opt(&o)
	}

	t := &Texture{
		id:           nextTextureID.Add(1),
		name:         o.name,
		device:       device,
		width:        o.width,
		height:       o.height,
		depth:        o.depth,
		arrayLength:  o.arrayLength,
		cubemap:      o.cubemap,
		volume:       o.volume,
		format:       o.format,
		typ:          o.typ,
		category:     o.category,
		renderTarget: o.renderTarget,
		state:        defaultSamplerState(),
	}
	if t.depth < 1 {
		t.depth = 1
	}

	if t.volume && !device.Capabilities().SupportsVolumeTextures {
		Logger().Warn("volume textures not supported by device, falling back to 2D",
			"texture", t.name)
		t.volume = false
		t.depth = 1
	}

	if o.mipmaps != nil {
		t.state.mipmaps = *o.mipmaps
	}
	// Box-filtering RGBE shared exponents is invalid.
	if t.typ == TypeRGBE {
		t.state.mipmaps = false
	}

	initial := false
	switch {
	case o.image != nil:
		t.adoptImage(o.image)
		initial = true
	case o.levels != nil:
		t.adoptLevels(o.levels)
		initial = true
	default:
		t.allocLevelSlots(1)
	}

	t.impl = device.CreateTextureImpl(t)
	device.Textures().Add(t)

	t.accountedBytes = t.GPUSize()
	device.VRAM().Add(t.category, t.accountedBytes)

	t.DirtyAll()
	if initial {
		t.Upload()
	}
	return t
}

// adoptImage takes over a decoder result as construction state.
func (t *Texture) adoptImage(img *DecodedImage) {
	t.format = img.Format
	t.width = img.Width
	t.height = img.Height
	t.cubemap = img.Cubemap
	if img.Type != TypeDefault {
		t.typ = img.Type
		if t.typ == TypeRGBE {
			t.state.mipmaps = false
		}
	}
	t.adoptLevels(img.Levels)
}

// adoptLevels takes over raw [mip][face] payloads.
func (t *Texture) adoptLevels(levels [][][]byte) {
	t.allocLevelSlots(len(levels))
	for mip, faces := range levels {
		for face, data := range faces {
			t.levels[mip][face] = Level{Data: data}
		}
	}
}

// allocLevelSlots shapes the level and dirty-tracking storage for the
// given mip count, all slots empty.
func (t *Texture) allocLevelSlots(mips int) {
	faces := t.Faces()
	t.levels = make([][]Level, mips)
	t.levelsUpdated = make([][]bool, mips)
	t.invalidLevel = make([]bool, mips)
	for i := range t.levels {
		t.levels[i] = make([]Level, faces)
		t.levelsUpdated[i] = make([]bool, faces)
	}
}

// ID returns the process-unique texture id.
func (t *Texture) ID() uint64 { return t.id }

// Name returns the human-readable texture name.
func (t *Texture) Name() string { return t.name }

// Width returns the level 0 width.
func (t *Texture) Width() int { return t.width }

// Height returns the level 0 height.
func (t *Texture) Height() int { return t.height }

// Depth returns the volume depth (1 for 2D textures).
func (t *Texture) Depth() int { return t.depth }

// ArrayLength returns the array layer count (0 = not an array).
func (t *Texture) ArrayLength() int { return t.arrayLength }

// Cubemap reports whether the texture is a six-face cubemap.
func (t *Texture) Cubemap() bool { return t.cubemap }

// Volume reports whether the texture is a 3D volume.
func (t *Texture) Volume() bool { return t.volume }

// Format returns the pixel format (immutable after construction).
func (t *Texture) Format() PixelFormat { return t.format }

// Type returns the type/encoding classification.
func (t *Texture) Type() Type { return t.typ }

// Encoding returns the read-only color encoding derived from type and
// format.
func (t *Texture) Encoding() Encoding { return encodingFor(t.typ, t.format) }

// RenderTarget reports whether the texture is render-target backed.
func (t *Texture) RenderTarget() bool { return t.renderTarget }

// Category returns the VRAM profiler category.
func (t *Texture) Category() VRAMCategory { return t.category }

// Destroyed reports whether Destroy has been called.
func (t *Texture) Destroyed() bool { return t.destroyed }

// Faces returns the number of faces per level (1 or CubeFaceCount).
func (t *Texture) Faces() int {
	if t.cubemap {
		return CubeFaceCount
	}
	return 1
}

// NumLevels returns the number of mip level slots.
func (t *Texture) NumLevels() int { return len(t.levels) }

// Level returns the slot at [mip][face]. Backends read slots during
// upload walks.
func (t *Texture) Level(mip, face int) Level {
	return t.levels[mip][face]
}

// LevelDirty reports whether the slot at [mip][face] has CPU-side
// changes pending upload.
func (t *Texture) LevelDirty(mip, face int) bool {
	return t.levelsUpdated[mip][face]
}

// ClearLevelDirty resets the dirty marker for one slot. Backends call
// this as they consume slots during an upload walk.
func (t *Texture) ClearLevelDirty(mip, face int) {
	t.levelsUpdated[mip][face] = false
}

// NeedsUpload reports whether any CPU-side change is pending upload.
func (t *Texture) NeedsUpload() bool { return t.needsUpload }

// NeedsMipmapsUpload reports whether the mip chain must be regenerated
// or re-uploaded.
func (t *Texture) NeedsMipmapsUpload() bool { return t.needsMipmapsUpload }

// MarkUploaded clears the pending-upload flags. Backends call this after
// a successful upload walk.
func (t *Texture) MarkUploaded() {
	t.needsUpload = false
	t.needsMipmapsUpload = false
	if t.state.mipmaps {
		t.mipmapsUploaded = true
	}
}

// MipmapsUploaded reports whether the mip chain is resident on the GPU.
func (t *Texture) MipmapsUploaded() bool { return t.mipmapsUploaded }

// RenderVersionDirty returns the device render version at the time of
// the last sampling-state mutation.
func (t *Texture) RenderVersionDirty() uint64 { return t.renderVersionDirty }

// markLevelUpdated flags one slot (or, for face < 0, every face of the
// level) as changed.
func (t *Texture) markLevelUpdated(mip, face int) {
	if face < 0 {
		for f := range t.levelsUpdated[mip] {
			t.levelsUpdated[mip][f] = true
		}
		return
	}
	t.levelsUpdated[mip][face] = true
}

// propertyChanged records a sampling-state mutation: the render-version
// dirty marker is advanced and the backend is told exactly which
// property changed.
func (t *Texture) propertyChanged(flag PropertyFlag) {
	t.renderVersionDirty = t.device.RenderVersion()
	if t.impl != nil {
		t.impl.PropertyChanged(flag)
	}
}

// MinFilter returns the minification filter.
func (t *Texture) MinFilter() Filter { return t.state.minFilter }

// SetMinFilter sets the minification filter.
func (t *Texture) SetMinFilter(f Filter) {
	if t.state.minFilter == f {
		return
	}
	t.state.minFilter = f
	t.propertyChanged(FlagMinFilter)
}

// MagFilter returns the magnification filter.
func (t *Texture) MagFilter() Filter { return t.state.magFilter }

// SetMagFilter sets the magnification filter. Only FilterNearest and
// FilterLinear are meaningful for magnification.
func (t *Texture) SetMagFilter(f Filter) {
	if t.state.magFilter == f {
		return
	}
	t.state.magFilter = f
	t.propertyChanged(FlagMagFilter)
}

// AddressU returns the U axis address mode.
func (t *Texture) AddressU() Address { return t.state.addressU }

// SetAddressU sets the U axis address mode.
func (t *Texture) SetAddressU(a Address) {
	if t.state.addressU == a {
		return
	}
	t.state.addressU = a
	t.propertyChanged(FlagAddressU)
}

// AddressV returns the V axis address mode.
func (t *Texture) AddressV() Address { return t.state.addressV }

// SetAddressV sets the V axis address mode.
func (t *Texture) SetAddressV(a Address) {
	if t.state.addressV == a {
		return
	}
	t.state.addressV = a
	t.propertyChanged(FlagAddressV)
}

// AddressW returns the W axis address mode (volume textures).
func (t *Texture) AddressW() Address { return t.state.addressW }

// SetAddressW sets the W axis address mode.
func (t *Texture) SetAddressW(a Address) {
	if t.state.addressW == a {
		return
	}
	t.state.addressW = a
	t.propertyChanged(FlagAddressW)
}

// Anisotropy returns the anisotropic filtering level.
func (t *Texture) Anisotropy() int { return t.state.anisotropy }

// SetAnisotropy sets the anisotropic filtering level, clamped to the
// device's supported range.
func (t *Texture) SetAnisotropy(level int) {
	if maxAniso := t.device.Capabilities().MaxAnisotropy; maxAniso > 0 && level > maxAniso {
		level = maxAniso
	}
	if level < 1 {
		level = 1
	}
	if t.state.anisotropy == level {
		return
	}
	t.state.anisotropy = level
	t.propertyChanged(FlagAnisotropy)
}

// CompareOnRead reports whether compare-on-read (shadow sampling) is
// enabled.
func (t *Texture) CompareOnRead() bool { return t.state.compare }

// SetCompareOnRead enables or disables compare-on-read.
func (t *Texture) SetCompareOnRead(enabled bool) {
	if t.state.compare == enabled {
		return
	}
	t.state.compare = enabled
	t.propertyChanged(FlagCompare)
}

// CompareFunc returns the compare-on-read function.
func (t *Texture) CompareFunc() CompareFunc { return t.state.compareFn }

// SetCompareFunc sets the compare-on-read function.
func (t *Texture) SetCompareFunc(fn CompareFunc) {
	if t.state.compareFn == fn {
		return
	}
	t.state.compareFn = fn
	t.propertyChanged(FlagCompare)
}

// Mipmaps reports whether mipmap generation is enabled.
func (t *Texture) Mipmaps() bool { return t.state.mipmaps }

// SetMipmaps enables or disables mipmap generation.
func (t *Texture) SetMipmaps(enabled bool) {
	if t.state.mipmaps == enabled {
		return
	}
	t.state.mipmaps = enabled
	if enabled {
		t.needsMipmapsUpload = true
		t.mipmapsUploaded = false
	}
	t.propertyChanged(FlagMipmaps)
}

// SamplerKey packs the sampling state into a single word so backends can
// dedup native sampler objects.
func (t *Texture) SamplerKey() BitField { return t.state.key() }

// Locked reports whether a lock is outstanding.
func (t *Texture) Locked() bool { return t.lockedMode != LockNone }

// Lock locks one level of one face for direct pixel access and returns
// its backing storage. If the slot has no storage yet it is lazily
// allocated to the exact byte size implied by the mip dimensions and
// format.
//
// At most one lock may be outstanding per texture; locking a locked
// texture, passing LockNone, or addressing a face the texture does not
// have is a programmer error and panics. Serializing concurrent lock
// attempts is the caller's responsibility.
func (t *Texture) Lock(level, face int, mode LockMode) []byte {
	if mode == LockNone {
		panic(fmt.Sprintf("tex: Lock(%q): mode must be LockRead or LockWrite", t.name))
	}
	if t.lockedMode != LockNone {
		panic(fmt.Sprintf("tex: Lock(%q): texture is already locked (level %d)", t.name, t.lockedLevel))
	}
	if level < 0 || face < 0 || face >= t.Faces() {
		panic(fmt.Sprintf("tex: Lock(%q): level %d face %d out of range for %d faces", t.name, level, face, t.Faces()))
	}

	if level >= len(t.levels) {
		t.growLevelSlots(level + 1)
	}
	slot := &t.levels[level][face]
	if len(slot.Data) == 0 {
		w := MipDimension(t.width, level)
		h := MipDimension(t.height, level)
		size := t.format.LevelByteSize(w, h)
		if t.volume {
			size *= MipDimension(t.depth, level)
		}
		slot.Data = make([]byte, size)
		slot.Source = nil
		Logger().Debug("lazily allocated level storage",
			"texture", t.name, "level", level, "face", face, "bytes", size)
	}

	t.lockedMode = mode
	t.lockedLevel = level
	t.lockedFace = face
	return slot.Data
}

// Unlock releases an outstanding lock. If the lock mode was LockWrite
// the modified level is marked dirty and an upload is triggered; a read
// unlock only resets lock state. Unlock without a prior Lock is reported
// but not fatal.
func (t *Texture) Unlock() {
	if t.lockedMode == LockNone {
		Logger().Warn("unlock called on unlocked texture", "texture", t.name)
		return
	}
	if t.lockedMode == LockWrite {
		t.markLevelUpdated(t.lockedLevel, t.lockedFace)
		t.Upload()
	}
	t.lockedMode = LockNone
	t.lockedLevel = 0
	t.lockedFace = 0
}

// SetSource assigns externally-owned image-like sources to one mip
// level: one source for 2D textures, all six faces for cubemaps. Faces
// must be simultaneously present with identical dimensions; otherwise
// the entire level is invalidated to the 4x4 placeholder (and, for
// level 0, the texture's reported dimensions with it). A changed or
// newly-valid state always re-triggers an upload; an unchanged invalid
// state does not.
func (t *Texture) SetSource(mip int, sources ...image.Image) {
	faces := t.Faces()
	valid := len(sources) == faces
	var w, h int
	if valid {
		for i, s := range sources {
			if s == nil {
				valid = false
				break
			}
			b := s.Bounds()
			if i == 0 {
				w, h = b.Dx(), b.Dy()
				if w <= 0 || h <= 0 {
					valid = false
					break
				}
			} else if b.Dx() != w || b.Dy() != h {
				valid = false
				break
			}
		}
	}

	changed := false
	if valid {
		for f, s := range sources {
			if t.levels[mip][f].Source != s {
				changed = true
			}
			t.levels[mip][f] = Level{Source: s}
		}
		if t.invalidLevel[mip] {
			t.invalidLevel[mip] = false
			changed = true
		}
		if mip == 0 && (t.width != w || t.height != h) {
			t.width, t.height = w, h
			changed = true
			t.reaccount()
		}
		if changed && mip == 0 {
			t.generateMipSources(sources)
		}
	} else {
		if t.invalidLevel[mip] {
			// Unchanged invalid state: no re-upload.
			return
		}
		t.invalidLevel[mip] = true
		changed = true
		for f := range t.levels[mip] {
			t.levels[mip][f] = Level{}
		}
		if mip == 0 {
			t.width, t.height = 4, 4
			t.reaccount()
		}
		Logger().Warn("invalid source assignment, level reset to placeholder",
			"texture", t.name, "level", mip)
	}

	if changed {
		t.markLevelUpdated(mip, -1)
		t.Upload()
	}
}

// Source returns the image-like source of one slot, or nil.
func (t *Texture) Source(mip, face int) image.Image {
	return t.levels[mip][face].Source
}

// generateMipSources builds the CPU mip chain for freshly assigned
// level 0 sources. Only uncompressed power-of-two textures qualify;
// compressed payloads carry their mips inside the container and the
// GPU cannot be asked to generate them here.
func (t *Texture) generateMipSources(sources []image.Image) {
	if !t.state.mipmaps || t.format.IsCompressed() {
		return
	}
	if !IsPow2(t.width) || !IsPow2(t.height) {
		return
	}
	mips := MipCount(t.width, t.height)
	if mips < 2 {
		return
	}
	if len(t.levels) < mips {
		t.growLevelSlots(mips)
	}
	for face, src := range sources {
		chain := mipChain(src, mips)
		for i, img := range chain {
			t.levels[i+1][face] = Level{Source: img}
			t.levelsUpdated[i+1][face] = true
		}
	}
}

// growLevelSlots extends level storage to the given mip count, keeping
// existing slots.
func (t *Texture) growLevelSlots(mips int) {
	faces := t.Faces()
	for len(t.levels) < mips {
		t.levels = append(t.levels, make([]Level, faces))
		t.levelsUpdated = append(t.levelsUpdated, make([]bool, faces))
		t.invalidLevel = append(t.invalidLevel, false)
	}
}

// Upload sets the upload-pending flags and immediately invokes the
// backend's upload entry point if present. Repeated calls are idempotent
// from the caller's perspective, but each triggers backend work;
// batching and dedup are the backend's responsibility.
func (t *Texture) Upload() {
	t.needsUpload = true
	t.needsMipmapsUpload = t.state.mipmaps
	t.mipmapsUploaded = false
	if t.impl != nil {
		if err := t.impl.UploadImmediate(t.device, t); err != nil {
			Logger().Warn("texture upload failed", "texture", t.name, "err", err)
		}
	}
}

// DirtyAll marks every level of every face as updated, sets both upload
// flags, clears the mipmaps-uploaded flag and notifies the backend that
// every sampling property changed. This is how a lost GPU context is
// fully recovered from CPU-retained level data without re-parsing the
// original container.
func (t *Texture) DirtyAll() {
	for mip := range t.levelsUpdated {
		for f := range t.levelsUpdated[mip] {
			t.levelsUpdated[mip][f] = true
		}
	}
	t.needsUpload = true
	t.needsMipmapsUpload = t.state.mipmaps
	t.mipmapsUploaded = false
	t.renderVersionDirty = t.device.RenderVersion()
	if t.impl != nil {
		t.impl.PropertyChanged(FlagAll)
	}
}

// LoseContext drops the backend's native handles after a GPU context
// loss. CPU-side level data survives.
func (t *Texture) LoseContext() {
	if t.impl != nil {
		t.impl.LoseContext()
	}
}

// RestoreContext re-dirties the whole texture and re-uploads it from
// CPU-retained level data.
func (t *Texture) RestoreContext() {
	Logger().Info("restoring texture after context loss", "texture", t.name)
	t.DirtyAll()
	t.Upload()
}

// Resize changes the dimensions of a render-target backed texture. It
// destroys and recreates only the GPU-side implementation; CPU-side
// level storage is untouched. Resizing a non-render-target texture is a
// programmer error and panics.
func (t *Texture) Resize(width, height, depth int) {
	if !t.renderTarget {
		panic(fmt.Sprintf("tex: Resize(%q): only render-target textures can be resized", t.name))
	}
	if t.destroyed {
		panic(fmt.Sprintf("tex: Resize(%q): texture has been destroyed", t.name))
	}
	if depth < 1 {
		depth = 1
	}

	t.device.VRAM().Sub(t.category, t.accountedBytes)
	t.accountedBytes = 0

	if t.impl != nil {
		t.impl.Destroy(t.device, t)
	}

	t.width = width
	t.height = height
	t.depth = depth

	t.impl = t.device.CreateTextureImpl(t)
	t.accountedBytes = t.GPUSize()
	t.device.VRAM().Add(t.category, t.accountedBytes)

	t.DirtyAll()
}

// Destroy releases the GPU implementation, removes the texture from the
// device's live-texture registry, subtracts its VRAM footprint and
// drops level storage. Destroy is idempotent.
func (t *Texture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true

	if t.impl != nil {
		t.impl.Destroy(t.device, t)
		t.impl = nil
	}
	t.device.Textures().Remove(t)
	t.device.VRAM().Sub(t.category, t.accountedBytes)
	t.accountedBytes = 0

	t.levels = nil
	t.levelsUpdated = nil
	t.invalidLevel = nil
}

// GPUSize returns the texture's GPU memory footprint in bytes, computed
// from dimensions, format, mip count and the cubemap flag. Mips are
// counted only for power-of-two dimensions with mipmaps enabled, and
// never for a single-level compressed texture.
func (t *Texture) GPUSize() int64 {
	mips := 1
	fullChain := IsPow2(t.width) && IsPow2(t.height) && t.state.mipmaps &&
		!(t.format.IsCompressed() && len(t.levels) == 1)
	if fullChain {
		mips = MipCount(t.width, t.height)
	}

	var size int64
	for i := 0; i < mips; i++ {
		w := MipDimension(t.width, i)
		h := MipDimension(t.height, i)
		level := t.format.LevelByteSize(w, h)
		if t.volume {
			level *= MipDimension(t.depth, i)
		}
		size += int64(level)
	}
	if t.cubemap {
		size *= CubeFaceCount
	}
	if t.arrayLength > 0 {
		size *= int64(t.arrayLength)
	}
	return size
}

// reaccount re-bases the texture's VRAM charge after a dimension change.
func (t *Texture) reaccount() {
	if t.destroyed {
		return
	}
	t.device.VRAM().Sub(t.category, t.accountedBytes)
	t.accountedBytes = t.GPUSize()
	t.device.VRAM().Add(t.category, t.accountedBytes)
}

// Download reads the top mip level back from the GPU, one non-blocking
// read per cubemap face, all awaited together. The result is indexed in
// face order. Cancellation is not supported beyond ctx; the caller owns
// any timeout policy.
func (t *Texture) Download(ctx context.Context) ([][]byte, error) {
	if t.destroyed {
		return nil, ErrDestroyed
	}
	if t.impl == nil {
		return nil, ErrNoImpl
	}

	faces := t.Faces()
	out := make([][]byte, faces)

	g, ctx := errgroup.WithContext(ctx)
	for face := 0; face < faces; face++ {
		g.Go(func() error {
			data, err := t.impl.ReadLevel(ctx, t, face)
			if err != nil {
				return fmt.Errorf("tex: read face %d: %w", face, err)
			}
			out[face] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// String returns a string representation of the texture.
func (t *Texture) String() string {
	kind := "2d"
	switch {
	case t.cubemap:
		kind = "cube"
	case t.volume:
		kind = "3d"
	}
	status := "active"
	if t.destroyed {
		status = "destroyed"
	}
	return fmt.Sprintf("Texture[#%d %s %s %dx%d %v %d levels %d bytes %s]",
		t.id, t.name, kind, t.width, t.height, t.format, len(t.levels), t.accountedBytes, status)
}
