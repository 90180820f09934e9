package tex

import "context"

// Capabilities describes the device features the texture subsystem
// consults. Backends fill this from the underlying adapter.
type Capabilities struct {
	// SupportsVolumeTextures reports 3D texture support.
	SupportsVolumeTextures bool

	// MaxTextureSize is the largest supported texture dimension.
	MaxTextureSize int

	// MaxAnisotropy is the highest supported anisotropic filtering level.
	MaxAnisotropy int

	// SupportsDXT, SupportsETC and SupportsPVRTC report native support
	// for the block-compressed families, used by the Basis target
	// format selection.
	SupportsDXT   bool
	SupportsETC   bool
	SupportsPVRTC bool
	SupportsASTC  bool
}

// Device is the graphics device collaborator a Texture is created
// against. The texture subsystem never submits GPU commands itself; it
// asks the device for a TextureImpl and drives that.
type Device interface {
	// CreateTextureImpl creates the backend handle for a texture.
	// Called synchronously during texture construction and on Resize.
	CreateTextureImpl(t *Texture) TextureImpl

	// Capabilities returns the device capability flags.
	Capabilities() Capabilities

	// VRAM returns the shared memory accounting structure.
	VRAM() *VRAMAccounting

	// RenderVersion returns the device's monotonically increasing render
	// version. Textures copy it into their dirty marker when sampling
	// state changes.
	RenderVersion() uint64

	// Textures returns the device's live-texture registry. Textures add
	// themselves at construction and remove themselves at destruction.
	Textures() *Registry
}

// TextureImpl is the device-specific GPU side of a texture. The entity
// keeps it consistent with its CPU-side state through the notification
// methods below.
type TextureImpl interface {
	// Destroy releases the native GPU object.
	Destroy(device Device, t *Texture)

	// LoseContext drops native handles after a GPU context loss. CPU
	// state survives; the entity follows up with DirtyAll so a restore
	// re-uploads everything.
	LoseContext()

	// PropertyChanged notifies the backend which sampling properties
	// changed, as a bitmask of named flags.
	PropertyChanged(flags PropertyFlag)

	// UploadImmediate pushes the texture's dirty levels to the GPU.
	// Deduplication of repeated calls is the backend's responsibility.
	UploadImmediate(device Device, t *Texture) error

	// ReadLevel downloads the top mip level of one face from the GPU.
	// This is the subsystem's only asynchronous operation; callers own
	// any timeout policy via ctx.
	ReadLevel(ctx context.Context, t *Texture, face int) ([]byte, error)
}

// Registry is the ordered collection of live textures a device tracks.
// It preserves insertion order and splices entries out on removal.
//
// The registry is mutated only at texture construction and destruction,
// by the texture itself.
type Registry struct {
	items []*Texture
}

// Add appends a texture to the registry.
func (r *Registry) Add(t *Texture) {
	r.items = append(r.items, t)
}

// Remove splices a texture out of the registry, preserving order.
// Removing a texture that is not present is a no-op.
func (r *Registry) Remove(t *Texture) {
	for i, item := range r.items {
		if item == t {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return
		}
	}
}

// Len returns the number of live textures.
func (r *Registry) Len() int { return len(r.items) }

// Contains reports whether the texture is registered.
func (r *Registry) Contains(t *Texture) bool {
	for _, item := range r.items {
		if item == t {
			return true
		}
	}
	return false
}

// All returns a copy of the registry contents in insertion order.
func (r *Registry) All() []*Texture {
	out := make([]*Texture, len(r.items))
	copy(out, r.items)
	return out
}

// NullDevice is a Device with no GPU behind it. Textures created against
// it keep full CPU-side state but perform no uploads. Used for tests and
// headless tools.
type NullDevice struct {
	vram     *VRAMAccounting
	registry Registry
	version  uint64
	caps     Capabilities
}

// NewNullDevice creates a NullDevice with its own VRAM accounting.
func NewNullDevice() *NullDevice {
	return &NullDevice{
		vram: NewVRAMAccounting(),
		caps: Capabilities{
			MaxTextureSize: 4096,
			MaxAnisotropy:  16,
		},
	}
}

// CreateTextureImpl returns a no-op implementation.
func (d *NullDevice) CreateTextureImpl(*Texture) TextureImpl { return nullImpl{} }

// Capabilities returns the configured capability flags.
func (d *NullDevice) Capabilities() Capabilities { return d.caps }

// SetCapabilities overrides the capability flags (tests).
func (d *NullDevice) SetCapabilities(caps Capabilities) { d.caps = caps }

// VRAM returns the device's accounting structure.
func (d *NullDevice) VRAM() *VRAMAccounting { return d.vram }

// RenderVersion returns the current render version.
func (d *NullDevice) RenderVersion() uint64 { return d.version }

// BumpRenderVersion increments the render version (tests).
func (d *NullDevice) BumpRenderVersion() { d.version++ }

// Textures returns the live-texture registry.
func (d *NullDevice) Textures() *Registry { return &d.registry }

// nullImpl is the no-op TextureImpl behind NullDevice.
type nullImpl struct{}

func (nullImpl) Destroy(Device, *Texture)               {}
func (nullImpl) LoseContext()                           {}
func (nullImpl) PropertyChanged(PropertyFlag)           {}
func (nullImpl) UploadImmediate(Device, *Texture) error { return nil }

func (nullImpl) ReadLevel(context.Context, *Texture, int) ([]byte, error) {
	return nil, nil
}

// Ensure NullDevice implements Device.
var _ Device = (*NullDevice)(nil)
