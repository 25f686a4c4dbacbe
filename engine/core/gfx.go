package core

// Renderer is the GPU backend the engine draws through.
type Renderer interface {
	Init() error
	Resize(w, h int)
	Clear(r, g, b, a float32)
	Shutdown()

	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateMesh(desc MeshDesc) (Mesh, error)
	UpdateMesh(m Mesh, vertices []float32, indices []uint32) error
	CreateTexture(desc TextureDesc) (Texture, error)
	CreateUniformBuffer(desc UniformBufferDesc) (UniformBuffer, error)
	WriteUniformBuffer(b UniformBuffer, data []byte) error
	Destroy(res Resource)
	Draw(cmd DrawCmd)

	GPUVendor() string
	GPURenderer() string
	GPUVersion() string
}

// Resource is any GPU object created by a Renderer.
type Resource interface {
	Label() string
}

type Pipeline interface {
	Resource
	isPipeline()
}

// PipelineBase is embedded by backend pipeline types to satisfy the interface.
type PipelineBase struct{}

func (PipelineBase) isPipeline() {}

type Mesh interface {
	Resource
	IndexCount() int
	isMesh()
}

// MeshBase is embedded by backend mesh types to satisfy the interface.
type MeshBase struct{}

func (MeshBase) isMesh() {}

type Texture interface {
	Resource
	Size() (w, h int)
	isTexture()
}

// TextureBase is embedded by backend texture types to satisfy the interface.
type TextureBase struct{}

func (TextureBase) isTexture() {}

type UniformBuffer interface {
	Resource
	Size() int
	isUniformBuffer()
}

// UniformBufferBase is embedded by backend uniform buffer types to satisfy the interface.
type UniformBufferBase struct{}

func (UniformBufferBase) isUniformBuffer() {}

// ---- vertex layout ----

type AttribType int

const (
	AttribFloat32 AttribType = iota
	AttribUint8Norm
)

type VertexAttrib struct {
	Location uint32
	Size     int32 // components
	Type     AttribType
	Offset   int // bytes
}

type VertexLayout struct {
	Stride     int32 // bytes
	Attributes []VertexAttrib
}

// ---- descriptors ----

// ShaderStage is a bitmask of the stages a binding is visible to.
type ShaderStage int

const (
	StageVertex ShaderStage = 1 << iota
	StageFragment

	StageVertexFragment = StageVertex | StageFragment
)

// UniformBlockDesc binds a named std140 block in the program to a binding point.
// The program's block may not be larger than MinSize.
type UniformBlockDesc struct {
	Name       string
	Binding    uint32
	MinSize    int
	Visibility ShaderStage
}

type PipelineDesc struct {
	Label          string
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	Blend          bool
	CullBack       bool
	Blocks         []UniformBlockDesc
}

type MeshDesc struct {
	Label    string
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
	Dynamic  bool
}

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
)

type TextureDesc struct {
	Label                string
	Width, Height        int
	Format               TextureFormat
	Pixels               []byte
	MinFilter, MagFilter string // "nearest" | "linear"
	WrapU, WrapV         string // "clamp" | "repeat"
}

type UniformBufferDesc struct {
	Label string
	Size  int
	Data  []byte // optional initial contents
}

// DrawCmd is a single indexed triangle-list draw.
type DrawCmd struct {
	Pipe       Pipeline
	Mesh       Mesh
	IndexCount int // 0 draws the whole mesh
	Uniforms   map[string]any
	Samplers   map[string]Texture
	Buffers    map[uint32]UniformBuffer // binding point -> buffer
}
