// Package wgpu implements gpucore.GPU on gogpu/wgpu, the Pure Go WebGPU
// implementation.
//
// Importing the package registers the "wgpu" backend together with every
// HAL backend compiled for the platform (Vulkan and GLES on Linux, Metal
// on macOS, DX12, Vulkan and GLES on Windows):
//
//	import _ "github.com/gogpu/engine/backend/wgpu"
//
// # Driver Mapping
//
// Engine driver names map onto HAL backends:
//
//	vulkan     -> gputypes.BackendVulkan
//	metal      -> gputypes.BackendMetal
//	direct3d12 -> gputypes.BackendDX12
//	opengl     -> gputypes.BackendGL
//
// An empty driver name lets wgpu pick among all backends.
//
// # Swapchains
//
// Each claimed window gets a wgpu.Surface. Surfaces are reconfigured
// lazily when the framebuffer size changes or the HAL reports the surface
// as outdated or suboptimal; frames during which no texture is available
// are skipped rather than treated as errors.
package wgpu
