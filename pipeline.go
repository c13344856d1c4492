package rhi

import (
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// CreatePipeline compiles and links the shader program, then builds the
// vertex array object from the descriptor's vertex binding layout.
// Grounded on graphics_device_opengl.cpp's create_pipeline (shader
// compile/link) and create_geometry (VAO + attribute format/binding),
// folded together per SPEC_FULL.md §C.1. Any failure mid-construction uses
// a scoped-acquisition guard: partially built GL objects are torn down
// before returning the null handle.
func (d *Device) CreatePipeline(desc PipelineDescriptor) PipelineHandle {
	if err := validatePipelineDesc(&desc); err != nil {
		Logger().Error("rhi: create_pipeline rejected", "error", err, "label", desc.Label)
		return PipelineHandle{}
	}

	vs, err := compileShader(gl.VERTEX_SHADER, desc.VertexShaderSource)
	if err != nil {
		Logger().Error("rhi: create_pipeline: vertex shader compile failed", "error", err, "label", desc.Label)
		return PipelineHandle{}
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(gl.FRAGMENT_SHADER, desc.FragmentShaderSource)
	if err != nil {
		Logger().Error("rhi: create_pipeline: fragment shader compile failed", "error", err, "label", desc.Label)
		return PipelineHandle{}
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	if err := checkProgramLink(program); err != nil {
		gl.DeleteProgram(program)
		Logger().Error("rhi: create_pipeline: link failed", "error", err, "label", desc.Label)
		return PipelineHandle{}
	}

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	for bindingIdx, vb := range desc.VertexBindings {
		for _, attr := range vb.Attributes {
			gl.EnableVertexAttribArray(attr.Location)
			info, _ := lookupFormat(attr.Format)
			gl.VertexAttribFormat(attr.Location, int32(componentCount(attr.Format)), info.dataType, attr.Normalized, attr.Offset)
			gl.VertexAttribBinding(attr.Location, uint32(bindingIdx))
		}
		divisor := uint32(0)
		if vb.PerInstance {
			divisor = 1
		}
		gl.VertexBindingDivisor(uint32(bindingIdx), divisor)
	}
	gl.BindVertexArray(0)

	h := d.pipelines.insert(pipelineRecord{program: program, vao: vao, desc: desc})
	Logger().Debug("rhi: pipeline created", "gl_program", program, "label", desc.Label)
	return h
}

// DestroyPipeline releases the shader program and vertex array object
// backing h. Folds in destroy_geometry's VAO teardown per SPEC_FULL.md §C.2.
func (d *Device) DestroyPipeline(h PipelineHandle) {
	rec := d.pipelines.tryGet(h)
	if rec == nil {
		Logger().Warn("rhi: destroy_pipeline: handle not found", "handle", h.id)
		return
	}
	gl.DeleteVertexArrays(1, &rec.vao)
	gl.DeleteProgram(rec.program)
	d.pipelines.remove(h)
	Logger().Debug("rhi: pipeline destroyed", "gl_program", rec.program)
}

func compileShader(kind uint32, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, errorf("rhi: shader compile failed: %s", log)
	}
	return shader, nil
}

func checkProgramLink(program uint32) error {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
		return errorf("rhi: program link failed: %s", log)
	}
	return nil
}

// componentCount returns how many scalar components a vertex attribute
// format carries (e.g. RGBA32Float -> 4), used to drive
// glVertexAttribFormat's `size` parameter. Derived from the format's GL
// data-format class rather than a per-Format switch, so every entry in
// formatTable (§4.3's required families) is covered without needing to be
// listed here individually.
func componentCount(f Format) int {
	info, ok := lookupFormat(f)
	if !ok {
		unreachable("vertex attribute Format")
		return 0
	}
	switch info.dataFormat {
	case gl.RED, gl.RED_INTEGER, gl.DEPTH_COMPONENT, gl.STENCIL_INDEX:
		return 1
	case gl.RG, gl.RG_INTEGER:
		return 2
	case gl.RGB, gl.RGB_INTEGER:
		return 3
	case gl.RGBA, gl.RGBA_INTEGER:
		return 4
	case gl.DEPTH_STENCIL:
		return 1
	}
	unreachable("vertex attribute Format")
	return 0
}
