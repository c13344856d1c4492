package rhi

import "testing"

func TestFormatTableCoversEveryDeclaredFormat(t *testing.T) {
	formats := []Format{
		FormatR8Unorm, FormatR8Snorm, FormatR8Uint, FormatR8Sint,
		FormatRG8Unorm, FormatRG8Snorm, FormatRG8Uint, FormatRG8Sint,
		FormatRGB8Unorm,
		FormatRGBA8Unorm, FormatRGBA8Snorm, FormatRGBA8Uint, FormatRGBA8Sint, FormatRGBA8UnormSRGB,
		FormatR16Unorm, FormatR16Snorm, FormatR16Uint, FormatR16Sint, FormatR16Float,
		FormatRG16Unorm, FormatRG16Snorm, FormatRG16Uint, FormatRG16Sint, FormatRG16Float,
		FormatRGBA16Unorm, FormatRGBA16Snorm, FormatRGBA16Uint, FormatRGBA16Sint, FormatRGBA16Float,
		FormatR32Uint, FormatR32Sint, FormatR32Float,
		FormatRG32Uint, FormatRG32Sint, FormatRG32Float,
		FormatRGB32Float,
		FormatRGBA32Uint, FormatRGBA32Sint, FormatRGBA32Float,
		FormatDepth16Unorm, FormatDepth24Stencil8, FormatDepth32Float, FormatDepth32FloatStencil8, FormatStencil8,
	}
	for _, f := range formats {
		info, ok := lookupFormat(f)
		if !ok {
			t.Errorf("format %d has no table entry", f)
			continue
		}
		if info.bytesPerPixel == 0 {
			t.Errorf("format %d has zero bytes per pixel", f)
		}
	}
}

func TestLookupFormatRejectsUnknownValue(t *testing.T) {
	if _, ok := lookupFormat(Format(255)); ok {
		t.Fatalf("lookupFormat(255) should not be recognized")
	}
}

func TestIsDepthStencilFormat(t *testing.T) {
	cases := []struct {
		f    Format
		want bool
	}{
		{FormatRGBA8Unorm, false},
		{FormatDepth16Unorm, true},
		{FormatDepth24Stencil8, true},
		{FormatStencil8, true},
	}
	for _, c := range cases {
		if got := isDepthStencilFormat(c.f); got != c.want {
			t.Errorf("isDepthStencilFormat(%d) = %v, want %v", c.f, got, c.want)
		}
	}
}

func TestMipExtentClampsToOne(t *testing.T) {
	cases := []struct {
		base, level, want uint32
	}{
		{256, 0, 256},
		{256, 1, 128},
		{256, 8, 1},
		{1, 0, 1},
		{1, 3, 1},
	}
	for _, c := range cases {
		if got := mipExtent(c.base, c.level); got != c.want {
			t.Errorf("mipExtent(%d, %d) = %d, want %d", c.base, c.level, got, c.want)
		}
	}
}
