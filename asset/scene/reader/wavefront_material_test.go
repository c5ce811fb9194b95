package reader

import (
	"math"
	"strings"
	"testing"

	"github.com/achilleasa/wavefront/asset"
	"github.com/achilleasa/wavefront/asset/material"
	"github.com/achilleasa/wavefront/types"
)

// Read a material library referenced by an otherwise empty document.
func readTestMaterials(t *testing.T, lib string) []*material.Material {
	t.Helper()
	model := mustReadTestModel(t, asset.MapFetcher{
		testDoc:           "mtllib ship.mtl",
		"models/ship.mtl": lib,
	})
	return model.Materials
}

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-6
}

func TestMaterialScalars(t *testing.T) {
	materials := readTestMaterials(t, `
# statements before the first material are ignored
Ns 1
newmtl shiny
Ns 96.0
Tr 0.3
Ni 1.45
Pr 0.25
Pm 1
Ps 0.1
Pc 0.2
Pcr 0.3
aniso 0.4
anisor 0.5
illum 2
newmtl glass
d 0.3
`)

	if len(materials) != 2 {
		t.Fatalf("expected 2 materials; got %d", len(materials))
	}

	type spec struct {
		field *float32
		exp   float32
	}
	shiny := materials[0]
	specs := []spec{
		{shiny.SpecularExponent, 96},
		{shiny.Transparency, 0.7},
		{shiny.OpticalDensity, 1.45},
		{shiny.Roughness, 0.25},
		{shiny.Metallic, 1},
		{shiny.Sheen, 0.1},
		{shiny.ClearcoatThickness, 0.2},
		{shiny.ClearcoatRoughness, 0.3},
		{shiny.Anisotropy, 0.4},
		{shiny.AnisotropyRotation, 0.5},
		{materials[1].Transparency, 0.3},
	}
	for idx, s := range specs {
		if s.field == nil {
			t.Fatalf("[spec %d] expected value to be set", idx)
		}
		if !approxEqual(*s.field, s.exp) {
			t.Fatalf("[spec %d] expected %f; got %f", idx, s.exp, *s.field)
		}
	}

	if shiny.IlluminationModel == nil || *shiny.IlluminationModel != material.IllumHighlightOn {
		t.Fatalf("expected illumination model %v; got %v", material.IllumHighlightOn, shiny.IlluminationModel)
	}
	if materials[1].SpecularExponent != nil {
		t.Fatal("expected unset attributes to be nil")
	}
}

func TestMaterialColors(t *testing.T) {
	materials := readTestMaterials(t, `
NEWMTL paint
KD 1 0.5 0.25
ka 0.2
Ks 1 1 1
Ke 0.5 1 2
Tf xyz 0.3 0.4 0.5
newmtl lamp
Ke 4
Tf spectral glass.rfl 1.0
`)

	type spec struct {
		color *types.Vec3
		exp   types.Vec3
	}
	paint := materials[0]
	specs := []spec{
		{paint.DiffuseColor, types.XYZ(1, 0.5, 0.25)},
		{paint.AmbientColor, types.XYZ(0.2, 0.2, 0.2)},
		{paint.SpecularColor, types.XYZ(1, 1, 1)},
		{paint.EmissiveColor, types.XYZ(0.5, 1, 2)},
		{paint.TransmissionFilterColor, types.XYZ(0.3, 0.4, 0.5)},
	}
	for idx, s := range specs {
		if s.color == nil {
			t.Fatalf("[spec %d] expected color to be set", idx)
		}
		if !types.ApproxEqual(*s.color, s.exp, 1e-6) {
			t.Fatalf("[spec %d] expected %v; got %v", idx, s.exp, *s.color)
		}
	}

	if paint.Name != "paint" {
		t.Fatalf("expected material name to keep its case; got %s", paint.Name)
	}
	if !paint.TransmissionFilterXYZ {
		t.Fatal("expected the xyz transmission filter form to be recorded")
	}
	if paint.Emissive == nil || *paint.Emissive != 0.5 {
		t.Fatalf("expected emissive scalar 0.5; got %v", paint.Emissive)
	}

	lamp := materials[1]
	if lamp.Emissive == nil || *lamp.Emissive != 4 || lamp.EmissiveColor != nil {
		t.Fatalf("expected scalar-only emissive 4; got %v / %v", lamp.Emissive, lamp.EmissiveColor)
	}
	if lamp.TransmissionFilterColor != nil {
		t.Fatal("expected the spectral transmission filter form to be skipped")
	}
}

func TestLongMaterialLines(t *testing.T) {
	// Pad a statement well past the default 64 KiB scanner limit.
	padding := strings.Repeat(" ", 128*1024)
	materials := readTestMaterials(t, "newmtl long\nKd 0.5"+padding+"0.25 1\n")

	if got := materials[0].DiffuseColor; got == nil || *got != types.XYZ(0.5, 0.25, 1) {
		t.Fatalf("expected diffuse color (0.5, 0.25, 1); got %v", got)
	}
}

func TestDuplicateMaterials(t *testing.T) {
	model := mustReadTestModel(t, asset.MapFetcher{
		testDoc:           "mtllib a.mtl b.mtl",
		"models/a.mtl":    "newmtl wood\nNs 10",
		"models/b.mtl":    "newmtl wood\nNs 20",
		"models/ship.mtl": "",
	})

	if len(model.Materials) != 2 {
		t.Fatalf("expected both definitions to be kept; got %d", len(model.Materials))
	}
	if got := *model.Material("wood").SpecularExponent; got != 20 {
		t.Fatalf("expected the most recent definition to win; got Ns %f", got)
	}
}

func TestMaterialErrors(t *testing.T) {
	specs := []struct {
		lib     string
		expLine int
		expMsg  string
	}{
		{"newmtl a\nNs shiny", 2, `could not parse argument for "Ns"`},
		{"newmtl a\n\nKd 1 x 1", 3, `could not parse argument 2 for "Kd"`},
		{"newmtl a\nillum two", 2, `could not parse argument for "illum"`},
		{"newmtl a\nillum", 2, `unsupported syntax for "illum"`},
		{"newmtl a\nd", 2, `unsupported syntax for "d"`},
		{"newmtl", 1, `unsupported syntax for "newmtl"`},
		{"newmtl a\nmap_Kd", 2, `expected a texture file`},
		{"newmtl a\nKd 1 2", 2, `expected 1 or 3 arguments; got 2`},
		{"newmtl a\nTf xyz 0.3 0.4", 2, `expected 1 or 3 arguments; got 2`},
	}

	for idx, s := range specs {
		_, err := readTestModel(asset.MapFetcher{
			testDoc:           "mtllib ship.mtl",
			"models/ship.mtl": s.lib,
		})
		if err == nil {
			t.Fatalf("[spec %d] expected an error", idx)
		}
		rErr, ok := err.(*Error)
		if !ok || rErr.Line != s.expLine || rErr.File != "models/ship.mtl" {
			t.Fatalf("[spec %d] expected error at models/ship.mtl:%d; got %v", idx, s.expLine, err)
		}
		if !strings.Contains(err.Error(), s.expMsg) {
			t.Fatalf("[spec %d] expected error to contain %q; got %v", idx, s.expMsg, err)
		}
	}
}
