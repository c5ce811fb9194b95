package scene

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/achilleasa/wavefront/types"
	"github.com/olekukonko/tablewriter"
)

// Build a tabular representation of the model geometry and materials.
func (m *Model) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Object", "Group", "Material", "Vertices", "Triangles", "Dimensions", "Size"})

	var totalVerts, totalTris int
	var sizes []interface{}
	for _, obj := range m.Objects {
		objRow := []string{obj.Name, "", obj.Material, "-", "-", "-", "-"}
		if obj.Mesh != nil {
			objRow[3] = fmt.Sprint(obj.Mesh.VertexCount())
			objRow[4] = fmt.Sprint(obj.Mesh.TriangleCount())
			objRow[5] = fmtVec(obj.Mesh.Dimensions)
			objRow[6] = fmtSize(obj.Mesh.Positions, obj.Mesh.Normals, obj.Mesh.UVs, obj.Mesh.Indices)
			totalVerts += obj.Mesh.VertexCount()
			totalTris += obj.Mesh.TriangleCount()
			sizes = append(sizes, obj.Mesh.Positions, obj.Mesh.Normals, obj.Mesh.UVs, obj.Mesh.Indices)
		}
		table.Append(objRow)

		for _, group := range obj.Groups {
			table.Append([]string{
				"",
				group.Name,
				group.Material,
				fmt.Sprint(group.Mesh.VertexCount()),
				fmt.Sprint(group.Mesh.TriangleCount()),
				fmtVec(group.Mesh.Dimensions),
				fmtSize(group.Mesh.Positions, group.Mesh.Normals, group.Mesh.UVs, group.Mesh.Indices),
			})
			totalVerts += group.Mesh.VertexCount()
			totalTris += group.Mesh.TriangleCount()
			sizes = append(sizes, group.Mesh.Positions, group.Mesh.Normals, group.Mesh.UVs, group.Mesh.Indices)
		}
	}

	var texData []interface{}
	for _, tex := range m.Textures {
		texData = append(texData, tex.Data)
	}

	table.SetFooter([]string{
		"Total",
		fmt.Sprintf("%d materials", len(m.Materials)),
		fmt.Sprintf("%d textures (%s)", len(m.Textures), strings.TrimLeft(fmtSize(texData...), " ")),
		fmt.Sprint(totalVerts),
		fmt.Sprint(totalTris),
		" ",
		strings.TrimLeft(fmtSize(sizes...), " "),
	})

	table.Render()
	return buf.String()
}

func fmtVec(v types.Vec3) string {
	return fmt.Sprintf("%.3g x %.3g x %.3g", v[0], v[1], v[2])
}

// Sum the total space used by a set of slices and return back a formatted
// value with the appropriate byte/kb/mb unit.
func fmtSize(items ...interface{}) string {
	var totalBytes float32 = 0.0
	for _, item := range items {
		t := reflect.TypeOf(item)
		v := reflect.ValueOf(item)
		if v.Len() == 0 {
			continue
		}

		totalBytes += float32(int(t.Elem().Size()) * v.Len())
	}

	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}
