package scene

import (
	"fmt"

	"github.com/achilleasa/wavefront/asset/material"
	"github.com/achilleasa/wavefront/asset/mesh"
	"github.com/achilleasa/wavefront/asset/texture"
)

// A Group is a named part of an object with its own material and mesh.
type Group struct {
	Name     string
	Material string
	Mesh     *mesh.Mesh
}

// An Object is a named collection of groups. Faces emitted outside of any
// group are stored in the object's own Mesh, which is nil otherwise.
type Object struct {
	Name     string
	Material string
	Mesh     *mesh.Mesh
	Groups   []*Group
}

// Lookup a group by name.
func (o *Object) Group(name string) *Group {
	for _, g := range o.Groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// A Model is the result of parsing a wavefront document and its material libraries.
type Model struct {
	// The path of the document the model was parsed from.
	Path string

	Objects   []*Object
	Materials []*material.Material

	// Textures referenced by the material texture maps, keyed by TextureMap.Name.
	Textures map[string]*texture.Texture
}

// Create an empty model.
func NewModel(path string) *Model {
	return &Model{
		Path:     path,
		Textures: make(map[string]*texture.Texture),
	}
}

// Lookup an object by name.
func (m *Model) Object(name string) *Object {
	for _, o := range m.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Lookup a material by name. When a name is defined more than once the most
// recent definition wins.
func (m *Model) Material(name string) *material.Material {
	for i := len(m.Materials) - 1; i >= 0; i-- {
		if m.Materials[i].Name == name {
			return m.Materials[i]
		}
	}
	return nil
}

// A Binding pairs a drawable mesh with its resolved material.
type Binding struct {
	Object   *Object
	Group    *Group // nil for meshes emitted directly under the object
	Mesh     *mesh.Mesh
	Material *material.Material
}

// Get a display name for the binding.
func (b Binding) Name() string {
	if b.Group == nil {
		return b.Object.Name
	}
	return b.Object.Name + "/" + b.Group.Name
}

// Resolve the material of every object and group mesh. Meshes that do not
// select a material are bound to material.Default(). Referencing a material
// that was never defined is an error.
func (m *Model) Resolve() ([]Binding, error) {
	fallback := material.Default()
	bindings := make([]Binding, 0)

	for _, obj := range m.Objects {
		if obj.Mesh != nil {
			mat := fallback
			if obj.Material != "" {
				if mat = m.Material(obj.Material); mat == nil {
					return nil, fmt.Errorf("scene: could not find material %q associated with object %q in %q", obj.Material, obj.Name, m.Path)
				}
			}
			bindings = append(bindings, Binding{Object: obj, Mesh: obj.Mesh, Material: mat})
		}

		for _, group := range obj.Groups {
			mat := fallback
			if group.Material != "" {
				if mat = m.Material(group.Material); mat == nil {
					return nil, fmt.Errorf("scene: could not find material %q associated with group %q of object %q in %q", group.Material, group.Name, obj.Name, m.Path)
				}
			}
			bindings = append(bindings, Binding{Object: obj, Group: group, Mesh: group.Mesh, Material: mat})
		}
	}

	return bindings, nil
}
