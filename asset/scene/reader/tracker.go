package reader

import (
	"strings"

	"github.com/achilleasa/wavefront/asset/mesh"
	"github.com/achilleasa/wavefront/asset/scene"
)

type scopeKind uint8

const (
	objectScope scopeKind = iota
	groupScope
)

// A scope pairs an object or group with the builder accumulating its faces.
type scope struct {
	kind    scopeKind
	object  *scene.Object
	group   *scene.Group
	builder *mesh.Builder
}

func (s *scope) name() string {
	if s.kind == groupScope {
		return s.group.Name
	}
	return s.object.Name
}

func (s *scope) material() string {
	if s.kind == groupScope {
		return s.group.Material
	}
	return s.object.Material
}

func (s *scope) setMaterial(name string) {
	if s.kind == groupScope {
		s.group.Material = name
	} else {
		s.object.Material = name
	}
}

// The tracker follows the object/group hierarchy of a document and routes
// faces to the builder of the active scope. Scopes that are switched away
// from are parked; selecting the same object or group again resumes
// accumulation into its builder. Builders are finalized by finish.
type tracker struct {
	model *scene.Model
	width mesh.IndexWidth

	current *scope

	// All scopes in creation order.
	scopes   []*scope
	byObject map[*scene.Object]*scope
	byGroup  map[*scene.Group]*scope

	// The object created for geometry preceding any "o" statement.
	implicitObject *scene.Object
}

// Create a tracker whose initial scope is an object with the given name.
func newTracker(model *scene.Model, defaultName string, width mesh.IndexWidth) *tracker {
	t := &tracker{
		model:    model,
		width:    width,
		byObject: make(map[*scene.Object]*scope),
		byGroup:  make(map[*scene.Group]*scope),
	}
	t.current = t.newObject(defaultName)
	t.implicitObject = t.current.object
	return t
}

// Get the builder of the active scope.
func (t *tracker) builder() *mesh.Builder {
	return t.current.builder
}

// Get a description of the active scope for log messages.
func (t *tracker) describe() string {
	if t.current.kind == groupScope {
		return `group "` + t.current.group.Name + `" of object "` + t.current.object.Name + `"`
	}
	return `object "` + t.current.object.Name + `"`
}

func (t *tracker) newObject(name string) *scope {
	obj := &scene.Object{Name: name}
	t.model.Objects = append(t.model.Objects, obj)

	s := &scope{kind: objectScope, object: obj, builder: mesh.NewBuilder(t.width)}
	t.scopes = append(t.scopes, s)
	t.byObject[obj] = s
	return s
}

func (t *tracker) newGroup(obj *scene.Object, name string) *scope {
	group := &scene.Group{Name: name}
	obj.Groups = append(obj.Groups, group)

	s := &scope{kind: groupScope, object: obj, group: group, builder: mesh.NewBuilder(t.width)}
	t.scopes = append(t.scopes, s)
	t.byGroup[group] = s
	return s
}

// Handle an "o" statement. The group selection is cleared.
func (t *tracker) selectObject(name string) {
	if obj := t.model.Object(name); obj != nil {
		t.current = t.byObject[obj]
		return
	}
	t.current = t.newObject(name)
}

// Handle a "g" statement. Groups are looked up within the current object.
func (t *tracker) selectGroup(name string) {
	obj := t.current.object
	if group := obj.Group(name); group != nil {
		t.current = t.byGroup[group]
		return
	}
	t.current = t.newGroup(obj, name)
}

// Handle a "usemtl" statement. Selecting a material for a scope that already
// uses a different one moves to a sibling scope named after the new material
// so that every mesh uses a single material.
func (t *tracker) useMaterial(name string) (split bool) {
	curMaterial := t.current.material()
	if curMaterial == "" || curMaterial == name {
		t.current.setMaterial(name)
		return false
	}

	siblingName := strings.TrimSuffix(t.current.name(), "_"+curMaterial) + "_" + name
	switch t.current.kind {
	case objectScope:
		if obj := t.model.Object(siblingName); obj != nil && obj.Material == name {
			t.current = t.byObject[obj]
			return true
		}
		t.current = t.newObject(siblingName)
	case groupScope:
		if group := t.current.object.Group(siblingName); group != nil && group.Material == name {
			t.current = t.byGroup[group]
			return true
		}
		t.current = t.newGroup(t.current.object, siblingName)
	}

	t.current.setMaterial(name)
	return true
}

// Finalize all builders and attach the meshes to their objects and groups.
// Objects only receive a mesh if faces were emitted directly under them.
func (t *tracker) finish() {
	for _, s := range t.scopes {
		m := s.builder.Finalize()
		switch s.kind {
		case objectScope:
			if !m.Empty() {
				s.object.Mesh = m
			}
		case groupScope:
			s.group.Mesh = m
		}
	}
	t.current = nil

	// Drop the implicit object if the document never used it.
	implicit := t.implicitObject
	if len(t.model.Objects) > 1 && implicit.Mesh == nil && len(implicit.Groups) == 0 && implicit.Material == "" {
		t.model.Objects = t.model.Objects[1:]
	}
}
