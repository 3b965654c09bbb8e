package scene

// Scene is an insertion-ordered set of objects.
type Scene struct {
	Name    string
	objects []Object
}

func New(name string) *Scene { return &Scene{Name: name} }

// Add appends o unless it is already present.
func (s *Scene) Add(o Object) {
	if s.Contains(o) {
		return
	}
	s.objects = append(s.objects, o)
}

// Remove drops o and reports whether it was present.
func (s *Scene) Remove(o Object) bool {
	for i, obj := range s.objects {
		if obj == o {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scene) Contains(o Object) bool {
	for _, obj := range s.objects {
		if obj == o {
			return true
		}
	}
	return false
}

func (s *Scene) Len() int { return len(s.objects) }

// Objects returns a copy of the scene contents in insertion order.
func (s *Scene) Objects() []Object {
	out := make([]Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Pickables returns every object that a ray can hit.
func (s *Scene) Pickables() []Pickable {
	var out []Pickable
	for _, obj := range s.objects {
		if p, ok := obj.(Pickable); ok {
			out = append(out, p)
		}
	}
	return out
}
