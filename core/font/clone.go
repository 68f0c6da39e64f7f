package font

// Clone creates a deep copy of a glyph, including all of its layers.
func (g *Glyph) Clone() *Glyph {
	c := &Glyph{
		Name:     g.Name,
		Category: g.Category,
		NoExport: g.NoExport,
	}
	c.Unicodes = append([]string(nil), g.Unicodes...)
	c.Layers = make([]*Layer, len(g.Layers))
	for i, l := range g.Layers {
		c.Layers[i] = l.clone()
	}
	c.link()
	return c
}

// Restore overwrites g with the content of snapshot, which is usually a clone
// created earlier. Pointer identity of g is preserved; snapshot is copied, so it
// may be restored again.
func (g *Glyph) Restore(snapshot *Glyph) {
	c := snapshot.Clone()
	*g = *c
	g.link()
}

func (l *Layer) clone() *Layer {
	c := &Layer{
		Master: l.Master,
		Width:  l.Width,
	}
	for _, p := range l.Paths {
		cp := &Path{Closed: p.Closed, Nodes: make([]*Node, len(p.Nodes))}
		for i, n := range p.Nodes {
			nn := *n
			cp.Nodes[i] = &nn
		}
		c.Paths = append(c.Paths, cp)
	}
	for _, a := range l.Anchors {
		aa := *a
		c.Anchors = append(c.Anchors, &aa)
	}
	for _, h := range l.Hints {
		hh := *h
		c.Hints = append(c.Hints, &hh)
	}
	c.Guides = cloneGuides(l.Guides)
	for _, comp := range l.Components {
		cc := *comp
		c.Components = append(c.Components, &cc)
	}
	return c
}

// Clone creates a deep copy of a master.
func (m *Master) Clone() *Master {
	c := *m
	c.Guides = cloneGuides(m.Guides)
	return &c
}

// Restore overwrites m with the content of snapshot.
func (m *Master) Restore(snapshot *Master) {
	*m = *snapshot.Clone()
}

func cloneGuides(guides []*Guide) []*Guide {
	if guides == nil {
		return nil
	}
	c := make([]*Guide, len(guides))
	for i, g := range guides {
		gg := *g
		c[i] = &gg
	}
	return c
}
