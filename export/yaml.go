package export

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tweezer/action"
	"github.com/katalvlaran/tweezer/grid"
	"github.com/katalvlaran/tweezer/schedule"
)

// Marshal encodes s as a YAML document.
func Marshal(s schedule.Schedule) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Encode writes s to w as YAML.
func Encode(w io.Writer, s schedule.Schedule) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromSchedule(s)); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	return enc.Close()
}

// Decode reads a YAML document from r and rebuilds the schedule, validating
// every path.
func Decode(r io.Reader) (schedule.Schedule, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return schedule.Schedule{}, fmt.Errorf("%w: %w", ErrBadDocument, err)
	}

	return doc.Schedule()
}

// FromSchedule converts s to its document form.
func FromSchedule(s schedule.Schedule) Document {
	doc := Document{Groups: make([]GroupDoc, len(s.Groups))}
	for i, g := range s.Groups {
		paths := make([]PathDoc, len(g.Paths))
		for j, p := range g.Paths {
			paths[j] = PathDoc{XTones: p.XTones, YTones: p.YTones, Actions: make([]ActionDoc, len(p.Actions))}
			for k, a := range p.Actions {
				paths[j].Actions[k] = actionDoc(a)
			}
		}
		doc.Groups[i] = GroupDoc{Paths: paths}
	}

	return doc
}

func actionDoc(a action.Action) ActionDoc {
	out := ActionDoc{Op: a.Kind().String()}
	switch act := a.(type) {
	case action.SetLocation:
		g := gridDoc(act.Grid)
		out.Grid = &g
	case action.Move:
		for _, w := range act.Waypoints {
			out.Waypoints = append(out.Waypoints, gridDoc(w))
		}
	case action.TurnOn:
		out.X, out.Y = selectorDoc(act.X), selectorDoc(act.Y)
	case action.TurnOff:
		out.X, out.Y = selectorDoc(act.X), selectorDoc(act.Y)
	}

	return out
}

func gridDoc(g grid.Grid) GridDoc {
	return GridDoc{X: g.XPositions(), Y: g.YPositions()}
}

func selectorDoc(s action.Selector) *SelectorDoc {
	if !s.IsSpan() {
		idx := s.List()
		if idx == nil {
			idx = []int{}
		}
		return &SelectorDoc{Indices: idx}
	}
	r := s.Bounds()
	if r == grid.All() {
		return &SelectorDoc{All: true}
	}
	out := &SelectorDoc{Start: r.Start, Step: r.Step}
	if r.Stop != grid.End {
		stop := r.Stop
		out.Stop = &stop
	}

	return out
}

// Schedule rebuilds the schedule described by d.
func (d Document) Schedule() (schedule.Schedule, error) {
	out := schedule.Schedule{Groups: make([]schedule.Group, len(d.Groups))}
	for i, g := range d.Groups {
		for j, pd := range g.Paths {
			p, err := pd.path()
			if err != nil {
				return schedule.Schedule{}, fmt.Errorf("group %d path %d: %w", i, j, err)
			}
			out.Groups[i].Paths = append(out.Groups[i].Paths, p)
		}
	}

	return out, nil
}

func (pd PathDoc) path() (action.Path, error) {
	acts := make([]action.Action, len(pd.Actions))
	for k, ad := range pd.Actions {
		a, err := ad.action()
		if err != nil {
			return action.Path{}, fmt.Errorf("action %d: %w", k, err)
		}
		acts[k] = a
	}

	return action.NewPath(pd.XTones, pd.YTones, acts)
}

func (ad ActionDoc) action() (action.Action, error) {
	switch ad.Op {
	case action.KindSetLocation.String():
		if ad.Grid == nil {
			return nil, fmt.Errorf("%w: %s without grid", ErrBadDocument, ad.Op)
		}
		g, err := ad.Grid.grid()
		if err != nil {
			return nil, err
		}
		return action.SetLocation{Grid: g}, nil
	case action.KindMove.String():
		if len(ad.Waypoints) < 2 {
			return nil, fmt.Errorf("%w: move needs at least two waypoints", ErrBadDocument)
		}
		ws := make([]grid.Grid, len(ad.Waypoints))
		for i, w := range ad.Waypoints {
			g, err := w.grid()
			if err != nil {
				return nil, err
			}
			if i > 0 {
				if err := grid.CheckShape(ws[0], g); err != nil {
					return nil, fmt.Errorf("waypoint %d: %w", i, err)
				}
			}
			ws[i] = g
		}
		return action.Move{Waypoints: ws}, nil
	case action.KindTurnOn.String():
		return action.TurnOn{X: ad.X.selector(), Y: ad.Y.selector()}, nil
	case action.KindTurnOff.String():
		return action.TurnOff{X: ad.X.selector(), Y: ad.Y.selector()}, nil
	}

	return nil, fmt.Errorf("%w: unknown op %q", ErrBadDocument, ad.Op)
}

func (gd GridDoc) grid() (grid.Grid, error) {
	g, err := grid.FromPositions(gd.X, gd.Y)
	if err != nil {
		return grid.Grid{}, fmt.Errorf("%w: %w", ErrBadDocument, err)
	}

	return g, nil
}

// selector reads a missing selector as all tones.
func (sd *SelectorDoc) selector() action.Selector {
	switch {
	case sd == nil || sd.All:
		return action.All()
	case sd.Indices != nil:
		return action.Indices(sd.Indices...)
	case sd.Stop != nil:
		return action.Span(sd.Start, *sd.Stop, sd.Step)
	}

	return action.Span(sd.Start, action.End, sd.Step)
}

// MarshalYAML writes "all", a flow list of indices or a span mapping.
func (sd SelectorDoc) MarshalYAML() (any, error) {
	switch {
	case sd.All:
		return "all", nil
	case !sd.isSpan():
		n := &yaml.Node{}
		if err := n.Encode(sd.Indices); err != nil {
			return nil, err
		}
		n.Style = yaml.FlowStyle
		return n, nil
	}
	n := &yaml.Node{}
	if err := n.Encode(spanDoc{Start: sd.Start, Stop: sd.Stop, Step: sd.Step}); err != nil {
		return nil, err
	}
	n.Style = yaml.FlowStyle

	return n, nil
}

func (sd SelectorDoc) isSpan() bool { return sd.Indices == nil }

// UnmarshalYAML accepts the three forms written by MarshalYAML.
func (sd *SelectorDoc) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Value != "all" {
			return fmt.Errorf("%w: line %d: selector %q", ErrBadDocument, n.Line, n.Value)
		}
		*sd = SelectorDoc{All: true}
		return nil
	case yaml.SequenceNode:
		idx := []int{}
		if err := n.Decode(&idx); err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrBadDocument, n.Line, err)
		}
		*sd = SelectorDoc{Indices: idx}
		return nil
	case yaml.MappingNode:
		var sp spanDoc
		if err := n.Decode(&sp); err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrBadDocument, n.Line, err)
		}
		*sd = SelectorDoc{Start: sp.Start, Stop: sp.Stop, Step: sp.Step}
		return nil
	}

	return fmt.Errorf("%w: line %d: unexpected selector", ErrBadDocument, n.Line)
}
