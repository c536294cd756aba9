package provider

import (
	"context"
	"sync"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// Store is a mutable in-memory Source. Every successful mutation publishes
// exactly one snapshot. Store is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	current Snapshot
	subs    map[int]chan Snapshot
	nextSub int
}

var _ Source = (*Store)(nil)

// NewStore returns a store holding copies of nodes and edges.
func NewStore(nodes []graph.Node, edges []graph.Edge) *Store {
	return &Store{
		current: Snapshot{Version: 1, Nodes: nodes, Edges: edges}.clone(),
		subs:    make(map[int]chan Snapshot),
	}
}

// Subscribe implements Source.
func (s *Store) Subscribe(ctx context.Context) <-chan Snapshot {
	ch := make(chan Snapshot, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.current.clone()
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()
	return ch
}

// Snapshot returns a copy of the current graph.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.clone()
}

// publish must be called with mu held.
func (s *Store) publish() {
	s.current.Version++
	for _, ch := range s.subs {
		snap := s.current.clone()
		select {
		case ch <- snap:
			continue
		default:
		}
		// Replace the stale pending snapshot with the latest one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func (s *Store) indexOf(id graph.NodeID) int {
	for i, n := range s.current.Nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Replace swaps in a whole new graph.
func (s *Store) Replace(nodes []graph.Node, edges []graph.Edge) {
	next := Snapshot{Nodes: nodes, Edges: edges}.clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Nodes, s.current.Edges = next.Nodes, next.Edges
	s.publish()
}

// AddNode appends n. Its id must be new.
func (s *Store) AddNode(n graph.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(n.ID) >= 0 {
		return errors.New(errors.ErrCodeDuplicateNode, "node %d already exists", n.ID)
	}
	s.current.Nodes = append(s.current.Nodes, cloneNode(n))
	s.publish()
	return nil
}

// UpdateNode replaces the node with n's id.
func (s *Store) UpdateNode(n graph.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(n.ID)
	if i < 0 {
		return errors.New(errors.ErrCodeUnknownNode, "node %d does not exist", n.ID)
	}
	s.current.Nodes[i] = cloneNode(n)
	s.publish()
	return nil
}

// RemoveNode deletes a node together with every edge touching it.
func (s *Store) RemoveNode(id graph.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return errors.New(errors.ErrCodeUnknownNode, "node %d does not exist", id)
	}
	s.current.Nodes = append(s.current.Nodes[:i:i], s.current.Nodes[i+1:]...)

	kept := make([]graph.Edge, 0, len(s.current.Edges))
	for _, e := range s.current.Edges {
		if e.Source != id && e.Target != id {
			kept = append(kept, e)
		}
	}
	s.current.Edges = kept
	s.publish()
	return nil
}

// AddEdge appends e. Both endpoints must exist and the weight must be
// positive; parallel edges are allowed.
func (s *Store) AddEdge(e graph.Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range []graph.NodeID{e.Source, e.Target} {
		if s.indexOf(id) < 0 {
			return errors.New(errors.ErrCodeUnknownNode, "node %d does not exist", id)
		}
	}
	if err := errors.ValidateWeight(e.Weight); err != nil {
		return err
	}
	s.current.Edges = append(s.current.Edges, e)
	s.publish()
	return nil
}

// UpdateEdge sets the weight of the first source→target edge.
func (s *Store) UpdateEdge(source, target graph.NodeID, weight float64) error {
	if err := errors.ValidateWeight(weight); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.current.Edges {
		if e.Source == source && e.Target == target {
			s.current.Edges[i].Weight = weight
			s.publish()
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidInput, "no edge %d->%d", source, target)
}

// RemoveEdge deletes every source→target edge. The reverse direction is
// left alone.
func (s *Store) RemoveEdge(source, target graph.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]graph.Edge, 0, len(s.current.Edges))
	for _, e := range s.current.Edges {
		if e.Source != source || e.Target != target {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(s.current.Edges) {
		return errors.New(errors.ErrCodeInvalidInput, "no edge %d->%d", source, target)
	}
	s.current.Edges = kept
	s.publish()
	return nil
}
