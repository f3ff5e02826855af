package board

import (
	"errors"
	"fmt"

	"go-logistics-ws/internal/model"
)

var (
	ErrContainerNotFound = errors.New("container not found")
	ErrLocationNotFound  = errors.New("location not found")
)

// ProductGroup aggregates the containers of one product + container type
// held at a single location. Quantity is always derived from the member
// slice, never stored.
type ProductGroup struct {
	ProductID     string              `json:"product_id"`
	ProductName   string              `json:"product_name"`
	ContainerType model.ContainerType `json:"container_type"`
	Containers    []*model.Container  `json:"containers"`
}

func (g *ProductGroup) Quantity() int { return len(g.Containers) }

// matches reports whether a container belongs in this group.
func (g *ProductGroup) matches(name string, t model.ContainerType) bool {
	return g.ProductName == name && g.ContainerType == t
}

// LocationState is one location plus its derived product groups.
type LocationState struct {
	Location model.Location  `json:"location"`
	Groups   []*ProductGroup `json:"groups"`
}

// Occupancy is the total number of containers currently at the location.
func (l *LocationState) Occupancy() int {
	total := 0
	for _, g := range l.Groups {
		total += len(g.Containers)
	}
	return total
}

func (l *LocationState) findGroup(name string, t model.ContainerType) (*ProductGroup, int) {
	for i, g := range l.Groups {
		if g.matches(name, t) {
			return g, i
		}
	}
	return nil, -1
}

// insert places a container into its matching group, creating the group
// lazily on first arrival.
func (l *LocationState) insert(c *model.Container) {
	if g, _ := l.findGroup(c.ProductName, c.ContainerType); g != nil {
		g.Containers = append(g.Containers, c)
		return
	}
	l.Groups = append(l.Groups, &ProductGroup{
		ProductID:     c.ProductID,
		ProductName:   c.ProductName,
		ContainerType: c.ContainerType,
		Containers:    []*model.Container{c},
	})
}

// remove takes a container out of its group, deleting the group when it
// empties. Returns false if the container is not held here.
func (l *LocationState) remove(containerID string) bool {
	for gi, g := range l.Groups {
		for ci, c := range g.Containers {
			if c.ID == containerID {
				g.Containers = append(g.Containers[:ci], g.Containers[ci+1:]...)
				if len(g.Containers) == 0 {
					l.Groups = append(l.Groups[:gi], l.Groups[gi+1:]...)
				}
				return true
			}
		}
	}
	return false
}

// clone copies the location state deeply enough that mutating the board
// afterwards cannot show through: new group and container values, with
// pointer fields (capacity, due date) re-pointed at fresh copies.
func (l *LocationState) clone() *LocationState {
	out := &LocationState{Location: l.Location}
	if l.Location.Capacity != nil {
		c := *l.Location.Capacity
		out.Location.Capacity = &c
	}
	out.Groups = make([]*ProductGroup, len(l.Groups))
	for i, g := range l.Groups {
		ng := &ProductGroup{
			ProductID:     g.ProductID,
			ProductName:   g.ProductName,
			ContainerType: g.ContainerType,
			Containers:    make([]*model.Container, len(g.Containers)),
		}
		for j, c := range g.Containers {
			cc := *c
			if c.DueAt != nil {
				d := *c.DueAt
				cc.DueAt = &d
			}
			ng.Containers[j] = &cc
		}
		out.Groups[i] = ng
	}
	return out
}

// CloneLocations returns a deep copy of every location state, in board
// order.
func (s *Snapshot) CloneLocations() []*LocationState {
	out := make([]*LocationState, len(s.locations))
	for i, ls := range s.locations {
		out[i] = ls.clone()
	}
	return out
}

// Snapshot is the canonical in-memory board: every location and,
// transitively, every product group and container. It is owned by exactly
// one controller; validator and alert engine only read it.
type Snapshot struct {
	locations []*LocationState
	index     map[string]*LocationState
}

// NewSnapshot builds a board from plain records. Location order is
// preserved (it drives alert discovery order); containers are grouped in
// the order given. A container referencing an unknown location is a
// consistency error and fails the whole build.
func NewSnapshot(locations []model.Location, containers []*model.Container) (*Snapshot, error) {
	s := &Snapshot{index: make(map[string]*LocationState, len(locations))}
	for _, loc := range locations {
		ls := &LocationState{Location: loc}
		s.locations = append(s.locations, ls)
		s.index[loc.ID] = ls
	}
	if err := s.AddContainers(containers); err != nil {
		return nil, err
	}
	return s, nil
}

// Locations returns the location states in board order.
func (s *Snapshot) Locations() []*LocationState { return s.locations }

// Location looks a location up by ID.
func (s *Snapshot) Location(id string) (*LocationState, bool) {
	ls, ok := s.index[id]
	return ls, ok
}

// FindContainer scans all locations' product groups for the container.
func (s *Snapshot) FindContainer(id string) (*model.Container, *LocationState, error) {
	for _, ls := range s.locations {
		for _, g := range ls.Groups {
			for _, c := range g.Containers {
				if c.ID == id {
					return c, ls, nil
				}
			}
		}
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrContainerNotFound, id)
}

// TotalContainers counts every container on the board. Moves conserve
// this total; only add and return-to-empty operations change it.
func (s *Snapshot) TotalContainers() int {
	total := 0
	for _, ls := range s.locations {
		total += ls.Occupancy()
	}
	return total
}

// AddContainers inserts containers into their owning locations' groups.
func (s *Snapshot) AddContainers(containers []*model.Container) error {
	// Resolve every location before touching anything.
	for _, c := range containers {
		if _, ok := s.index[c.LocationID]; !ok {
			return fmt.Errorf("%w: %s (container %s)", ErrLocationNotFound, c.LocationID, c.ID)
		}
	}
	for _, c := range containers {
		s.index[c.LocationID].insert(c)
	}
	return nil
}

// ApplyMove relocates one container between locations. Atomic relative to
// the caller: every lookup is resolved before the first mutation, so a
// failure leaves the board untouched. Moving to the current location is a
// no-op. Status and due-date changes belong to the controller, not here.
func (s *Snapshot) ApplyMove(containerID, fromID, toID string) error {
	src, ok := s.index[fromID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocationNotFound, fromID)
	}
	dst, ok := s.index[toID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocationNotFound, toID)
	}
	c, owner, err := s.FindContainer(containerID)
	if err != nil {
		return err
	}
	if owner != src {
		return fmt.Errorf("%w: %s not at %s", ErrContainerNotFound, containerID, fromID)
	}
	if fromID == toID {
		return nil
	}

	src.remove(containerID)
	c.LocationID = toID
	dst.insert(c)
	return nil
}

// StatusAfterArrival derives the lifecycle status a container takes on
// arriving at a location type. Approval is an explicit operation, never a
// movement side effect.
func StatusAfterArrival(t model.LocationType, current model.ContainerStatus) model.ContainerStatus {
	switch t {
	case model.LocationTruck:
		return model.StatusLoaded
	case model.LocationCustomer:
		return model.StatusDelivered
	case model.LocationCleaning:
		return model.StatusReturned
	default:
		return current
	}
}
