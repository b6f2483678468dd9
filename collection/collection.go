// Package collection tracks which kinds of construction elements a player
// has unlocked. It only looks at the kinds of objects in a construction,
// never at their geometry.
package collection

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"

	"honnef.co/go/euclid/construction"
)

// TotalCollectible is the number of collectible entries completion is
// measured against.
const TotalCollectible = 100

type ElementKind string

const (
	KindPoint        ElementKind = "point"
	KindLine         ElementKind = "line"
	KindCircle       ElementKind = "circle"
	KindConstruction ElementKind = "construction"
)

type Rarity string

const (
	Common    Rarity = "common"
	Uncommon  Rarity = "uncommon"
	Rare      Rarity = "rare"
	Epic      Rarity = "epic"
	Legendary Rarity = "legendary"
	Mythic    Rarity = "mythic"
)

type Stats struct {
	Precision   int `json:"precision"`
	Complexity  int `json:"complexity"`
	Elegance    int `json:"elegance"`
	Power       int `json:"power"`
	RarityScore int `json:"rarity_score"`
}

// Element is one collectible entry.
type Element struct {
	ID          string      `json:"id"`
	Kind        ElementKind `json:"kind"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Rarity      Rarity      `json:"rarity"`
	Stats       Stats       `json:"stats"`
	// Proposition is the number of Euclid's proposition for
	// KindConstruction elements.
	Proposition        int       `json:"proposition,omitempty"`
	UnlockRequirements []string  `json:"unlock_requirements"`
	Unlocks            []string  `json:"unlocks"`
	CaughtAt           time.Time `json:"caught_at"`
}

// Tool is a construction tool made available by caught elements.
type Tool string

const (
	ToolPoint               Tool = "point"
	ToolLine                Tool = "line"
	ToolCircle              Tool = "circle"
	ToolIntersection        Tool = "intersection"
	ToolPerpendicular       Tool = "perpendicular"
	ToolParallel            Tool = "parallel"
	ToolTangent             Tool = "tangent"
	ToolArc                 Tool = "arc"
	ToolEquilateralTriangle Tool = "equilateral_triangle"
)

// Collection is a player's set of caught and discovered elements. It is not
// safe for concurrent use.
type Collection struct {
	elements   map[string]Element
	order      []string
	discovered map[string]struct{}
	now        func() time.Time
}

func New() *Collection {
	return &Collection{
		elements:   make(map[string]Element),
		discovered: make(map[string]struct{}),
		now:        time.Now,
	}
}

// Catch adds e. It reports false if an element with the same ID is already
// caught.
func (c *Collection) Catch(e Element) bool {
	if _, ok := c.elements[e.ID]; ok {
		return false
	}
	if e.CaughtAt.IsZero() {
		e.CaughtAt = c.now().UTC()
	}
	c.elements[e.ID] = e
	c.order = append(c.order, e.ID)
	return true
}

// Discover marks id as seen. It reports false if id is already caught or
// seen.
func (c *Collection) Discover(id string) bool {
	if _, ok := c.elements[id]; ok {
		return false
	}
	if _, ok := c.discovered[id]; ok {
		return false
	}
	c.discovered[id] = struct{}{}
	return true
}

func (c *Collection) Caught() int { return len(c.elements) }
func (c *Collection) Seen() int   { return len(c.discovered) }

// Completion returns the percentage of collectible entries caught or seen.
func (c *Collection) Completion() float64 {
	return float64(c.Caught()+c.Seen()) * 100 / TotalCollectible
}

// Elements returns the caught elements in the order they were caught.
func (c *Collection) Elements() []Element {
	out := make([]Element, len(c.order))
	for i, id := range c.order {
		out[i] = c.elements[id]
	}
	return out
}

func (c *Collection) HasKind(kind ElementKind) bool {
	for _, e := range c.elements {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func (c *Collection) HasProposition(n int) bool {
	for _, e := range c.elements {
		if e.Kind == KindConstruction && e.Proposition == n {
			return true
		}
	}
	return false
}

// AvailableTools returns the tools unlocked by the caught elements. The
// point tool is always available.
func (c *Collection) AvailableTools() []Tool {
	tools := []Tool{ToolPoint}
	if c.HasKind(KindPoint) {
		tools = append(tools, ToolLine, ToolCircle)
	}
	if c.HasKind(KindLine) {
		tools = append(tools, ToolIntersection, ToolPerpendicular, ToolParallel)
	}
	if c.HasKind(KindCircle) {
		tools = append(tools, ToolTangent, ToolArc)
	}
	if c.HasProposition(1) {
		tools = append(tools, ToolEquilateralTriangle)
	}
	return tools
}

// Observe catches the catalog element for every object kind present in
// objects that has not been caught yet, and returns the newly caught
// elements.
func (c *Collection) Observe(objects []construction.Object) []Element {
	var out []Element
	for _, o := range objects {
		var kind ElementKind
		switch o.Kind {
		case construction.KindPoint:
			kind = KindPoint
		case construction.KindLine:
			kind = KindLine
		case construction.KindCircle:
			kind = KindCircle
		default:
			continue
		}
		if c.HasKind(kind) {
			continue
		}
		e := CatalogElement(kind)
		if c.Catch(e) {
			out = append(out, c.elements[e.ID])
		}
	}
	return out
}

// ByRarity returns the caught elements of rarity r in catch order.
func (c *Collection) ByRarity(r Rarity) []Element {
	var out []Element
	for _, e := range c.Elements() {
		if e.Rarity == r {
			out = append(out, e)
		}
	}
	return out
}

func (c *Collection) TotalPower() int {
	var sum int
	for _, e := range c.elements {
		sum += e.Stats.Power
	}
	return sum
}

// Strongest returns the caught element with the most power, preferring the
// earliest caught on ties.
func (c *Collection) Strongest() (Element, bool) {
	elems := c.Elements()
	if len(elems) == 0 {
		return Element{}, false
	}
	// MaxFunc returns the first maximal element.
	return slices.MaxFunc(elems, func(a, b Element) int {
		return cmp.Compare(a.Stats.Power, b.Stats.Power)
	}), true
}

// Summary is an overview of a collection.
type Summary struct {
	Caught       int            `json:"total_caught"`
	Seen         int            `json:"total_seen"`
	Completion   float64        `json:"completion_percentage"`
	RarityCounts map[Rarity]int `json:"rarity_counts"`
	TotalPower   int            `json:"total_power"`
	Favorite     string         `json:"favorite_element,omitempty"`
	Tools        []Tool         `json:"available_tools"`
}

func (c *Collection) Summary() Summary {
	counts := make(map[Rarity]int)
	for _, e := range c.elements {
		counts[e.Rarity]++
	}
	sum := Summary{
		Caught:       c.Caught(),
		Seen:         c.Seen(),
		Completion:   c.Completion(),
		RarityCounts: counts,
		TotalPower:   c.TotalPower(),
		Tools:        c.AvailableTools(),
	}
	if e, ok := c.Strongest(); ok {
		sum.Favorite = e.Name
	}
	return sum
}

// CatalogElement returns a fresh catalog entry for kind. KindConstruction
// yields Proposition I, the equilateral triangle.
func CatalogElement(kind ElementKind) Element {
	e := catalog[kind]
	e.ID = uuid.NewString()
	e.UnlockRequirements = slices.Clone(e.UnlockRequirements)
	e.Unlocks = slices.Clone(e.Unlocks)
	return e
}

var catalog = map[ElementKind]Element{
	KindPoint: {
		Kind:               KindPoint,
		Name:               "Point",
		Description:        "The fundamental element of geometry, a location with no size",
		Rarity:             Common,
		Stats:              Stats{Precision: 100, Complexity: 10, Elegance: 50, Power: 20, RarityScore: 1},
		UnlockRequirements: []string{},
		Unlocks:            []string{"Line", "Circle"},
	},
	KindLine: {
		Kind:               KindLine,
		Name:               "Line",
		Description:        "Infinite straight path connecting two points",
		Rarity:             Common,
		Stats:              Stats{Precision: 90, Complexity: 30, Elegance: 70, Power: 40, RarityScore: 2},
		UnlockRequirements: []string{"Point"},
		Unlocks:            []string{"Triangle", "Polygon"},
	},
	KindCircle: {
		Kind:               KindCircle,
		Name:               "Circle",
		Description:        "Perfect round shape with all points equidistant from center",
		Rarity:             Uncommon,
		Stats:              Stats{Precision: 95, Complexity: 50, Elegance: 90, Power: 60, RarityScore: 3},
		UnlockRequirements: []string{"Point"},
		Unlocks:            []string{"Arc", "Tangent"},
	},
	KindConstruction: {
		Kind:               KindConstruction,
		Name:               "Proposition I: Equilateral Triangle",
		Description:        "Construct an equilateral triangle on a given finite straight line",
		Rarity:             Rare,
		Stats:              Stats{Precision: 85, Complexity: 70, Elegance: 95, Power: 80, RarityScore: 4},
		Proposition:        1,
		UnlockRequirements: []string{"Point", "Line", "Circle"},
		Unlocks:            []string{"Triangle", "Regular Polygon"},
	},
}
