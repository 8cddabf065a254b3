// Package savefile persists production graphs as HCL documents.
//
// A save file carries a format version, the graph id and one block per node
// and per link. Every preset entity is stored by name and resolved against
// the preset again on load, so a save made with a different preset loads
// with missing entities flagged instead of failing:
//
//	format_version = "1.2.0"
//	graph_id       = "5f0c7f8e-1c47-4a1f-9a39-8e0b54a1c2d0"
//	rate_unit      = "min"
//
//	node "recipe" {
//	  id        = 1
//	  recipe    = "gear"
//	  assembler = "asm-2"
//	  modules   = ["speed-1", "speed-1"]
//	}
//
//	link {
//	  supplier   = 2
//	  consumer   = 1
//	  item       = "iron-plate"
//	  throughput = 4
//	}
package savefile

// Node kinds as written in the label of a node block.
const (
	KindRecipe      = "recipe"
	KindSupplier    = "supplier"
	KindConsumer    = "consumer"
	KindPassthrough = "passthrough"
)

// File is the decoded form of a save file.
type File struct {
	FormatVersion string        `hcl:"format_version"`
	GraphID       string        `hcl:"graph_id"`
	RateUnit      string        `hcl:"rate_unit,optional"`
	Nodes         []*NodeRecord `hcl:"node,block"`
	Links         []*LinkRecord `hcl:"link,block"`
}

// NodeRecord stores one node. Item is used by single-item kinds; the recipe
// fields only by recipe nodes.
type NodeRecord struct {
	Kind        string  `hcl:"kind,label"`
	ID          int     `hcl:"id"`
	X           float64 `hcl:"x,optional"`
	Y           float64 `hcl:"y,optional"`
	RateType    string  `hcl:"rate_type,optional"`
	DesiredRate float64 `hcl:"desired_rate,optional"`

	Item string `hcl:"item,optional"`

	Recipe                string   `hcl:"recipe,optional"`
	Assembler             string   `hcl:"assembler,optional"`
	Fuel                  string   `hcl:"fuel,optional"`
	Burnt                 string   `hcl:"burnt,optional"`
	Modules               []string `hcl:"modules,optional"`
	Beacon                string   `hcl:"beacon,optional"`
	BeaconModules         []string `hcl:"beacon_modules,optional"`
	BeaconCount           float64  `hcl:"beacon_count,optional"`
	BeaconsPerAssembler   float64  `hcl:"beacons_per_assembler,optional"`
	BeaconsConst          float64  `hcl:"beacons_const,optional"`
	NeighbourCount        float64  `hcl:"neighbour_count,optional"`
	DesiredAssemblerCount float64  `hcl:"desired_assembler_count,optional"`
}

// LinkRecord stores one link by the ids of its endpoints.
type LinkRecord struct {
	Supplier   int     `hcl:"supplier"`
	Consumer   int     `hcl:"consumer"`
	Item       string  `hcl:"item"`
	Throughput float64 `hcl:"throughput,optional"`
}
