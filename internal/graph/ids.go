package graph

type (
	NodeID uint32
	EdgeID uint32
)

const (
	NoNodeID NodeID = 0
	NoEdgeID EdgeID = 0
)

func (id NodeID) IsValid() bool { return id != NoNodeID }
func (id EdgeID) IsValid() bool { return id != NoEdgeID }
