package models

// Role identifies which well a depth point belongs to
type Role string

const (
	RoleSource   Role = "source"
	RoleReceiver Role = "receiver"
)

// DepthPoint is one selectable position in a well. Index is the stable
// identity used by the selection state and the diagram's click mapping.
type DepthPoint struct {
	Index int     `json:"index"`
	Depth float64 `json:"depth"`
	Role  Role    `json:"role"`
}

// DepthOption is one entry of the source-depth selector widget
type DepthOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
