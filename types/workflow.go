package types

import "github.com/juju/errors"

/**
 * Workflow is the snapshot the engine reads per execution. The
 * authoring layer owns creation and editing; an in-flight run is
 * never affected by concurrent edits because the walker loads the
 * snapshot once at the start of a walk.
 */
type Workflow struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	TriggerType   string         `json:"trigger_type"`
	TriggerConfig Data           `json:"trigger_config,omitempty"`
	Status        WorkflowStatus `json:"status"`
	Nodes         []WorkflowNode `json:"nodes"`
	Edges         []WorkflowEdge `json:"edges"`
}

type WorkflowNode struct {
	ID   string   `json:"id"`
	Kind NodeKind `json:"type"`
	Data NodeData `json:"data"`
}

// NodeData carries the human label plus a kind-dependent opaque
// config record (condition: field/operator/value; action:
// action_type plus action parameters).
type NodeData struct {
	Label  string `json:"label"`
	Config Data   `json:"config,omitempty"`
}

type WorkflowEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	// SourceHandle partitions edges leaving a condition node,
	// conventionally "true"/"false". An empty handle means the edge
	// is always followed.
	SourceHandle string `json:"sourceHandle,omitempty"`
	Label        string `json:"label,omitempty"`
}

// TriggerNode returns the unique trigger node, the traversal root.
func (w *Workflow) TriggerNode() (*WorkflowNode, error) {
	var trigger *WorkflowNode
	for i := range w.Nodes {
		if w.Nodes[i].Kind != NodeTrigger {
			continue
		}
		if trigger != nil {
			return nil, errors.BadRequestf("workflow %s has more than one trigger node", w.ID)
		}
		trigger = &w.Nodes[i]
	}
	if trigger == nil {
		return nil, errors.NotFoundf("trigger node in workflow %s", w.ID)
	}
	return trigger, nil
}

func (w *Workflow) Node(id string) (*WorkflowNode, bool) {
	for i := range w.Nodes {
		if w.Nodes[i].ID == id {
			return &w.Nodes[i], true
		}
	}
	return nil, false
}

func (w *Workflow) EdgesFrom(nodeID string) []WorkflowEdge {
	edges := make([]WorkflowEdge, 0, 2)
	for _, e := range w.Edges {
		if e.Source == nodeID {
			edges = append(edges, e)
		}
	}
	return edges
}

// Condition is the config shape of a condition node.
type Condition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

func ConditionFromConfig(cfg Data) Condition {
	field, _ := cfg.GetString("field")
	operator, _ := cfg.GetString("operator")
	value, _ := cfg.Get("value")
	return Condition{Field: field, Operator: operator, Value: value}
}
