package fleetview

import "sync"

// ModalKind is which modal (if any) is open for an entity type.
type ModalKind string

const (
	ModalClosed ModalKind = "closed"
	ModalCreate ModalKind = "create"
	ModalEdit   ModalKind = "edit"
	ModalDetail ModalKind = "detail"
)

// ModalState is the open modal for one entity type. FormDefaults carries
// the record fields the edit form was seeded from.
type ModalState struct {
	Kind         ModalKind              `json:"kind"`
	TargetID     string                 `json:"targetId,omitempty"`
	FormDefaults map[string]interface{} `json:"formDefaults,omitempty"`
}

// ModalController tracks create/edit/detail modal state per entity type.
// At most one modal is open per entity type; opening any modal replaces
// whatever was open before it.
//
// The controller holds plain documents keyed by "_id", matching what the
// store's snapshot feed delivers. Commands arrive from the session read
// loop while Observe is called from the snapshot forwarders, so all
// access goes through the mutex.
type ModalController struct {
	mu     sync.Mutex
	states map[string]ModalState
}

// NewModalController starts with every entity type closed.
func NewModalController() *ModalController {
	return &ModalController{states: make(map[string]ModalState)}
}

// State returns the current modal for an entity type (closed when none).
func (c *ModalController) State(entity string) ModalState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.states[entity]; ok {
		return st
	}
	return ModalState{Kind: ModalClosed}
}

// OpenCreate opens the create form, closing any other modal for the
// entity type.
func (c *ModalController) OpenCreate(entity string) ModalState {
	st := ModalState{Kind: ModalCreate}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[entity] = st
	return st
}

// OpenEdit opens the edit form targeting id, seeding form defaults from
// the record as currently present in the snapshot. A nil record opens the
// form with empty defaults.
func (c *ModalController) OpenEdit(entity, id string, record map[string]interface{}) ModalState {
	st := ModalState{Kind: ModalEdit, TargetID: id, FormDefaults: cloneDoc(record)}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[entity] = st
	return st
}

// OpenDetail opens the read-only detail view targeting id.
func (c *ModalController) OpenDetail(entity, id string) ModalState {
	st := ModalState{Kind: ModalDetail, TargetID: id}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[entity] = st
	return st
}

// Close dismisses whatever modal is open for the entity type.
func (c *ModalController) Close(entity string) ModalState {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.states, entity)
	return ModalState{Kind: ModalClosed}
}

// Observe feeds a fresh collection snapshot to the controller. An open
// edit form re-seeds its defaults from the live record; if the record has
// been deleted the form keeps its last-seen defaults until explicitly
// closed; there is no automatic dismissal.
func (c *ModalController) Observe(entity string, snapshot []map[string]interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.states[entity]
	if !ok || st.Kind != ModalEdit {
		return
	}
	for _, doc := range snapshot {
		if id, _ := doc["_id"].(string); id == st.TargetID {
			st.FormDefaults = cloneDoc(doc)
			c.states[entity] = st
			return
		}
	}
}

func cloneDoc(doc map[string]interface{}) map[string]interface{} {
	if doc == nil {
		return nil
	}
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
