package messages

import "time"

const TopicEntityChanged = "cargobox.entity.changed"

// Операции над сущностями.
const (
	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
)

type EntityChanged struct {
	Kind     string    `json:"kind"`
	Op       string    `json:"op"`
	IDs      []string  `json:"ids"`
	Mode     string    `json:"mode"`
	At       time.Time `json:"at"`
	Identity string    `json:"identity,omitempty"`
}
