package events

// EventData is the interface that all event data types must implement
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// MeasurementsChangedData contains data for MeasurementsChanged events
type MeasurementsChangedData struct {
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
	Source  string `json:"source"` // "api", "seed", "retention"
}

// EventType returns the event type for MeasurementsChangedData
func (d *MeasurementsChangedData) EventType() EventType {
	return MeasurementsChanged
}

// MaintenanceCompletedData contains data for MaintenanceCompleted events
type MaintenanceCompletedData struct {
	Job        string `json:"job"`
	WALFrames  int    `json:"wal_frames"`
	DurationMs int64  `json:"duration_ms"`
}

// EventType returns the event type for MaintenanceCompletedData
func (d *MaintenanceCompletedData) EventType() EventType {
	return MaintenanceCompleted
}
