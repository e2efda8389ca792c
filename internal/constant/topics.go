package constant

// Watermill topics.
const (
	TopicTurnEvents = "TUTOR_TURN_EVENTS"
)

// Prompt window sizes.
const (
	// ReflectEvery is the log-entry interval that triggers a reflection.
	ReflectEvery = 10
	// MemoryWindow is the maximum number of reflections fed into a prompt.
	MemoryWindow = 5
)
