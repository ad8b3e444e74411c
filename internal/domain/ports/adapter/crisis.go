package adapter

// CrisisResponder supplies the emergency-contact text shown whenever crisis
// language is detected. The text is jurisdiction-specific configuration, so
// the engine takes it through a port instead of hard-coding it.
type CrisisResponder interface {
	Text() string
}
