package model

// Synthesizer defines the contract for the accessor synthesis phase. It
// returns the accessors of one entity, or the configuration errors that
// prevented generating any of them.
type Synthesizer interface {
	Generate(e *Entity) ([]*MethodSpec, error)
}
