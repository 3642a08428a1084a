package models

type GenerationState string

// Generation workflow states
const (
	GenerationIdle         GenerationState = "idle"
	GenerationAuthRequired GenerationState = "auth_required"
	GenerationPending      GenerationState = "pending"
	GenerationReady        GenerationState = "ready"
	GenerationFailed       GenerationState = "failed"
)

// Valid state transitions: from -> []to
var ValidGenerationTransitions = map[GenerationState][]GenerationState{
	GenerationIdle:         {GenerationAuthRequired, GenerationPending},
	GenerationAuthRequired: {GenerationAuthRequired, GenerationPending, GenerationIdle},
	GenerationPending:      {GenerationReady, GenerationFailed, GenerationIdle},
	GenerationReady:        {GenerationPending, GenerationIdle},
	GenerationFailed:       {GenerationPending, GenerationIdle},
}

func IsValidGenerationTransition(from, to GenerationState) bool {
	allowed, ok := ValidGenerationTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}
