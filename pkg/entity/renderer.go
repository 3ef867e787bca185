package entity

import "github.com/opd-ai/go-ricochet/pkg/physics"

// Renderer draws entities
type Renderer interface {
	RenderLines(e *Entity, lines *physics.LineCollider)
	RenderBody(e *Entity, radius float64)
	Clear()
	Present()
}
