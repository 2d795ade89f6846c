package production

import (
	"github.com/google/uuid"

	"newsanchor/api-gateway/models"
)

// RegenerateFlags select which aspects of a finished video an edit
// regenerates. The zero value means a full initial render.
type RegenerateFlags struct {
	Script    bool `json:"script"`
	Voiceover bool `json:"voiceover"`
	Avatar    bool `json:"avatar"`
}

func (f RegenerateFlags) any() bool {
	return f.Script || f.Voiceover || f.Avatar
}

// RenderOrder is the unit of work handed to the render queue for one
// video record.
type RenderOrder struct {
	VideoID      uuid.UUID
	NewsID       uuid.UUID
	Title        string
	Language     models.LanguageOption
	Avatar       models.AvatarTemplate
	CustomScript string
	Instruction  string
	Regenerate   RegenerateFlags
}

// RenderQueue is the boundary to the asynchronous worker pool. Enqueue
// failures (e.g. a full queue) are returned synchronously so dispatch
// can surface them per record.
type RenderQueue interface {
	EnqueueRender(order RenderOrder) error
	EnqueuePublish(videoID uuid.UUID) error
}
