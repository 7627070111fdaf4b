package viewer

import (
	"context"

	"github.com/msaldanha/nulldev/models"
	"github.com/msaldanha/nulldev/timeline"
)

//go:generate mockgen -source=gateway.go -destination=gateway_mock.go -package=viewer Gateway
type Gateway interface {
	SearchCharacters(ctx context.Context, serverID, name string, limit int) ([]models.Character, error)
	GetTimeline(ctx context.Context, serverID, characterID string, q models.TimelineQuery) ([]timeline.RawEvent, error)
}
