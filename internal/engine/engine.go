package engine

import (
	"blogspace/internal/database"
	"blogspace/internal/engine/actors"
	"blogspace/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Engine spawns and holds the domain actors.
type Engine struct {
	postActor    *actor.PID
	commentActor *actor.PID
	userActor    *actor.PID
}

func NewEngine(system *actor.ActorSystem, metrics *utils.MetricsCollector, store database.Store, feed actors.CommentFeed) *Engine {
	context := system.Root

	postProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewPostActor(store, metrics)
	})
	postPID := context.Spawn(postProps)

	commentProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewCommentActor(store, metrics, feed)
	})
	commentPID := context.Spawn(commentProps)

	userProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewUserActor(store, metrics)
	})
	userPID := context.Spawn(userProps)

	return &Engine{
		postActor:    postPID,
		commentActor: commentPID,
		userActor:    userPID,
	}
}

// GetPostActor returns the PID of the post actor
func (e *Engine) GetPostActor() *actor.PID {
	return e.postActor
}

// GetCommentActor returns the PID of the comment actor
func (e *Engine) GetCommentActor() *actor.PID {
	return e.commentActor
}

// GetUserActor returns the PID of the user actor
func (e *Engine) GetUserActor() *actor.PID {
	return e.userActor
}
