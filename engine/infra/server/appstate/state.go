package appstate

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/labelforge/labelforge/engine/resources"
	"github.com/labelforge/labelforge/pkg/config"
)

type contextKey string

const stateKey contextKey = "app_state"

// State is shared by every request handler.
type State struct {
	Store  resources.Store
	Config *config.Config
}

func NewState(store resources.Store, cfg *config.Config) (*State, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &State{Store: store, Config: cfg}, nil
}

func WithState(ctx context.Context, state *State) context.Context {
	return context.WithValue(ctx, stateKey, state)
}

func StateMiddleware(state *State) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(stateKey), state)
		c.Next()
	}
}

func GetState(c *gin.Context) (*State, error) {
	value, ok := c.Get(string(stateKey))
	if !ok {
		if st, ok := c.Request.Context().Value(stateKey).(*State); ok && st != nil {
			return st, nil
		}
		return nil, fmt.Errorf("app state not found in context")
	}
	st, ok := value.(*State)
	if !ok || st == nil {
		return nil, fmt.Errorf("invalid app state type in context")
	}
	return st, nil
}
