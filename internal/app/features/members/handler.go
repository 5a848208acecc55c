// internal/app/features/members/handler.go
package members

import (
	uierrors "github.com/dalemusser/memberhub/internal/app/features/errors"
	memberstore "github.com/dalemusser/memberhub/internal/app/store/members"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for the member JSON API.
// The store is built once at startup and injected; handlers hold no other state.
//
// MaxBodyBytes caps JSON request bodies; zero means httpmw.DefaultMaxBodyBytes.
// CSV imports are capped by csvutil.MaxUploadSize instead.
type Handler struct {
	Store        memberstore.Store
	Log          *zap.Logger
	ErrLog       *uierrors.ErrorLogger
	MaxBodyBytes int64
}

func NewHandler(store memberstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  store,
		Log:    logger,
		ErrLog: errLog,
	}
}
