package memberui

import (
	uierrors "github.com/dalemusser/memberhub/internal/app/features/errors"
	memberstore "github.com/dalemusser/memberhub/internal/app/store/members"
	"go.uber.org/zap"
)

// Handler serves the browser pages. The pages render the current records on
// the server and members.js keeps them in sync through the JSON API.
type Handler struct {
	Store  memberstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(store memberstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  store,
		Log:    logger,
		ErrLog: errLog,
	}
}
