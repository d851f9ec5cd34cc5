package session

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jbx/internal/services"
)

// AdminFlag enumerates the admin privilege states.
type AdminFlag int

const (
	AdminUnknown AdminFlag = iota
	AdminInactive
	AdminActive
)

func (f AdminFlag) String() string {
	switch f {
	case AdminInactive:
		return "inactive"
	case AdminActive:
		return "active"
	default:
		return "unknown"
	}
}

// AdminState tracks whether this client may perform privileged actions.
//
// Transitions: Unknown -> Inactive|Active via [AdminState.Init];
// Inactive -> Active via a server-confirmed keyword match; Active ->
// Inactive via [AdminState.Deactivate], which always clears the local
// flag even when the deactivate call fails, so the UI never sticks in
// admin mode.
type AdminState struct {
	svc    services.Service
	logger *log.Logger

	mu   sync.Mutex
	flag AdminFlag
}

// NewAdminState creates an AdminState in the Unknown state.
func NewAdminState(svc services.Service, logger *log.Logger) *AdminState {
	return &AdminState{svc: svc, logger: logger, flag: AdminUnknown}
}

// Init resolves the flag once at startup via the status check.
func (a *AdminState) Init(ctx context.Context) error {
	isAdmin, err := a.svc.AdminStatus(ctx)
	if err != nil {
		a.logger.Warn("admin status check failed", "error", err)
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if isAdmin {
		a.flag = AdminActive
	} else {
		a.flag = AdminInactive
	}
	return nil
}

// CheckKeyword submits a search query for server-side keyword matching.
// Returns true when the query newly activated admin mode.
func (a *AdminState) CheckKeyword(ctx context.Context, query string) (bool, error) {
	isAdmin, err := a.svc.CheckAdminKeyword(ctx, query)
	if err != nil {
		a.logger.Warn("admin keyword check failed", "error", err)
		return false, err
	}
	if !isAdmin {
		return false, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	activated := a.flag != AdminActive
	a.flag = AdminActive
	return activated, nil
}

// Deactivate clears the admin flag. The local flag is dropped regardless
// of the network outcome; the error is returned for logging only.
func (a *AdminState) Deactivate(ctx context.Context) error {
	a.mu.Lock()
	a.flag = AdminInactive
	a.mu.Unlock()

	result, err := a.svc.DeactivateAdmin(ctx)
	if err != nil {
		a.logger.Warn("admin deactivation request failed, flag cleared locally", "error", err)
		return err
	}
	if !result.OK() {
		a.logger.Warn("server rejected admin deactivation, flag cleared locally", "message", result.Message)
	}
	return nil
}

// Flag returns the current privilege state.
func (a *AdminState) Flag() AdminFlag {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.flag
}

// Active reports whether privileged actions are currently allowed.
func (a *AdminState) Active() bool {
	return a.Flag() == AdminActive
}
