package main

import (
	"log/slog"

	"github.com/cpuguy83/appshell/internal/app"
	"github.com/cpuguy83/appshell/internal/instance"
	"github.com/cpuguy83/appshell/internal/toolkit"
)

// remoteHandler moves requests from other processes onto the event loop.
type remoteHandler struct {
	rt   *toolkit.Headless
	ctrl *app.Controller
}

func (r remoteHandler) Activate() {
	r.rt.Post(r.rt.Activate)
}

func (r remoteHandler) ActivateAction(name string) {
	r.rt.Post(func() {
		// The about dialog sits on the main window, which a service may have
		// closed before the request arrived.
		if name == app.ActionAbout && r.ctrl.State() == app.StateRunning && r.rt.ActiveWindow() == nil {
			if err := r.ctrl.Activate(); err != nil {
				slog.Error("failed to activate for remote action", "action", name, "error", err)
				return
			}
		}
		r.ctrl.ActivateAction(name)
	})
}

// claimInstance makes this process the primary instance of id on the session
// bus. If another process already is, the activation is forwarded to it and
// forwarded is true. Without a session bus the process runs on its own.
func claimInstance(id string, rt *toolkit.Headless, ctrl *app.Controller) (inst *instance.Instance, forwarded bool) {
	inst, err := instance.Connect(id)
	if err != nil {
		slog.Warn("running without single-instance support", "error", err)
		return nil, false
	}

	primary, err := inst.Claim(remoteHandler{rt: rt, ctrl: ctrl})
	if err != nil {
		slog.Warn("failed to claim application id", "id", id, "error", err)
		inst.Close()
		return nil, false
	}
	if primary {
		return inst, false
	}

	defer inst.Close()
	if err := inst.ActivateRemote(); err != nil {
		slog.Warn("failed to activate running instance", "error", err)
		return nil, false
	}

	slog.Info("activated running instance", "id", id)
	return nil, true
}
