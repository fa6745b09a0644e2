// Package instance makes the headless backend a single-instance application
// on the session bus, speaking the same org.freedesktop.Application protocol
// GApplication uses. A second launch forwards its activation to the primary
// instance instead of opening another window.
package instance

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

const (
	appInterface        = "org.freedesktop.Application"
	introspectInterface = "org.freedesktop.DBus.Introspectable"
)

var appMethods = []introspect.Method{
	{
		Name: "Activate",
		Args: []introspect.Arg{
			{Name: "platform_data", Type: "a{sv}", Direction: "in"},
		},
	},
	{
		Name: "Open",
		Args: []introspect.Arg{
			{Name: "uris", Type: "as", Direction: "in"},
			{Name: "hint", Type: "s", Direction: "in"},
			{Name: "platform_data", Type: "a{sv}", Direction: "in"},
		},
	},
	{
		Name: "ActivateAction",
		Args: []introspect.Arg{
			{Name: "action_name", Type: "s", Direction: "in"},
			{Name: "parameter", Type: "av", Direction: "in"},
			{Name: "platform_data", Type: "a{sv}", Direction: "in"},
		},
	},
}

// Handler receives requests from other processes. Methods are called on
// D-Bus goroutines and must hand the work to the event loop.
type Handler interface {
	Activate()
	ActivateAction(name string)
}

// Instance is a session bus connection on behalf of one application ID.
type Instance struct {
	conn    *dbus.Conn
	id      string
	path    dbus.ObjectPath
	primary bool
}

// ObjectPath returns the object path GApplication derives from an
// application ID: "com.example.my-app" becomes "/com/example/my_app".
func ObjectPath(appID string) dbus.ObjectPath {
	p := strings.NewReplacer(".", "/", "-", "_").Replace(appID)
	return dbus.ObjectPath("/" + p)
}

// Connect connects to the session bus.
func Connect(appID string) (*Instance, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}

	return &Instance{
		conn: conn,
		id:   appID,
		path: ObjectPath(appID),
	}, nil
}

// Claim tries to own the application ID on the bus. The owner exports the
// application interface and receives activations through h; it reports
// false when another process already owns the ID.
func (i *Instance) Claim(h Handler) (bool, error) {
	reply, err := i.conn.RequestName(i.id, dbus.NameFlagDoNotQueue)
	if err != nil {
		return false, fmt.Errorf("request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		slog.Debug("application already running", "id", i.id)
		return false, nil
	}

	if err := i.conn.Export(&server{h: h}, i.path, appInterface); err != nil {
		return false, fmt.Errorf("export application interface: %w", err)
	}

	node := &introspect.Node{
		Name: string(i.path),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    appInterface,
				Methods: appMethods,
			},
		},
	}
	if err := i.conn.Export(introspect.NewIntrospectable(node), i.path, introspectInterface); err != nil {
		return false, fmt.Errorf("export introspection: %w", err)
	}

	i.primary = true
	slog.Info("registered primary instance", "id", i.id, "path", i.path)
	return true, nil
}

// ActivateRemote asks the primary instance to activate.
func (i *Instance) ActivateRemote() error {
	obj := i.conn.Object(i.id, i.path)
	call := obj.Call(appInterface+".Activate", 0, map[string]dbus.Variant{})
	if call.Err != nil {
		return fmt.Errorf("activate primary instance: %w", call.Err)
	}
	return nil
}

// Close releases the bus name, if owned, and closes the connection.
func (i *Instance) Close() error {
	if i.primary {
		if _, err := i.conn.ReleaseName(i.id); err != nil {
			slog.Warn("failed to release bus name", "id", i.id, "error", err)
		}
	}
	return i.conn.Close()
}

// server implements org.freedesktop.Application.
type server struct {
	h Handler
}

func (s *server) Activate(platformData map[string]dbus.Variant) *dbus.Error {
	slog.Debug("remote activation")
	s.h.Activate()
	return nil
}

// Open activates the application; it has no documents to open.
func (s *server) Open(uris []string, hint string, platformData map[string]dbus.Variant) *dbus.Error {
	slog.Debug("remote open", "uris", len(uris), "hint", hint)
	s.h.Activate()
	return nil
}

func (s *server) ActivateAction(name string, parameter []dbus.Variant, platformData map[string]dbus.Variant) *dbus.Error {
	if len(parameter) != 0 {
		return dbus.MakeFailedError(fmt.Errorf("action %q takes no parameter", name))
	}
	slog.Debug("remote action", "action", name)
	s.h.ActivateAction(name)
	return nil
}
