// Package notify detects reminders that have just become due and raises
// a one-shot desktop notification for each, marking them so they never
// fire twice.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// Permission describes the notification capability state.
type Permission string

const (
	PermissionGranted     Permission = "granted"
	PermissionDenied      Permission = "denied"
	PermissionDefault     Permission = "default"
	PermissionUnsupported Permission = "unsupported"
)

// Delivery is the capability that can display a titled alert to the
// user. Notify must be a no-op unless permission is granted.
type Delivery interface {
	PermissionState() Permission
	RequestPermission() bool
	Notify(title, body string) error
}

// DesktopDelivery delivers notifications through the operating system's
// notification service. The desktop has no browser-style permission
// prompt, so requesting permission succeeds unless notifications are
// disabled in the config.
type DesktopDelivery struct {
	enabled bool
	state   Permission
}

// NewDesktopDelivery creates a delivery capability. When enabled is
// false the permission state is denied and stays denied.
func NewDesktopDelivery(enabled bool) *DesktopDelivery {
	state := PermissionDefault
	if !enabled {
		state = PermissionDenied
	}
	return &DesktopDelivery{enabled: enabled, state: state}
}

// PermissionState reports the current permission.
func (d *DesktopDelivery) PermissionState() Permission {
	return d.state
}

// RequestPermission resolves the default state and reports whether
// notifications may be shown.
func (d *DesktopDelivery) RequestPermission() bool {
	if !d.enabled {
		d.state = PermissionDenied
		return false
	}
	d.state = PermissionGranted
	return true
}

// Notify displays a desktop notification. No-op unless granted.
func (d *DesktopDelivery) Notify(title, body string) error {
	if d.state != PermissionGranted {
		return nil
	}
	if err := beeep.Notify(title, body, ""); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	return nil
}

// NopDelivery records notifications instead of delivering them. Used in
// tests.
type NopDelivery struct {
	State Permission
	Sent  []string
	Err   error
}

// PermissionState reports the configured state.
func (d *NopDelivery) PermissionState() Permission {
	return d.State
}

// RequestPermission reports whether the configured state is granted.
func (d *NopDelivery) RequestPermission() bool {
	return d.State == PermissionGranted
}

// Notify records the body, or fails with the configured error.
func (d *NopDelivery) Notify(title, body string) error {
	if d.Err != nil {
		return d.Err
	}
	d.Sent = append(d.Sent, body)
	return nil
}
