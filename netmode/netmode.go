// Package netmode derives the short role tag that prefixes every log line
// from the execution context of the caller.
package netmode

import (
	"fmt"
	"strings"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// Mode is the network role of the world a caller runs in.
type Mode uint8

const (
	// Standalone is a world with no networking.
	Standalone Mode = iota

	// DedicatedServer is a headless server.
	DedicatedServer

	// ListenServer is a server that also hosts a local player.
	ListenServer

	// Client is connected to a remote server.
	Client
)

// String returns the name config files and flags use for the mode.
func (m Mode) String() string {
	switch m {
	case Standalone:
		return "standalone"
	case DedicatedServer:
		return "dedicated"
	case ListenServer:
		return "listen"
	case Client:
		return "client"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode returns the mode named by s. The special name "none" yields
// fn.None, meaning no role is available and lines carry no tag.
func ParseMode(s string) (fn.Option[Mode], error) {
	switch strings.ToLower(s) {
	case "", "none":
		return fn.None[Mode](), nil
	case "standalone":
		return fn.Some(Standalone), nil
	case "dedicated", "dedicatedserver":
		return fn.Some(DedicatedServer), nil
	case "listen", "listenserver":
		return fn.Some(ListenServer), nil
	case "client":
		return fn.Some(Client), nil
	default:
		return fn.None[Mode](), fmt.Errorf("unknown net mode: %q", s)
	}
}

// World is the part of the host environment that knows its network role.
type World interface {
	// NetMode returns the role of this world.
	NetMode() Mode
}

// ContextObject is anything a log call can take its execution context
// from. World may return nil when the object is not placed in a world.
type ContextObject interface {
	World() World
}

// Resolve returns the role of the world ctx lives in, or fn.None when ctx is
// nil or has no world.
func Resolve(ctx ContextObject) fn.Option[Mode] {
	if ctx == nil {
		return fn.None[Mode]()
	}

	world := ctx.World()
	if world == nil {
		return fn.None[Mode]()
	}

	return fn.Some(world.NetMode())
}

// Tag returns the prefix for a line logged in the given role. An unavailable
// role yields no prefix; any role that is not a client or a server is
// reported as standalone.
func Tag(role fn.Option[Mode]) string {
	if role.IsNone() {
		return ""
	}

	switch role.UnwrapOr(Standalone) {
	case Client:
		return "[Client] "
	case ListenServer:
		return "[ListenServer] "
	case DedicatedServer:
		return "[DedicatedServer] "
	default:
		return "[Standalone] "
	}
}

// ContextTag is shorthand for Tag(Resolve(ctx)).
func ContextTag(ctx ContextObject) string {
	return Tag(Resolve(ctx))
}

// staticWorld is a World with a fixed role.
type staticWorld Mode

func (w staticWorld) NetMode() Mode {
	return Mode(w)
}

func (w staticWorld) World() World {
	return w
}

// Static returns a ContextObject whose world always reports mode. It suits
// processes that know their role up front.
func Static(mode Mode) ContextObject {
	return staticWorld(mode)
}

// FromOption returns a ContextObject for role, or nil when role is None.
func FromOption(role fn.Option[Mode]) ContextObject {
	if role.IsNone() {
		return nil
	}

	return Static(role.UnwrapOr(Standalone))
}
