package command

import (
	"github.com/bwmarrin/discordgo"
)

// Middleware wraps a command (logging, guards, metrics). Guards compose as
// an ordered chain: the outermost middleware runs first and short-circuits
// by not calling the wrapped Run.
type Middleware func(Command) Command

// Wrapped wraps a command with a custom Run while delegating metadata and
// provider interfaces to the inner command.
type Wrapped struct {
	Command
	Wrap func(ctx *Context) error
}

func (w *Wrapped) Run(ctx *Context) error {
	if w.Wrap != nil {
		return w.Wrap(ctx)
	}
	return w.Command.Run(ctx)
}

func (w *Wrapped) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := w.Command.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

func (w *Wrapped) ContextDefinition() *discordgo.ApplicationCommand {
	if cp, ok := w.Command.(ContextMenuProvider); ok {
		return cp.ContextDefinition()
	}
	return nil
}

// Unwrap exposes the inner command.
func (w *Wrapped) Unwrap() Command { return w.Command }

// ApplyMiddlewares applies middlewares in order; the first is the outermost.
func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}

// Root unwraps a command down to the underlying implementation.
func Root(cmd Command) Command {
	for {
		w, ok := cmd.(interface{ Unwrap() Command })
		if !ok {
			return cmd
		}
		cmd = w.Unwrap()
	}
}
