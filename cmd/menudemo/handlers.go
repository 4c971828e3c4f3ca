package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zclconf/go-cty/cty"

	"github.com/padmenu/padmenu/dispatch"
	"github.com/padmenu/padmenu/screen"
)

// newHandlerTable wires the handler names the demo templates call. The
// manager is late-bound because screen-switching handlers exist before the
// manager does.
func newHandlerTable(logger *slog.Logger, manager func() *screen.Manager) *dispatch.Table {
	table := dispatch.NewTable()

	// Focus and hover descriptions: templates pass the index of the
	// description line to reveal.
	table.Register("set_cur_config", func(ctx context.Context, call dispatch.Call) error {
		if len(call.Args) != 1 {
			return fmt.Errorf("set_cur_config expects 1 argument, got %d", len(call.Args))
		}
		call.Store.Set("cur_config_index", call.Args[0])
		return nil
	})

	// The demo has no audio device; the cue is logged instead.
	table.Register("play_sound", func(ctx context.Context, call dispatch.Call) error {
		name, err := stringArg(call, 0)
		if err != nil {
			return err
		}
		logger.Debug("🔊 Playing sound cue.", "name", name)
		return nil
	})

	table.Register("open_screen", func(ctx context.Context, call dispatch.Call) error {
		name, err := stringArg(call, 0)
		if err != nil {
			return err
		}
		return manager().Enter(name)
	})

	table.Register("leave_menu", func(ctx context.Context, call dispatch.Call) error {
		manager().Leave()
		return nil
	})

	// set_value(key, value) lets reset-style buttons write arbitrary
	// literals back into state.
	table.Register("set_value", func(ctx context.Context, call dispatch.Call) error {
		key, err := stringArg(call, 0)
		if err != nil {
			return err
		}
		if len(call.Args) != 2 {
			return fmt.Errorf("set_value expects 2 arguments, got %d", len(call.Args))
		}
		call.Store.Set(key, call.Args[1])
		return nil
	})

	return table
}

// stringArg extracts a string literal from a handler call's arguments.
func stringArg(call dispatch.Call, i int) (string, error) {
	if i >= len(call.Args) {
		return "", fmt.Errorf("missing argument %d", i)
	}
	if !call.Args[i].Type().Equals(cty.String) {
		return "", fmt.Errorf("argument %d must be a string, got %s", i, call.Args[i].Type().FriendlyName())
	}
	return call.Args[i].AsString(), nil
}
