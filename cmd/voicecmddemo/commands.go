package main

import (
	"fmt"

	"github.com/asticode/go-astilog"

	"github.com/vinadenenko/voice-command/command"
)

// registerDemoCommands registers a handful of commands spanning every
// parameter type, just enough to exercise the guided and NLU strategies
// end to end without a real application behind them.
func registerDemoCommands(registry *command.Registry) {
	registry.Register(command.CommandDescriptor{
		Name:           "show_help",
		Description:    "lists every available voice command",
		TriggerPhrases: []string{"show help", "help", "what can i say"},
	}, command.HandlerFunc(func(ctx *command.Context) command.Result {
		astilog.Info("voicecmddemo: show_help invoked")
		return command.Success
	}))

	registry.Register(command.CommandDescriptor{
		Name:           "zoom_to",
		Description:    "zooms the view to a level between 1 and 20",
		TriggerPhrases: []string{"zoom to", "zoom level"},
		Parameters: []command.ParamDescriptor{
			{Name: "level", Type: command.ParamInteger, Required: true, MinValue: command.Float64Ptr(1), MaxValue: command.Float64Ptr(20)},
		},
	}, command.HandlerFunc(func(ctx *command.Context) command.Result {
		level := ctx.MustParam("level")
		astilog.Infof("voicecmddemo: zoom_to invoked with level=%s", level.Raw())
		return command.Success
	}))

	registry.Register(command.CommandDescriptor{
		Name:           "change_color",
		Description:    "changes the active color",
		TriggerPhrases: []string{"change color to", "set color to"},
		Parameters: []command.ParamDescriptor{
			{Name: "color", Type: command.ParamString, Required: true},
		},
	}, command.HandlerFunc(func(ctx *command.Context) command.Result {
		color := ctx.MustParam("color")
		astilog.Infof("voicecmddemo: change_color invoked with color=%s", color.Raw())
		return command.Success
	}))

	registry.Register(command.CommandDescriptor{
		Name:           "move_to",
		Description:    "moves the cursor to x,y coordinates",
		TriggerPhrases: []string{"move to"},
		Parameters: []command.ParamDescriptor{
			{Name: "x", Type: command.ParamInteger, Required: true},
			{Name: "y", Type: command.ParamInteger, Required: true},
		},
	}, command.HandlerFunc(func(ctx *command.Context) command.Result {
		x, y := ctx.MustParam("x"), ctx.MustParam("y")
		astilog.Infof("voicecmddemo: move_to invoked with x=%s y=%s", x.Raw(), y.Raw())
		return command.Success
	}))

	registry.Register(command.CommandDescriptor{
		Name:           "set_notifications",
		Description:    "enables or disables notifications",
		TriggerPhrases: []string{"set notifications", "turn notifications"},
		Parameters: []command.ParamDescriptor{
			{Name: "enabled", Type: command.ParamBool, Required: false, DefaultValue: "true"},
		},
	}, command.HandlerFunc(func(ctx *command.Context) command.Result {
		enabled := ctx.MustParam("enabled")
		astilog.Infof("voicecmddemo: set_notifications invoked with enabled=%s", enabled.Raw())
		return command.Success
	}))

	registry.Register(command.CommandDescriptor{
		Name:           "set_theme",
		Description:    "switches the UI theme",
		TriggerPhrases: []string{"set theme to", "switch theme to"},
		Parameters: []command.ParamDescriptor{
			{Name: "name", Type: command.ParamEnum, Required: true, EnumValues: []string{"light", "dark", "system"}},
		},
	}, command.HandlerFunc(func(ctx *command.Context) command.Result {
		name := ctx.MustParam("name")
		astilog.Infof("voicecmddemo: set_theme invoked with name=%s", name.Raw())
		return command.Success
	}))

	astilog.Debug(fmt.Sprintf("voicecmddemo: registered %d commands", len(registry.AllDescriptors())))
}
