package main

// ActionDefinition defines an action with its default keybindings and description
type ActionDefinition struct {
	Name        string
	Keys        []string
	Description string
}

// actionDefinitions contains all action definitions with default keybindings and descriptions
var actionDefinitions = []ActionDefinition{
	{"exit", []string{"Escape", "KeyQ"}, "Quit application"},
	{"help", []string{"Shift+Slash"}, "Show/hide help"},
	{"info", []string{"KeyI"}, "Show/hide info display"},
	{"left", []string{"ArrowLeft", "KeyH"}, "Move left (respects reading direction)"},
	{"right", []string{"ArrowRight", "KeyL"}, "Move right (respects reading direction)"},
	{"leftmost", []string{"Shift+ArrowLeft"}, "Jump to leftmost page"},
	{"rightmost", []string{"Shift+ArrowRight"}, "Jump to rightmost page"},
	{"next", []string{"Space", "KeyN", "PageDown"}, "Next page (or spread in 2-page mode)"},
	{"previous", []string{"Backspace", "KeyP", "PageUp"}, "Previous page (or spread in 2-page mode)"},
	{"first", []string{"Home"}, "Jump to first page"},
	{"last", []string{"End"}, "Jump to last page"},
	{"mode_1up", []string{"Key1"}, "Single page mode"},
	{"mode_2up", []string{"Key2"}, "Two-page spread mode"},
	{"mode_thumb", []string{"Key3"}, "Thumbnail grid mode"},
	{"fullscreen", []string{"Enter", "KeyF"}, "Toggle fullscreen"},
	{"page_input", []string{"KeyG"}, "Go to page (enter page number)"},
	{"autoplay", []string{"KeyA"}, "Start/stop automatic page turning"},

	// Zoom actions
	{"zoom_in", []string{"Equal", "Shift+Equal"}, "Zoom in"},
	{"zoom_out", []string{"Minus"}, "Zoom out"},
	{"zoom_fit", []string{"Key0"}, "Fit to window"},
}

// ExecuteAction executes the given action using the InputActions interface.
// This is the single source of truth for all action execution logic.
func ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	switch action {
	case "exit":
		inputActions.Exit()
	case "help":
		inputActions.ToggleHelp()
	case "info":
		inputActions.ToggleInfo()
	case "left":
		inputActions.Left()
	case "right":
		inputActions.Right()
	case "leftmost":
		inputActions.Leftmost()
	case "rightmost":
		inputActions.Rightmost()
	case "next":
		inputActions.NextPage()
	case "previous":
		inputActions.PrevPage()
	case "first":
		inputActions.FirstPage()
	case "last":
		inputActions.LastPage()
	case "mode_1up":
		inputActions.SelectMode1Up()
	case "mode_2up":
		inputActions.SelectMode2Up()
	case "mode_thumb":
		inputActions.SelectModeThumb()
	case "fullscreen":
		inputActions.ToggleFullscreen()
	case "page_input":
		if !inputState.IsInPageInputMode() {
			inputActions.EnterPageInputMode()
		}
	case "autoplay":
		inputActions.ToggleAutoplay()

	// Zoom actions
	case "zoom_in":
		inputActions.ZoomIn()
	case "zoom_out":
		inputActions.ZoomOut()
	case "zoom_fit":
		inputActions.ZoomAutoFit()

	default:
		return false
	}

	return true
}

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = action.Keys
	}
	return keybindings
}
