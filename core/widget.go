package core

import "fmt"

// WidgetKind tags the identity of a widget record owned by the render
// layer. Values are part of the memory contract: append only.
type WidgetKind uint32

const (
	WidgetNone   WidgetKind = 0
	WidgetLabel  WidgetKind = 1
	WidgetInput  WidgetKind = 2
	WidgetButton WidgetKind = 3
	WidgetPanel  WidgetKind = 4
	WidgetList   WidgetKind = 5
)

func (k WidgetKind) String() string {
	switch k {
	case WidgetNone:
		return "None"
	case WidgetLabel:
		return "Label"
	case WidgetInput:
		return "Input"
	case WidgetButton:
		return "Button"
	case WidgetPanel:
		return "Panel"
	case WidgetList:
		return "List"
	default:
		return fmt.Sprintf("WidgetKind(%d)", uint32(k))
	}
}

// Known reports whether k is one of the defined kinds.
func (k WidgetKind) Known() bool {
	return k <= WidgetList
}
