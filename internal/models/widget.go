package models

// WidgetKind enumerates the input widget variants the renderer can emit
type WidgetKind string

const (
	WidgetTextInput    WidgetKind = "text_input"
	WidgetTextArea     WidgetKind = "text_area"
	WidgetSelect       WidgetKind = "select"
	WidgetRadioGroup   WidgetKind = "radio_group"
	WidgetRatingScale  WidgetKind = "rating_scale"
	WidgetSectionBreak WidgetKind = "section_break"
)

// WidgetOption is one selectable choice of a select or radio group widget
type WidgetOption struct {
	Value string
	Label string
}

// WidgetDescriptor is the typed, presentation-agnostic description of one
// form input. The template layer decides how each kind is drawn; the
// descriptor carries everything it needs.
type WidgetDescriptor struct {
	Kind       WidgetKind
	QuestionID string
	Label      string
	Placeholder string
	Required   bool

	// Options is populated for select and radio group widgets
	Options []WidgetOption

	// Scale is the upper bound of a rating scale widget (values 1..Scale)
	Scale int
}
