package components

import "github.com/multikids/portage/internal/ui/theme"

// Button draws a form action; it is filled once the form can be submitted.
func Button(label string, ready bool) string {
	if ready {
		return theme.ButtonActive.Render(" " + label + " ")
	}
	return theme.ButtonInactive.Render(" " + label + " ")
}
