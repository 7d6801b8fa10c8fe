package ui

import "github.com/gatekeep-io/gatekeep/internal/approval"

// SelectOption is one selectable choice in the modal's button strip. The
// first rune of Label is the shortcut glyph and is rendered underlined.
type SelectOption struct {
	Label       string
	Description string
	Key         string
	Decision    approval.Decision
}

// The option catalogs are fixed per request kind and never mutated after
// init, so every modal of a kind shares the same slice.
var execSelectOptions = []SelectOption{
	{
		Label:       "Yes",
		Description: "Approve and run the command",
		Key:         "y",
		Decision:    approval.Approved,
	},
	{
		Label:       "Always",
		Description: "Approve the command for the remainder of this session",
		Key:         "a",
		Decision:    approval.ApprovedForSession,
	},
	{
		Label:       "No",
		Description: "Do not run the command",
		Key:         "n",
		Decision:    approval.Denied,
	},
}

var patchSelectOptions = []SelectOption{
	{
		Label:       "Yes",
		Description: "Approve and apply the changes",
		Key:         "y",
		Decision:    approval.Approved,
	},
	{
		Label:       "No",
		Description: "Do not apply the changes",
		Key:         "n",
		Decision:    approval.Denied,
	},
}

// selectOptionsFor picks the catalog matching the request's variant.
func selectOptionsFor(req approval.Request) []SelectOption {
	switch req.(type) {
	case approval.ExecRequest:
		return execSelectOptions
	case approval.PatchRequest:
		return patchSelectOptions
	}
	return nil
}
