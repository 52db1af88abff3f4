package cmd

import (
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/tankpad/tankpad/apitypes"
)

func onOff(b bool) string {
	if b {
		return "open"
	}
	return "closed"
}

// renderState prints one row per widget, dialog and dropdown.
func renderState(w io.Writer, st *apitypes.PanelState) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Kind", "Name", "State", "Range"})
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, name := range slices.Sorted(maps.Keys(st.Sliders)) {
		s := st.Sliders[name]
		table.Append([]string{"slider", name, s.Label, strconv.Itoa(s.Min) + ".." + strconv.Itoa(s.Max)})
	}
	table.Append([]string{"color", "color", st.Color, ""})
	for _, name := range slices.Sorted(maps.Keys(st.Dialogs)) {
		table.Append([]string{"dialog", name, onOff(st.Dialogs[name]), ""})
	}
	table.Append([]string{"modal", "modal", onOff(st.ModalVisible), ""})
	table.Append([]string{"sidebar", "sidebar", onOff(st.SidebarOpen), ""})
	for _, name := range slices.Sorted(maps.Keys(st.Dropdowns)) {
		table.Append([]string{"dropdown", name, onOff(st.Dropdowns[name]), ""})
	}
	table.Render()
}

