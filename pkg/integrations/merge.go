package integrations

// Merge annotates each catalog entry with the user's connection state.
// Catalog order is preserved. If a provider somehow has multiple
// connection rows, the first one wins.
func Merge(catalog []Entry, connected []Connection) []View {
	byProvider := make(map[string]Connection, len(connected))
	for _, conn := range connected {
		if _, seen := byProvider[conn.Provider]; seen {
			continue
		}
		byProvider[conn.Provider] = conn
	}

	views := make([]View, 0, len(catalog))
	for _, entry := range catalog {
		view := View{Entry: entry, Status: StatusAvailable}
		if conn, ok := byProvider[entry.Id]; ok {
			view.Status = StatusConnected
			at := conn.ConnectedAt
			view.ConnectedAt = &at
		}
		views = append(views, view)
	}
	return views
}
