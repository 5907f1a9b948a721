/*
Package admin implements the resource admin screen: a collection loaded from the hotel REST API,
a form bound to a draft, create/update/delete mutations that re-fetch the collection on success,
and a table presenter.

A Screen is driven by the bubbletea update loop. Every network call runs as a tea.Cmd and comes back
as LoadedMsg or MutationMsg, which the owner passes to Screen.Update:

	screen := admin.NewScreen(schemas.Rooms(), rest.Rooms, notifier)
	cmd := screen.Mount()
	...
	cmd = screen.Update(msg)
*/
package admin
