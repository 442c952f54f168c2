// Package tether coordinates hierarchies of floating UI surfaces (menus,
// submenus, popovers, tooltips) for [Ebitengine] hosts and anything else
// that can feed it pointer and keyboard events.
//
// A floating hierarchy is a tree: a submenu is a child of its menu, a
// tooltip a child of the panel it annotates. Tether keeps the open/closed
// state of that tree consistent across interactions that are easy to get
// wrong with flat state: opening a submenu must not close its ancestor,
// clicking outside a branch must close only that branch, and hovering
// across the gap between a menu item and its submenu must not close either.
//
// # Quick start
//
//	group := tether.NewGroup()
//	menu := group.Attach(tether.RootID, &tether.Surface{
//		Anchor:   tether.NewBox(tether.Rect{X: 10, Y: 10, Width: 80, Height: 24}),
//		Floating: tether.NewBox(tether.Rect{X: 10, Y: 34, Width: 160, Height: 120}),
//	})
//	sub := group.Attach(menu.ID(), &tether.Surface{ /* ... */ })
//
//	adapter := tether.NewAdapter(group, tether.HoverConfig{})
//	// each frame:
//	adapter.Update(frameDt)
//
// The host draws whatever it likes for open surfaces; tether never renders.
// Positioning math is equally external: hand a [PositionFunc] to
// [NewPositioner] and read Surface.Position back.
//
// # Coordinators
//
// [Group.SetOpen] is the single write path for open state. Every change
// carries a [Reason] from a closed set, so observers can tell an anchor
// click from an escape key from a cascade close. On top of that channel sit
// the coordinators: outside-pointer dismissal that protects open descendant
// branches ([Group.DismissOutside]), escape-key resolution of the deepest
// open node ([Group.CloseTopmost]), hover open/close delays with a safe
// polygon spanning parent and child surfaces ([Hover]), and keyboard-focus
// handling gated on input modality ([Focus]).
//
// Everything is single-threaded and event-driven: mutations run
// synchronously inside host event handlers or timer callbacks advanced by
// [Group.Update]. A Group, its tree, and its nodes are owned by one
// hierarchy and must not be shared.
//
// [Ebitengine]: https://ebitengine.org
package tether
