// Package keybind implements declarative keyboard-shortcut dispatch.
//
// A Combo describes a key plus modifier state. A Binding pairs a Combo
// with an Action inside one UI Context. Providers supply ordered binding
// lists per context, and a Manager resolves an incoming key Event against
// an ordered provider sequence: first provider wins, and within a
// provider the first listed binding wins.
//
// Matching honors the platform primary-modifier convention: a Combo with
// CtrlOrCmd set requires Command on Mac and Control elsewhere.
package keybind
