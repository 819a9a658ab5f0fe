// Package tcellconsole implements console.Canvas and console.Input on a
// tcell.Screen. tcell handles terminfo lookup and color downgrading, so this
// backend also runs where the raw ANSI terminal package does not.
package tcellconsole
