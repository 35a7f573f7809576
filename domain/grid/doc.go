// Package grid implements the board the cards land on and the line scanner
// that finds five-card runs on it.
//
// The board is authoritative and synchronous: PlaceCard, RemoveCards and
// ApplyGravity leave it in its final state before returning, and any falling
// animation is up to the renderer reading a Snapshot afterwards.
package grid
