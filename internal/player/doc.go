// Package player produces hand choices: ParseChoice classifies a line of
// human input, AIPlayer draws the opponent's hand through a Chooser.
package player
