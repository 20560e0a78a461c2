// Package render draws a refresh report in the SwiftBar/xbar plugin format.
//
// The first line is the menu bar title; "---" separates dropdown sections.
// Menu items carry "| key=value" parameters that SwiftBar interprets, e.g.
// refresh=true or bash=<path> with param1..paramN.
package render
