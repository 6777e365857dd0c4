// Package terminal runs the sandbox on a tcell screen: it maps mouse and key
// events onto sandbox input and flushes rendered cell canvases
package terminal
