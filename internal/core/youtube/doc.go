// Package youtube holds the pure helpers around YouTube URLs and downloads:
// URL validation and classification, quality presets, filename sanitizing
// and display formatting. Nothing here touches the network.
package youtube
