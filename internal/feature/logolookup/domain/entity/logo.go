// Package entity defines the domain models for the logolookup feature.
package entity

// DetectedLogo is a single brand logo detected in an uploaded image.
type DetectedLogo struct {
	Name       string  // brand or company name as reported by the detector
	Confidence float32 // detection score, 0.0 to 1.0
}
